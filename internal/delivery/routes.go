package delivery

import (
	"github.com/Vovarama1992/audiograb/internal/ports"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, hAuth *AuthHandler, auth ports.AuthService, hGrab *GrabHandler, hFiles *FilesHandler) {

	// login
	r.Post("/api/login", hAuth.Login)

	// extraction
	r.Post("/api/preview", hGrab.Preview)
	r.Post("/api/downloads", hGrab.Download)

	// stored files
	r.Get("/api/files", hFiles.List)
	r.Get("/api/files/{name}", hFiles.Serve)
	r.Get("/api/history", hFiles.History)

	// destructive, token-guarded
	r.With(AuthMiddleware(auth)).Delete("/api/files/{name}", hFiles.Delete)
}
