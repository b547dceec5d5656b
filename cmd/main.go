package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/Vovarama1992/audiograb/internal/delivery"
	ws "github.com/Vovarama1992/audiograb/internal/delivery/ws"
	"github.com/Vovarama1992/audiograb/internal/domain"
	"github.com/Vovarama1992/audiograb/internal/infra"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	requestsPerSecond = 20
	burstSize         = 40
)

func main() {

	// LOGGER
	zcore, _ := zap.NewProduction()
	zl := logger.NewZapLogger(zcore.Sugar())

	// ENV
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	downloadDir := os.Getenv("DOWNLOAD_FOLDER")
	if downloadDir == "" {
		downloadDir = "./downloads"
	}

	cookieFile := os.Getenv("YTDLP_COOKIES_FILE")
	if cookieFile == "" {
		log.Println("WARN: YTDLP_COOKIES_FILE is not set; yt-dlp may fail on YouTube")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		panic("DATABASE_URL is not set")
	}

	secret := os.Getenv("AUTH_SECRET")
	if secret == "" {
		panic("AUTH_SECRET is not set")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	// POSTGRES
	ctx := context.Background()

	pool, err := infra.NewPgxPool(ctx, dsn)
	if err != nil {
		panic("cannot connect pgxpool: " + err.Error())
	}
	defer pool.Close()

	// INFRA
	files, err := infra.NewDiskFileStore(downloadDir)
	if err != nil {
		panic("cannot init download dir: " + err.Error())
	}

	cache := infra.NewRedisPreviewCache(redisAddr)
	extractor := infra.NewYTDLPExtractor(cookieFile)
	repo := infra.NewPostgresDownloadRepo(pool)

	// SERVICES
	authService := domain.NewAuthService(pool, secret)
	grabber := domain.NewGrabberService(extractor, repo, cache, files)

	// WS HUB
	hub := ws.NewHub()

	// BROADCAST LISTENER
	go func() {
		for ev := range grabber.Events() {
			payload, err := json.Marshal(ev)
			if err != nil {
				log.Printf("[SEND][ERR] json marshal failed: %v", err)
				continue
			}

			hub.SendToRoom(ev.GrabID, payload)
			hub.SendToRoom(ws.RoomAll, payload)
		}
	}()

	// HANDLERS
	authHandler := delivery.NewAuthHandler(authService, zl)
	grabHandler := delivery.NewGrabHandler(grabber, zl)
	filesHandler := delivery.NewFilesHandler(files, repo, zl)

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Auth"},
		AllowCredentials: true,
	}))
	r.Use(delivery.RateLimitMiddleware(rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize)))

	delivery.RegisterRoutes(r, authHandler, authService, grabHandler, filesHandler)

	r.Get("/ws", ws.WSHandler(hub))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": port, "downloadDir": files.Dir()},
	})

	if err := http.ListenAndServe(":"+port, r); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
