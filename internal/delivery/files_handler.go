package delivery

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/Vovarama1992/audiograb/internal/models"
	"github.com/Vovarama1992/audiograb/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
)

const historyLimit = 50

type FilesHandler struct {
	files ports.FileStore
	repo  ports.DownloadRepository
	log   *logger.ZapLogger
}

func NewFilesHandler(files ports.FileStore, repo ports.DownloadRepository, log *logger.ZapLogger) *FilesHandler {
	return &FilesHandler{
		files: files,
		repo:  repo,
		log:   log,
	}
}

// GET /api/files
func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.files.List()
	if err != nil {
		http.Error(w, "failed to list files", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"files": names,
	})
}

// GET /api/files/{name}
func (h *FilesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	path, err := h.files.Resolve(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Bad filename", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

// GET /api/history
func (h *FilesHandler) History(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListDownloads(r.Context(), historyLimit)
	if err != nil {
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Download{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"downloads": list,
	})
}

// DELETE /api/files/{name}
func (h *FilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.files.Remove(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Bad filename", http.StatusBadRequest)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "file deleted",
		Fields:  map[string]any{"filename": name},
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"deleted": name,
	})
}
