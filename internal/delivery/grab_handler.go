package delivery

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/Vovarama1992/audiograb/internal/domain"
	"github.com/Vovarama1992/audiograb/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

var urlPattern = regexp.MustCompile(`^https?://`)

type GrabHandler struct {
	grabber ports.GrabberService
	log     *logger.ZapLogger
}

func NewGrabHandler(grabber ports.GrabberService, log *logger.ZapLogger) *GrabHandler {
	return &GrabHandler{
		grabber: grabber,
		log:     log,
	}
}

type grabRequest struct {
	URL string `json:"url"`
}

type bestAudioBlock struct {
	FormatID string  `json:"format_id"`
	Ext      string  `json:"ext"`
	ABR      float64 `json:"abr"`
	ACodec   string  `json:"acodec"`
}

// POST /api/preview
func (h *GrabHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req grabRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	pageURL := strings.TrimSpace(req.URL)
	if !urlPattern.MatchString(pageURL) {
		http.Error(w, "Invalid URL", http.StatusBadRequest)
		return
	}

	info, best, err := h.grabber.Preview(r.Context(), pageURL)
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "preview failed",
			Error:   err,
			Fields:  map[string]any{"url": pageURL},
		})
		http.Error(w, "Could not fetch video info", http.StatusInternalServerError)
		return
	}

	uploader := info.Uploader
	if uploader == "" {
		uploader = info.Channel
	}
	webpage := info.WebpageURL
	if webpage == "" {
		webpage = pageURL
	}

	var ba *bestAudioBlock
	if best != nil {
		ba = &bestAudioBlock{
			FormatID: best.FormatID,
			Ext:      best.Ext,
			ABR:      best.ABR,
			ACodec:   best.ACodec,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"title":       info.Title,
		"uploader":    uploader,
		"duration":    info.Duration,
		"thumbnail":   info.Thumbnail,
		"webpage_url": webpage,
		"best_audio":  ba,
	})
}

// POST /api/downloads
func (h *GrabHandler) Download(w http.ResponseWriter, r *http.Request) {
	var req grabRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	pageURL := strings.TrimSpace(req.URL)
	if pageURL == "" {
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}
	if !urlPattern.MatchString(pageURL) {
		http.Error(w, "Invalid URL format", http.StatusBadRequest)
		return
	}

	d, err := h.grabber.Grab(r.Context(), pageURL)
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "grab failed",
			Error:   err,
			Fields:  map[string]any{"url": pageURL},
		})
		switch {
		case errors.Is(err, domain.ErrNoAudio):
			http.Error(w, "No audio track available (the source may require login/cookies)", http.StatusInternalServerError)
		case errors.Is(err, domain.ErrNoFile):
			http.Error(w, "No audio file was produced", http.StatusInternalServerError)
		default:
			http.Error(w, "Download failed", http.StatusInternalServerError)
		}
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "grab completed",
		Fields: map[string]any{
			"grabID":   d.GrabID,
			"filename": d.Filename,
		},
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"title":    d.Title,
		"filename": d.Filename,
		"file_url": fileURL(r, d.Filename),
		"status":   "Downloaded",
	})
}

func fileURL(r *http.Request, name string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/api/files/%s", scheme, r.Host, url.PathEscape(name))
}
