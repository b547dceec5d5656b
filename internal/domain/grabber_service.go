package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/Vovarama1992/audiograb/internal/models"
	"github.com/Vovarama1992/audiograb/internal/ports"
	"github.com/google/uuid"
)

var (
	// ErrNoAudio means extraction worked but no audio-only stream was
	// offered (the source may want login/cookies).
	ErrNoAudio = errors.New("no audio track available")

	// ErrNoFile means the engine reported success but nothing landed in
	// the download dir.
	ErrNoFile = errors.New("no audio file produced")
)

type GrabberService struct {
	extractor ports.Extractor
	repo      ports.DownloadRepository
	cache     ports.PreviewCache
	files     ports.FileStore

	events chan ports.GrabEvent
}

func NewGrabberService(
	extractor ports.Extractor,
	repo ports.DownloadRepository,
	cache ports.PreviewCache,
	files ports.FileStore,
) *GrabberService {
	return &GrabberService{
		extractor: extractor,
		repo:      repo,
		cache:     cache,
		files:     files,
		events:    make(chan ports.GrabEvent, 100),
	}
}

func (g *GrabberService) Events() <-chan ports.GrabEvent { return g.events }

// Preview extracts metadata without downloading and reports which stream
// a grab would take.
func (g *GrabberService) Preview(ctx context.Context, pageURL string) (*models.VideoInfo, *models.Format, error) {
	if cached, err := g.cache.Get(ctx, pageURL); err == nil && cached != nil {
		log.Printf("[PREVIEW][CACHE-HIT] url=%s", pageURL)
		return cached, PickBestAudio(cached.Formats), nil
	}

	info, err := g.extractor.Extract(ctx, pageURL)
	if err != nil {
		return nil, nil, err
	}

	if err := g.cache.Set(ctx, pageURL, info); err != nil {
		log.Printf("[PREVIEW][CACHE-ERR] url=%s err=%v", pageURL, err)
	}

	return info, PickBestAudio(info.Formats), nil
}

// Grab runs the whole pipeline: extract, pick, download the exact format,
// locate the resulting file.
func (g *GrabberService) Grab(ctx context.Context, pageURL string) (*models.Download, error) {
	grabID := uuid.NewString()
	start := time.Now()
	log.Printf("[GRAB][START] id=%s url=%s", grabID, pageURL)

	g.events <- ports.GrabEvent{GrabID: grabID, Status: "started"}

	info, err := g.extractor.Extract(ctx, pageURL)
	if err != nil {
		return nil, g.fail(grabID, fmt.Errorf("extract: %w", err))
	}

	title := info.Title
	if title == "" {
		title = "audio"
	}
	safeTitle := SanitizeTitle(title)

	best := PickBestAudio(info.Formats)
	if best == nil {
		return nil, g.fail(grabID, ErrNoAudio)
	}

	outTemplate := filepath.Join(g.files.Dir(), "%(title)s.%(ext)s")
	if err := g.extractor.Download(ctx, pageURL, best.FormatID, outTemplate); err != nil {
		return nil, g.fail(grabID, fmt.Errorf("download: %w", err))
	}

	g.files.DiscardSidecar(safeTitle)

	filename, err := g.files.Locate(safeTitle, best.Ext)
	if err != nil {
		return nil, g.fail(grabID, fmt.Errorf("locate: %w", err))
	}
	if filename == "" {
		return nil, g.fail(grabID, ErrNoFile)
	}

	d := &models.Download{
		GrabID:    grabID,
		SourceURL: pageURL,
		Title:     title,
		Filename:  filename,
		FormatID:  best.FormatID,
		Ext:       best.Ext,
		ABR:       best.ABR,
	}

	// history is auxiliary: a dead database must not fail the grab
	if _, err := g.repo.InsertDownload(ctx, d); err != nil {
		log.Printf("[GRAB][DB-ERR] id=%s err=%v", grabID, err)
	}

	g.events <- ports.GrabEvent{
		GrabID:   grabID,
		Status:   "completed",
		Title:    title,
		Filename: filename,
	}

	log.Printf("[GRAB][DONE] id=%s file=%q dur=%s", grabID, filename, time.Since(start))
	return d, nil
}

func (g *GrabberService) fail(grabID string, err error) error {
	log.Printf("[GRAB][FAIL] id=%s err=%v", grabID, err)
	g.events <- ports.GrabEvent{GrabID: grabID, Status: "failed", Error: err.Error()}
	return err
}
