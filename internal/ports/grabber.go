package ports

import (
	"context"

	"github.com/Vovarama1992/audiograb/internal/models"
)

type GrabEvent struct {
	GrabID   string `json:"grab_id"`
	Status   string `json:"status"` // started | completed | failed
	Title    string `json:"title,omitempty"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}

type GrabberService interface {
	Preview(ctx context.Context, pageURL string) (*models.VideoInfo, *models.Format, error)
	Grab(ctx context.Context, pageURL string) (*models.Download, error)
	Events() <-chan GrabEvent
}
