package ports

import (
	"context"

	"github.com/Vovarama1992/audiograb/internal/models"
)

// PreviewCache is best-effort: a miss and an unavailable backend look the same.
type PreviewCache interface {
	Get(ctx context.Context, pageURL string) (*models.VideoInfo, error)
	Set(ctx context.Context, pageURL string, info *models.VideoInfo) error
}
