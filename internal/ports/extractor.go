package ports

import (
	"context"

	"github.com/Vovarama1992/audiograb/internal/models"
)

// Extractor is the external media-extraction engine. Everything site-specific
// lives behind it.
type Extractor interface {
	Extract(ctx context.Context, pageURL string) (*models.VideoInfo, error)
	Download(ctx context.Context, pageURL, formatID, outTemplate string) error
}
