package ports

import (
	"context"

	"github.com/Vovarama1992/audiograb/internal/models"
)

type DownloadRepository interface {
	InsertDownload(ctx context.Context, d *models.Download) (*models.Download, error)
	ListDownloads(ctx context.Context, limit int) ([]models.Download, error)
}
