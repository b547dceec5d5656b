package infra

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/audiograb/internal/models"
	"github.com/Vovarama1992/audiograb/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresDownloadRepo struct {
	pool *pgxpool.Pool
}

func trim(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

func NewPostgresDownloadRepo(pool *pgxpool.Pool) ports.DownloadRepository {
	return &PostgresDownloadRepo{pool: pool}
}

func (r *PostgresDownloadRepo) InsertDownload(ctx context.Context, d *models.Download) (*models.Download, error) {
	query := `
		INSERT INTO downloads (grab_id, source_url, title, filename, format_id, ext, abr)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	row := r.pool.QueryRow(ctx, query,
		d.GrabID, d.SourceURL, d.Title, d.Filename, d.FormatID, d.Ext, d.ABR,
	)
	if err := row.Scan(&d.ID, &d.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert download: %w", err)
	}
	return d, nil
}

func (r *PostgresDownloadRepo) ListDownloads(ctx context.Context, limit int) ([]models.Download, error) {
	query := `
		SELECT id, grab_id, source_url, title, filename, format_id, ext, abr, created_at
		FROM downloads
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}
	defer rows.Close()

	var out []models.Download
	for rows.Next() {
		var d models.Download
		if err := rows.Scan(
			&d.ID,
			&d.GrabID,
			&d.SourceURL,
			&d.Title,
			&d.Filename,
			&d.FormatID,
			&d.Ext,
			&d.ABR,
			&d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan download: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
