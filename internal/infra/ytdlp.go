package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"

	"github.com/Vovarama1992/audiograb/internal/models"
	"github.com/Vovarama1992/audiograb/internal/ports"
)

const (
	extractTimeout  = 45 * time.Second
	downloadTimeout = 10 * time.Minute
)

type YTDLPExtractor struct {
	binary     string
	cookieFile string
}

func NewYTDLPExtractor(cookieFile string) ports.Extractor {
	return &YTDLPExtractor{
		binary:     "yt-dlp",
		cookieFile: cookieFile,
	}
}

func (e *YTDLPExtractor) Extract(ctx context.Context, pageURL string) (*models.VideoInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	args := []string{
		"-J",
		"--no-playlist",
		"--no-warnings",
		"--skip-download",
	}
	if e.cookieFile != "" {
		args = append(args, "--cookies", e.cookieFile)
	}
	args = append(args, pageURL)

	cmd := exec.CommandContext(ctx, e.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		log.Printf("[YTDLP][EXTRACT-ERR] url=%s err=%v stderr=%q",
			pageURL, err, trim(stderr.String(), 280))
		return nil, fmt.Errorf("yt-dlp extract: %w: %s", err, trim(strings.TrimSpace(stderr.String()), 280))
	}

	info, err := parseVideoInfo(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	log.Printf("[YTDLP][EXTRACT-OK] url=%s title=%q formats=%d dur=%s",
		pageURL, info.Title, len(info.Formats), time.Since(start))
	return info, nil
}

func (e *YTDLPExtractor) Download(ctx context.Context, pageURL, formatID, outTemplate string) error {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	args := []string{
		"--no-playlist",
		"--no-warnings",
		"--ignore-errors",
		"--force-overwrites",
		"--windows-filenames",
		"-f", formatID,
		"-o", outTemplate,
	}
	if e.cookieFile != "" {
		args = append(args, "--cookies", e.cookieFile)
	}
	args = append(args, pageURL)

	cmd := exec.CommandContext(ctx, e.binary, args...)

	start := time.Now()
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("[YTDLP][DL-ERR] url=%s fmt=%s err=%v out=%q",
			pageURL, formatID, err, trim(string(out), 280))
		return fmt.Errorf("yt-dlp download: %w: %s", err, trim(strings.TrimSpace(string(out)), 280))
	}

	log.Printf("[YTDLP][DL-OK] url=%s fmt=%s dur=%s", pageURL, formatID, time.Since(start))
	return nil
}

func parseVideoInfo(raw []byte) (*models.VideoInfo, error) {
	var info models.VideoInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("yt-dlp json: %w", err)
	}
	if info.Title == "" && len(info.Formats) == 0 {
		return nil, fmt.Errorf("yt-dlp json: empty dump")
	}
	return &info, nil
}
