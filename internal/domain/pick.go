package domain

import (
	"sort"
	"strings"

	"github.com/Vovarama1992/audiograb/internal/models"
)

// audioPriority ranks codecs the way listeners actually want them:
// AAC/M4A plays everywhere, Opus/WebM is the efficient fallback, the
// rest only when nothing better exists.
func audioPriority(f models.Format) int {
	ext := strings.ToLower(f.Ext)
	acodec := strings.ToLower(f.ACodec)

	switch {
	case ext == "m4a" || strings.HasPrefix(acodec, "mp4a") || strings.Contains(acodec, "aac"):
		return 0
	case ext == "webm" || ext == "opus" || strings.Contains(acodec, "opus"):
		return 1
	default:
		return 2
	}
}

// PickBestAudio selects among audio-only formats. Ties inside a priority
// class go to the higher bitrate; an exact tie keeps the listed order.
// Returns nil when no audio-only stream exists.
func PickBestAudio(formats []models.Format) *models.Format {
	audios := make([]models.Format, 0, len(formats))
	for _, f := range formats {
		if (f.VCodec == "" || f.VCodec == "none") && f.ACodec != "none" {
			audios = append(audios, f)
		}
	}
	if len(audios) == 0 {
		return nil
	}

	sort.SliceStable(audios, func(i, j int) bool {
		pi, pj := audioPriority(audios[i]), audioPriority(audios[j])
		if pi != pj {
			return pi < pj
		}
		return audios[i].ABR > audios[j].ABR
	})

	best := audios[0]
	return &best
}
