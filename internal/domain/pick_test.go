package domain

import (
	"testing"

	"github.com/Vovarama1992/audiograb/internal/models"
)

func TestPickBestAudio(t *testing.T) {
	tests := []struct {
		name    string
		formats []models.Format
		wantID  string
		wantNil bool
	}{
		{
			name:    "empty list",
			formats: nil,
			wantNil: true,
		},
		{
			name: "no audio-only streams",
			formats: []models.Format{
				{FormatID: "137", Ext: "mp4", ACodec: "none", VCodec: "avc1"},
				{FormatID: "22", Ext: "mp4", ACodec: "mp4a.40.2", VCodec: "avc1"},
			},
			wantNil: true,
		},
		{
			name: "aac wins over higher-bitrate opus",
			formats: []models.Format{
				{FormatID: "251", Ext: "webm", ACodec: "opus", VCodec: "none", ABR: 160},
				{FormatID: "140", Ext: "m4a", ACodec: "mp4a.40.2", VCodec: "none", ABR: 128},
			},
			wantID: "140",
		},
		{
			name: "higher bitrate wins inside a class",
			formats: []models.Format{
				{FormatID: "139", Ext: "m4a", ACodec: "mp4a.40.5", VCodec: "none", ABR: 48},
				{FormatID: "140", Ext: "m4a", ACodec: "mp4a.40.2", VCodec: "none", ABR: 128},
			},
			wantID: "140",
		},
		{
			name: "opus beats unknown codec",
			formats: []models.Format{
				{FormatID: "x", Ext: "mp3", ACodec: "mp3", VCodec: "none", ABR: 320},
				{FormatID: "250", Ext: "webm", ACodec: "opus", VCodec: "none", ABR: 70},
			},
			wantID: "250",
		},
		{
			name: "empty vcodec counts as audio-only",
			formats: []models.Format{
				{FormatID: "http-128", Ext: "mp3", ACodec: "mp3", VCodec: "", ABR: 128},
			},
			wantID: "http-128",
		},
		{
			name: "storyboards are skipped",
			formats: []models.Format{
				{FormatID: "sb0", Ext: "mhtml", ACodec: "none", VCodec: "none"},
				{FormatID: "140", Ext: "m4a", ACodec: "mp4a.40.2", VCodec: "none", ABR: 128},
			},
			wantID: "140",
		},
		{
			name: "exact tie keeps listed order",
			formats: []models.Format{
				{FormatID: "first", Ext: "m4a", ACodec: "aac", VCodec: "none", ABR: 128},
				{FormatID: "second", Ext: "m4a", ACodec: "aac", VCodec: "none", ABR: 128},
			},
			wantID: "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PickBestAudio(tt.formats)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("PickBestAudio() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("PickBestAudio() = nil, want %q", tt.wantID)
			}
			if got.FormatID != tt.wantID {
				t.Errorf("PickBestAudio() = %q, want %q", got.FormatID, tt.wantID)
			}
		})
	}
}

func TestAudioPriority(t *testing.T) {
	tests := []struct {
		name   string
		format models.Format
		want   int
	}{
		{"m4a ext", models.Format{Ext: "m4a"}, 0},
		{"mp4a codec", models.Format{Ext: "mp4", ACodec: "mp4a.40.2"}, 0},
		{"aac in codec", models.Format{Ext: "weird", ACodec: "he-aac"}, 0},
		{"webm ext", models.Format{Ext: "webm", ACodec: "opus"}, 1},
		{"opus ext", models.Format{Ext: "opus"}, 1},
		{"opus codec odd ext", models.Format{Ext: "ogg", ACodec: "opus"}, 1},
		{"mp3", models.Format{Ext: "mp3", ACodec: "mp3"}, 2},
		{"uppercase ext", models.Format{Ext: "M4A"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := audioPriority(tt.format); got != tt.want {
				t.Errorf("audioPriority(%+v) = %d, want %d", tt.format, got, tt.want)
			}
		})
	}
}
