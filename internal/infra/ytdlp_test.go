package infra

import "testing"

func TestParseVideoInfo(t *testing.T) {
	raw := []byte(`{
		"title": "Test Track",
		"uploader": "Someone",
		"channel": "Someone Official",
		"duration": 183.5,
		"thumbnail": "https://i.example.com/t.jpg",
		"webpage_url": "https://example.com/watch?v=abc",
		"formats": [
			{"format_id": "sb0", "ext": "mhtml", "acodec": "none", "vcodec": "none"},
			{"format_id": "140", "ext": "m4a", "acodec": "mp4a.40.2", "vcodec": "none", "abr": 129.478}
		]
	}`)

	info, err := parseVideoInfo(raw)
	if err != nil {
		t.Fatalf("parseVideoInfo() error = %v", err)
	}
	if info.Title != "Test Track" {
		t.Errorf("Title = %q", info.Title)
	}
	if info.Duration != 183.5 {
		t.Errorf("Duration = %v", info.Duration)
	}
	if len(info.Formats) != 2 {
		t.Fatalf("Formats = %d, want 2", len(info.Formats))
	}
	if info.Formats[1].FormatID != "140" || info.Formats[1].ABR != 129.478 {
		t.Errorf("format[1] = %+v", info.Formats[1])
	}
}

func TestParseVideoInfoRejectsGarbage(t *testing.T) {
	if _, err := parseVideoInfo([]byte("not json")); err == nil {
		t.Error("expected error on invalid json")
	}
	if _, err := parseVideoInfo([]byte("{}")); err == nil {
		t.Error("expected error on empty dump")
	}
}
