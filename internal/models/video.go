package models

// Format is a single downloadable stream as reported by yt-dlp.
type Format struct {
	FormatID string  `json:"format_id"`
	Ext      string  `json:"ext"`
	ACodec   string  `json:"acodec"`
	VCodec   string  `json:"vcodec"`
	ABR      float64 `json:"abr"`
}

type VideoInfo struct {
	Title      string   `json:"title"`
	Uploader   string   `json:"uploader"`
	Channel    string   `json:"channel"`
	Duration   float64  `json:"duration"`
	Thumbnail  string   `json:"thumbnail"`
	WebpageURL string   `json:"webpage_url"`
	Formats    []Format `json:"formats"`
}
