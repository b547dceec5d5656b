package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vovarama1992/audiograb/internal/domain"
	"github.com/Vovarama1992/audiograb/internal/models"
	"github.com/Vovarama1992/audiograb/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGrabber struct {
	info     *models.VideoInfo
	best     *models.Format
	download *models.Download
	err      error
}

func (f *fakeGrabber) Preview(ctx context.Context, pageURL string) (*models.VideoInfo, *models.Format, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.info, f.best, nil
}

func (f *fakeGrabber) Grab(ctx context.Context, pageURL string) (*models.Download, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.download, nil
}

func (f *fakeGrabber) Events() <-chan ports.GrabEvent { return nil }

func noopLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

func postJSON(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Host = "grab.local"
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestPreviewRejectsBadURL(t *testing.T) {
	h := NewGrabHandler(&fakeGrabber{}, noopLogger())

	for _, body := range []string{
		`{}`,
		`{"url":""}`,
		`{"url":"ftp://example.com/x"}`,
		`{"url":"example.com/x"}`,
		`not json`,
	} {
		rec := postJSON(h.Preview, body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestPreviewOK(t *testing.T) {
	g := &fakeGrabber{
		info: &models.VideoInfo{
			Title:     "Track",
			Channel:   "Chan", // uploader empty, channel fallback
			Duration:  100,
			Thumbnail: "https://i.example.com/t.jpg",
		},
		best: &models.Format{FormatID: "140", Ext: "m4a", ABR: 128, ACodec: "mp4a.40.2"},
	}
	h := NewGrabHandler(g, noopLogger())

	rec := postJSON(h.Preview, `{"url":"https://example.com/v"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Title      string  `json:"title"`
		Uploader   string  `json:"uploader"`
		WebpageURL string  `json:"webpage_url"`
		BestAudio  *struct {
			FormatID string  `json:"format_id"`
			ABR      float64 `json:"abr"`
		} `json:"best_audio"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Track", resp.Title)
	require.Equal(t, "Chan", resp.Uploader)
	require.Equal(t, "https://example.com/v", resp.WebpageURL)
	require.NotNil(t, resp.BestAudio)
	require.Equal(t, "140", resp.BestAudio.FormatID)
}

func TestPreviewWithoutAudioStream(t *testing.T) {
	g := &fakeGrabber{info: &models.VideoInfo{Title: "No audio"}}
	h := NewGrabHandler(g, noopLogger())

	rec := postJSON(h.Preview, `{"url":"https://example.com/v"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "null", string(resp["best_audio"]))
}

func TestDownloadValidation(t *testing.T) {
	h := NewGrabHandler(&fakeGrabber{}, noopLogger())

	rec := postJSON(h.Download, `{"url":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "URL is required")

	rec = postJSON(h.Download, `{"url":"example.com/v"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid URL format")
}

func TestDownloadOK(t *testing.T) {
	g := &fakeGrabber{
		download: &models.Download{
			GrabID:   "g-1",
			Title:    "Track",
			Filename: "Track.m4a",
		},
	}
	h := NewGrabHandler(g, noopLogger())

	rec := postJSON(h.Download, `{"url":"https://example.com/v"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Downloaded", resp["status"])
	require.Equal(t, "Track.m4a", resp["filename"])
	require.Equal(t, "http://grab.local/api/files/Track.m4a", resp["file_url"])
}

func TestDownloadNoAudioHint(t *testing.T) {
	h := NewGrabHandler(&fakeGrabber{err: domain.ErrNoAudio}, noopLogger())

	rec := postJSON(h.Download, `{"url":"https://example.com/v"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "login/cookies"))
}
