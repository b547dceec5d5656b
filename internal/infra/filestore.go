package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Vovarama1992/audiograb/internal/ports"
)

// extensions accepted as-is, no transcoding
var allowedAudioExts = map[string]struct{}{
	"m4a": {}, "webm": {}, "opus": {}, "mp4": {}, "m4b": {}, "mp3": {},
}

var ErrBadFilename = errors.New("bad filename")

type DiskFileStore struct {
	dir string
}

func NewDiskFileStore(dir string) (*DiskFileStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}
	return &DiskFileStore{dir: abs}, nil
}

var _ ports.FileStore = (*DiskFileStore)(nil)

func (s *DiskFileStore) Dir() string { return s.dir }

func (s *DiskFileStore) List() ([]string, error) {
	names := []string{}
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isAudioName(d.Name()) {
			names = append(names, d.Name())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (s *DiskFileStore) Locate(safeTitle, preferExt string) (string, error) {
	if preferExt != "" {
		exact := filepath.Join(s.dir, safeTitle+"."+preferExt)
		if st, err := os.Stat(exact); err == nil && !st.IsDir() {
			return filepath.Base(exact), nil
		}
	}

	prefix := safeTitle + "."
	var bestPath string
	var bestMtime time.Time

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasPrefix(d.Name(), prefix) || !isAudioName(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(bestMtime) {
			bestMtime = info.ModTime()
			bestPath = path
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if bestPath == "" {
		return "", nil
	}
	return filepath.Base(bestPath), nil
}

func (s *DiskFileStore) Resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", ErrBadFilename
	}
	if !isAudioName(name) {
		return "", ErrBadFilename
	}

	var found string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", os.ErrNotExist
	}
	return found, nil
}

func (s *DiskFileStore) Remove(name string) error {
	path, err := s.Resolve(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (s *DiskFileStore) DiscardSidecar(safeTitle string) {
	_ = os.Remove(filepath.Join(s.dir, safeTitle+".mhtml"))
}

func isAudioName(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	_, ok := allowedAudioExts[ext]
	return ok
}
