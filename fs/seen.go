package fs

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/sieve"
)

// Ensure SeenFile implements sieve.SeenStore at compile time.
var _ sieve.SeenStore = (*SeenFile)(nil)

// SeenFile implements sieve.SeenStore on a newline-delimited file.
type SeenFile struct {
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	loaded bool
	seen   map[string]struct{}
}

// NewSeenFile creates a SeenFile stored at path.
func NewSeenFile(path string, logger *slog.Logger) *SeenFile {
	return &SeenFile{
		path:   path,
		logger: discardLogger(logger),
	}
}

// Contains reports whether url has been added.
func (s *SeenFile) Contains(_ context.Context, url string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	_, ok := s.seen[url]
	return ok, nil
}

// Add records url and appends it to the file if it is new.
func (s *SeenFile) Add(_ context.Context, url string) (bool, error) {
	if strings.ContainsAny(url, "\r\n") {
		return false, sieve.Errorf(sieve.EINVALID, "URL contains a line break: %q", url)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	if _, ok := s.seen[url]; ok {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return false, err
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, err
	}
	if _, err := f.WriteString(url + "\n"); err != nil {
		f.Close()
		return false, err
	}
	if err := f.Close(); err != nil {
		return false, err
	}

	s.seen[url] = struct{}{}
	return true, nil
}

// Len returns the number of seen URLs.
func (s *SeenFile) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	return len(s.seen)
}

// load reads the file into memory once. Must be called with mu held.
func (s *SeenFile) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.seen = make(map[string]struct{})

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		s.logger.Warn("seen file unreadable, starting empty", "path", s.path, "error", err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		s.seen[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn("seen file unreadable, starting empty", "path", s.path, "error", err)
		s.seen = make(map[string]struct{})
	}
}
