package fs

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"sync"

	"github.com/fwojciec/sieve"
)

// Ensure CorpusFile implements sieve.CorpusStore at compile time.
var _ sieve.CorpusStore = (*CorpusFile)(nil)

// CorpusFile implements sieve.CorpusStore on a JSON file.
// The file is read once, on first use.
type CorpusFile struct {
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	loaded bool
	corpus map[string]sieve.TokenFrequency
}

// NewCorpusFile creates a CorpusFile stored at path.
func NewCorpusFile(path string, logger *slog.Logger) *CorpusFile {
	return &CorpusFile{
		path:   path,
		logger: discardLogger(logger),
	}
}

// Get returns the frequencies stored for url.
func (s *CorpusFile) Get(_ context.Context, url string) (sieve.TokenFrequency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	freq, ok := s.corpus[url]
	if !ok {
		return nil, sieve.Errorf(sieve.ENOTFOUND, "corpus entry %q not found", url)
	}
	return maps.Clone(freq), nil
}

// Put adds url unless it is already present and rewrites the file.
func (s *CorpusFile) Put(_ context.Context, url string, freq sieve.TokenFrequency) error {
	if url == "" {
		return sieve.Errorf(sieve.EINVALID, "corpus URL required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	if _, ok := s.corpus[url]; ok {
		return nil
	}
	s.corpus[url] = maps.Clone(freq)
	if err := s.write(); err != nil {
		delete(s.corpus, url)
		return err
	}
	return nil
}

// LoadAll returns a copy of the whole corpus.
func (s *CorpusFile) LoadAll(_ context.Context) (map[string]sieve.TokenFrequency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	out := make(map[string]sieve.TokenFrequency, len(s.corpus))
	for url, freq := range s.corpus {
		out[url] = maps.Clone(freq)
	}
	return out, nil
}

// SaveAll adds every entry not already present and rewrites the file once.
func (s *CorpusFile) SaveAll(_ context.Context, corpus map[string]sieve.TokenFrequency) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	var added []string
	for url, freq := range corpus {
		if url == "" {
			continue
		}
		if _, ok := s.corpus[url]; ok {
			continue
		}
		s.corpus[url] = maps.Clone(freq)
		added = append(added, url)
	}
	if len(added) == 0 {
		return nil
	}
	if err := s.write(); err != nil {
		for _, url := range added {
			delete(s.corpus, url)
		}
		return err
	}
	return nil
}

// load reads the file into memory once. Must be called with mu held.
func (s *CorpusFile) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.corpus = make(map[string]sieve.TokenFrequency)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		s.logger.Warn("corpus file unreadable, starting empty", "path", s.path, "error", err)
		return
	}

	var corpus map[string]sieve.TokenFrequency
	if err := json.Unmarshal(data, &corpus); err != nil {
		s.logger.Warn("corpus file corrupt, starting empty", "path", s.path, "error", err)
		return
	}
	for url, freq := range corpus {
		if freq == nil {
			freq = sieve.TokenFrequency{}
		}
		s.corpus[url] = freq
	}
}

func (s *CorpusFile) write() error {
	data, err := json.Marshal(s.corpus)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, data)
}
