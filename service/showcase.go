package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"reelforge/constant"
	"reelforge/entities"
	"reelforge/pkg/workspace"
)

// Showcase curates the public gallery of recently finished videos: capped
// at the 20 most recent entries, purged of anything older than 7 days on
// every read. File deletion is best-effort throughout; a missing backing
// file is never an error.
type Showcase struct {
	mu    sync.Mutex
	dir   string
	index string
	now   func() time.Time
}

func NewShowcase(dir string) *Showcase {
	return &Showcase{
		dir:   dir,
		index: filepath.Join(dir, "showcase.json"),
		now:   time.Now,
	}
}

// Publish copies a finished video into the gallery and evicts the oldest
// entries beyond the capacity cap.
func (s *Showcase) Publish(videoPath, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	filename := fmt.Sprintf("user_%s.mp4", jobID)
	if err := workspace.CopyFile(videoPath, filepath.Join(s.dir, filename)); err != nil {
		return fmt.Errorf("copy video to showcase: %w", err)
	}

	entries, err := s.load()
	if err != nil {
		return err
	}

	entries = append(entries, entities.ShowcaseEntry{
		ID:        jobID,
		Filename:  filename,
		CreatedAt: s.now(),
		Views:     0,
	})

	if len(entries) > constant.ShowcaseMaxEntries {
		evicted := entries[:len(entries)-constant.ShowcaseMaxEntries]
		entries = entries[len(entries)-constant.ShowcaseMaxEntries:]
		for _, entry := range evicted {
			s.removeFile(entry.Filename)
		}
	}

	return s.save(entries)
}

// List purges expired entries, then returns the remainder.
func (s *Showcase) List() ([]entities.ShowcaseEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}

	cutoff := s.now().AddDate(0, 0, -constant.ShowcaseMaxAgeDays)
	kept := entries[:0]
	for _, entry := range entries {
		if entry.CreatedAt.After(cutoff) {
			kept = append(kept, entry)
		} else {
			s.removeFile(entry.Filename)
		}
	}

	if len(kept) != len(entries) {
		if err := s.save(kept); err != nil {
			return nil, err
		}
	}

	out := make([]entities.ShowcaseEntry, len(kept))
	copy(out, kept)
	return out, nil
}

func (s *Showcase) load() ([]entities.ShowcaseEntry, error) {
	data, err := os.ReadFile(s.index)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []entities.ShowcaseEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse showcase index: %w", err)
	}
	return entries, nil
}

func (s *Showcase) save(entries []entities.ShowcaseEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.index, data, 0o644)
}

func (s *Showcase) removeFile(filename string) {
	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", filename).Msg("failed to delete showcase video")
	}
}
