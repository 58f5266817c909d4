package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/typemaster/internal/model"
)

type yamlEntry struct {
	ID         string `yaml:"id"`
	Username   string `yaml:"username"`
	WPM        int    `yaml:"wpm"`
	NetWPM     int    `yaml:"net_wpm"`
	Accuracy   int    `yaml:"accuracy"`
	Mode       string `yaml:"mode"`
	Difficulty string `yaml:"difficulty"`
	CreatedAt  int64  `yaml:"created_at"`
}

// Entries stay raw nodes so one malformed record does not hide the rest.
type yamlLeaderboard struct {
	Entries []yaml.Node `yaml:"entries"`
}

// FileStore keeps the leaderboard as a single YAML document.
type FileStore struct {
	path string
	log  zerolog.Logger
}

// OpenFile returns a FileStore backed by path. The file is created on the
// first write.
func OpenFile(path string, log zerolog.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// ReadAll decodes every entry. A missing file is an empty leaderboard.
// Records that fail to decode are logged and skipped.
func (f *FileStore) ReadAll(_ context.Context) ([]model.LeaderboardEntry, error) {
	doc, err := f.load()
	if err != nil {
		return nil, err
	}
	entries := make([]model.LeaderboardEntry, 0, len(doc.Entries))
	for i := range doc.Entries {
		var e yamlEntry
		if err := doc.Entries[i].Decode(&e); err != nil {
			f.log.Warn().Err(err).Str("path", f.path).Int("line", doc.Entries[i].Line).Msg("skipping malformed leaderboard entry")
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			ID:         e.ID,
			Username:   e.Username,
			WPM:        e.WPM,
			NetWPM:     e.NetWPM,
			Accuracy:   e.Accuracy,
			Mode:       model.Mode(e.Mode),
			Difficulty: model.Difficulty(e.Difficulty),
			CreatedAt:  unixMilli(e.CreatedAt),
		})
	}
	return entries, nil
}

// Append rewrites the file with entry added at the end. Existing records
// are written back as they were read, malformed ones included.
func (f *FileStore) Append(_ context.Context, entry model.LeaderboardEntry) error {
	doc, err := f.load()
	if err != nil {
		return err
	}
	var node yaml.Node
	if err := node.Encode(yamlEntry{
		ID:         entry.ID,
		Username:   entry.Username,
		WPM:        entry.WPM,
		NetWPM:     entry.NetWPM,
		Accuracy:   entry.Accuracy,
		Mode:       string(entry.Mode),
		Difficulty: string(entry.Difficulty),
		CreatedAt:  entry.CreatedAt.UnixMilli(),
	}); err != nil {
		return fmt.Errorf("encode leaderboard entry: %w", err)
	}
	doc.Entries = append(doc.Entries, node)
	return f.save(doc)
}

// Clear removes the backing file.
func (f *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove leaderboard file: %w", err)
	}
	return nil
}

func (f *FileStore) load() (yamlLeaderboard, error) {
	var doc yamlLeaderboard
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("read leaderboard file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("parse leaderboard yaml: %w", err)
	}
	return doc, nil
}

func (f *FileStore) save(doc yamlLeaderboard) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create leaderboard directory: %w", err)
	}
	serialized, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal leaderboard yaml: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".leaderboard-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(serialized); err != nil {
		if cerr := tmp.Close(); cerr != nil {
			f.log.Warn().Err(cerr).Str("path", tmpName).Msg("failed to close temp file")
		}
		f.removeTemp(tmpName)
		return fmt.Errorf("write leaderboard file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		f.removeTemp(tmpName)
		return fmt.Errorf("close leaderboard file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace leaderboard file: %w", err)
	}
	return nil
}

func (f *FileStore) removeTemp(name string) {
	if err := os.Remove(name); err != nil {
		f.log.Warn().Err(err).Str("path", name).Msg("failed to remove temp file")
	}
}

func unixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
