package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeBiancalana/dateprompt/internal/config"
)

// FileStore writes session transcripts as YAML files
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir. An empty dir uses the
// sessions directory under the data directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// transcript is the on-disk form of a session
type transcript struct {
	ID      string            `yaml:"id"`
	Source  string            `yaml:"source"`
	Created string            `yaml:"created"`
	Answers []transcriptEntry `yaml:"answers"`
}

type transcriptEntry struct {
	Name  string `yaml:"name"`
	Kind  Kind   `yaml:"kind"`
	Value string `yaml:"value"`
}

// Marshal renders a session as a YAML transcript
func Marshal(s *Session) ([]byte, error) {
	t := transcript{
		ID:      s.ID,
		Source:  s.Source,
		Created: s.CreatedAt.Format(time.RFC3339),
		Answers: make([]transcriptEntry, 0, len(s.Answers)),
	}
	for _, a := range s.Answers {
		t.Answers = append(t.Answers, transcriptEntry{Name: a.Name, Kind: a.Kind, Value: a.Value})
	}

	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transcript: %w", err)
	}
	return data, nil
}

// WriteTranscript writes the session to <dir>/<session id>.yaml and returns the path
func (fs *FileStore) WriteTranscript(s *Session) (string, error) {
	filePath, err := fs.TranscriptPath(s.ID)
	if err != nil {
		return "", err
	}

	data, err := Marshal(s)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filePath, nil
}

// ReadTranscript loads a transcript written by WriteTranscript
func (fs *FileStore) ReadTranscript(id string) (*Session, error) {
	filePath, err := fs.TranscriptPath(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var t transcript
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse transcript %s: %w", filePath, err)
	}

	created, err := time.Parse(time.RFC3339, t.Created)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcript %s: %w", filePath, err)
	}

	s := &Session{ID: t.ID, Source: t.Source, CreatedAt: created, Answers: make([]Answer, 0, len(t.Answers))}
	for i, e := range t.Answers {
		s.Answers = append(s.Answers, Answer{
			SessionID: t.ID,
			Name:      e.Name,
			Kind:      e.Kind,
			Value:     e.Value,
			Position:  i,
		})
	}
	return s, nil
}

// TranscriptPath returns the file path for a session ID
func (fs *FileStore) TranscriptPath(id string) (string, error) {
	dir, err := fs.directory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, id+".yaml"), nil
}

func (fs *FileStore) directory() (string, error) {
	if fs.dir == "" {
		return config.SessionsDir()
	}
	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create transcript directory: %w", err)
	}
	return fs.dir, nil
}

// ListTranscripts returns the stored session IDs (sorted)
func (fs *FileStore) ListTranscripts() ([]string, error) {
	dir, err := fs.directory()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read transcript directory: %w", err)
	}

	ids := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); filepath.Ext(name) == ".yaml" {
			ids = append(ids, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(ids)

	return ids, nil
}
