// Package filestore persists the simple content collections as one JSON
// document per named file under a fixed data directory.
//
// Every read-modify-write cycle runs behind a per-file mutex and all writes
// go through a temp-file-and-rename, so concurrent request handlers can not
// lose each other's updates and a crash can not leave a partial file.
package filestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"

	"portfolio/internal/apperr"
)

// defaults maps a collection name to the JSON document returned when its
// file is missing or unparsable. The shapes are load-bearing: the site's
// pages depend on each root shape exactly as written here.
var defaults = map[string]string{
	"messages":      `{"messages": []}`,
	"todos":         `{"todos": []}`,
	"social-links":  `[]`,
	"tools":         `{"tools": []}`,
	"services":      `{"services": []}`,
	"gallery":       `{"images": []}`,
	"footer":        `{}`,
	"announcements": `{"announcements": []}`,
	"qa":            `{"items": []}`,
	"experience":    `{"items": []}`,
}

// Names lists the registered content collection names.
func Names() []string {
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether name has a registered default shape.
func IsRegistered(name string) bool {
	_, ok := defaults[name]
	return ok
}

// Default returns the parsed default document for a registered name.
func Default(name string) (interface{}, bool) {
	d, ok := defaults[name]
	if !ok {
		return nil, false
	}
	var doc interface{}
	if err := json.Unmarshal([]byte(d), &doc); err != nil {
		return nil, false
	}
	return doc, true
}

// Store reads and writes named JSON content documents.
type Store struct {
	dir string
	log zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store rooted at dir.
func New(dir string, log zerolog.Logger) *Store {
	return &Store{
		dir:   dir,
		log:   log.With().Str("component", "filestore").Logger(),
		locks: make(map[string]*sync.Mutex),
	}
}

// fileLock returns the mutex guarding a single named file.
func (s *Store) fileLock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// readRaw loads the raw JSON bytes for name, falling back to the registered
// default when the file is missing or does not parse. Callers hold the file
// lock.
func (s *Store) readRaw(name string) (json.RawMessage, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, &apperr.FileStoreError{Name: name, Err: err}
		}
		return s.defaultRaw(name), nil
	}
	if !json.Valid(data) {
		s.log.Warn().Str("file", name).Msg("content file is not valid JSON, serving default")
		return s.defaultRaw(name), nil
	}
	return data, nil
}

func (s *Store) defaultRaw(name string) json.RawMessage {
	if d, ok := defaults[name]; ok {
		return json.RawMessage(d)
	}
	return json.RawMessage("null")
}

// Read returns the parsed document for name, or its registered default when
// the file is missing or corrupt.
func (s *Store) Read(name string) (interface{}, error) {
	l := s.fileLock(name)
	l.Lock()
	defer l.Unlock()

	raw, err := s.readRaw(name)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &apperr.FileStoreError{Name: name, Err: err}
	}
	return doc, nil
}

// ReadInto unmarshals the document for name into v, applying the same
// default fallback as Read.
func (s *Store) ReadInto(name string, v interface{}) error {
	l := s.fileLock(name)
	l.Lock()
	defer l.Unlock()

	raw, err := s.readRaw(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &apperr.FileStoreError{Name: name, Err: err}
	}
	return nil
}

// Write replaces the document for name in full.
func (s *Store) Write(name string, doc interface{}) error {
	l := s.fileLock(name)
	l.Lock()
	defer l.Unlock()

	return s.write(name, doc)
}

// Update runs a read-modify-write cycle atomically with respect to other
// Store operations on the same name. fn receives the current raw document
// (the registered default when the file is missing) and returns the
// replacement document.
func (s *Store) Update(name string, fn func(raw json.RawMessage) (interface{}, error)) error {
	l := s.fileLock(name)
	l.Lock()
	defer l.Unlock()

	raw, err := s.readRaw(name)
	if err != nil {
		return err
	}
	doc, err := fn(raw)
	if err != nil {
		return err
	}
	return s.write(name, doc)
}

// write marshals and atomically replaces the file. Callers hold the file lock.
func (s *Store) write(name string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &apperr.FileStoreError{Name: name, Err: err}
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &apperr.FileStoreError{Name: name, Err: err}
	}
	if err := atomic.WriteFile(s.path(name), bytes.NewReader(data)); err != nil {
		s.log.Error().Err(err).Str("file", name).Msg("content file write failed")
		return &apperr.FileStoreError{Name: name, Err: err}
	}
	return nil
}
