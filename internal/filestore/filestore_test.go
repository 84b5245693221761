package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), zerolog.Nop())
}

func TestReadMissingFileReturnsDefault(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.Read("messages")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"messages": []interface{}{}}, doc)

	doc, err = s.Read("social-links")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, doc)

	doc, err = s.Read("footer")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{}, doc)
}

func TestReadUnregisteredMissingFileReturnsNil(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.Read("nonexistent")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{"name": "Go", "url": "https://go.dev"},
			map[string]interface{}{"name": "MongoDB", "url": "https://mongodb.com"},
		},
	}
	require.NoError(t, s.Write("tools", in))

	out, err := s.Read("tools")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestWriteCreatesDataDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(dir, zerolog.Nop())

	require.NoError(t, s.Write("footer", map[string]interface{}{"text": "hi"}))

	_, err := os.Stat(filepath.Join(dir, "footer.json"))
	assert.NoError(t, err)
}

func TestWritePrettyPrints(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, zerolog.Nop())

	require.NoError(t, s.Write("footer", map[string]interface{}{"text": "hi"}))

	data, err := os.ReadFile(filepath.Join(dir, "footer.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"text\": \"hi\"\n}\n", string(data))
}

func TestReadCorruptFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, zerolog.Nop())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todos.json"), []byte("{not json"), 0o644))

	doc, err := s.Read("todos")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"todos": []interface{}{}}, doc)
}

func TestUpdateReadModifyWrite(t *testing.T) {
	s := newTestStore(t)

	err := s.Update("todos", func(raw json.RawMessage) (interface{}, error) {
		var doc map[string][]string
		require.NoError(t, json.Unmarshal(raw, &doc))
		doc["todos"] = append(doc["todos"], "write tests")
		return doc, nil
	})
	require.NoError(t, err)

	out, err := s.Read("todos")
	require.NoError(t, err)
	todos := out.(map[string]interface{})["todos"].([]interface{})
	assert.Equal(t, []interface{}{"write tests"}, todos)
}

func TestConcurrentUpdatesLoseNothing(t *testing.T) {
	s := newTestStore(t)
	const writers = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update("todos", func(raw json.RawMessage) (interface{}, error) {
				var doc map[string][]interface{}
				if err := json.Unmarshal(raw, &doc); err != nil {
					return nil, err
				}
				doc["todos"] = append(doc["todos"], "item")
				return doc, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	out, err := s.Read("todos")
	require.NoError(t, err)
	todos := out.(map[string]interface{})["todos"].([]interface{})
	assert.Len(t, todos, writers)
}

func TestDefaults(t *testing.T) {
	doc, ok := Default("gallery")
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"images": []interface{}{}}, doc)

	_, ok = Default("nope")
	assert.False(t, ok)

	assert.True(t, IsRegistered("experience"))
	assert.False(t, IsRegistered("experience.json"))
	assert.Len(t, Names(), 10)
}
