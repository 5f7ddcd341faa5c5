package fixtures

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/todo"
)

func TestParseValid(t *testing.T) {
	src := `
todos:
  - text: Learn Turborepo
  - text: Build UI library with shadcn
    completed: true
  - text: "   "
`
	seeds, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []todo.Seed{
		{Text: "Learn Turborepo"},
		{Text: "Build UI library with shadcn", Completed: true},
		{Text: "   "},
	}, seeds)

	// blank entries survive parsing but never reach the list
	s := todo.New(todo.WithSeed(seeds))
	assert.Equal(t, 2, s.Len())
}

func TestParseEmptyList(t *testing.T) {
	seeds, err := Parse([]byte("todos: []\n"))
	require.NoError(t, err)
	assert.Empty(t, seeds)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantPath string
	}{
		{name: "missing todos", src: "items: []\n", wantPath: ""},
		{name: "text not a string", src: "todos:\n  - text: 5\n", wantPath: "todos.0.text"},
		{name: "completed not a bool", src: "todos:\n  - text: a\n  - text: b\n    completed: yes please\n", wantPath: "todos.1.completed"},
		{name: "missing text", src: "todos:\n  - completed: true\n", wantPath: "todos.0"},
		{name: "unknown key", src: "todos:\n  - text: a\n    due: tomorrow\n", wantPath: "todos.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %T: %v", err, err)
			assert.Equal(t, tt.wantPath, ve.Path)
			assert.NotEmpty(t, ve.Message)
		})
	}
}

func TestParseBadYAML(t *testing.T) {
	_, err := Parse([]byte("todos: [\n"))
	require.Error(t, err)
	var ve *ValidationError
	assert.False(t, errors.As(err, &ve))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todos.yaml")
	require.NoError(t, os.WriteFile(path, []byte("todos:\n  - text: from disk\n"), 0o644))

	seeds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []todo.Seed{{Text: "from disk"}}, seeds)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPointerToPath(t *testing.T) {
	assert.Equal(t, "", pointerToPath(""))
	assert.Equal(t, "todos.3.text", pointerToPath("/todos/3/text"))
	assert.Equal(t, "a/b.c~d", pointerToPath("/a~1b/c~0d"))
}
