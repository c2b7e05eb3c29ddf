package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankrag/internal/port"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFSStoreLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mutual_fund_sip.txt", "SIP content")

	st := NewFSStore(dir, nil)
	ctx := context.Background()

	text, err := st.Load(ctx, "mutual_fund_sip.txt")
	require.NoError(t, err)
	assert.Equal(t, "SIP content", text)
}

func TestFSStoreLoadMissing(t *testing.T) {
	st := NewFSStore(t.TempDir(), nil)

	_, err := st.Load(context.Background(), "nope.txt")
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestFSStoreSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "b")
	writeFile(t, dir, "a.txt", "a")
	writeFile(t, dir, "nested/c.txt", "c")
	writeFile(t, dir, "ignore.md", "md")

	st := NewFSStore(dir, nil)

	sources, err := st.Sources(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "nested/c.txt"}, sources)
}

func TestFSStoreSourcesCustomPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.md", "md")
	writeFile(t, dir, "doc.txt", "txt")

	st := NewFSStore(dir, []string{"*.md"})

	sources, err := st.Sources(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.md"}, sources)
}
