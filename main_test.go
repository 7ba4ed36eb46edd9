package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/solorad/blog-posts/server/pkg/config"
	"github.com/solorad/blog-posts/server/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigStoreOverride(t *testing.T) {
	opts := &rootOptions{store: config.StoreMemory}
	cfg, err := opts.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.Store)
	assert.Equal(t, config.DefaultHTTPAddr, cfg.HTTPAddr)
}

func TestOpenStoreRejectsUnknownKind(t *testing.T) {
	cfg := config.Default()
	cfg.Store = "redis"
	_, err := openStore(context.Background(), cfg)
	assert.Error(t, err)
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "blog.db")
	cfgPath := filepath.Join(dir, "blog.toml")
	postsPath := filepath.Join(dir, "posts.yaml")

	require.NoError(t, os.WriteFile(cfgPath, []byte("store = \"bolt\"\n[bolt]\npath = \""+filepath.ToSlash(dbPath)+"\"\n"), 0600))
	require.NoError(t, os.WriteFile(postsPath, []byte("- title: Hello\n  body: World\n- title: Bye\n  body: Moon\n  author: ann\n"), 0600))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"import", "--config", cfgPath, postsPath})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "imported 2 posts\n", out.String())

	store, err := storage.OpenBoltStore(dbPath)
	require.NoError(t, err)
	defer store.Close(context.Background())
	posts, err := store.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Hello", posts[0].Title)
	assert.Equal(t, "ann", posts[1].Author)
}

func TestImportCommandRejectsInvalidPost(t *testing.T) {
	dir := t.TempDir()
	postsPath := filepath.Join(dir, "posts.json")
	require.NoError(t, os.WriteFile(postsPath, []byte(`[{"title": "no body"}]`), 0600))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"import", "--store", "memory", postsPath})
	assert.Error(t, cmd.Execute())
}

func TestRootCommandReturnsErrorsUnprinted(t *testing.T) {
	cmd := newRootCmd()
	var stderr, stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"serve", "--store", "redis"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `store "redis"`)
	assert.Empty(t, stderr.String())
	assert.Empty(t, stdout.String())
}
