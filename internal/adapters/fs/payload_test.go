package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bridge/internal/adapters/fs"
	"go.trai.ch/bridge/internal/core/domain"
)

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
}

func TestPayloadStore_Discover(t *testing.T) {
	scratch := t.TempDir()
	nm := filepath.Join(scratch, "node_modules")
	writeFile(t, filepath.Join(nm, "a", "package.json"), `{"name":"a"}`, domain.FilePerm)
	writeFile(t, filepath.Join(nm, "a", "node_modules", "b", "package.json"), `{"name":"b"}`, domain.FilePerm)
	writeFile(t, filepath.Join(nm, "@s", "c", "package.json"), `{"name":"@s/c"}`, domain.FilePerm)
	writeFile(t, filepath.Join(nm, ".bin", "a"), "#!/bin/sh", domain.FilePerm)
	writeFile(t, filepath.Join(nm, ".package-lock.json"), "{}", domain.FilePerm)
	require.NoError(t, os.MkdirAll(filepath.Join(nm, "no-manifest"), domain.DirPerm))

	payloads, err := fs.NewPayloadStore().Discover(scratch)
	require.NoError(t, err)

	assert.Equal(t, []domain.Payload{
		{Dir: filepath.Join(nm, "@s", "c"), Depth: 1},
		{Dir: filepath.Join(nm, "a"), Depth: 1},
		{Dir: filepath.Join(nm, "a", "node_modules", "b"), Parent: filepath.Join(nm, "a"), Depth: 2},
	}, payloads)
}

func TestPayloadStore_Discover_Empty(t *testing.T) {
	payloads, err := fs.NewPayloadStore().Discover(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, payloads)
}

func TestPayloadStore_Absorb(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a")
	writeFile(t, filepath.Join(src, "package.json"), `{"name":"a"}`, domain.FilePerm)
	writeFile(t, filepath.Join(src, "lib", "index.js"), "module.exports = 1", domain.FilePerm)
	writeFile(t, filepath.Join(src, "bin", "cli.js"), "#!/usr/bin/env node", domain.ExecPerm)
	writeFile(t, filepath.Join(src, "node_modules", "b", "package.json"), `{"name":"b"}`, domain.FilePerm)

	dst := filepath.Join(t.TempDir(), "a", "1.0.0")
	writeFile(t, filepath.Join(dst, "stale.js"), "old", domain.FilePerm)

	require.NoError(t, fs.NewPayloadStore().Absorb(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "lib", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, "module.exports = 1", string(data))
	assert.FileExists(t, filepath.Join(dst, "package.json"))
	assert.NoDirExists(t, filepath.Join(dst, "node_modules"))
	assert.NoFileExists(t, filepath.Join(dst, "stale.js"))

	info, err := os.Stat(filepath.Join(dst, "bin", "cli.js"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100)
}

func TestPayloadStore_Absorb_FailureKeepsDestination(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "a", "1.0.0")
	writeFile(t, filepath.Join(dst, "index.js"), "kept", domain.FilePerm)

	err := fs.NewPayloadStore().Absorb(filepath.Join(t.TempDir(), "missing"), dst)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPayloadCopyFailed.Error())

	data, err := os.ReadFile(filepath.Join(dst, "index.js"))
	require.NoError(t, err)
	assert.Equal(t, "kept", string(data))

	entries, err := os.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staging directory must not survive")
}

func TestPayloadStore_Remove(t *testing.T) {
	root := t.TempDir()
	dir := domain.PayloadPath(root, "a", "1.0.0")
	writeFile(t, filepath.Join(dir, "package.json"), "{}", domain.FilePerm)

	store := fs.NewPayloadStore()
	require.NoError(t, store.Remove(dir))

	assert.NoDirExists(t, dir)
	assert.NoDirExists(t, filepath.Join(root, "a"))
	require.NoError(t, store.Remove(dir))
}
