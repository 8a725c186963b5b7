package resolver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bridge/internal/adapters/manifest"
	"go.trai.ch/bridge/internal/adapters/nodeload"
	"go.trai.ch/bridge/internal/adapters/registry"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/engine/resolver"
)

type resolverFixture struct {
	root     string
	home     string
	project  string
	store    *registry.Store
	resolver *resolver.Resolver
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func (f resolverFixture) install(t *testing.T, name, ver string, files map[string]string) string {
	t.Helper()
	dir := domain.PayloadPath(f.root, name, ver)
	for rel, content := range files {
		writeFile(t, filepath.Join(dir, filepath.FromSlash(rel)), content)
	}
	f.store.Registry().Put(&domain.PackageEntry{Name: name, Version: ver, Path: dir})
	return dir
}

func setupResolver(t *testing.T) resolverFixture {
	t.Helper()

	root := t.TempDir()
	store := registry.NewStore(root, nil)
	require.NoError(t, store.Load())

	home := t.TempDir()
	project := filepath.Join(home, "work", "app")
	writeFile(t, filepath.Join(project, "package.json"), `{
  "name": "app",
  "version": "0.1.0",
  "dependencies": {"left-pad": "^1.0.0", "@s/util": "^2.0.0", "future": "^9.0.0"}
}`)
	writeFile(t, filepath.Join(project, "src", "index.js"), "")
	writeFile(t, filepath.Join(project, "src", "lib.js"), "")
	writeFile(t, filepath.Join(project, "src", ".eslintrc.js"), "")
	writeFile(t, filepath.Join(project, "node_modules", "local-only", "index.js"), "")

	f := resolverFixture{root: root, home: home, project: project, store: store}
	f.install(t, "left-pad", "1.0.0", map[string]string{"index.js": ""})
	f.install(t, "left-pad", "1.3.0", map[string]string{"package.json": `{"main":"lib/pad.js"}`, "lib/pad.js": ""})
	f.install(t, "@s/util", "2.1.0", map[string]string{"index.js": "", "lib/x.js": ""})
	f.install(t, "future", "1.0.0", map[string]string{"index.js": ""})
	require.NoError(t, store.Save())

	f.resolver = resolver.New(store, manifest.NewStore(), nodeload.NewLoader(), home)
	return f
}

func (f resolverFixture) from() string {
	return filepath.Join(f.project, "src", "index.js")
}

func TestResolve(t *testing.T) {
	f := setupResolver(t)

	tests := []struct {
		name      string
		specifier string
		wantState domain.ResolutionState
		wantPath  string
	}{
		{
			name:      "relative file",
			specifier: "./lib",
			wantState: domain.StateRelative,
			wantPath:  filepath.Join(f.project, "src", "lib.js"),
		},
		{
			name:      "dot file without a path separator",
			specifier: ".eslintrc",
			wantState: domain.StateRelative,
			wantPath:  filepath.Join(f.project, "src", ".eslintrc.js"),
		},
		{
			name:      "absolute file",
			specifier: filepath.Join(f.project, "src", "lib.js"),
			wantState: domain.StateRelative,
			wantPath:  filepath.Join(f.project, "src", "lib.js"),
		},
		{
			name:      "core module",
			specifier: "fs",
			wantState: domain.StateBuiltin,
			wantPath:  "fs",
		},
		{
			name:      "core module with scheme",
			specifier: "node:path",
			wantState: domain.StateBuiltin,
			wantPath:  "node:path",
		},
		{
			name:      "standard chain",
			specifier: "local-only",
			wantState: domain.StateBuiltin,
			wantPath:  filepath.Join(f.project, "node_modules", "local-only", "index.js"),
		},
		{
			name:      "bridged package uses the best satisfying version",
			specifier: "left-pad",
			wantState: domain.StateBridged,
			wantPath:  filepath.Join(domain.PayloadPath(f.root, "left-pad", "1.3.0"), "lib", "pad.js"),
		},
		{
			name:      "bridged scoped subpath",
			specifier: "@s/util/lib/x",
			wantState: domain.StateBridged,
			wantPath:  filepath.Join(domain.PayloadPath(f.root, "@s/util", "2.1.0"), "lib", "x.js"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.resolver.Resolve(tt.specifier, f.from())
			require.NoError(t, err)

			assert.Equal(t, tt.specifier, res.Specifier)
			assert.Equal(t, tt.wantState, res.State)
			assert.Equal(t, tt.wantPath, res.Path)
		})
	}
}

func TestResolve_Failures(t *testing.T) {
	f := setupResolver(t)

	tests := []struct {
		name      string
		specifier string
	}{
		{name: "missing relative file", specifier: "./nope"},
		{name: "missing dot file is not looked up as a package", specifier: ".left-pad"},
		{name: "undeclared package", specifier: "is-even"},
		{name: "declared range not installed", specifier: "future"},
		{name: "missing subpath", specifier: "left-pad/nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.resolver.Resolve(tt.specifier, f.from())
			require.Error(t, err)

			assert.ErrorContains(t, err, domain.ErrModuleNotFound.Error())
			assert.Equal(t, domain.StateFailed, res.State)
			assert.Empty(t, res.Path)
		})
	}
}

func TestResolve_EmptySpecifier(t *testing.T) {
	f := setupResolver(t)

	_, err := f.resolver.Resolve("  ", f.from())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidArgument.Error())
}

func TestResolve_ManifestWalkStopsAtHome(t *testing.T) {
	f := setupResolver(t)

	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "package.json"), `{"dependencies":{"left-pad":"*"}}`)
	home := filepath.Join(outside, "home")
	writeFile(t, filepath.Join(home, "script", "index.js"), "")

	r := resolver.New(f.store, manifest.NewStore(), nodeload.NewLoader(), home)
	res, err := r.Resolve("left-pad", filepath.Join(home, "script", "index.js"))
	require.Error(t, err)
	assert.Equal(t, domain.StateFailed, res.State)
}

func TestResolve_CacheFollowsRegistry(t *testing.T) {
	f := setupResolver(t)
	first, err := f.resolver.Resolve("left-pad", f.from())
	require.NoError(t, err)

	newer := f.install(t, "left-pad", "1.4.0", map[string]string{"index.js": ""})

	again, err := f.resolver.Resolve("left-pad", f.from())
	require.NoError(t, err)
	assert.Equal(t, first, again, "answers are stable while the registry is unchanged")

	require.NoError(t, f.store.Save())

	updated, err := f.resolver.Resolve("left-pad", f.from())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(newer, "index.js"), updated.Path)
}
