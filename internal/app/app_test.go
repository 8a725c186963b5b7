package app_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bridge/internal/adapters/fs"
	"go.trai.ch/bridge/internal/adapters/manifest"
	"go.trai.ch/bridge/internal/adapters/nodeload"
	"go.trai.ch/bridge/internal/adapters/registry"
	"go.trai.ch/bridge/internal/app"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports/mocks"
	"go.trai.ch/bridge/internal/engine/graph"
	"go.trai.ch/bridge/internal/engine/installer"
	"go.trai.ch/bridge/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

type appFixture struct {
	cfg     *domain.Config
	project string
	store   *registry.Store
	fetcher *mocks.MockPackageFetcher
	runner  *mocks.MockScriptRunner
	logger  *mocks.MockLogger
	out     *bytes.Buffer
	app     *app.App
}

func setupApp(t *testing.T) appFixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	home := t.TempDir()
	cfg := &domain.Config{
		Root:         domain.DefaultRoot(home),
		Client:       domain.DefaultClient,
		GlobalBinDir: filepath.Join(home, "bin"),
		Home:         home,
	}
	project := filepath.Join(home, "work", "app")
	writeFile(t, filepath.Join(project, domain.ManifestFileName), `{"name":"app","version":"0.1.0"}`)

	fetcher := mocks.NewMockPackageFetcher(ctrl)
	store := registry.NewStore(cfg.Root, fetcher)
	require.NoError(t, store.Load())

	log := mocks.NewMockLogger(ctrl)
	runner := mocks.NewMockScriptRunner(ctrl)
	payloads := fs.NewPayloadStore()
	linker := fs.NewLinker(domain.CapabilitiesFor("linux"))
	manifests := manifest.NewStore()
	g := graph.New(store, payloads, linker, log)
	inst := installer.New(store, fetcher, payloads, manifests, linker, g, log)
	res := resolver.New(store, manifests, nodeload.NewLoader(), home)

	out := &bytes.Buffer{}
	a := app.New(cfg, store, manifests, inst, g, res, runner, log).
		WithOutput(out).
		WithWorkDir(project)

	return appFixture{
		cfg:     cfg,
		project: project,
		store:   store,
		fetcher: fetcher,
		runner:  runner,
		logger:  log,
		out:     out,
		app:     a,
	}
}

func (f appFixture) quiet() {
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

// fetchWrites returns a fetcher stub that lays files out in the scratch area.
func fetchWrites(t *testing.T, files map[string]string) func(context.Context, string, string, string) error {
	t.Helper()
	return func(_ context.Context, dir, _, _ string) error {
		for rel, content := range files {
			writeFile(t, filepath.Join(dir, filepath.FromSlash(rel)), content)
		}
		return nil
	}
}

var twoPackages = map[string]string{
	"node_modules/a/package.json": `{"name":"a","version":"1.0.0","dependencies":{"b":"^1.0.0"},"bin":{"a":"cli.js"}}`,
	"node_modules/a/cli.js":       "#!/usr/bin/env node",
	"node_modules/b/package.json": `{"name":"b","version":"1.2.0"}`,
	"node_modules/b/index.js":     "module.exports = 'b'",
}

func readManifest(t *testing.T, dir string) *domain.Manifest {
	t.Helper()
	m, err := manifest.NewStore().Read(dir)
	require.NoError(t, err)
	return m
}

func TestInstall_LinksIntoProjectAndSaves(t *testing.T) {
	f := setupApp(t)
	f.quiet()
	f.fetcher.EXPECT().Install(gomock.Any(), gomock.Any(), "a", "^1.0.0").DoAndReturn(fetchWrites(t, twoPackages))

	require.NoError(t, f.app.Install(t.Context(), []string{"a@^1.0.0"}, app.InstallOptions{Save: true}))

	target, err := os.Readlink(filepath.Join(f.project, "node_modules", "a"))
	require.NoError(t, err)
	assert.Equal(t, domain.PayloadPath(f.cfg.Root, "a", "1.0.0"), target)

	entry := f.store.Registry().Entry("a", "1.0.0")
	require.NotNil(t, entry)
	assert.True(t, entry.LocalUsers.Has("app", "0.1.0"))
	assert.Equal(t, map[string]string{"a": "^1.0.0"}, readManifest(t, f.project).Dependencies)
}

func TestInstall_SaveDev(t *testing.T) {
	f := setupApp(t)
	f.quiet()
	f.fetcher.EXPECT().Install(gomock.Any(), gomock.Any(), "b", "*").DoAndReturn(fetchWrites(t, map[string]string{
		"node_modules/b/package.json": `{"name":"b","version":"1.2.0"}`,
	}))

	require.NoError(t, f.app.Install(t.Context(), []string{"b"}, app.InstallOptions{SaveDev: true}))

	m := readManifest(t, f.project)
	assert.Empty(t, m.Dependencies)
	assert.Equal(t, map[string]string{"b": "^1.2.0"}, m.DevDependencies)
}

func TestInstall_FromManifest(t *testing.T) {
	f := setupApp(t)
	f.quiet()
	writeFile(t, filepath.Join(f.project, domain.ManifestFileName),
		`{"name":"app","version":"0.1.0","dependencies":{"a":"^1.0.0"},"devDependencies":{"b":"~1.2.0"}}`)

	gomock.InOrder(
		f.fetcher.EXPECT().Install(gomock.Any(), gomock.Any(), "a", "^1.0.0").DoAndReturn(fetchWrites(t, twoPackages)),
		f.fetcher.EXPECT().Install(gomock.Any(), gomock.Any(), "b", "~1.2.0").DoAndReturn(fetchWrites(t, map[string]string{
			"node_modules/b/package.json": `{"name":"b","version":"1.2.0"}`,
		})),
	)

	require.NoError(t, f.app.Install(t.Context(), nil, app.InstallOptions{}))

	for _, name := range []string{"a", "b"} {
		_, err := os.Readlink(filepath.Join(f.project, "node_modules", name))
		assert.NoError(t, err, name)
	}
}

func TestInstall_WithoutRequestsNeedsProject(t *testing.T) {
	f := setupApp(t)
	f.app.WithWorkDir(t.TempDir())

	err := f.app.Install(t.Context(), nil, app.InstallOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrManifestNotFound.Error())
}

func TestInstall_OutsideProject(t *testing.T) {
	f := setupApp(t)
	f.quiet()
	outside := t.TempDir()
	f.app.WithWorkDir(outside)
	f.fetcher.EXPECT().Install(gomock.Any(), gomock.Any(), "a", "*").DoAndReturn(fetchWrites(t, twoPackages))

	require.NoError(t, f.app.Install(t.Context(), []string{"a"}, app.InstallOptions{Save: true}))

	assert.NotNil(t, f.store.Registry().Entry("a", "1.0.0"))
	assert.NoDirExists(t, filepath.Join(outside, "node_modules"))
	assert.Empty(t, f.store.Registry().Entry("a", "1.0.0").LocalUsers)
}

func TestInstall_CollectsFailures(t *testing.T) {
	f := setupApp(t)
	f.quiet()
	gomock.InOrder(
		f.fetcher.EXPECT().Install(gomock.Any(), gomock.Any(), "ghost", "*").Return(errors.New("exit status 1")),
		f.fetcher.EXPECT().Install(gomock.Any(), gomock.Any(), "a", "*").DoAndReturn(fetchWrites(t, twoPackages)),
	)

	err := f.app.Install(t.Context(), []string{"ghost", "a"}, app.InstallOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "exit status 1")
	assert.NotNil(t, f.store.Registry().Entry("a", "1.0.0"))
}

func TestUpdate(t *testing.T) {
	f := setupApp(t)
	f.quiet()
	writeFile(t, filepath.Join(f.project, domain.ManifestFileName),
		`{"name":"app","version":"0.1.0","dependencies":{"a":"^1.0.0"}}`)
	f.fetcher.EXPECT().Install(gomock.Any(), gomock.Any(), "a", "^1.0.0").DoAndReturn(fetchWrites(t, twoPackages)).Times(2)

	require.NoError(t, f.app.Install(t.Context(), nil, app.InstallOptions{}))
	marker := filepath.Join(domain.PayloadPath(f.cfg.Root, "a", "1.0.0"), "stale.txt")
	writeFile(t, marker, "x")

	require.NoError(t, f.app.Update(t.Context(), []string{"a"}))
	assert.NoFileExists(t, marker, "update re-copies the payload")

	err := f.app.Update(t.Context(), []string{"undeclared"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidArgument.Error())
}

func TestCheckUpdates(t *testing.T) {
	f := setupApp(t)
	f.quiet()
	f.store.Registry().Put(&domain.PackageEntry{Name: "a", Version: "1.0.0"})
	f.store.Registry().Put(&domain.PackageEntry{Name: "a", Version: "0.9.0"})
	f.store.Registry().Put(&domain.PackageEntry{Name: "b", Version: "1.2.0"})
	f.store.Registry().Put(&domain.PackageEntry{Name: "c", Version: "1.0.0"})

	f.fetcher.EXPECT().LatestVersion(gomock.Any(), "a").Return("1.1.0", nil)
	f.fetcher.EXPECT().LatestVersion(gomock.Any(), "b").Return("1.2.0", nil)
	f.fetcher.EXPECT().LatestVersion(gomock.Any(), "c").Return("", domain.ErrRemoteQueryFailed)
	f.logger.EXPECT().Error(gomock.Any())

	candidates, err := f.app.CheckUpdates(t.Context(), app.CheckOptions{})
	require.NoError(t, err)

	assert.Equal(t, []domain.UpdateCandidate{
		{Name: "a", Range: "*", Installed: "1.0.0", Latest: "1.1.0"},
	}, candidates)
	assert.Equal(t, "a 1.0.0 → 1.1.0\n", f.out.String())
}

func TestCheckUpdates_Install(t *testing.T) {
	f := setupApp(t)
	f.quiet()
	f.store.Registry().Put(&domain.PackageEntry{Name: "b", Version: "1.0.0"})

	f.fetcher.EXPECT().LatestVersion(gomock.Any(), "b").Return("1.2.0", nil)
	f.fetcher.EXPECT().Install(gomock.Any(), gomock.Any(), "b", "1.2.0").DoAndReturn(fetchWrites(t, map[string]string{
		"node_modules/b/package.json": `{"name":"b","version":"1.2.0"}`,
	}))

	_, err := f.app.CheckUpdates(t.Context(), app.CheckOptions{Install: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0.0", "1.2.0"}, f.store.Registry().Versions("b"))
}

func TestRemove_OwnerFlow(t *testing.T) {
	tests := []struct {
		name     string
		auto     bool
		wantOut  string
		bRemains bool
	}{
		{
			name:     "keeps dependencies",
			wantOut:  "✓ removed a@1.0.0\n",
			bRemains: true,
		},
		{
			name:    "auto cascades",
			auto:    true,
			wantOut: "✓ removed a@1.0.0\n  ✓ removed b@1.2.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupApp(t)
			f.quiet()
			f.fetcher.EXPECT().Install(gomock.Any(), gomock.Any(), "a", "*").DoAndReturn(fetchWrites(t, twoPackages))
			require.NoError(t, f.app.Install(t.Context(), []string{"a"}, app.InstallOptions{Save: true}))
			f.out.Reset()

			report, err := f.app.Remove(t.Context(), "a", app.RemoveOptions{Auto: tt.auto, Save: true})
			require.NoError(t, err)

			assert.True(t, report.Removed())
			assert.Equal(t, tt.wantOut, f.out.String())
			assert.Nil(t, f.store.Registry().Entry("a", "1.0.0"))
			assert.Equal(t, tt.bRemains, f.store.Registry().Entry("b", "1.2.0") != nil)
			assert.NoFileExists(t, filepath.Join(f.project, "node_modules", "a"))
			assert.Empty(t, readManifest(t, f.project).Dependencies)
		})
	}
}

func TestRemove_BlockedIsReported(t *testing.T) {
	f := setupApp(t)
	f.quiet()
	entry := &domain.PackageEntry{Name: "a", Version: "1.0.0", Path: domain.PayloadPath(f.cfg.Root, "a", "1.0.0")}
	entry.Edges(domain.EdgeLocalUsers).Add("other", domain.Edge{Path: "/work/other", Version: "2.0.0"})
	f.store.Registry().Put(entry)

	report, err := f.app.Remove(t.Context(), "a", app.RemoveOptions{})
	require.NoError(t, err)

	assert.False(t, report.Removed())
	assert.Equal(t, "! kept a@1.0.0\n    → other@2.0.0 (localusers)\n", f.out.String())
}

func TestRemove_All(t *testing.T) {
	f := setupApp(t)
	f.quiet()
	for _, name := range []string{"x", "y"} {
		dir := domain.PayloadPath(f.cfg.Root, name, "1.0.0")
		writeFile(t, filepath.Join(dir, "index.js"), "")
		f.store.Registry().Put(&domain.PackageEntry{Name: name, Version: "1.0.0", Path: dir})
	}

	report, err := f.app.Remove(t.Context(), app.RemoveAll, app.RemoveOptions{})
	require.NoError(t, err)

	assert.Len(t, report.Outcomes, 2)
	assert.Empty(t, f.store.Registry().Names())
}

func TestRemove_NotInstalled(t *testing.T) {
	f := setupApp(t)
	f.quiet()

	_, err := f.app.Remove(t.Context(), "ghost@1.0.0", app.RemoveOptions{})
	require.NoError(t, err)
	assert.Equal(t, "● ghost@1.0.0 is not installed\n", f.out.String())

	_, err = f.app.Remove(t.Context(), " ", app.RemoveOptions{})
	assert.ErrorContains(t, err, domain.ErrInvalidArgument.Error())
}

func TestList(t *testing.T) {
	f := setupApp(t)
	f.quiet()
	f.fetcher.EXPECT().Install(gomock.Any(), gomock.Any(), "a", "*").DoAndReturn(fetchWrites(t, twoPackages))
	require.NoError(t, f.app.Install(t.Context(), []string{"a"}, app.InstallOptions{}))
	f.out.Reset()

	require.NoError(t, f.app.List(t.Context()))

	want := "a\n" +
		"  1.0.0 " + domain.PayloadPath(f.cfg.Root, "a", "1.0.0") + "\n" +
		"    ● app@0.1.0 " + f.project + "\n" +
		"b\n" +
		"  1.2.0 " + domain.PayloadPath(f.cfg.Root, "b", "1.2.0") + "\n" +
		"    → a@1.0.0 (dependent)\n"
	assert.Equal(t, want, f.out.String())
}

func TestList_Empty(t *testing.T) {
	f := setupApp(t)
	f.logger.EXPECT().Info("no packages installed")

	require.NoError(t, f.app.List(t.Context()))
	assert.Empty(t, f.out.String())
}

func TestLink_AndUnlink(t *testing.T) {
	f := setupApp(t)
	f.quiet()
	f.fetcher.EXPECT().Install(gomock.Any(), gomock.Any(), "b", "*").DoAndReturn(fetchWrites(t, map[string]string{
		"node_modules/b/package.json": `{"name":"b","version":"1.2.0"}`,
	}))
	outside := t.TempDir()
	f.app.WithWorkDir(outside)
	require.NoError(t, f.app.Install(t.Context(), []string{"b"}, app.InstallOptions{}))
	f.app.WithWorkDir(f.project)

	writeFile(t, filepath.Join(f.project, domain.ManifestFileName),
		`{"name":"app","version":"0.1.0","devDependencies":{"b":"^1.0.0","missing":"^1.0.0"}}`)

	require.NoError(t, f.app.Link(t.Context()))
	link := filepath.Join(f.project, "node_modules", "b")
	_, err := os.Readlink(link)
	require.NoError(t, err)
	assert.True(t, f.store.Registry().Entry("b", "1.2.0").LocalUsers.Has("app", "0.1.0"))

	require.NoError(t, f.app.Unlink(t.Context()))
	assert.NoFileExists(t, link)
	assert.False(t, f.store.Registry().Entry("b", "1.2.0").LocalUsers.Has("app", "0.1.0"))
}

func TestLinkBin_AndUnlinkBin(t *testing.T) {
	f := setupApp(t)
	f.quiet()
	f.fetcher.EXPECT().Install(gomock.Any(), gomock.Any(), "a", "*").DoAndReturn(fetchWrites(t, twoPackages))
	require.NoError(t, f.app.Install(t.Context(), []string{"a"}, app.InstallOptions{}))

	require.NoError(t, f.app.LinkBin(t.Context(), "a@^1.0.0"))
	shim := filepath.Join(f.cfg.GlobalBinDir, "a")
	target, err := os.Readlink(shim)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(domain.PayloadPath(f.cfg.Root, "a", "1.0.0"), "cli.js"), target)

	require.NoError(t, f.app.UnlinkBin(t.Context(), "a"))
	assert.NoFileExists(t, shim)

	err = f.app.LinkBin(t.Context(), "ghost")
	assert.ErrorContains(t, err, domain.ErrPackageNotInstalled.Error())
}

func TestResolve(t *testing.T) {
	f := setupApp(t)
	dir := domain.PayloadPath(f.cfg.Root, "left-pad", "1.3.0")
	writeFile(t, filepath.Join(dir, "index.js"), "")
	f.store.Registry().Put(&domain.PackageEntry{Name: "left-pad", Version: "1.3.0", Path: dir})
	writeFile(t, filepath.Join(f.project, domain.ManifestFileName),
		`{"name":"app","version":"0.1.0","dependencies":{"left-pad":"^1.0.0"}}`)

	res, err := f.app.Resolve(t.Context(), "left-pad", "")
	require.NoError(t, err)
	assert.Equal(t, domain.StateBridged, res.State)
	assert.Equal(t, "BRIDGED left-pad → "+filepath.Join(dir, "index.js")+"\n", f.out.String())

	f.out.Reset()
	res, err = f.app.Resolve(t.Context(), "is-even", filepath.Join(f.project, "src", "main.js"))
	require.Error(t, err)
	assert.Equal(t, domain.StateFailed, res.State)
	assert.Equal(t, "FAILED is-even\n", f.out.String())
}

func TestExec(t *testing.T) {
	f := setupApp(t)
	f.runner.EXPECT().Run(gomock.Any(), filepath.Join(f.project, "main.js"), []string{"--flag"}).Return(nil)

	require.NoError(t, f.app.Exec(t.Context(), "main.js", []string{"--flag"}))
}
