package registry_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bridge/internal/adapters/registry"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func seed(reg *domain.Registry, root string, versions ...string) {
	for _, v := range versions {
		entry := &domain.PackageEntry{
			Name:    "left-pad",
			Version: v,
			Path:    domain.PayloadPath(root, "left-pad", v),
		}
		entry.Edges(domain.EdgeDependents)
		entry.Edges(domain.EdgeLocalUsers)
		reg.Put(entry)
	}
}

func TestStore_Load_MissingDocumentIsCreated(t *testing.T) {
	root := t.TempDir()
	store := registry.NewStore(root, nil)

	require.NoError(t, store.Load())

	assert.Empty(t, store.Registry().Packages)
	assert.FileExists(t, domain.RegistryPath(root))
	assert.NotZero(t, store.Digest())
}

func TestStore_Load_CorruptDocumentIsReset(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(domain.RegistryPath(root), []byte("{not json"), domain.FilePerm))

	store := registry.NewStore(root, nil)
	require.NoError(t, store.Load())
	assert.Empty(t, store.Registry().Packages)

	data, err := os.ReadFile(domain.RegistryPath(root))
	require.NoError(t, err)
	assert.JSONEq(t, `{"initialInstallRequests":{},"packages":{}}`, string(data))
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	root := t.TempDir()
	store := registry.NewStore(root, nil)
	require.NoError(t, store.Load())

	reg := store.Registry()
	seed(reg, root, "1.0.0", "1.3.0")
	entry := reg.Entry("left-pad", "1.3.0")
	entry.Bin = domain.BinMap{"pad": "bin/pad.js"}
	entry.Dependencies = map[string]string{"repeat": "^2.0.0"}
	entry.LastUsed = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	entry.Edges(domain.EdgeDependents).Add("app-lib", domain.Edge{Path: "/r/app-lib/2.0.0", Version: "2.0.0"})
	entry.Edges(domain.EdgeLocalUsers).Add("my-app", domain.Edge{Path: "/src/my-app", Version: "0.1.0"})
	reg.RecordRequest("left-pad", "^1.0.0", domain.InstallRequest{Name: "my-app", Version: "0.1.0", Path: "/src/my-app"})
	require.NoError(t, store.Save())
	saved := store.Digest()

	reloaded := registry.NewStore(root, nil)
	require.NoError(t, reloaded.Load())

	assert.Equal(t, reg, reloaded.Registry())
	assert.Equal(t, saved, reloaded.Digest())
}

func TestStore_Save_ChangesDigest(t *testing.T) {
	root := t.TempDir()
	store := registry.NewStore(root, nil)
	require.NoError(t, store.Load())
	before := store.Digest()

	seed(store.Registry(), root, "1.0.0")
	require.NoError(t, store.Save())

	assert.NotEqual(t, before, store.Digest())
}

func TestStore_Save_LeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	store := registry.NewStore(root, nil)
	require.NoError(t, store.Load())
	require.NoError(t, store.Save())

	matches, err := filepath.Glob(filepath.Join(root, ".registry-*.json"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestStore_Load_RepairsIdentityFields(t *testing.T) {
	root := t.TempDir()
	doc := `{"packages":{"left-pad":{"1.3.0":{"path":"/x"}}}}`
	require.NoError(t, os.WriteFile(domain.RegistryPath(root), []byte(doc), domain.FilePerm))

	store := registry.NewStore(root, nil)
	require.NoError(t, store.Load())

	entry := store.Registry().Entry("left-pad", "1.3.0")
	require.NotNil(t, entry)
	assert.Equal(t, "left-pad", entry.Name)
	assert.Equal(t, "1.3.0", entry.Version)
	assert.NotNil(t, entry.Dependents)
	assert.NotNil(t, store.Registry().InitialInstallRequests)
}

func TestStore_Find(t *testing.T) {
	root := t.TempDir()
	store := registry.NewStore(root, nil)
	require.NoError(t, store.Load())
	seed(store.Registry(), root, "1.0.0", "1.3.0", "2.3.1")

	res, err := store.Find(context.Background(), "left-pad", "^1.0.0", domain.FindOptions{})
	require.NoError(t, err)
	require.NotNil(t, res.Entry)
	assert.Equal(t, "1.3.0", res.Entry.Version)

	res, err = store.Find(context.Background(), "left-pad", "^3.5.0", domain.FindOptions{})
	require.NoError(t, err)
	assert.Nil(t, res.Entry)

	res, err = store.Find(context.Background(), "right-pad", "*", domain.FindOptions{})
	require.NoError(t, err)
	assert.Nil(t, res.Entry)
}

func TestStore_Find_CheckRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockPackageFetcher(ctrl)

	root := t.TempDir()
	store := registry.NewStore(root, fetcher)
	require.NoError(t, store.Load())
	seed(store.Registry(), root, "1.3.0")

	fetcher.EXPECT().LatestVersion(gomock.Any(), "left-pad").Return("1.3.1", nil)

	res, err := store.Find(context.Background(), "left-pad", "^1.0.0", domain.FindOptions{CheckRemote: true})
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", res.Entry.Version)
	assert.Equal(t, "1.3.1", res.Latest)
	assert.True(t, res.Outdated)
}

func TestStore_Find_CheckRemoteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockPackageFetcher(ctrl)

	store := registry.NewStore(t.TempDir(), fetcher)
	require.NoError(t, store.Load())

	fetcher.EXPECT().LatestVersion(gomock.Any(), "left-pad").
		Return("", errors.New(domain.ErrRemoteQueryFailed.Error()))

	_, err := store.Find(context.Background(), "left-pad", "*", domain.FindOptions{CheckRemote: true})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrRemoteQueryFailed.Error())
}

func TestStore_Find_CheckRemoteWithoutClient(t *testing.T) {
	store := registry.NewStore(t.TempDir(), nil)
	require.NoError(t, store.Load())

	_, err := store.Find(context.Background(), "left-pad", "*", domain.FindOptions{CheckRemote: true})
	assert.ErrorContains(t, err, domain.ErrRemoteQueryFailed.Error())
}
