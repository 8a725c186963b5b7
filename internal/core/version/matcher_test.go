package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/version"
)

func TestBestSatisfying(t *testing.T) {
	registered := []string{"2.3.1", "1.0.0", "1.3.0"}

	tests := []struct {
		name     string
		rng      string
		versions []string
		want     string
		wantOK   bool
	}{
		{name: "caret picks highest in major", rng: "^1.0.0", versions: registered, want: "1.3.0", wantOK: true},
		{name: "no match", rng: "^3.5.0", versions: registered, wantOK: false},
		{name: "star picks highest", rng: "*", versions: registered, want: "2.3.1", wantOK: true},
		{name: "empty range picks highest", rng: "", versions: registered, want: "2.3.1", wantOK: true},
		{name: "dist tag picks highest", rng: "latest", versions: registered, want: "2.3.1", wantOK: true},
		{name: "git source picks highest", rng: "user/repo#main", versions: registered, want: "2.3.1", wantOK: true},
		{name: "exact", rng: "1.0.0", versions: registered, want: "1.0.0", wantOK: true},
		{name: "unregistered", rng: "^1.0.0", versions: nil, wantOK: false},
		{name: "two digit components", rng: "^1.0.0", versions: []string{"1.9.0", "1.10.0", "1.2.0"}, want: "1.10.0", wantOK: true},
		{name: "invalid versions skipped", rng: "*", versions: []string{"not-a-version", "0.1.0"}, want: "0.1.0", wantOK: true},
		{name: "tilde", rng: "~1.3", versions: []string{"1.3.9", "1.4.0"}, want: "1.3.9", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := version.BestSatisfying(tt.rng, tt.versions)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBestSatisfying_IsStableAcrossInputOrder(t *testing.T) {
	a, okA := version.BestSatisfying("^1.0.0", []string{"1.0.0", "1.3.0", "2.3.1"})
	b, okB := version.BestSatisfying("^1.0.0", []string{"2.3.1", "1.3.0", "1.0.0"})
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, a, b)
}

func TestSort(t *testing.T) {
	got := version.Sort([]string{"1.10.0", "1.2.0", "1.0.0-beta.1", "1.0.0", "garbage", "0.9.0"})
	assert.Equal(t, []string{"0.9.0", "1.0.0-beta.1", "1.0.0", "1.2.0", "1.10.0"}, got)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, version.Any, version.Normalize(""))
	assert.Equal(t, version.Any, version.Normalize("latest"))
	assert.Equal(t, version.Any, version.Normalize("https://example.com/pkg.tgz"))
	assert.Equal(t, "^1.2.0", version.Normalize(" ^1.2.0 "))
	assert.Equal(t, ">=1.0.0 <2.0.0", version.Normalize(">=1.0.0 <2.0.0"))
}

func TestValid(t *testing.T) {
	require.NoError(t, version.Valid("^1.0.0"))

	err := version.Valid("not a range")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidVersionRange)
}

func TestNewer(t *testing.T) {
	assert.True(t, version.Newer("1.3.1", "1.3.0"))
	assert.False(t, version.Newer("1.3.0", "1.3.0"))
	assert.False(t, version.Newer("1.2.0", "1.10.0"))
	assert.False(t, version.Newer("bad", "1.0.0"))
	assert.True(t, version.Newer("1.0.0", "bad"))
}

func TestSatisfiesAndCaret(t *testing.T) {
	assert.True(t, version.Satisfies("1.3.0", version.Caret("1.0.0")))
	assert.False(t, version.Satisfies("2.0.0", version.Caret("1.0.0")))
}

func TestLatest(t *testing.T) {
	latest, ok := version.Latest([]string{"1.10.0", "1.9.0", "2.0.0-beta.1", "garbage"})
	require.True(t, ok)
	assert.Equal(t, "2.0.0-beta.1", latest)

	_, ok = version.Latest(nil)
	assert.False(t, ok)
}
