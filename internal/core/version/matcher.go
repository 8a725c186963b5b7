// Package version matches installed package versions against semantic-version ranges.
package version

import (
	"sort"
	"strings"

	mm "github.com/Masterminds/semver/v3"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Any is the range every release satisfies.
const Any = "*"

// Normalize maps ranges the matcher cannot evaluate to Any. Empty ranges,
// dist-tags such as "latest", and non-registry sources such as "user/repo"
// or tarball URLs all match any installed version.
func Normalize(rng string) string {
	rng = strings.TrimSpace(rng)
	if rng == "" || rng == "latest" {
		return Any
	}
	if _, err := mm.NewConstraint(rng); err != nil {
		return Any
	}
	return rng
}

// Valid reports whether rng parses as a semantic-version range.
func Valid(rng string) error {
	if _, err := mm.NewConstraint(strings.TrimSpace(rng)); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrInvalidVersionRange, err.Error()), "range", rng)
	}
	return nil
}

// Sort orders versions by semantic-version precedence, ascending. Entries
// that are not valid versions are dropped.
func Sort(versions []string) []string {
	parsed := make([]*mm.Version, 0, len(versions))
	for _, raw := range versions {
		v, err := mm.NewVersion(raw)
		if err != nil {
			continue
		}
		parsed = append(parsed, v)
	}
	sort.Sort(mm.Collection(parsed))

	out := make([]string, len(parsed))
	for i, v := range parsed {
		out[i] = v.Original()
	}
	return out
}

// BestSatisfying returns the highest of versions that satisfies rng. The
// second result is false when nothing matches.
func BestSatisfying(rng string, versions []string) (string, bool) {
	c, err := mm.NewConstraint(Normalize(rng))
	if err != nil {
		return "", false
	}

	var best *mm.Version
	for _, raw := range versions {
		v, err := mm.NewVersion(raw)
		if err != nil || !c.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	if best == nil {
		return "", false
	}
	return best.Original(), true
}

// Latest returns the highest valid version, prereleases included.
func Latest(versions []string) (string, bool) {
	sorted := Sort(versions)
	if len(sorted) == 0 {
		return "", false
	}
	return sorted[len(sorted)-1], true
}

// Satisfies reports whether version is within rng.
func Satisfies(version, rng string) bool {
	_, ok := BestSatisfying(rng, []string{version})
	return ok
}

// Newer reports whether candidate has higher precedence than current.
// Invalid input is never newer.
func Newer(candidate, current string) bool {
	c, err := mm.NewVersion(candidate)
	if err != nil {
		return false
	}
	v, err := mm.NewVersion(current)
	if err != nil {
		return true
	}
	return c.GreaterThan(v)
}

// Caret returns the range written back into a manifest for version.
func Caret(version string) string {
	return "^" + version
}
