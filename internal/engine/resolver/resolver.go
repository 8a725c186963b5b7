// Package resolver redirects module lookups that the host runtime cannot
// satisfy into the shared registry.
package resolver

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/bridge/internal/core/version"
	"go.trai.ch/zerr"
)

var _ ports.ModuleResolver = (*Resolver)(nil)

type cacheKey struct {
	specifier string
	dir       string
}

// Resolver answers module lookups in the order relative path, host
// built-in or standard chain, then shared registry.
type Resolver struct {
	store     ports.RegistryStore
	manifests ports.ManifestStore
	host      ports.HostLoader
	home      string

	mu     sync.Mutex
	cache  map[cacheKey]domain.Resolution
	digest uint64
}

// New creates a Resolver. The manifest walk stops at home.
func New(
	store ports.RegistryStore,
	manifests ports.ManifestStore,
	host ports.HostLoader,
	home string,
) *Resolver {
	return &Resolver{
		store:     store,
		manifests: manifests,
		host:      host,
		home:      home,
		cache:     make(map[cacheKey]domain.Resolution),
		digest:    store.Digest(),
	}
}

// Resolve maps specifier, as required from requestingFile, to a file path.
// A failed lookup returns a StateFailed resolution together with an error
// carrying ErrModuleNotFound.
func (r *Resolver) Resolve(specifier, requestingFile string) (domain.Resolution, error) {
	res := domain.Resolution{Specifier: specifier, State: domain.StateFailed}
	if strings.TrimSpace(specifier) == "" {
		return res, zerr.With(domain.ErrInvalidArgument, "argument", "specifier")
	}
	dir := filepath.Dir(requestingFile)

	if isRelative(specifier) {
		target := specifier
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, filepath.FromSlash(specifier))
		}
		path, err := r.host.ResolveFile(target)
		if err != nil {
			return res, notFound(specifier, requestingFile)
		}
		res.Path, res.State = path, domain.StateRelative
		return res, nil
	}

	if r.host.IsBuiltin(specifier) {
		res.Path, res.State = specifier, domain.StateBuiltin
		return res, nil
	}
	if path, err := r.host.ResolvePackage(specifier, dir); err == nil {
		res.Path, res.State = path, domain.StateBuiltin
		return res, nil
	}

	key := cacheKey{specifier: specifier, dir: dir}
	if cached, ok := r.cached(key); ok {
		return cached, nil
	}

	path, ok := r.bridge(specifier, dir)
	if !ok {
		return res, notFound(specifier, requestingFile)
	}
	res.Path, res.State = path, domain.StateBridged
	r.remember(key, res)
	return res, nil
}

// bridge looks the package up in the shared registry with the range the
// nearest project manifest declares for it.
func (r *Resolver) bridge(specifier, dir string) (string, bool) {
	name, subpath := domain.SplitSpecifier(specifier)

	m, err := r.manifests.FindNearest(dir, r.home)
	if err != nil {
		return "", false
	}
	rng, ok := m.Range(name)
	if !ok {
		return "", false
	}

	found, err := r.store.Find(context.Background(), name, version.Normalize(rng), domain.FindOptions{})
	if err != nil || found.Entry == nil {
		return "", false
	}

	path, err := r.host.ResolveFile(filepath.Join(found.Entry.Path, filepath.FromSlash(subpath)))
	if err != nil {
		return "", false
	}
	return path, true
}

// cached returns a remembered answer while the registry is unchanged.
func (r *Resolver) cached(key cacheKey) (domain.Resolution, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d := r.store.Digest(); d != r.digest {
		r.cache = make(map[cacheKey]domain.Resolution)
		r.digest = d
		return domain.Resolution{}, false
	}
	res, ok := r.cache[key]
	return res, ok
}

func (r *Resolver) remember(key cacheKey, res domain.Resolution) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[key] = res
}

// isRelative reports whether specifier names a file rather than a package.
// Package names never start with a dot or a slash.
func isRelative(specifier string) bool {
	return strings.HasPrefix(specifier, ".") ||
		strings.HasPrefix(specifier, "/") ||
		filepath.IsAbs(specifier)
}

func notFound(specifier, requestingFile string) error {
	return zerr.With(zerr.With(domain.ErrModuleNotFound, "specifier", specifier), "from", requestingFile)
}
