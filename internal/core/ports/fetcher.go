package ports

import "context"

// PackageFetcher drives the external package-fetching client.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type PackageFetcher interface {
	// Install fetches name@rng, with its transitive dependencies, into the
	// conventional nested module tree under dir.
	Install(ctx context.Context, dir, name, rng string) error

	// LatestVersion returns the newest published version of name.
	LatestVersion(ctx context.Context, name string) (string, error)
}
