package ports

import "go.trai.ch/bridge/internal/core/domain"

// PayloadStore moves package payloads between a scratch area and the registry.
//
//go:generate mockgen -source=payload_store.go -destination=mocks/mock_payload_store.go -package=mocks
type PayloadStore interface {
	// Discover lists every package directory in the nested module trees of
	// scratch, shallowest first.
	Discover(scratch string) ([]domain.Payload, error)

	// Absorb copies src to dst without nested module trees, replacing dst.
	Absorb(src, dst string) error

	// Remove deletes a payload directory.
	Remove(dir string) error
}
