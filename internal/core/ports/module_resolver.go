package ports

import "go.trai.ch/bridge/internal/core/domain"

// ModuleResolver maps a module specifier required from a file to the file
// that satisfies it.
//
//go:generate mockgen -source=module_resolver.go -destination=mocks/mock_module_resolver.go -package=mocks
type ModuleResolver interface {
	Resolve(specifier, requestingFile string) (domain.Resolution, error)
}
