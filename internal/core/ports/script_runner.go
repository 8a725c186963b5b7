package ports

import "context"

// ScriptRunner runs a script whose module lookups go through the registry.
//
//go:generate mockgen -source=script_runner.go -destination=mocks/mock_script_runner.go -package=mocks
type ScriptRunner interface {
	Run(ctx context.Context, file string, args []string) error
}
