// export_test.go exports private functions for white-box testing.
package npm

import (
	"context"
	"os/exec"
)

// SetExecCommandContext replaces the command factory and returns a restore func.
func SetExecCommandContext(fn func(ctx context.Context, name string, args ...string) *exec.Cmd) func() {
	prev := execCommandContext
	execCommandContext = fn
	return func() { execCommandContext = prev }
}

// ParseInfo exports parseInfo for testing.
var ParseInfo = parseInfo
