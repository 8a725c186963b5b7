// Package jsruntime runs CommonJS scripts in an embedded JavaScript engine
// whose require is answered by the module resolver.
package jsruntime

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dop251/goja"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ScriptRunner = (*Runner)(nil)

// moduleWrapper turns a CommonJS source into a function of the module scope.
const (
	wrapperHead = "(function (exports, require, module, __filename, __dirname) {"
	wrapperTail = "\n})"
)

// exitRequest interrupts the engine when a script calls process.exit.
type exitRequest struct {
	code int
}

// Runner implements ports.ScriptRunner on goja.
type Runner struct {
	resolver ports.ModuleResolver
	stdout   io.Writer
	stderr   io.Writer
}

// NewRunner creates a Runner printing console output to stdout and stderr.
func NewRunner(resolver ports.ModuleResolver, stdout, stderr io.Writer) *Runner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Runner{resolver: resolver, stdout: stdout, stderr: stderr}
}

// SetOutput redirects console output.
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
}

// Run executes file as the main module. Each run gets a fresh engine and
// module cache. Cancelling ctx interrupts the script.
func (r *Runner) Run(ctx context.Context, file string, args []string) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidArgument.Error()), "file", file)
	}
	if _, err := os.Stat(abs); err != nil {
		return zerr.With(domain.ErrModuleNotFound, "file", file)
	}

	s := newSession(r, abs, args)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.vm.Interrupt("context cancelled")
		case <-done:
		}
	}()

	_, err = s.load(abs)
	if err == nil {
		return nil
	}

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if exit, ok := interrupted.Value().(exitRequest); ok {
			if exit.code == 0 {
				return nil
			}
			return zerr.With(zerr.With(domain.ErrScriptFailed, "file", file), "exit_code", exit.code)
		}
		if ctx.Err() != nil {
			return zerr.With(zerr.Wrap(ctx.Err(), domain.ErrScriptFailed.Error()), "file", file)
		}
	}
	return zerr.With(zerr.Wrap(err, domain.ErrScriptFailed.Error()), "file", file)
}

// session is one script execution.
type session struct {
	runner   *Runner
	vm       *goja.Runtime
	modules  map[string]*goja.Object
	builtins map[string]goja.Value
}

func newSession(r *Runner, main string, args []string) *session {
	s := &session{
		runner:   r,
		vm:       goja.New(),
		modules:  make(map[string]*goja.Object),
		builtins: make(map[string]goja.Value),
	}
	_ = s.vm.Set("console", s.console())
	_ = s.vm.Set("process", s.process(main, args))
	return s
}

// load evaluates the module at path once and returns its exports. The
// module is cached before it runs so that cyclic requires see the partial
// exports, as in Node.
func (s *session) load(path string) (goja.Value, error) {
	if module, ok := s.modules[path]; ok {
		return module.Get("exports"), nil
	}

	module := s.vm.NewObject()
	exports := s.vm.NewObject()
	_ = module.Set("exports", exports)
	_ = module.Set("id", path)
	_ = module.Set("filename", path)
	s.modules[path] = module

	if err := s.evaluate(path, module, exports); err != nil {
		delete(s.modules, path)
		return nil, err
	}
	return module.Get("exports"), nil
}

func (s *session) evaluate(path string, module, exports *goja.Object) error {
	//nolint:gosec // Scripts are run on explicit user request
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(domain.ErrModuleNotFound, "path", path)
	}

	switch filepath.Ext(path) {
	case ".json":
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrScriptFailed.Error()), "path", path)
		}
		return module.Set("exports", s.vm.ToValue(v))
	case ".node":
		return zerr.With(domain.ErrBuiltinUnavailable, "module", path)
	}

	fnValue, err := s.vm.RunScript(path, wrapperHead+stripShebang(string(data))+wrapperTail)
	if err != nil {
		return err
	}
	fn, ok := goja.AssertFunction(fnValue)
	if !ok {
		return zerr.With(domain.ErrScriptFailed, "path", path)
	}

	_, err = fn(goja.Undefined(),
		exports,
		s.requireFor(path),
		module,
		s.vm.ToValue(path),
		s.vm.ToValue(filepath.Dir(path)),
	)
	return err
}

// requireFor builds the require function seen by the module at from.
func (s *session) requireFor(from string) goja.Value {
	fn := func(call goja.FunctionCall) goja.Value {
		specifier := call.Argument(0).String()
		v, err := s.require(specifier, from)
		if err != nil {
			var interrupted *goja.InterruptedError
			if errors.As(err, &interrupted) {
				panic(interrupted)
			}
			panic(s.throwable(err))
		}
		return v
	}
	resolve := func(call goja.FunctionCall) goja.Value {
		specifier := call.Argument(0).String()
		res, err := s.runner.resolver.Resolve(specifier, from)
		if err != nil {
			panic(s.moduleNotFound(specifier))
		}
		return s.vm.ToValue(res.Path)
	}

	require := s.vm.ToValue(fn).ToObject(s.vm)
	_ = require.Set("resolve", resolve)
	return require
}

func (s *session) require(specifier, from string) (goja.Value, error) {
	res, err := s.runner.resolver.Resolve(specifier, from)
	if err != nil || res.State == domain.StateFailed {
		return nil, errModuleNotFound{specifier: specifier}
	}
	if res.State == domain.StateBuiltin && res.Path == specifier {
		return s.builtin(specifier)
	}
	return s.load(res.Path)
}

type errModuleNotFound struct {
	specifier string
}

func (e errModuleNotFound) Error() string {
	return "Cannot find module '" + e.specifier + "'"
}

// throwable converts a Go error into the value thrown into the script. JS
// exceptions raised by nested modules are rethrown unchanged.
func (s *session) throwable(err error) goja.Value {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		return ex.Value()
	}
	var missing errModuleNotFound
	if errors.As(err, &missing) {
		return s.moduleNotFound(missing.specifier)
	}
	return s.vm.NewGoError(err)
}

func (s *session) moduleNotFound(specifier string) goja.Value {
	obj, err := s.vm.New(s.vm.Get("Error"), s.vm.ToValue(errModuleNotFound{specifier: specifier}.Error()))
	if err != nil {
		return s.vm.ToValue(err.Error())
	}
	_ = obj.Set("code", "MODULE_NOT_FOUND")
	return obj
}

func stripShebang(src string) string {
	if !strings.HasPrefix(src, "#!") {
		return src
	}
	if i := strings.IndexByte(src, '\n'); i >= 0 {
		// Keep the newline so reported line numbers stay right.
		return src[i:]
	}
	return ""
}
