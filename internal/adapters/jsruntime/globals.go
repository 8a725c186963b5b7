package jsruntime

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dop251/goja"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// console writes log and info to stdout, warn and error to stderr.
func (s *session) console() *goja.Object {
	console := s.vm.NewObject()
	_ = console.Set("log", s.printer(s.runner.stdout))
	_ = console.Set("info", s.printer(s.runner.stdout))
	_ = console.Set("warn", s.printer(s.runner.stderr))
	_ = console.Set("error", s.printer(s.runner.stderr))
	return console
}

func (s *session) printer(w io.Writer) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = s.format(arg)
		}
		_, _ = io.WriteString(w, strings.Join(parts, " ")+"\n")
		return goja.Undefined()
	}
}

// format renders plain objects and arrays as JSON and everything else
// through its string conversion.
func (s *session) format(v goja.Value) string {
	obj, ok := v.(*goja.Object)
	if !ok {
		return v.String()
	}
	switch obj.ClassName() {
	case "Object", "Array":
		stringify, ok := goja.AssertFunction(s.vm.Get("JSON").ToObject(s.vm).Get("stringify"))
		if !ok {
			return v.String()
		}
		out, err := stringify(goja.Undefined(), v)
		if err != nil || goja.IsUndefined(out) {
			return v.String()
		}
		return out.String()
	default:
		return v.String()
	}
}

func (s *session) process(main string, args []string) *goja.Object {
	process := s.vm.NewObject()

	argv := []any{"bridge", main}
	for _, a := range args {
		argv = append(argv, a)
	}
	_ = process.Set("argv", argv)
	_ = process.Set("platform", platform())

	env := s.vm.NewObject()
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			_ = env.Set(k, v)
		}
	}
	_ = process.Set("env", env)

	_ = process.Set("cwd", func() string {
		wd, err := os.Getwd()
		if err != nil {
			return filepath.Dir(main)
		}
		return wd
	})
	_ = process.Set("exit", func(call goja.FunctionCall) goja.Value {
		s.vm.Interrupt(exitRequest{code: int(call.Argument(0).ToInteger())})
		return goja.Undefined()
	})
	return process
}

// platform reports the host platform with Node's names.
func platform() string {
	if runtime.GOOS == "windows" {
		return "win32"
	}
	return runtime.GOOS
}

// builtin returns the embedded implementation of a core module.
func (s *session) builtin(specifier string) (goja.Value, error) {
	name := strings.TrimPrefix(specifier, "node:")
	if v, ok := s.builtins[name]; ok {
		return v, nil
	}

	var v goja.Value
	switch name {
	case "path":
		v = s.pathModule()
	case "os":
		v = s.osModule()
	default:
		return nil, zerr.With(domain.ErrBuiltinUnavailable, "module", specifier)
	}
	s.builtins[name] = v
	return v, nil
}

func (s *session) pathModule() goja.Value {
	m := s.vm.NewObject()
	_ = m.Set("sep", string(filepath.Separator))
	_ = m.Set("delimiter", string(filepath.ListSeparator))
	_ = m.Set("join", func(parts ...string) string {
		return filepath.Join(parts...)
	})
	_ = m.Set("resolve", func(parts ...string) string {
		out, _ := os.Getwd()
		for _, p := range parts {
			if filepath.IsAbs(p) {
				out = p
				continue
			}
			out = filepath.Join(out, p)
		}
		return filepath.Clean(out)
	})
	_ = m.Set("dirname", filepath.Dir)
	_ = m.Set("extname", filepath.Ext)
	_ = m.Set("isAbsolute", filepath.IsAbs)
	_ = m.Set("normalize", filepath.Clean)
	_ = m.Set("basename", func(p string, ext ...string) string {
		base := filepath.Base(p)
		if len(ext) > 0 {
			base = strings.TrimSuffix(base, ext[0])
		}
		return base
	})
	_ = m.Set("relative", func(from, to string) string {
		rel, err := filepath.Rel(from, to)
		if err != nil {
			return to
		}
		return rel
	})
	return m
}

func (s *session) osModule() goja.Value {
	m := s.vm.NewObject()
	eol := "\n"
	if runtime.GOOS == "windows" {
		eol = "\r\n"
	}
	_ = m.Set("EOL", eol)
	_ = m.Set("platform", platform)
	_ = m.Set("homedir", func() string {
		home, _ := os.UserHomeDir()
		return home
	})
	_ = m.Set("tmpdir", os.TempDir)
	return m
}
