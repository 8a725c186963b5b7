package app

import (
	"context"
	"io"
	"strings"

	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/version"
	"go.trai.ch/bridge/internal/ui/output"
	"go.trai.ch/bridge/internal/ui/style"
)

func (a *App) styles() style.Styles {
	return style.NewStyles(output.Renderer(a.out))
}

// List prints every registered package version with its consumers.
func (a *App) List(_ context.Context) error {
	reg := a.store.Registry()
	names := reg.Names()
	if len(names) == 0 {
		a.logger.Info("no packages installed")
		return nil
	}

	s := a.styles()
	var b strings.Builder
	for _, name := range names {
		b.WriteString(s.Name.Render(name) + "\n")
		for _, v := range ordered(reg.Versions(name)) {
			entry := reg.Entry(name, v)
			b.WriteString("  " + s.Version.Render(v) + " " + s.Muted.Render(entry.Path) + "\n")
			for _, c := range entry.Dependents.Consumers() {
				b.WriteString("    " + style.Arrow + " " + ref(c.Name, c.Version) + " " + s.Muted.Render("(dependent)") + "\n")
			}
			for _, c := range entry.LocalUsers.Consumers() {
				b.WriteString("    " + style.Dot + " " + ref(c.Name, c.Version) + " " + s.Muted.Render(c.Path) + "\n")
			}
		}
	}

	_, err := io.WriteString(a.out, b.String())
	return err
}

// ordered sorts versions by precedence and keeps the unparsable ones last.
func ordered(versions []string) []string {
	out := version.Sort(versions)
	seen := make(map[string]bool, len(out))
	for _, v := range out {
		seen[v] = true
	}
	for _, v := range versions {
		if !seen[v] {
			out = append(out, v)
		}
	}
	return out
}

// renderRemoval prints one line per outcome, cascade steps indented by depth.
func (a *App) renderRemoval(report *domain.RemovalReport) {
	s := a.styles()
	var b strings.Builder
	for _, o := range report.Outcomes {
		indent := strings.Repeat("  ", o.Depth)
		switch o.Status {
		case domain.RemovalRemoved:
			b.WriteString(indent + s.Ok.Render(style.Check) + " removed " + ref(o.Name, o.Version) + "\n")
		case domain.RemovalBlocked:
			b.WriteString(indent + s.Bad.Render(style.Warning) + " kept " + ref(o.Name, o.Version) + "\n")
			for _, bl := range o.Blockers {
				b.WriteString(indent + "    " + style.Arrow + " " + ref(bl.Name, bl.Version) +
					" " + s.Muted.Render("("+bl.Kind.String()+")") + "\n")
			}
		case domain.RemovalNotInstalled:
			label := o.Name
			if o.Version != "" {
				label = ref(o.Name, o.Version)
			}
			b.WriteString(indent + s.Muted.Render(style.Dot) + " " + label + " is not installed\n")
		}
	}
	_, _ = io.WriteString(a.out, b.String())
}

func (a *App) renderUpdates(candidates []domain.UpdateCandidate) {
	if len(candidates) == 0 {
		a.logger.Info("all packages are up to date")
		return
	}
	s := a.styles()
	var b strings.Builder
	for _, c := range candidates {
		b.WriteString(s.Name.Render(c.Name) + " " + s.Muted.Render(c.Installed) +
			" " + style.Arrow + " " + s.Version.Render(c.Latest) + "\n")
	}
	_, _ = io.WriteString(a.out, b.String())
}

func (a *App) renderResolution(res domain.Resolution) {
	s := a.styles()
	state := s.Ok.Render(string(res.State))
	if res.State == domain.StateFailed {
		state = s.Bad.Render(string(res.State))
	}
	line := state + " " + res.Specifier
	if res.Path != "" {
		line += " " + style.Arrow + " " + res.Path
	}
	_, _ = io.WriteString(a.out, line+"\n")
}
