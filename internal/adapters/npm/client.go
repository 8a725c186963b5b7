// Package npm drives an npm-compatible package client as a subprocess.
package npm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PackageFetcher = (*Client)(nil)

// execCommandContext is swapped in tests.
var execCommandContext = exec.CommandContext

// scratchManifest keeps the client from climbing out of the scratch area in
// search of an enclosing project.
const scratchManifest = `{"name":"bridge-scratch","version":"0.0.0","private":true}` + "\n"

// Client implements ports.PackageFetcher by running the configured client binary.
type Client struct {
	bin string
}

// NewClient creates a Client running bin.
func NewClient(bin string) *Client {
	if bin == "" {
		bin = domain.DefaultClient
	}
	return &Client{bin: bin}
}

// Install runs `<client> install <name>@<rng>` inside dir and waits for it.
func (c *Client) Install(ctx context.Context, dir, name, rng string) error {
	spec := name
	if rng != "" {
		spec = name + "@" + rng
	}

	manifest := filepath.Join(dir, domain.ManifestFileName)
	if _, err := os.Stat(manifest); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(manifest, []byte(scratchManifest), domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "package", spec)
		}
	}

	if _, err := c.run(ctx, dir, "install", spec); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "package", spec)
	}
	return nil
}

// LatestVersion runs `<client> info <name> version --json` and reads the
// version it prints.
func (c *Client) LatestVersion(ctx context.Context, name string) (string, error) {
	out, err := c.run(ctx, "", "info", name, "version", "--json")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrRemoteQueryFailed.Error()), "package", name)
	}

	v, err := parseInfo(out)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrRemoteQueryFailed.Error()), "package", name)
	}
	return v, nil
}

func (c *Client) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	//nolint:gosec // The client binary comes from trusted configuration
	cmd := execCommandContext(ctx, c.bin, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, zerr.With(err, "stderr", strings.TrimSpace(stderr.String()))
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

type infoDocument struct {
	Version string `json:"version"`
}

// parseInfo accepts the bare JSON string printed when the version field is
// selected, as well as the full object some clients print instead.
func parseInfo(out []byte) (string, error) {
	out = bytes.TrimSpace(out)

	var doc infoDocument
	if err := json.Unmarshal(out, &doc); err == nil {
		if doc.Version == "" {
			return "", zerr.Wrap(domain.ErrClientOutputInvalid, "no version field")
		}
		return doc.Version, nil
	}

	var single string
	if err := json.Unmarshal(out, &single); err != nil {
		return "", zerr.Wrap(domain.ErrClientOutputInvalid, "output is not JSON")
	}
	if single == "" {
		return "", zerr.Wrap(domain.ErrClientOutputInvalid, "empty version")
	}
	return single, nil
}
