package domain

// RemovalStatus is the outcome of one version-level removal attempt.
type RemovalStatus string

const (
	// RemovalRemoved means the entry and its payload were deleted.
	RemovalRemoved RemovalStatus = "removed"
	// RemovalBlocked means consumers still depend on the entry.
	RemovalBlocked RemovalStatus = "blocked"
	// RemovalNotInstalled means no entry matched the request.
	RemovalNotInstalled RemovalStatus = "not_installed"
)

// Blocker is a consumer that prevented a removal.
type Blocker struct {
	Kind    EdgeKind
	Name    string
	Version string
	Path    string
}

// RemovalOutcome reports one version-level removal attempt. Depth is zero for
// the requested package and grows by one per auto-removal cascade step.
type RemovalOutcome struct {
	Name     string
	Version  string
	Depth    int
	Status   RemovalStatus
	Blockers []Blocker
}

// RemovalReport collects every outcome of a removal, in visit order.
type RemovalReport struct {
	Outcomes []RemovalOutcome
}

// Removed reports whether every top-level outcome succeeded.
func (r *RemovalReport) Removed() bool {
	found := false
	for _, o := range r.Outcomes {
		if o.Depth != 0 {
			continue
		}
		found = true
		if o.Status != RemovalRemoved {
			return false
		}
	}
	return found
}

// Blocked returns the outcomes that were stopped by consumers.
func (r *RemovalReport) Blocked() []RemovalOutcome {
	var out []RemovalOutcome
	for _, o := range r.Outcomes {
		if o.Status == RemovalBlocked {
			out = append(out, o)
		}
	}
	return out
}

// RemoveOptions controls the removal protocol.
type RemoveOptions struct {
	// Auto cascades into the dependencies of removed versions.
	Auto bool
	// Force deletes regardless of consumers.
	Force bool
	// Owner is the project performing the removal; its own localusers edge
	// never blocks.
	Owner *Consumer
}

// InstallOptions controls an install.
type InstallOptions struct {
	Owner *Consumer
	Force bool
}

// ItemStatus reports one absorbed payload of an install.
type ItemStatus struct {
	Name    string
	Version string
	Path    string
	Reused  bool
	Err     error
}

// InstallResult is the outcome of an install.
type InstallResult struct {
	// Entry is the registry entry for the top-level request.
	Entry *PackageEntry
	Items []ItemStatus
}

// Failed returns the items that could not be absorbed.
func (r *InstallResult) Failed() []ItemStatus {
	var out []ItemStatus
	for _, it := range r.Items {
		if it.Err != nil {
			out = append(out, it)
		}
	}
	return out
}

// LinkOptions controls a link.
type LinkOptions struct {
	// Transitive marks a link made on behalf of another package; dev
	// dependencies are skipped.
	Transitive bool
}

// LinkStatus reports one dependency handled by a link.
type LinkStatus struct {
	Name    string
	Range   string
	Version string
	Target  string
	Err     error
}

// Payload is a package directory discovered in a fetch scratch area.
type Payload struct {
	// Dir is the payload directory.
	Dir string
	// Parent is the directory of the payload it is nested under, empty at
	// the scratch root.
	Parent string
	// Depth counts the node_modules levels above the payload.
	Depth int
}

// ResolutionState is the terminal state of a module lookup.
type ResolutionState string

const (
	// StateRelative is a relative or absolute path handled by the host loader.
	StateRelative ResolutionState = "RELATIVE"
	// StateBuiltin is satisfied by the host loader without the registry.
	StateBuiltin ResolutionState = "BUILTIN"
	// StateBridged was redirected into the shared registry.
	StateBridged ResolutionState = "BRIDGED"
	// StateFailed could not be resolved.
	StateFailed ResolutionState = "FAILED"
)

// Resolution is the answer of a module lookup.
type Resolution struct {
	Specifier string
	// Path is the resolved file, or the specifier itself for core built-ins.
	Path  string
	State ResolutionState
}

// UpdateCandidate pairs an installed package with the newest published version.
type UpdateCandidate struct {
	Name      string
	Range     string
	Installed string
	Latest    string
}
