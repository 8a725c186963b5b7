package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidArgument is returned when an operation is called with an invalid argument shape.
	ErrInvalidArgument = zerr.New("invalid argument")

	// ErrInvalidVersionRange is returned when a version range cannot be parsed.
	ErrInvalidVersionRange = zerr.New("invalid version range")

	// ErrPermissionDenied is returned when the registry root is not writable.
	ErrPermissionDenied = zerr.New("registry root is not writable")

	// ErrRemoteQueryFailed is returned when the package client cannot report the latest version.
	ErrRemoteQueryFailed = zerr.New("failed to query the package client")

	// ErrClientOutputInvalid is returned when the package client prints something other than a version.
	ErrClientOutputInvalid = zerr.New("unexpected package client output")

	// ErrFetchFailed is returned when the package client fails to fetch a package.
	ErrFetchFailed = zerr.New("failed to fetch package")

	// ErrInstallIncomplete is returned when the requested package could not be absorbed.
	ErrInstallIncomplete = zerr.New("install did not complete")

	// ErrNothingFetched is returned when the scratch area contains no package payloads.
	ErrNothingFetched = zerr.New("package client produced no packages")

	// ErrPackageNotInstalled is returned when no installed version satisfies a request.
	ErrPackageNotInstalled = zerr.New("package is not installed")

	// ErrModuleNotFound is returned when a module specifier cannot be resolved.
	ErrModuleNotFound = zerr.New("cannot find module")

	// ErrBuiltinUnavailable is returned when a host built-in has no implementation in the embedded runtime.
	ErrBuiltinUnavailable = zerr.New("built-in module is not available in this runtime")

	// ErrScriptFailed is returned when a script run in the embedded runtime throws.
	ErrScriptFailed = zerr.New("script failed")

	// ErrManifestNotFound is returned when no package.json is found walking up from a directory.
	ErrManifestNotFound = zerr.New("could not find package.json")

	// ErrManifestReadFailed is returned when a manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read package.json")

	// ErrManifestParseFailed is returned when a manifest is not valid JSON.
	ErrManifestParseFailed = zerr.New("failed to parse package.json")

	// ErrManifestWriteFailed is returned when a manifest cannot be written back.
	ErrManifestWriteFailed = zerr.New("failed to write package.json")

	// ErrRegistryReadFailed is returned when the registry document cannot be read.
	ErrRegistryReadFailed = zerr.New("failed to read registry")

	// ErrRegistryMarshalFailed is returned when the registry cannot be marshaled.
	ErrRegistryMarshalFailed = zerr.New("failed to marshal registry")

	// ErrRegistryWriteFailed is returned when the registry document cannot be written.
	ErrRegistryWriteFailed = zerr.New("failed to write registry")

	// ErrScratchCreateFailed is returned when the scratch directory for a fetch cannot be created.
	ErrScratchCreateFailed = zerr.New("failed to create scratch directory")

	// ErrPayloadDiscoveryFailed is returned when the scratch area cannot be scanned.
	ErrPayloadDiscoveryFailed = zerr.New("failed to discover package payloads")

	// ErrPayloadCopyFailed is returned when a payload cannot be copied into the registry.
	ErrPayloadCopyFailed = zerr.New("failed to copy package payload")

	// ErrPayloadRemoveFailed is returned when a payload directory cannot be deleted.
	ErrPayloadRemoveFailed = zerr.New("failed to remove package payload")

	// ErrLinkFailed is returned when a symlink or shim cannot be created.
	ErrLinkFailed = zerr.New("failed to link package")

	// ErrLinkOccupied is returned when a link location holds something that is not a link.
	ErrLinkOccupied = zerr.New("link location is occupied by a real file or directory")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrHomeNotFound is returned when the user's home directory cannot be determined.
	ErrHomeNotFound = zerr.New("failed to determine home directory")
)
