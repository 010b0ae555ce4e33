package sync

import "errors"

var (
	// ErrConflictAbort is returned when the user declines to proceed past
	// detected conflicts. It is a clean early return, not a failure: no
	// filesystem mutation and no manifest write has happened.
	ErrConflictAbort = errors.New("aborted: conflicts not confirmed")

	// ErrManifestMalformed is returned when a manifest file exists at the
	// remote root but cannot be parsed. A corrupt manifest is never silently
	// treated as empty.
	ErrManifestMalformed = errors.New("malformed sync manifest")

	// ErrRemoteLocked is returned when another invocation holds the advisory
	// lock on the remote root.
	ErrRemoteLocked = errors.New("remote root locked by another sync")
)
