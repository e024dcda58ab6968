package updater

import "errors"

var (
	ErrConflictingModes = errors.New("only one of -seed, -rebuild, -build-roster may be set")
	ErrWeights          = errors.New("invalid score weights")
)
