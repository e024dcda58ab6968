package roster

import "errors"

// Sentinel kinds for roster and game list errors.
var (
	ErrRosterMissing = errors.New("roster file missing")
	ErrRosterInvalid = errors.New("roster file invalid")
	ErrGamesMissing  = errors.New("games file missing")
	ErrRosterBuild   = errors.New("roster build failed")
)
