package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound        = errors.New("document not found")
	ErrInvalidID       = errors.New("invalid document id")
	ErrTeamNotInGame   = errors.New("team not in game")
	ErrCorruptDocument = errors.New("corrupt document")
)

// warning marks an error that skips one merge without failing the run.
type warning struct{ err error }

func (w warning) Error() string { return w.err.Error() }
func (w warning) Unwrap() error { return w.err }

// IsWarning reports whether err is a warning-kind error.
func IsWarning(err error) bool {
	var w warning
	return errors.As(err, &w)
}
