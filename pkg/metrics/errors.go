package metrics

import "errors"

// ErrUnknownStage is returned for a stage label outside the fixed set.
var ErrUnknownStage = errors.New("metrics: unknown stage")
