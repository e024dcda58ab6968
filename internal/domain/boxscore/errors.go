package boxscore

import "errors"

// ErrMalformedPayload means the header has no game id or no competition.
var ErrMalformedPayload = errors.New("boxscore: malformed payload")
