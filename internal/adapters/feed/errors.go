package feed

import "errors"

// Sentinel kinds for feed errors.
var (
	ErrParse = errors.New("feed parse failed")
)
