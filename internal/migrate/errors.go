package migrate

import "errors"

// Error kinds reported for a single document. Match with errors.Is.
var (
	ErrRetrieval   = errors.New("retrieval failed")
	ErrWrite       = errors.New("write failed")
	ErrPostProcess = errors.New("post-processing failed")
)
