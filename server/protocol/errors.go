package protocol

import "errors"

// errors for parsing
var (
	ErrTruncatedRequest = errors.New("truncated request line")
	ErrBadContentLength = errors.New("malformed Content-Length")
)
