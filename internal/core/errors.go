package core

import "errors"

var (
	ErrPersonaNotFound     = errors.New("persona not found")
	ErrUpstreamUnavailable = errors.New("generative backend unavailable")
	ErrUnsupportedUpload   = errors.New("unsupported upload type")
)
