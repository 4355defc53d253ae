package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest        = errors.New("bad request")
	ErrMissingTemplateID = errors.New("missing template_id")
)
