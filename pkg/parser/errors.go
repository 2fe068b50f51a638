package parser

import "errors"

// ErrUnsupported is returned for files no parser handles.
var ErrUnsupported = errors.New("unsupported file type")
