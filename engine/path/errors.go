package path

import "errors"

// errEmptyPath is returned by Parse when given an empty string.
var errEmptyPath = errors.New("path: empty path")
