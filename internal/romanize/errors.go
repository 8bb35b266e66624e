package romanize

import "errors"

// ErrInvalidTag is returned for empty or malformed language tags.
var ErrInvalidTag = errors.New("invalid language tag")
