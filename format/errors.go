package format

import "errors"

// ErrBadHeader is returned when the file header's magic or version does
// not match, or the header is truncated.
var ErrBadHeader = errors.New("format: bad header")

// ErrBadTable is returned when the chunk table is truncated or
// inconsistent with the header.
var ErrBadTable = errors.New("format: bad chunk table")
