package fits

import "errors"

// Common errors.
var (
	ErrNotFITS     = errors.New("not a FITS file")
	ErrBadHeader   = errors.New("malformed FITS header")
	ErrBadValue    = errors.New("malformed header value")
	ErrTruncated   = errors.New("file truncated inside a block")
	ErrUnsupported = errors.New("unsupported FITS feature")
)
