package constants

import "errors"

// Codec errors
var (
	ErrEmptySet             = errors.New("no objects specified")
	ErrMissingRemoteID      = errors.New("no remote identifier specified")
	ErrMalformedSet         = errors.New("malformed sequence set")
	ErrMalformedCollection  = errors.New("malformed collection")
	ErrMalformedFetchResult = errors.New("malformed item fetch result")
	ErrMalformedCachePolicy = errors.New("malformed cache policy")
)

// Token errors
var (
	ErrUnexpectedEnd   = errors.New("unexpected end of data")
	ErrMalformedList   = errors.New("malformed parenthesized list")
	ErrMalformedString = errors.New("malformed string")
	ErrMalformedNumber = errors.New("malformed number")
)
