package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested content unit does not exist
	ErrItemNotFound = errors.New("content unit not found")

	// ErrServerOffline indicates the content API is unreachable
	ErrServerOffline = errors.New("content API is unreachable")

	// ErrDecode indicates the API answered with a body that is not the expected JSON
	ErrDecode = errors.New("malformed response")

	// ErrVideoNotFound indicates a content unit has no video in the UI language
	ErrVideoNotFound = errors.New("video not found")
)

// FetchError is returned by every remote read that failed in transport or decoding
type FetchError struct {
	Op  string // "lessons", "collections", "content_unit", "thumbnail"
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
