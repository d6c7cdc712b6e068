package scraper

import (
	"errors"
	"fmt"
)

// Error conditions shared by the fetch, search, article and overview
// packages.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNetworkFailure  = errors.New("network failure")
	ErrMissingElement  = errors.New("missing element")
	ErrParseFailure    = errors.New("parse failure")
)

// FetchError describes a document that could not be fetched. A failed fetch
// leaves the caller without a document, so it matches both ErrNetworkFailure
// and ErrMissingElement under errors.Is.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is one of the conditions a failed fetch implies.
func (e *FetchError) Is(target error) bool {
	return target == ErrNetworkFailure || target == ErrMissingElement
}

// MissingElementError describes a selector that matched nothing in a fetched
// document.
type MissingElementError struct {
	URL      string
	Selector string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("%v: no element matches %q in %s", ErrMissingElement, e.Selector, e.URL)
}

func (e *MissingElementError) Is(target error) bool {
	return target == ErrMissingElement
}
