package gpxdata

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedXML is matched by every *ParseError.
	ErrMalformedXML = errors.New("malformed GPX XML")
	// ErrEmptyResult means the file parsed but had no tracks and no waypoints.
	ErrEmptyResult = errors.New("no tracks or waypoints found")
	// ErrInvalidExtension means the file name does not end in .gpx.
	ErrInvalidExtension = errors.New("not a .gpx file")
)

// ParseError is returned when the input is not well-formed XML.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v at line %d: %v", ErrMalformedXML, e.Line, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrMalformedXML, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrMalformedXML, e.Err} }
