package gpxdata

import (
	"fmt"
	"io"
)

// Ingest applies the upload policy on top of ParseReader: the name must end
// in .gpx and the document must hold at least one track or waypoint. Errors
// match ErrInvalidExtension, ErrMalformedXML or ErrEmptyResult and carry the
// file name.
func Ingest(r io.Reader, fileName string) (*GPXData, error) {
	if !hasGPXSuffix(fileName) {
		return nil, fmt.Errorf("%s: %w", fileName, ErrInvalidExtension)
	}
	d, err := ParseReader(r, fileName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	if d.Empty() {
		return nil, fmt.Errorf("%s: %w", fileName, ErrEmptyResult)
	}
	return d, nil
}
