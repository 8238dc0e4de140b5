package feed

import (
	"errors"
	"fmt"
)

var (
	ErrTransport         = errors.New("transport failure")
	ErrMalformedXML      = errors.New("malformed XML")
	ErrUnsupportedFormat = errors.New("unsupported feed format")
	ErrInvalidStructure  = errors.New("invalid feed structure")
)

type ErrorKind string

const (
	KindTransport         ErrorKind = "transport"
	KindMalformedXML      ErrorKind = "malformed_xml"
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindInvalidStructure  ErrorKind = "invalid_structure"
)

// FetchOrParseError is the single error returned by Parser for any failure.
// The root cause is logged, not carried.
type FetchOrParseError struct {
	Kind ErrorKind
	URL  string
}

func (e *FetchOrParseError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("failed to fetch or parse the feed (%s)", e.Kind)
	}
	return fmt.Sprintf("failed to fetch or parse the feed %s (%s)", e.URL, e.Kind)
}

// Is matches the sentinel that corresponds to the error kind.
func (e *FetchOrParseError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

var kindSentinels = map[ErrorKind]error{
	KindTransport:         ErrTransport,
	KindMalformedXML:      ErrMalformedXML,
	KindUnsupportedFormat: ErrUnsupportedFormat,
	KindInvalidStructure:  ErrInvalidStructure,
}

func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrMalformedXML):
		return KindMalformedXML
	case errors.Is(err, ErrUnsupportedFormat):
		return KindUnsupportedFormat
	default:
		return KindInvalidStructure
	}
}
