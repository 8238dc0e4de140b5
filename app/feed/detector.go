package feed

import (
	"github.com/lysyi3m/feedshelf/app/xmltree"
)

// Detect classifies a document by its top-level structure.
func Detect(doc *xmltree.Document) (Format, error) {
	if doc == nil || doc.Root == nil {
		return FormatUnknown, ErrUnsupportedFormat
	}

	switch {
	case doc.Root.Name == "rss" && doc.Root.Child("channel") != nil:
		return FormatRSS, nil
	case doc.Root.Name == "feed":
		return FormatAtom, nil
	default:
		return FormatUnknown, ErrUnsupportedFormat
	}
}

func mapDocument(doc *xmltree.Document) (*Feed, error) {
	format, err := Detect(doc)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatRSS:
		return mapRSS(doc)
	default:
		return mapAtom(doc)
	}
}
