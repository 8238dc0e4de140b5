package feed

import (
	"context"

	"github.com/lysyi3m/feedshelf/app/xmltree"
)

const (
	UntitledFeed  = "Untitled Feed"
	NoTitle       = "No Title"
	UnknownAuthor = "Unknown Author"
)

// Feed is the normalized, format-independent result of parsing a feed.
// Title is nil when the source has none and no default applies (Atom).
type Feed struct {
	Title *string `json:"title"`
	Items []Item  `json:"items"`
}

type Item struct {
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	Description string  `json:"description"`
	Content     string  `json:"content"`
	ImageSource *string `json:"imageSource"`
	Author      string  `json:"author"`
	PublishedAt string  `json:"publishedAt"` // verbatim from the source
	Favorite    bool    `json:"favorite"`
}

type Format int

const (
	FormatUnknown Format = iota
	FormatRSS
	FormatAtom
)

func (f Format) String() string {
	switch f {
	case FormatRSS:
		return "rss"
	case FormatAtom:
		return "atom"
	default:
		return "unknown"
	}
}

// Fetcher returns the raw payload behind a feed URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Decoder turns a raw payload into a generic document tree.
type Decoder interface {
	Decode(data []byte) (*xmltree.Document, error)
}

var _ Decoder = (*xmltree.Decoder)(nil)
var _ Fetcher = (*HTTPFetcher)(nil)
