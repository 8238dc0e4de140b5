package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/feedshelf/app/xmltree"
	"github.com/mmcdole/gofeed"
)

// Parser fetches a feed, deserializes it and maps it to the normalized schema.
// It holds no mutable state and is safe for concurrent use.
type Parser struct {
	fetcher Fetcher
	decoder Decoder
}

func NewParser(fetcher Fetcher, decoder Decoder) *Parser {
	if decoder == nil {
		decoder = xmltree.NewDecoder()
	}
	return &Parser{
		fetcher: fetcher,
		decoder: decoder,
	}
}

// ParseFeed returns the normalized feed behind url.
// Any failure is reported as *FetchOrParseError.
func (p *Parser) ParseFeed(ctx context.Context, url string) (*Feed, error) {
	if p.fetcher == nil {
		return nil, p.fail(url, nil, errors.New("no fetcher configured"))
	}

	data, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		if !errors.Is(err, ErrTransport) {
			err = fmt.Errorf("%w: %w", ErrTransport, err)
		}
		return nil, p.fail(url, nil, err)
	}

	result, err := p.run(data)
	if err != nil {
		return nil, p.fail(url, data, err)
	}

	slog.Debug("Feed parsed", "url", url, "items", len(result.Items))
	return result, nil
}

// Parse maps an already fetched payload, with the same error contract as ParseFeed.
func (p *Parser) Parse(data []byte) (*Feed, error) {
	result, err := p.run(data)
	if err != nil {
		return nil, p.fail("", data, err)
	}
	return result, nil
}

func (p *Parser) run(data []byte) (*Feed, error) {
	doc, err := p.decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedXML, err)
	}
	return mapDocument(doc)
}

func (p *Parser) fail(url string, data []byte, cause error) error {
	kind := classify(cause)

	attrs := []any{"url", url, "kind", string(kind), "error", cause}
	if (kind == KindUnsupportedFormat || kind == KindMalformedXML) && data != nil {
		attrs = append(attrs, "detected", detectedType(data))
	}
	slog.Error("Failed to fetch or parse feed", attrs...)

	return &FetchOrParseError{Kind: kind, URL: url}
}

// detectedType reports what gofeed's sniffer makes of a payload we could not map.
func detectedType(data []byte) string {
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeRSS:
		return "rss"
	case gofeed.FeedTypeAtom:
		return "atom"
	case gofeed.FeedTypeJSON:
		return "json"
	default:
		return "unknown"
	}
}
