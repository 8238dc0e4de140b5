package feed

import (
	"cmp"
	"fmt"

	"github.com/lysyi3m/feedshelf/app/xmltree"
)

func mapRSS(doc *xmltree.Document) (*Feed, error) {
	var channel *xmltree.Node
	if doc != nil && doc.Root != nil && doc.Root.Name == "rss" {
		channel = doc.Root.Child("channel")
	}
	if channel == nil {
		return nil, fmt.Errorf("failed to map RSS feed: missing channel: %w", ErrInvalidStructure)
	}

	title := cmp.Or(textOf(channel.Child("title")), UntitledFeed)

	nodes := channel.ChildrenNamed("item")
	items := make([]Item, 0, len(nodes))
	for _, node := range nodes {
		items = append(items, normalizeRSSItem(node))
	}

	return &Feed{Title: &title, Items: items}, nil
}

func normalizeRSSItem(node *xmltree.Node) Item {
	description := node.Child("description")
	body := ContentOf(firstPresent(description, node.Child("content")))
	mediaDescription := textOf(node.Child("media:description"))

	caption, _ := ExtractFigcaptionEmContent(body)
	paragraph, _ := ExtractFirstParagraphContent(body)

	item := Item{
		Title:       cmp.Or(textOf(node.Child("title")), NoTitle),
		Description: cmp.Or(caption, textOf(description), mediaDescription),
		Content:     cmp.Or(paragraph, mediaDescription),
		Link:        textOf(node.Child("link")),
		Author:      cmp.Or(textOf(node.Child("media:credit")), textOf(node.Child("author")), UnknownAuthor),
		PublishedAt: textOf(node.Child("pubDate")),
		Favorite:    false,
	}

	if src, ok := ExtractImageSource(body); ok {
		item.ImageSource = &src
	}

	return item
}
