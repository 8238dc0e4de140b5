package feed

import (
	"cmp"
	"fmt"

	"github.com/lysyi3m/feedshelf/app/xmltree"
)

// mapAtom maps an Atom document. Unlike RSS, the feed title gets no default
// and Favorite is left at its zero value.
func mapAtom(doc *xmltree.Document) (*Feed, error) {
	if doc == nil || doc.Root == nil || doc.Root.Name != "feed" {
		return nil, fmt.Errorf("failed to map Atom feed: missing feed element: %w", ErrInvalidStructure)
	}
	root := doc.Root

	result := &Feed{}
	if titleNode := root.Child("title"); titleNode != nil {
		title := textOf(titleNode)
		result.Title = &title
	}

	entries := root.ChildrenNamed("entry")
	result.Items = make([]Item, 0, len(entries))
	for _, entry := range entries {
		result.Items = append(result.Items, normalizeAtomEntry(entry))
	}

	return result, nil
}

func normalizeAtomEntry(entry *xmltree.Node) Item {
	summary := entry.Child("summary")
	content := entry.Child("content")

	caption, _ := ExtractFigcaptionEmContent(ContentOf(firstPresent(summary, content)))
	paragraph, _ := ExtractFirstParagraphContent(ContentOf(firstPresent(content, summary)))

	item := Item{
		Title:       textOf(entry.Child("title")),
		Link:        primaryLink(entry),
		Description: cmp.Or(caption, textOf(summary)),
		Content:     paragraph,
		Author:      cmp.Or(textOf(entry.Child("author").Child("name")), UnknownAuthor),
		PublishedAt: textOf(entry.Child("published")),
	}

	if src, ok := ExtractImageSource(ContentOf(firstPresent(content, summary))); ok {
		item.ImageSource = &src
	}

	return item
}

// primaryLink picks the alternate link of an entry, falling back to the first link.
func primaryLink(entry *xmltree.Node) string {
	links := entry.ChildrenNamed("link")
	for _, link := range links {
		rel, _ := link.Attr("rel")
		if rel == "" || rel == "alternate" {
			href, _ := link.Attr("href")
			return href
		}
	}
	if len(links) > 0 {
		href, _ := links[0].Attr("href")
		return href
	}
	return ""
}
