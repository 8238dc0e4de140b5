package feed

import (
	"testing"

	"github.com/lysyi3m/feedshelf/app/xmltree"
)

func TestContentString(t *testing.T) {
	tests := []struct {
		name     string
		content  Content
		expected string
		found    bool
	}{
		{"absent", Content{Kind: ContentAbsent}, "", false},
		{"plain text", Content{Kind: ContentText, Text: "  hello "}, "  hello ", true},
		{"empty text", Content{Kind: ContentText}, "", true},
		{"mixed payload wins", Content{Kind: ContentMixed, Text: "payload", Paragraphs: []string{"p1"}}, "payload", true},
		{"mixed paragraphs and caption", Content{Kind: ContentMixed, Paragraphs: []string{"one", "two"}, Captions: []string{" cap "}}, "one two cap", true},
		{"mixed single paragraph", Content{Kind: ContentMixed, Paragraphs: []string{"only"}}, "only", true},
		{"mixed empty", Content{Kind: ContentMixed, Paragraphs: []string{" "}}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ContentString(tt.content)
			if ok != tt.found {
				t.Errorf("Expected found=%v, got: %v", tt.found, ok)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got: %q", tt.expected, got)
			}
		})
	}
}

func TestContentOf(t *testing.T) {
	if c := ContentOf(nil); c.Kind != ContentAbsent {
		t.Errorf("Expected absent content, got kind: %d", c.Kind)
	}

	leaf := &xmltree.Node{Name: "description", Text: "<p>x</p>"}
	if c := ContentOf(leaf); c.Kind != ContentText || c.Text != "<p>x</p>" {
		t.Errorf("Expected text content, got: %+v", c)
	}

	mixed := &xmltree.Node{
		Name: "description",
		Text: "\n  \n",
		Children: []*xmltree.Node{
			{Name: "p", Text: "first"},
			{Name: "span", Text: "ignored"},
			{Name: "figcaption", Text: "caption"},
		},
	}
	c := ContentOf(mixed)
	if c.Kind != ContentMixed {
		t.Fatalf("Expected mixed content, got kind: %d", c.Kind)
	}
	if c.Text != "" {
		t.Errorf("Expected whitespace payload to be dropped, got: %q", c.Text)
	}
	if got, _ := ContentString(c); got != "firstcaption" {
		t.Errorf("Expected 'firstcaption', got: %q", got)
	}
}

func TestExtractImageSource(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		found    bool
	}{
		{"no image", "<p>No image here</p>", "", false},
		{"single image", `<img src="https://example.com/a.png">`, "https://example.com/a.png", true},
		{"attributes before src", `<img alt="x" width="10" src="b.jpg" />`, "b.jpg", true},
		{"first of many", `<img src="first.jpg"><img src="second.jpg">`, "first.jpg", true},
		{"single quotes are not matched", `<img src='a.jpg'>`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractImageSource(Content{Kind: ContentText, Text: tt.text})
			if ok != tt.found || got != tt.expected {
				t.Errorf("Expected (%q, %v), got: (%q, %v)", tt.expected, tt.found, got, ok)
			}
		})
	}

	if _, ok := ExtractImageSource(Content{Kind: ContentAbsent}); ok {
		t.Error("Expected absent content to yield nothing")
	}
}

func TestExtractFigcaptionEmContent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		found    bool
	}{
		{"no figcaption", "<em>loose</em>", "", false},
		{"figcaption without em", "<figcaption>plain</figcaption>", "", false},
		{"unterminated figcaption", "<figcaption><em>x</em>", "", false},
		{"trimmed em", `<figcaption class="c">By <em>  Someone </em> 2023</figcaption>`, "Someone", true},
		{"first em only", "<figcaption><em>one</em><em>two</em></figcaption>", "one", true},
		{"first figcaption only", "<figcaption><em>a</em></figcaption><figcaption><em>b</em></figcaption>", "a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractFigcaptionEmContent(Content{Kind: ContentText, Text: tt.text})
			if ok != tt.found || got != tt.expected {
				t.Errorf("Expected (%q, %v), got: (%q, %v)", tt.expected, tt.found, got, ok)
			}
		})
	}
}

func TestExtractFirstParagraphContent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		found    bool
	}{
		{"no paragraph", "<div>text</div>", "", false},
		{"simple", "<p>Hello</p>", "Hello", true},
		{"attributes and nested markup", `<p class="x">A <a href="#">link</a></p><p>B</p>`, `A <a href="#">link</a>`, true},
		{"does not match pre", "<pre>code</pre><p>para</p>", "para", true},
		{"untrimmed", "<p> spaced </p>", " spaced ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractFirstParagraphContent(Content{Kind: ContentText, Text: tt.text})
			if ok != tt.found || got != tt.expected {
				t.Errorf("Expected (%q, %v), got: (%q, %v)", tt.expected, tt.found, got, ok)
			}
		})
	}
}
