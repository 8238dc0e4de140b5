package feed

import (
	"regexp"
	"strings"
)

// Single-match heuristics over HTML fragments; not an HTML parser.
var (
	imageSourcePattern    = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)
	figcaptionEmPattern   = regexp.MustCompile(`<figcaption[^>]*>.*?<em>(.*?)</em>.*?</figcaption>`)
	firstParagraphPattern = regexp.MustCompile(`<p\b[^>]*>(.*?)</p>`)
)

// ExtractImageSource returns the src of the first <img> tag.
func ExtractImageSource(c Content) (string, bool) {
	return firstSubmatch(imageSourcePattern, c)
}

// ExtractFigcaptionEmContent returns the trimmed text of the first <em> inside the first <figcaption>.
func ExtractFigcaptionEmContent(c Content) (string, bool) {
	match, ok := firstSubmatch(figcaptionEmPattern, c)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(match), true
}

// ExtractFirstParagraphContent returns the inner markup of the first <p> element.
func ExtractFirstParagraphContent(c Content) (string, bool) {
	return firstSubmatch(firstParagraphPattern, c)
}

func firstSubmatch(pattern *regexp.Regexp, c Content) (string, bool) {
	text, ok := ContentString(c)
	if !ok {
		return "", false
	}
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}
