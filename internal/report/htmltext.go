package report

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags are the elements whose boundaries become newlines when clinical
// notes are flattened to plain text.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "table": true, "blockquote": true,
}

// StripMarkup flattens note markup to plain text: block-level tags become
// newlines, inline tags are removed, and HTML entities are unescaped. Runs
// of blank lines collapse to one newline. Malformed markup never fails; the
// tokenizer consumes whatever it is given.
func StripMarkup(s string) string {
	tok := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder

	for {
		switch tok.Next() {
		case html.ErrorToken:
			return collapseLines(b.String())
		case html.TextToken:
			b.Write(tok.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := tok.TagName()
			if blockTags[string(name)] {
				b.WriteString("\n")
			}
		}
	}
}

func collapseLines(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
