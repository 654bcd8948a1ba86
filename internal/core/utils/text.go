package utils

import (
	"regexp"
	"strings"
)

var (
	markdownImageRe = regexp.MustCompile(`!\[[^\]]*\]\([^\)]+\)`)
	htmlImageRe     = regexp.MustCompile(`<img[^>]*>`)
	codeBlockRe     = regexp.MustCompile("```[^`]*```")
	inlineCodeRe    = regexp.MustCompile("`[^`]*`")
	markdownLinkRe  = regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`)
	emphasisRe      = regexp.MustCompile(`[*_]{1,2}([^*_]+)[*_]{1,2}`)
	htmlTagRe       = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	blankLinesRe    = regexp.MustCompile(`\n\s*\n`)
)

// StripImages removes markdown and HTML image references from text.
func StripImages(text string) string {
	if text == "" {
		return ""
	}
	text = markdownImageRe.ReplaceAllString(text, "")
	text = htmlImageRe.ReplaceAllString(text, "")
	text = blankLinesRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// FirstNWords extracts the first n words of text after stripping images,
// markdown formatting and HTML tags. An ellipsis is appended when the text
// was longer.
func FirstNWords(text string, n int) string {
	if text == "" {
		return ""
	}

	text = StripImages(text)
	text = codeBlockRe.ReplaceAllString(text, "")
	text = inlineCodeRe.ReplaceAllString(text, "")
	text = markdownLinkRe.ReplaceAllString(text, "$1")
	text = emphasisRe.ReplaceAllString(text, "$1")
	text = htmlTagRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "..."
}
