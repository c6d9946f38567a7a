// Package envelope defines the uniform response structure every tool handler
// returns: an ordered list of content blocks plus an error flag. Formatting
// helpers live here so call-sequencing code never builds ad hoc strings.
package envelope

import (
	"fmt"
	"unicode/utf8"
)

// ContentKind identifies the shape of a content block.
type ContentKind string

const (
	// KindText is a human-readable UTF-8 text block
	KindText ContentKind = "text"
	// KindResource is a payload addressed by URI
	KindResource ContentKind = "resource"
)

// Content is a single block of a tool response.
type Content struct {
	Type ContentKind `json:"type"`
	Text string      `json:"text,omitempty"`
	URI  string      `json:"uri,omitempty"`
}

// Result is the envelope returned by every tool invocation. A Result always
// carries at least one content block, on error paths included.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// TextContent builds a text content block.
func TextContent(text string) Content {
	return Content{Type: KindText, Text: text}
}

// ResourceContent builds a resource content block.
func ResourceContent(uri, text string) Content {
	return Content{Type: KindResource, URI: uri, Text: text}
}

// Text builds a success envelope with a single text block.
func Text(text string) Result {
	return Result{Content: []Content{TextContent(text)}}
}

// Textf builds a success envelope with a single formatted text block.
func Textf(format string, args ...interface{}) Result {
	return Text(fmt.Sprintf(format, args...))
}

// Errorf builds an error envelope with a single formatted text block.
func Errorf(format string, args ...interface{}) Result {
	return Result{
		Content: []Content{TextContent(fmt.Sprintf(format, args...))},
		IsError: true,
	}
}

// Ellipsis is appended whenever Truncate shortens its input.
const Ellipsis = "..."

// Truncate caps s at limit characters. When the original exceeds the cap the
// returned string is exactly the first limit characters followed by Ellipsis;
// shorter inputs come back unmodified. The cap counts runes, not bytes, so
// multi-byte text is never cut mid-rune.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + Ellipsis
}
