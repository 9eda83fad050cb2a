package browser

import (
	"html"
	"regexp"
	"strings"
)

type TokenKind int

const (
	TokenText TokenKind = iota
	TokenColored
	TokenBreak
)

// Token is one rendered piece of a description.
type Token struct {
	Kind  TokenKind
	Value string
	Color string // only for TokenColored
}

var (
	lineBreakRegex = regexp.MustCompile(`(?i)<br\s*/?>|\r?\n`)
	coloredRegex   = regexp.MustCompile(`(?is)<font\s+color\s*=\s*["']?([^"'\s>]+)["']?\s*>(.*?)</font>`)
	fontOpenRegex  = regexp.MustCompile(`(?i)<font\b`)
	anyTagRegex    = regexp.MustCompile(`<[^>]*>`)
	fontCloseRegex = regexp.MustCompile(`(?i)</font\s*>`)
)

// ParseDescription splits description markup into text, colored span and
// line break tokens. Only one level of <font color> is understood; a segment
// whose font markup does not match is kept as raw text.
func ParseDescription(raw string) []Token {
	var tokens []Token
	for i, segment := range lineBreakRegex.Split(raw, -1) {
		if i > 0 {
			tokens = append(tokens, Token{Kind: TokenBreak})
		}
		tokens = append(tokens, parseSegment(segment)...)
	}
	return tokens
}

func parseSegment(segment string) []Token {
	matches := coloredRegex.FindAllStringSubmatchIndex(segment, -1)
	if len(matches) == 0 {
		if fontOpenRegex.MatchString(segment) {
			return textToken(html.UnescapeString(segment))
		}
		return textToken(cleanText(segment))
	}

	var tokens []Token
	last := 0
	for _, m := range matches {
		tokens = append(tokens, textToken(cleanText(segment[last:m[0]]))...)
		if value := cleanText(segment[m[4]:m[5]]); value != "" {
			tokens = append(tokens, Token{Kind: TokenColored, Value: value, Color: segment[m[2]:m[3]]})
		}
		last = m[1]
	}
	tail := fontCloseRegex.ReplaceAllString(segment[last:], "")
	return append(tokens, textToken(cleanText(tail))...)
}

func textToken(s string) []Token {
	if s == "" {
		return nil
	}
	return []Token{{Kind: TokenText, Value: s}}
}

func cleanText(s string) string {
	return html.UnescapeString(anyTagRegex.ReplaceAllString(s, ""))
}

// PlainText flattens tokens, turning breaks into newlines.
func PlainText(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.Kind == TokenBreak {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(t.Value)
	}
	return b.String()
}

// Collapse keeps the first maxLines lines. It reports whether anything was cut.
func Collapse(tokens []Token, maxLines int) ([]Token, bool) {
	if maxLines <= 0 {
		return tokens, false
	}
	lines := 1
	for i, t := range tokens {
		if t.Kind != TokenBreak {
			continue
		}
		if lines == maxLines {
			return tokens[:i], true
		}
		lines++
	}
	return tokens, false
}
