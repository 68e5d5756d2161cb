package importer

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Parser turns markdown files into note titles and bodies.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a new goldmark-backed Parser.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Parse returns the note title and body for a markdown file.
// The title is the first top-level level 1 heading, else the first top-level
// level 2 heading, else the capitalized filename. Headings nested in quotes or
// lists are ignored. The body is the whole file, trimmed.
func (p *Parser) Parse(content []byte, filename string) (title, body string) {
	body = strings.TrimSpace(string(content))
	if body == "" {
		return titleFromFilename(filename), ""
	}

	doc := p.md.Parser().Parse(text.NewReader(content))
	var fallback string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level > 2 {
			continue
		}
		t := strings.TrimSpace(plainText(heading, content))
		switch {
		case t == "":
		case heading.Level == 1:
			return t, body
		case fallback == "":
			fallback = t
		}
	}
	if fallback != "" {
		return fallback, body
	}
	return titleFromFilename(filename), body
}

// titleFromFilename drops the extension and capitalizes each word.
// Dashes and underscores separate words.
func titleFromFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	words := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	})
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}

// plainText concatenates the text of n's inline descendants, dropping markup.
func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(src))
			if v.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		default:
			sb.WriteString(plainText(c, src))
		}
	}
	return sb.String()
}
