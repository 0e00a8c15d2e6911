package content

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/deckgen/deckgen/internal/domain/ports"
)

// Extractor turns uploaded files into plain text for the content
// generator. Markdown is rendered and stripped, YAML frontmatter
// supplies an optional title hint, and binary files degrade to a
// placeholder naming the file.
type Extractor struct {
	md     goldmark.Markdown
	strip  *bluemonday.Policy
	titler cases.Caser
}

// NewExtractor creates a content extractor.
func NewExtractor() *Extractor {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Strikethrough,
		),
	)

	return &Extractor{
		md:     md,
		strip:  bluemonday.StrictPolicy(),
		titler: cases.Title(language.English),
	}
}

var _ ports.ContentExtractor = (*Extractor)(nil)

// Extract returns the plain text of the file plus an optional title
// hint. Non-text content yields a synthesized placeholder naming the
// file so generation can still proceed.
func (e *Extractor) Extract(filename string, data []byte) (string, string) {
	if !utf8.Valid(data) || looksBinary(data) {
		return fmt.Sprintf("Content from file: %s", filename), ""
	}

	frontmatter, body := splitFrontmatter(data)
	titleHint := frontmatterTitle(frontmatter)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		text := e.markdownToText(body)
		if titleHint == "" {
			titleHint = firstHeading(body)
		}
		return text, titleHint
	default:
		return e.Sanitize(string(body)), titleHint
	}
}

// Sanitize strips markup from pasted text, returning plain text.
func (e *Extractor) Sanitize(text string) string {
	stripped := e.strip.Sanitize(text)
	return strings.TrimSpace(html.UnescapeString(stripped))
}

// TitleFromFilename derives a presentation title from a file name:
// extension dropped, separators spaced, words title-cased.
func (e *Extractor) TitleFromFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return ""
	}
	return e.titler.String(base)
}

// markdownToText renders markdown to HTML and strips every tag, leaving
// readable plain text.
func (e *Extractor) markdownToText(body []byte) string {
	var buf bytes.Buffer
	if err := e.md.Convert(body, &buf); err != nil {
		return strings.TrimSpace(string(body))
	}
	return e.Sanitize(buf.String())
}

// splitFrontmatter separates a leading YAML frontmatter block from the
// document body. Content without one passes through untouched.
func splitFrontmatter(data []byte) (map[string]interface{}, []byte) {
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return nil, data
	}

	lines := bytes.Split(data, []byte("\n"))
	end := -1
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, data
	}

	var fm map[string]interface{}
	raw := bytes.Join(lines[1:end], []byte("\n"))
	if err := yaml.Unmarshal(raw, &fm); err != nil {
		return nil, data
	}
	return fm, bytes.Join(lines[end+1:], []byte("\n"))
}

func frontmatterTitle(fm map[string]interface{}) string {
	if fm == nil {
		return ""
	}
	title, _ := fm["title"].(string)
	return strings.TrimSpace(title)
}

// firstHeading returns the text of the first markdown heading, if any.
func firstHeading(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
		}
	}
	return ""
}

// looksBinary reports whether data contains NUL bytes, a cheap signal
// that it is not a text document.
func looksBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0
}
