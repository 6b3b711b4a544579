// Package markdown parses authored documents: a yaml front-matter block
// delimited by --- lines, followed by the post body.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Asset references inside the corpus point at the static site's image
	// root; the backend serves the same files under /content.
	assetPrefix     = "/images/posts"
	rewrittenPrefix = "/content/images/posts"
)

var frontMatterRe = regexp.MustCompile(`(?s)---\n(.*?)\n---`)

// Document is a parsed source file: front-matter metadata plus the body with
// the metadata block stripped and asset paths rewritten.
type Document struct {
	FrontMatter map[string]any
	Body        string
}

// Parse extracts the front-matter block and body from raw document text.
// A document without a front-matter block yields empty metadata and the
// whole input as body. A malformed block is an error, never partial
// metadata.
func Parse(raw string) (*Document, error) {
	doc := &Document{FrontMatter: map[string]any{}}

	m := frontMatterRe.FindStringSubmatch(raw)
	if m != nil {
		if err := yaml.Unmarshal([]byte(m[1]), &doc.FrontMatter); err != nil {
			return nil, fmt.Errorf("parse front matter: %w", err)
		}
		if doc.FrontMatter == nil {
			doc.FrontMatter = map[string]any{}
		}
		raw = strings.Replace(raw, m[0], "", 1)
	}

	doc.Body = strings.ReplaceAll(raw, assetPrefix, rewrittenPrefix)
	return doc, nil
}

// Str returns the front-matter value for key as a string, or "" when the
// key is absent or not a scalar string.
func (d *Document) Str(key string) string {
	s, _ := d.FrontMatter[key].(string)
	return s
}

// DateMillis returns the front-matter date as epoch milliseconds. The yaml
// decoder already resolves unquoted timestamps to time.Time; quoted dates
// are accepted as 2006-01-02 or RFC3339 strings.
func (d *Document) DateMillis() (int64, bool) {
	switch v := d.FrontMatter["date"].(type) {
	case time.Time:
		return v.UnixMilli(), true
	case string:
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UnixMilli(), true
			}
		}
	}
	return 0, false
}
