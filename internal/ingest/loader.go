package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/net/html"
)

// Document is a normalized plain-text document plus its metadata
type Document struct {
	ID          string    `json:"doc_id"`
	Title       string    `json:"title"`
	Collection  string    `json:"collection"`
	Path        string    `json:"path"`
	Text        string    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Loader converts files under a root directory into normalized text
// documents. Immediate subdirectories of the root are treated as collections
// (e.g., departments); files directly under the root land in "general".
//
// Only plain-text formats are handled here (.txt, .md, .html). Binary office
// formats need a dedicated extraction service and are skipped with a notice.
type Loader struct {
	include []string // doublestar glob patterns relative to the root
	verbose bool
}

// NewLoader creates a loader matching the given glob patterns
func NewLoader(include []string, verbose bool) *Loader {
	if len(include) == 0 {
		include = []string{"**/*.txt", "**/*.md", "**/*.html"}
	}
	return &Loader{include: include, verbose: verbose}
}

// LoadDir discovers and loads all matching documents under root
func (l *Loader) LoadDir(root string) ([]Document, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	paths, err := l.discover(root)
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}

	var documents []Document
	for _, path := range paths {
		doc, err := l.loadFile(root, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", path, err)
			continue
		}
		if doc.Text == "" {
			if l.verbose {
				fmt.Fprintf(os.Stderr, "Skipping %s: no text extracted\n", path)
			}
			continue
		}
		documents = append(documents, doc)
	}

	return documents, nil
}

// discover returns the sorted, deduplicated set of files matching the
// include patterns under root.
func (l *Loader) discover(root string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range l.include {
		matches, err := doublestar.Glob(os.DirFS(root), pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			full := filepath.Join(root, m)
			if seen[full] {
				continue
			}
			seen[full] = true
			paths = append(paths, full)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// loadFile extracts text from a single file based on its extension
func (l *Loader) loadFile(root, path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read file: %w", err)
	}

	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		text = string(data)
	case ".html", ".htm":
		text, err = extractHTMLText(string(data))
		if err != nil {
			return Document{}, fmt.Errorf("parse HTML: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}

	text = NormalizeText(text)

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	collection := "general"
	if parts := strings.SplitN(filepath.ToSlash(rel), "/", 2); len(parts) == 2 {
		collection = parts[0]
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return Document{
		ID:          docID(path),
		Title:       stem,
		Collection:  collection,
		Path:        path,
		Text:        text,
		ProcessedAt: time.Now().UTC(),
	}, nil
}

// extractHTMLText strips tags and returns the visible text content
func extractHTMLText(raw string) (string, error) {
	node, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		// Block elements separate paragraphs
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr":
				sb.WriteString("\n")
			}
		}
	}
	walk(node)

	return sb.String(), nil
}

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(`[ \t]{2,}`)
)

// NormalizeText cleans up whitespace: unifies newlines, collapses repeated
// blank lines and runs of spaces, and trims the result.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = multiNewline.ReplaceAllString(text, "\n\n")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func docID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}
