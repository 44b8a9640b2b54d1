package materialize

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strings"

	"portfolio/internal/catalog"
	"portfolio/internal/fileutil"
	"portfolio/internal/rendition"
)

// localPrefix is the site path serving the output tree when no public base
// URL is configured.
const localPrefix = "/images"

// ManifestEntry maps one source file to its public fullscreen URL.
type ManifestEntry struct {
	Name string
	URL  string
}

type manifestSection struct {
	category catalog.Category
	entries  []ManifestEntry
}

// Manifest accumulates source-to-URL rows per category.
type Manifest struct {
	baseURL  string
	spec     rendition.Spec
	sections []*manifestSection
	index    map[string]*manifestSection
}

// NewManifest builds a manifest whose URLs point at the rendition described
// by spec beneath baseURL. An empty baseURL yields site-relative paths.
func NewManifest(baseURL string, spec rendition.Spec) *Manifest {
	return &Manifest{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		spec:    spec,
		index:   make(map[string]*manifestSection),
	}
}

// Add records a source image under its category.
func (m *Manifest) Add(category catalog.Category, img catalog.SourceImage) {
	section := m.section(category)
	section.entries = append(section.entries, ManifestEntry{
		Name: img.Name,
		URL:  m.URL(category, img.BaseName),
	})
}

// Len reports the number of recorded entries.
func (m *Manifest) Len() int {
	n := 0
	for _, s := range m.sections {
		n += len(s.entries)
	}
	return n
}

func (m *Manifest) section(category catalog.Category) *manifestSection {
	slug := category.Slug()
	if s, ok := m.index[slug]; ok {
		return s
	}
	s := &manifestSection{category: category}
	m.index[slug] = s
	m.sections = append(m.sections, s)
	return s
}

// URL returns the public location of a rendition. Every path segment is
// percent-encoded.
func (m *Manifest) URL(category catalog.Category, baseName string) string {
	segments := []string{
		url.PathEscape(category.Slug()),
		url.PathEscape(m.spec.Folder),
		url.PathEscape(baseName + m.spec.Format.Ext()),
	}
	prefix := m.baseURL
	if prefix == "" {
		prefix = localPrefix
	}
	return prefix + "/" + strings.Join(segments, "/")
}

// WriteTo renders one section per category:
//
//	wildlife
//	Original: Red Panda.JPG => S3 URL: https://bucket/wildlife/fullscreen/Red%20Panda.jpeg
func (m *Manifest) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	for i, s := range m.sections {
		if i > 0 {
			n, _ := bw.WriteString("\n")
			written += int64(n)
		}
		n, _ := fmt.Fprintf(bw, "%s\n", s.category.Name)
		written += int64(n)
		for _, e := range s.entries {
			n, _ := fmt.Fprintf(bw, "Original: %s => S3 URL: %s\n", e.Name, e.URL)
			written += int64(n)
		}
	}
	return written, bw.Flush()
}

// WriteFile atomically replaces path with the rendered manifest.
func (m *Manifest) WriteFile(path string) error {
	if err := fileutil.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
		_, err := m.WriteTo(w)
		return err
	}); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
