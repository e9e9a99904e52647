// Package extractors routes raw files to the extractor for their format.
package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdoc-labs/askdoc-cli/internal/extractors/docx"
	"github.com/askdoc-labs/askdoc-cli/internal/extractors/markdown"
	"github.com/askdoc-labs/askdoc-cli/internal/extractors/pdf"
	"github.com/askdoc-labs/askdoc-cli/internal/extractors/plaintext"
)

// Registry selects an extractor by file extension.
type Registry struct {
	byExt map[string]driven.Extractor
}

// NewRegistry creates a registry over the given extractors.
// A later extractor claiming an already-registered extension wins.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{byExt: make(map[string]driven.Extractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[strings.ToLower(ext)] = e
		}
	}
	return r
}

// Default creates a registry with all built-in extractors.
func Default() *Registry {
	return NewRegistry(
		plaintext.New(),
		markdown.New(),
		pdf.New(),
		docx.New(),
	)
}

// Extract converts the raw file bytes into plain text based on the filename
// extension. Returns domain.ErrUnsupportedFormat for unknown extensions.
func (r *Registry) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	extractor, ok := r.byExt[ext]
	if !ok {
		return "", fmt.Errorf("%q: %w", ext, domain.ErrUnsupportedFormat)
	}
	return extractor.Extract(ctx, data)
}

// Supported reports whether the filename has a recognised extension.
func (r *Registry) Supported(filename string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
