// Package catalog holds display metadata for the supported format tokens.
package catalog

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/formats.yaml
var configFiles embed.FS

const defaultContentType = "application/octet-stream"

// Registry is an immutable, ordered set of formats. Safe for concurrent use.
type Registry struct {
	formats []Format
	byToken map[string]int
}

// NewRegistry loads the embedded format catalog
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/formats.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read formats.yaml: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Registry, error) {
	var file formatFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal formats.yaml: %w", err)
	}

	r := &Registry{
		formats: file.Formats,
		byToken: make(map[string]int, len(file.Formats)),
	}
	for i, f := range file.Formats {
		if f.MIMEType == "" || f.Extension == "" {
			return nil, fmt.Errorf("format %s: mime_type and extension are required", f.Token)
		}
		if f.Family != FamilyImage && f.Family != FamilyDocument {
			return nil, fmt.Errorf("format %s: unknown family %q", f.Token, f.Family)
		}
		r.byToken[f.Token] = i
	}
	return r, nil
}

// Lookup returns the format for a token, case-insensitively.
func (r *Registry) Lookup(token string) (Format, bool) {
	i, ok := r.byToken[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return Format{}, false
	}
	return r.formats[i], true
}

// ContentType returns the MIME type for a token, or application/octet-stream.
func (r *Registry) ContentType(token string) string {
	if f, ok := r.Lookup(token); ok {
		return f.MIMEType
	}
	return defaultContentType
}

// List returns all formats in catalog order
func (r *Registry) List() []Format {
	out := make([]Format, len(r.formats))
	copy(out, r.formats)
	return out
}
