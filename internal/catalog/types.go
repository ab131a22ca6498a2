package catalog

import "gopkg.in/yaml.v3"

// Family groups formats by how the dispatcher treats them.
type Family string

const (
	FamilyImage    Family = "image"
	FamilyDocument Family = "document"
)

// Format describes one supported format token
type Format struct {
	// Token is the lowercase format name (set during YAML unmarshaling)
	Token string `yaml:"-" json:"token"`

	DisplayName string `yaml:"display_name" json:"display_name"`
	Family      Family `yaml:"family" json:"family"`
	MIMEType    string `yaml:"mime_type" json:"mime_type"`
	Extension   string `yaml:"extension" json:"extension"`
}

// formatFile is the top-level shape of formats.yaml
type formatFile struct {
	Formats []Format `yaml:"-"`
}

// UnmarshalYAML keeps formats in file order; the YAML mapping alone would lose it.
func (f *formatFile) UnmarshalYAML(node *yaml.Node) error {
	var m struct {
		Formats map[string]Format `yaml:"formats"`
	}
	if err := node.Decode(&m); err != nil {
		return err
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "formats" {
			continue
		}
		formatsNode := node.Content[i+1]
		for j := 0; j+1 < len(formatsNode.Content); j += 2 {
			token := formatsNode.Content[j].Value
			if format, ok := m.Formats[token]; ok {
				format.Token = token
				f.Formats = append(f.Formats, format)
			}
		}
		break
	}

	return nil
}
