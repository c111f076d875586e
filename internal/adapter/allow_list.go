package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "covreport.dev/pkg/covreport/internal/model"
)

// allowListFile is the mapping form of an allow-list file.
type allowListFile struct {
	Files []string `yaml:"files"`
}

// LoadAllowList reads a YAML allow-list. The document is either a plain
// sequence of paths or a mapping with a `files` sequence.
func LoadAllowList(path m.Path) ([]string, error) {
	// #nosec G304 - path is provided by the operator
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse allow-list %s: %w", path, err)
	}

	if len(node.Content) == 0 {
		return []string{}, nil
	}

	doc := node.Content[0]

	switch doc.Kind {
	case yaml.SequenceNode:
		var files []string
		if err := doc.Decode(&files); err != nil {
			return nil, fmt.Errorf("decode allow-list %s: %w", path, err)
		}

		return files, nil
	case yaml.MappingNode:
		var file allowListFile
		if err := doc.Decode(&file); err != nil {
			return nil, fmt.Errorf("decode allow-list %s: %w", path, err)
		}

		if file.Files == nil {
			return []string{}, nil
		}

		return file.Files, nil
	default:
		return nil, fmt.Errorf("allow-list %s: expected a sequence or a mapping with files", path)
	}
}
