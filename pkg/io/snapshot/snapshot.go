// Package snapshot reads and writes configuration datasets as YAML documents.
//
// A snapshot looks like:
//
//	version: 1
//	scopes:
//	  default_0:
//	    web/secure/base_url: https://shop.test/
//	  stores_1:
//	    design/theme/full_name: Magento/luma
//
// Scope order is taken from the document. Every value is stored as a string.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/scandiweb/configdiff/pkg/dataset"
	"gopkg.in/yaml.v3"
)

// Version is the current snapshot document version.
const Version = 1

const (
	filePermissions = 0o600
	dirPermissions  = 0o750
	nullTag         = "!!null"
	stringTag       = "!!str"
)

var (
	// ErrInvalidSnapshot is wrapped by every decoding failure.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	// ErrEmptyPath is returned when a file operation is given no path.
	ErrEmptyPath = errors.New("snapshot path cannot be empty")
)

type document struct {
	Version int       `yaml:"version"`
	Scopes  yaml.Node `yaml:"scopes"`
}

// Decode parses a snapshot document.
func Decode(reader io.Reader) (*dataset.Dataset, error) {
	var doc document

	err := yaml.NewDecoder(reader).Decode(&doc)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSnapshot)
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	if doc.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, doc.Version)
	}

	builder := dataset.NewBuilder()

	if doc.Scopes.Kind == 0 || doc.Scopes.Tag == nullTag {
		return builder.Build(), nil
	}

	if doc.Scopes.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: scopes must be a mapping (line %d)", ErrInvalidSnapshot, doc.Scopes.Line)
	}

	for i := 0; i+1 < len(doc.Scopes.Content); i += 2 {
		err = decodeScope(builder, doc.Scopes.Content[i], doc.Scopes.Content[i+1])
		if err != nil {
			return nil, err
		}
	}

	return builder.Build(), nil
}

func decodeScope(builder *dataset.Builder, keyNode, valuesNode *yaml.Node) error {
	scopeKey := keyNode.Value
	builder.AddScope(scopeKey)

	if valuesNode.Tag == nullTag {
		return nil
	}

	if valuesNode.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: scope %q must be a mapping (line %d)", ErrInvalidSnapshot, scopeKey, valuesNode.Line)
	}

	for i := 0; i+1 < len(valuesNode.Content); i += 2 {
		pathNode, valueNode := valuesNode.Content[i], valuesNode.Content[i+1]

		if valueNode.Kind != yaml.ScalarNode {
			return fmt.Errorf(
				"%w: value of %s in scope %q must be a scalar (line %d)",
				ErrInvalidSnapshot, pathNode.Value, scopeKey, valueNode.Line,
			)
		}

		value := valueNode.Value
		if valueNode.Tag == nullTag {
			value = ""
		}

		builder.Set(scopeKey, pathNode.Value, value)
	}

	return nil
}

// Encode writes data as a snapshot document.
func Encode(writer io.Writer, data *dataset.Dataset) error {
	scopes := &yaml.Node{Kind: yaml.MappingNode}

	for _, scope := range data.Scopes() {
		values := &yaml.Node{Kind: yaml.MappingNode}

		for _, entry := range scope.Entries() {
			values.Content = append(values.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: stringTag, Value: entry.Path},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: stringTag, Value: entry.Value},
			)
		}

		scopes.Content = append(scopes.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: stringTag, Value: scope.Scope.Key},
			values,
		)
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)

	err := encoder.Encode(document{Version: Version, Scopes: *scopes})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("close snapshot encoder: %w", err)
	}

	return nil
}

// ReadFile decodes the snapshot stored at path.
func ReadFile(path string) (*dataset.Dataset, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	data, err := Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}

	return data, nil
}

// WriteFile encodes data to path, creating parent directories when needed.
func WriteFile(path string, data *dataset.Dataset) error {
	if path == "" {
		return ErrEmptyPath
	}

	var buf bytes.Buffer

	err := Encode(&buf, data)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), dirPermissions)
	if err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	err = os.WriteFile(path, buf.Bytes(), filePermissions)
	if err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}

	return nil
}
