package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// codec converts settings between their in-memory and on-disk representations.
type codec interface {
	decode(data []byte) (map[string]any, error)
	encode(values map[string]any) ([]byte, error)
}

// codecFor returns the codec to use for the file at path, chosen by extension.
// Files without a recognised extension are treated as JSON.
func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return tomlCodec{}
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return jsonCodec{}
	}
}

type jsonCodec struct{}

func (jsonCodec) decode(data []byte) (map[string]any, error) {
	values := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	if values == nil {
		// The document was a literal null.
		values = map[string]any{}
	}
	return values, nil
}

func (jsonCodec) encode(values map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type tomlCodec struct{}

func (tomlCodec) decode(data []byte) (map[string]any, error) {
	values := map[string]any{}
	if _, err := toml.Decode(string(data), &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (tomlCodec) encode(values map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(values); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type yamlCodec struct{}

func (yamlCodec) decode(data []byte) (map[string]any, error) {
	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

func (yamlCodec) encode(values map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(values); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("could not flush yaml encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode renders values in the file format selected by the extension of path, as they would be saved.
func Encode(path string, values map[string]any) ([]byte, error) {
	return codecFor(path).encode(values)
}
