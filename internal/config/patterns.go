package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON decodes a color_patterns object while preserving the
// order the rules were declared in, which encoding/json's map type
// would discard.
func (cp *ColorPatterns) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("config: color_patterns must be an object, got %v", tok)
	}

	out := (*cp)[:0]
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("config: color_patterns key %v is not a string", tok)
		}
		var pat ColorPattern
		if err := dec.Decode(&pat); err != nil {
			return fmt.Errorf("config: color pattern %q: %w", name, err)
		}
		out = append(out, NamedPattern{Name: name, ColorPattern: pat})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*cp = out
	return nil
}

// MarshalJSON renders the rules back as an object in declared order.
func (cp ColorPatterns) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range cp {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.ColorPattern)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a color_patterns mapping in document order.
func (cp *ColorPatterns) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("config: color_patterns must be a mapping, got %v", value.Kind)
	}
	out := (*cp)[:0]
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value
		var pat ColorPattern
		if err := value.Content[i+1].Decode(&pat); err != nil {
			return fmt.Errorf("config: color pattern %q: %w", name, err)
		}
		out = append(out, NamedPattern{Name: name, ColorPattern: pat})
	}
	*cp = out
	return nil
}
