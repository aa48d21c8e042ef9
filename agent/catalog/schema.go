package catalog

import (
	"fmt"
	"strings"
)

// ParameterSchema is the JSON-Schema-like shape each tool contract declares
// for its arguments. Contracts ship with strict=false upstream, so nothing
// can be assumed about what the model actually sends: every payload is
// checked against this structure before dispatch.
type ParameterSchema struct {
	Type                 string                      `json:"type"`
	Description          string                      `json:"description,omitempty"`
	Properties           map[string]*ParameterSchema `json:"properties,omitempty"`
	Required             []string                    `json:"required,omitempty"`
	Items                *ParameterSchema            `json:"items,omitempty"`
	Enum                 []string                    `json:"enum,omitempty"`
	AdditionalProperties bool                        `json:"additionalProperties"`
}

const (
	TypeObject  = "object"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
)

// Compile checks the schema itself is well formed. Run once at catalog
// construction so a bad contract fails at startup, not at dispatch time.
func (s *ParameterSchema) Compile() error {
	return s.compile("$")
}

func (s *ParameterSchema) compile(path string) error {
	if s == nil {
		return fmt.Errorf("schema at %s is nil", path)
	}
	switch s.Type {
	case TypeObject:
		for _, name := range s.Required {
			if _, ok := s.Properties[name]; !ok {
				return fmt.Errorf("schema at %s requires unknown property %q", path, name)
			}
		}
		for name, prop := range s.Properties {
			if err := prop.compile(path + "." + name); err != nil {
				return err
			}
		}
	case TypeArray:
		if s.Items == nil {
			return fmt.Errorf("array schema at %s has no items", path)
		}
		if err := s.Items.compile(path + "[]"); err != nil {
			return err
		}
	case TypeString, TypeNumber, TypeInteger, TypeBoolean:
	default:
		return fmt.Errorf("schema at %s has unsupported type %q", path, s.Type)
	}
	return nil
}

// Validate checks a decoded argument object against the schema.
func (s *ParameterSchema) Validate(args map[string]any) error {
	if s == nil {
		return fmt.Errorf("schema is nil")
	}
	if s.Type != TypeObject {
		return fmt.Errorf("top-level schema must be an object, got %q", s.Type)
	}
	return s.validateValue("$", args)
}

func (s *ParameterSchema) validateValue(path string, value any) error {
	switch s.Type {
	case TypeObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object, got %T", path, value)
		}
		for _, name := range s.Required {
			if _, present := obj[name]; !present {
				return fmt.Errorf("%s: missing required property %q", path, name)
			}
		}
		for name, raw := range obj {
			prop, known := s.Properties[name]
			if !known {
				if s.AdditionalProperties {
					continue
				}
				return fmt.Errorf("%s: unexpected property %q", path, name)
			}
			if raw == nil {
				if contains(s.Required, name) {
					return fmt.Errorf("%s: required property %q is null", path, name)
				}
				continue
			}
			if err := prop.validateValue(path+"."+name, raw); err != nil {
				return err
			}
		}
	case TypeString:
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s: expected string, got %T", path, value)
		}
		if len(s.Enum) > 0 && !contains(s.Enum, str) {
			return fmt.Errorf("%s: %q is not one of %s", path, str, strings.Join(s.Enum, ", "))
		}
	case TypeNumber:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("%s: expected number, got %T", path, value)
		}
	case TypeInteger:
		num, ok := value.(float64)
		if !ok {
			return fmt.Errorf("%s: expected integer, got %T", path, value)
		}
		if num != float64(int64(num)) {
			return fmt.Errorf("%s: expected integer, got %v", path, num)
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%s: expected boolean, got %T", path, value)
		}
	case TypeArray:
		items, ok := value.([]any)
		if !ok {
			return fmt.Errorf("%s: expected array, got %T", path, value)
		}
		for i, item := range items {
			if err := s.Items.validateValue(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
	}
	return nil
}

func contains(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}
