package catalog

import (
	"strings"
	"testing"
)

func missionCreateSchema() *ParameterSchema {
	return objectOf(map[string]*ParameterSchema{
		"name":        strProp("Mission name."),
		"description": strProp("What the mission is about."),
		"team_count":  intProp("Number of teams."),
	}, "name")
}

func TestCompileRejectsUnknownRequired(t *testing.T) {
	t.Parallel()

	s := objectOf(map[string]*ParameterSchema{
		"name": strProp("name"),
	}, "uuid")

	if err := s.Compile(); err == nil {
		t.Fatal("expected compile error for required property without a definition")
	}
}

func TestCompileRejectsArrayWithoutItems(t *testing.T) {
	t.Parallel()

	s := objectOf(map[string]*ParameterSchema{
		"tags": {Type: TypeArray},
	})

	if err := s.Compile(); err == nil {
		t.Fatal("expected compile error for array schema without items")
	}
}

func TestValidateAcceptsWellFormedArguments(t *testing.T) {
	t.Parallel()

	s := missionCreateSchema()
	if err := s.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	args := map[string]any{
		"name":        "Défi Tralala",
		"description": "weekly challenge",
		"team_count":  float64(4),
	}
	if err := s.Validate(args); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	t.Parallel()

	s := missionCreateSchema()
	err := s.Validate(map[string]any{"description": "no name"})
	if err == nil || !strings.Contains(err.Error(), "missing required property") {
		t.Fatalf("expected missing-required error, got %v", err)
	}
}

func TestValidateUnexpectedProperty(t *testing.T) {
	t.Parallel()

	s := missionCreateSchema()
	err := s.Validate(map[string]any{"name": "m", "sneaky": true})
	if err == nil || !strings.Contains(err.Error(), "unexpected property") {
		t.Fatalf("expected unexpected-property error, got %v", err)
	}
}

func TestValidateAdditionalPropertiesAllowed(t *testing.T) {
	t.Parallel()

	s := missionCreateSchema()
	s.AdditionalProperties = true

	if err := s.Validate(map[string]any{"name": "m", "extra": "ok"}); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateIntegerRejectsFraction(t *testing.T) {
	t.Parallel()

	s := missionCreateSchema()
	err := s.Validate(map[string]any{"name": "m", "team_count": 2.5})
	if err == nil || !strings.Contains(err.Error(), "expected integer") {
		t.Fatalf("expected integer error, got %v", err)
	}
}

func TestValidateEnum(t *testing.T) {
	t.Parallel()

	s := objectOf(map[string]*ParameterSchema{
		"kind": {Type: TypeString, Enum: []string{"mission", "team"}},
	}, "kind")

	if err := s.Validate(map[string]any{"kind": "mission"}); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := s.Validate(map[string]any{"kind": "badge"}); err == nil {
		t.Fatal("expected enum violation")
	}
}

func TestValidateNestedArray(t *testing.T) {
	t.Parallel()

	s := objectOf(map[string]*ParameterSchema{
		"tags": {Type: TypeArray, Items: strProp("tag")},
	})
	if err := s.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if err := s.Validate(map[string]any{"tags": []any{"a", "b"}}); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := s.Validate(map[string]any{"tags": []any{"a", 3.0}}); err == nil {
		t.Fatal("expected item type violation")
	}
}
