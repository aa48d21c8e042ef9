package catalog

import (
	"errors"
	"strings"
	"testing"

	contractx "github.com/questline/questline-agent/agent/contract"
)

func TestSplitName(t *testing.T) {
	t.Parallel()

	service, method, err := SplitName("missionService_findByUuid")
	if err != nil {
		t.Fatalf("SplitName() error = %v", err)
	}
	if service != "missionService" || method != "findByUuid" {
		t.Fatalf("unexpected split: %s / %s", service, method)
	}

	for _, bad := range []string{"missionService", "_create", "create_"} {
		if _, _, err := SplitName(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDefaultCatalogIsComplete(t *testing.T) {
	t.Parallel()

	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	names := cat.Names()
	if len(names) != 20 {
		t.Fatalf("expected 20 contracts, got %d: %v", len(names), names)
	}

	for _, name := range names {
		tc, ok := cat.Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) missing", name)
		}
		if strings.TrimSpace(tc.Description) == "" {
			t.Fatalf("contract %q has no description", name)
		}
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := New(MissionContracts(), MissionContracts())
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNewRejectsMalformedName(t *testing.T) {
	t.Parallel()

	_, err := New([]ToolContract{{
		Name:       "missionService",
		Parameters: objectOf(map[string]*ParameterSchema{}),
	}})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSubsetUnknownToolIsDispatchError(t *testing.T) {
	t.Parallel()

	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	_, err = cat.Subset([]string{"missionService_create", "ghostService_doThing"})
	if !errors.Is(err, contractx.ErrDispatch) {
		t.Fatalf("expected ErrDispatch, got %v", err)
	}
}

func TestToolInfosCarrySchema(t *testing.T) {
	t.Parallel()

	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	infos, err := cat.ToolInfos([]string{"missionService_create"})
	if err != nil {
		t.Fatalf("ToolInfos() error = %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected one info, got %d", len(infos))
	}
	if infos[0].Name != "missionService_create" {
		t.Fatalf("unexpected name: %s", infos[0].Name)
	}
	if infos[0].ParamsOneOf == nil {
		t.Fatal("expected parameter schema on tool info")
	}
}

func TestSummaryListsEveryTool(t *testing.T) {
	t.Parallel()

	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	summary := cat.Summary()
	for _, name := range cat.Names() {
		if !strings.Contains(summary, "- "+name+": ") {
			t.Fatalf("summary missing %q:\n%s", name, summary)
		}
	}
}
