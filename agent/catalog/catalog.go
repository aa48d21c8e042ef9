package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/questline/questline-agent/agent/contract"
)

const nameSeparator = "_"

// ToolContract describes one invocable domain operation. Contracts double as
// the model-selection hint and the dispatch table; they are immutable after
// the catalog is built.
type ToolContract struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  *ParameterSchema `json:"parameters"`
	// Strict mirrors the upstream contract flag. Advisory only: enforcement
	// comes from ParameterSchema.Validate, not from this bit.
	Strict bool `json:"strict"`
}

// SplitName splits a "<service>_<method>" tool name into its halves.
// Service aliases contain no underscore, so the first separator wins.
func SplitName(name string) (service string, method string, err error) {
	idx := strings.Index(name, nameSeparator)
	if idx <= 0 || idx == len(name)-1 {
		return "", "", fmt.Errorf("%w: tool name %q is not <service>_<method> shaped", contractx.ErrValidation, name)
	}
	return name[:idx], name[idx+1:], nil
}

// Catalog is the immutable set of tool contracts, constructed once at process
// start and passed by reference into the analyzer, executor, and dispatcher.
type Catalog struct {
	contracts []ToolContract
	byName    map[string]ToolContract
}

// New builds a catalog from one or more per-domain contract lists, rejecting
// duplicate names, malformed names, and uncompilable parameter schemas.
func New(lists ...[]ToolContract) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]ToolContract),
	}

	for _, list := range lists {
		for _, tc := range list {
			name := strings.TrimSpace(tc.Name)
			if name == "" {
				return nil, fmt.Errorf("%w: tool contract with empty name", contractx.ErrValidation)
			}
			if _, _, err := SplitName(name); err != nil {
				return nil, err
			}
			if _, dup := c.byName[name]; dup {
				return nil, fmt.Errorf("%w: duplicate tool contract %q", contractx.ErrValidation, name)
			}
			if tc.Parameters == nil {
				return nil, fmt.Errorf("%w: tool contract %q has no parameter schema", contractx.ErrValidation, name)
			}
			if err := tc.Parameters.Compile(); err != nil {
				return nil, fmt.Errorf("%w: tool contract %q: %v", contractx.ErrValidation, name, err)
			}
			tc.Name = name
			c.contracts = append(c.contracts, tc)
			c.byName[name] = tc
		}
	}

	if len(c.contracts) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", contractx.ErrValidation)
	}
	return c, nil
}

func (c *Catalog) Lookup(name string) (ToolContract, bool) {
	tc, ok := c.byName[name]
	return tc, ok
}

// Names returns all contract names, sorted for deterministic cross-checks.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Subset resolves the named contracts, failing on any name absent from the
// catalog. Used to turn an analyzer decision's tool list into bindable tools.
func (c *Catalog) Subset(names []string) ([]ToolContract, error) {
	out := make([]ToolContract, 0, len(names))
	for _, name := range names {
		tc, ok := c.byName[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown tool %q", contractx.ErrDispatch, name)
		}
		out = append(out, tc)
	}
	return out, nil
}

// ToolInfos converts the named contracts into eino tool descriptors for
// binding onto a chat model.
func (c *Catalog) ToolInfos(names []string) ([]*schema.ToolInfo, error) {
	subset, err := c.Subset(names)
	if err != nil {
		return nil, err
	}

	infos := make([]*schema.ToolInfo, 0, len(subset))
	for _, tc := range subset {
		infos = append(infos, &schema.ToolInfo{
			Name:        tc.Name,
			Desc:        tc.Description,
			ParamsOneOf: schema.NewParamsOneOfByParams(toParameterInfos(tc.Parameters)),
		})
	}
	return infos, nil
}

// Summary renders one line per contract, fed to the analyzer so it can pick
// tools without seeing full schemas.
func (c *Catalog) Summary() string {
	var b strings.Builder
	for _, name := range c.Names() {
		tc := c.byName[name]
		b.WriteString("- ")
		b.WriteString(tc.Name)
		b.WriteString(": ")
		b.WriteString(tc.Description)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func toParameterInfos(s *ParameterSchema) map[string]*schema.ParameterInfo {
	params := make(map[string]*schema.ParameterInfo, len(s.Properties))
	for name, prop := range s.Properties {
		params[name] = toParameterInfo(prop, contains(s.Required, name))
	}
	return params
}

func toParameterInfo(s *ParameterSchema, required bool) *schema.ParameterInfo {
	info := &schema.ParameterInfo{
		Type:     toDataType(s.Type),
		Desc:     s.Description,
		Enum:     s.Enum,
		Required: required,
	}
	switch s.Type {
	case TypeObject:
		info.SubParams = toParameterInfos(s)
	case TypeArray:
		info.ElemInfo = toParameterInfo(s.Items, false)
	}
	return info
}

func toDataType(t string) schema.DataType {
	switch t {
	case TypeString:
		return schema.String
	case TypeNumber:
		return schema.Number
	case TypeInteger:
		return schema.Integer
	case TypeBoolean:
		return schema.Boolean
	case TypeArray:
		return schema.Array
	default:
		return schema.Object
	}
}
