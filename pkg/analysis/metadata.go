// Package analysis extracts query metadata from parsed HQL statements:
// referenced entities, alias bindings, fields per entity, and parameters.
package analysis

import (
	"fmt"
	"strings"
)

// QueryType identifies the statement kind of an analyzed query.
type QueryType string

// Query type constants.
const (
	QuerySelect QueryType = "SELECT"
	QueryUpdate QueryType = "UPDATE"
	QueryDelete QueryType = "DELETE"
	QueryInsert QueryType = "INSERT"
)

// Metadata is the analysis result for a single query. All collections
// preserve first-seen order, which keeps output deterministic.
type Metadata struct {
	queryType QueryType

	entityNames []string
	entitySeen  map[string]bool

	aliasOrder    []string
	aliasToEntity map[string]string

	fieldOrder map[string][]string
	fieldSeen  map[string]map[string]bool

	paramOrder []string
	paramSeen  map[string]bool
}

func newMetadata(qt QueryType) *Metadata {
	return &Metadata{
		queryType:     qt,
		entitySeen:    make(map[string]bool),
		aliasToEntity: make(map[string]string),
		fieldOrder:    make(map[string][]string),
		fieldSeen:     make(map[string]map[string]bool),
		paramSeen:     make(map[string]bool),
	}
}

// addEntity registers an entity and optionally binds an alias to it.
func (m *Metadata) addEntity(name, alias string) {
	if name == "" {
		return
	}
	if !m.entitySeen[name] {
		m.entitySeen[name] = true
		m.entityNames = append(m.entityNames, name)
	}
	if _, ok := m.fieldSeen[name]; !ok {
		m.fieldSeen[name] = make(map[string]bool)
	}
	if alias != "" {
		if _, ok := m.aliasToEntity[alias]; !ok {
			m.aliasOrder = append(m.aliasOrder, alias)
		}
		m.aliasToEntity[alias] = name
	}
}

// addField records a field reference on an entity.
func (m *Metadata) addField(entity, field string) {
	if entity == "" || field == "" {
		return
	}
	seen, ok := m.fieldSeen[entity]
	if !ok {
		seen = make(map[string]bool)
		m.fieldSeen[entity] = seen
	}
	if !seen[field] {
		seen[field] = true
		m.fieldOrder[entity] = append(m.fieldOrder[entity], field)
	}
}

// addParameter records a query parameter.
func (m *Metadata) addParameter(param string) {
	if param == "" || m.paramSeen[param] {
		return
	}
	m.paramSeen[param] = true
	m.paramOrder = append(m.paramOrder, param)
}

// QueryType returns the statement kind.
func (m *Metadata) QueryType() QueryType {
	return m.queryType
}

// EntityNames returns the referenced entity names in first-seen order.
func (m *Metadata) EntityNames() []string {
	out := make([]string, len(m.entityNames))
	copy(out, m.entityNames)
	return out
}

// HasEntity reports whether the entity was referenced.
func (m *Metadata) HasEntity(name string) bool {
	return m.entitySeen[name]
}

// Aliases returns the bound aliases in first-seen order.
func (m *Metadata) Aliases() []string {
	out := make([]string, len(m.aliasOrder))
	copy(out, m.aliasOrder)
	return out
}

// EntityForAlias resolves an alias to its entity name.
func (m *Metadata) EntityForAlias(alias string) (string, bool) {
	entity, ok := m.aliasToEntity[alias]
	return entity, ok
}

// AliasToEntity returns a copy of the alias binding map.
func (m *Metadata) AliasToEntity() map[string]string {
	out := make(map[string]string, len(m.aliasToEntity))
	for k, v := range m.aliasToEntity {
		out[k] = v
	}
	return out
}

// FieldsForEntity returns the referenced fields of an entity in first-seen
// order. Registered entities with no field references return an empty slice.
func (m *Metadata) FieldsForEntity(entity string) []string {
	fields := m.fieldOrder[entity]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// Parameters returns the query parameters in first-seen order. Named
// parameters appear without the leading colon, positional parameters with
// their question mark.
func (m *Metadata) Parameters() []string {
	out := make([]string, len(m.paramOrder))
	copy(out, m.paramOrder)
	return out
}

// String renders a compact multi-line summary, mainly for debugging.
func (m *Metadata) String() string {
	var sb strings.Builder
	sb.WriteString("QueryAnalysis {\n")
	fmt.Fprintf(&sb, "  Query Type: %s\n", m.queryType)
	fmt.Fprintf(&sb, "  Entities: %v\n", m.entityNames)
	sb.WriteString("  Alias to Entity: {")
	for i, alias := range m.aliasOrder {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%s", alias, m.aliasToEntity[alias])
	}
	sb.WriteString("}\n")
	sb.WriteString("  Entity Fields: {")
	for i, entity := range m.entityNames {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", entity, m.fieldOrder[entity])
	}
	sb.WriteString("}\n")
	fmt.Fprintf(&sb, "  Parameters: %v\n", m.paramOrder)
	sb.WriteString("}")
	return sb.String()
}
