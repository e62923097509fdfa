// Package convert rewrites parsed HQL/JPQL statements as PostgreSQL SQL.
//
// Entity names map to table names, field names to column names, and
// implicit joins are completed with ON clauses synthesized from
// relationship metadata. Mapping gaps never fail a conversion: an unmapped
// entity falls back to its lowercased name, an unmapped field to a
// snake_case transform, and a join without metadata is emitted bare.
//
// A Converter is safe for concurrent use once all mappings are registered;
// registration and conversion must not overlap.
package convert

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/hqlbridge/pkg/analysis"
	"github.com/leapstack-labs/hqlbridge/pkg/core"
	"github.com/leapstack-labs/hqlbridge/pkg/parser"
)

// DefaultSingularProperties are property names that end in "s" but are not
// collections. Callers extend the set with AddSingularProperty.
var DefaultSingularProperties = []string{"status", "address"}

// Converter holds the mapping tables used during rewriting.
type Converter struct {
	entityTable   map[string]string
	fieldColumn   map[string]map[string]string
	relationships map[string]map[string]JoinMapping
	singular      map[string]bool

	// Logger receives debug records for fallback decisions. Optional.
	Logger *slog.Logger
}

// NewConverter returns a Converter with no mappings registered.
func NewConverter() *Converter {
	c := &Converter{
		entityTable:   make(map[string]string),
		fieldColumn:   make(map[string]map[string]string),
		relationships: make(map[string]map[string]JoinMapping),
		singular:      make(map[string]bool),
	}
	for _, name := range DefaultSingularProperties {
		c.singular[name] = true
	}
	return c
}

// RegisterEntityMapping maps an entity name to its table name.
func (c *Converter) RegisterEntityMapping(entity, table string) {
	c.entityTable[entity] = table
}

// RegisterFieldMapping maps a field of an entity to its column name.
func (c *Converter) RegisterFieldMapping(entity, field, column string) {
	if _, ok := c.fieldColumn[entity]; !ok {
		c.fieldColumn[entity] = make(map[string]string)
	}
	c.fieldColumn[entity][field] = column
}

// RegisterRelationship adds one relationship mapping under its source
// entity, keyed by property name.
func (c *Converter) RegisterRelationship(entity string, m JoinMapping) {
	if _, ok := c.relationships[entity]; !ok {
		c.relationships[entity] = make(map[string]JoinMapping)
	}
	c.relationships[entity][m.PropertyName] = m
}

// SetRelationshipMetadata replaces all relationship mappings. The outer key
// is the source entity name as written in HQL, the inner key the property
// name.
func (c *Converter) SetRelationshipMetadata(metadata map[string]map[string]JoinMapping) {
	if metadata == nil {
		metadata = make(map[string]map[string]JoinMapping)
	}
	c.relationships = metadata
}

// AddSingularProperty marks a property name as single-valued despite its
// trailing "s", overriding the plural heuristic.
func (c *Converter) AddSingularProperty(name string) {
	c.singular[name] = true
}

// Convert parses, analyzes, and rewrites an HQL query as SQL.
// Parse errors propagate as-is; rewrite failures surface as
// *UnsupportedError or *ConversionError.
func (c *Converter) Convert(hql string) (string, error) {
	stmt, err := parser.Parse(hql)
	if err != nil {
		return "", err
	}
	return c.ConvertStatement(stmt, analysis.Analyze(stmt))
}

// ConvertStatement rewrites an already parsed and analyzed statement.
func (c *Converter) ConvertStatement(stmt core.Stmt, md *analysis.Metadata) (sql string, err error) {
	// The renderer assumes a well-formed tree; a nil-field panic from a
	// malformed one must not escape the conversion boundary.
	defer func() {
		if r := recover(); r != nil {
			err = &ConversionError{
				Message: "internal error during rewrite",
				Cause:   fmt.Errorf("%v", r),
			}
		}
	}()

	switch s := stmt.(type) {
	case *core.SelectStmt:
		r := &renderer{conv: c, md: md}
		return r.renderSelect(s), nil
	case *core.UpdateStmt:
		r := &renderer{conv: c, md: md}
		return r.renderUpdate(s), nil
	case *core.DeleteStmt:
		r := &renderer{conv: c, md: md}
		return r.renderDelete(s), nil
	case *core.InsertStmt:
		return "", &UnsupportedError{Feature: "INSERT code generation"}
	default:
		return "", &ConversionError{Message: fmt.Sprintf("unknown statement type %T", stmt)}
	}
}

// tableForEntity resolves an entity's table name, defaulting to the
// lowercased entity name.
func (c *Converter) tableForEntity(entity string) string {
	if table, ok := c.entityTable[entity]; ok {
		return table
	}
	if c.Logger != nil {
		c.Logger.Debug("no table mapping for entity, using lowercase fallback", "entity", entity)
	}
	return toLower(entity)
}

// columnForField resolves a field's column name, defaulting to a
// snake_case transform.
func (c *Converter) columnForField(entity, field string) string {
	if fields, ok := c.fieldColumn[entity]; ok {
		if column, ok := fields[field]; ok {
			return column
		}
	}
	return toSnakeCase(field)
}

// toLower lowercases ASCII letters. Entity names are ASCII identifiers.
func toLower(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if ch >= 'A' && ch <= 'Z' {
			b[i] = ch + ('a' - 'A')
		}
	}
	return string(b)
}

// toSnakeCase converts camelCase field names to snake_case column names.
// Names that already contain an underscore or are entirely lowercase pass
// through untouched, so correct column names are never corrupted.
func toSnakeCase(input string) string {
	if input == "" {
		return input
	}
	hasUpper := false
	for i := 0; i < len(input); i++ {
		if input[i] == '_' {
			return input
		}
		if input[i] >= 'A' && input[i] <= 'Z' {
			hasUpper = true
		}
	}
	if !hasUpper {
		return input
	}

	var sb []byte
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if ch >= 'A' && ch <= 'Z' {
			if i > 0 && (isLowerByte(input[i-1]) || isDigitByte(input[i-1]) ||
				(i+1 < len(input) && isLowerByte(input[i+1]))) {
				sb = append(sb, '_')
			}
			sb = append(sb, ch+('a'-'A'))
		} else {
			sb = append(sb, ch)
		}
	}
	return string(sb)
}

func isLowerByte(ch byte) bool {
	return ch >= 'a' && ch <= 'z'
}

func isDigitByte(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
