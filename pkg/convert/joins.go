package convert

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/hqlbridge/pkg/core"
)

// Cardinality states whether a relationship property is collection-valued.
// When supplied explicitly it is authoritative; CardinalityAuto falls back
// to the plural-name heuristic.
type Cardinality int

// Cardinality constants.
const (
	CardinalityAuto Cardinality = iota
	CardinalityCollection
	CardinalitySingle
)

// JoinMapping is an externally supplied relationship fact used to
// synthesize ON clauses for implicit joins. Mappings are registered per
// source entity, keyed by property name, before conversion starts.
type JoinMapping struct {
	PropertyName     string
	TargetEntity     string
	JoinColumn       string        // foreign-key column
	ReferencedColumn string        // column the foreign key points at
	JoinTypeHint     core.JoinType // default join type for a plain JOIN
	SourceTable      string
	TargetTable      string
	Cardinality      Cardinality
}

// resolveOnClause synthesizes the equi-join condition for an implicit join.
// Returns "" when no condition can be derived, in which case the join is
// emitted bare.
//
// Direction rule: for a collection-valued property the foreign key lives on
// the target table ("User u JOIN u.orders o" gives "o.user_id = u.id"); for
// a single-valued property it lives on the source table ("Order o JOIN
// o.user u" gives "o.user_id = u.id").
func (c *Converter) resolveOnClause(sourceAlias, property, targetAlias string, m *JoinMapping) string {
	if m == nil || m.JoinColumn == "" || m.ReferencedColumn == "" {
		return ""
	}

	var collection bool
	switch m.Cardinality {
	case CardinalityCollection:
		collection = true
	case CardinalitySingle:
		collection = false
	default:
		collection = c.isCollectionProperty(property)
	}

	if collection {
		return fmt.Sprintf("%s.%s = %s.%s", targetAlias, m.JoinColumn, sourceAlias, m.ReferencedColumn)
	}
	return fmt.Sprintf("%s.%s = %s.%s", sourceAlias, m.JoinColumn, targetAlias, m.ReferencedColumn)
}

// isCollectionProperty applies the plural-name heuristic: a property is
// collection-valued when it ends in "s", unless it is a registered
// singular exception like "status".
func (c *Converter) isCollectionProperty(name string) bool {
	if c.singular[strings.ToLower(name)] {
		return false
	}
	return len(name) > 1 && strings.HasSuffix(name, "s")
}
