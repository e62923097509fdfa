// Package config provides configuration management for the hqlbridge CLI.
//
// Mappings between HQL entities and database tables are declared in a
// YAML file and compiled into a convert.Converter. Everything in the
// file is optional; a converter built from an empty config relies on the
// name-based fallbacks alone.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/hqlbridge/pkg/convert"
	"github.com/leapstack-labs/hqlbridge/pkg/core"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose            bool           `koanf:"verbose"`
	OutputFormat       string         `koanf:"output"`
	SingularProperties []string       `koanf:"singular_properties"`
	Entities           []EntityConfig `koanf:"entities"`
}

// EntityConfig declares the table mapping for one entity.
type EntityConfig struct {
	Name      string            `koanf:"name"`
	Table     string            `koanf:"table"`
	Fields    map[string]string `koanf:"fields"`
	Relations []RelationConfig  `koanf:"relations"`
}

// RelationConfig declares one navigable relationship of an entity.
type RelationConfig struct {
	Property         string `koanf:"property"`
	Target           string `koanf:"target"`
	JoinColumn       string `koanf:"join_column"`
	ReferencedColumn string `koanf:"referenced_column"`
	JoinType         string `koanf:"join_type"`
	Cardinality      string `koanf:"cardinality"`
}

// Default configuration values.
const (
	DefaultOutput = "table"
)

// NewConverter compiles the declared mappings into a converter.
func (c *Config) NewConverter() (*convert.Converter, error) {
	conv := convert.NewConverter()

	for _, name := range c.SingularProperties {
		conv.AddSingularProperty(name)
	}

	for _, entity := range c.Entities {
		if entity.Name == "" {
			return nil, fmt.Errorf("entity with empty name in configuration")
		}
		if entity.Table != "" {
			conv.RegisterEntityMapping(entity.Name, entity.Table)
		}
		for field, column := range entity.Fields {
			conv.RegisterFieldMapping(entity.Name, field, column)
		}
		for _, rel := range entity.Relations {
			mapping, err := rel.toJoinMapping()
			if err != nil {
				return nil, fmt.Errorf("entity %s: %w", entity.Name, err)
			}
			conv.RegisterRelationship(entity.Name, mapping)
		}
	}

	return conv, nil
}

func (r RelationConfig) toJoinMapping() (convert.JoinMapping, error) {
	if r.Property == "" {
		return convert.JoinMapping{}, fmt.Errorf("relation with empty property name")
	}

	joinType, err := parseJoinType(r.JoinType)
	if err != nil {
		return convert.JoinMapping{}, fmt.Errorf("relation %s: %w", r.Property, err)
	}
	cardinality, err := parseCardinality(r.Cardinality)
	if err != nil {
		return convert.JoinMapping{}, fmt.Errorf("relation %s: %w", r.Property, err)
	}

	return convert.JoinMapping{
		PropertyName:     r.Property,
		TargetEntity:     r.Target,
		JoinColumn:       r.JoinColumn,
		ReferencedColumn: r.ReferencedColumn,
		JoinTypeHint:     joinType,
		Cardinality:      cardinality,
	}, nil
}

func parseJoinType(s string) (core.JoinType, error) {
	switch strings.ToUpper(s) {
	case "":
		return core.JoinDefault, nil
	case "INNER":
		return core.JoinInner, nil
	case "LEFT":
		return core.JoinLeft, nil
	case "LEFT OUTER":
		return core.JoinLeftOuter, nil
	case "RIGHT":
		return core.JoinRight, nil
	case "RIGHT OUTER":
		return core.JoinRightOuter, nil
	default:
		return core.JoinDefault, fmt.Errorf("unknown join_type %q", s)
	}
}

func parseCardinality(s string) (convert.Cardinality, error) {
	switch strings.ToLower(s) {
	case "":
		return convert.CardinalityAuto, nil
	case "collection":
		return convert.CardinalityCollection, nil
	case "single":
		return convert.CardinalitySingle, nil
	default:
		return convert.CardinalityAuto, fmt.Errorf("unknown cardinality %q", s)
	}
}
