package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/hqlbridge/internal/config"
)

const sampleConfig = `
verbose: true
output: yaml
singular_properties:
  - news
entities:
  - name: User
    table: users
    fields:
      userName: user_name
      emailAddress: email
    relations:
      - property: orders
        target: Order
        join_column: user_id
        referenced_column: id
        join_type: LEFT
  - name: Order
    table: orders
    fields:
      orderDate: order_date
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hqlbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, sampleConfig), nil)
	require.NoError(t, err)

	assert.True(t, cfg.Verbose)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, []string{"news"}, cfg.SingularProperties)
	require.Len(t, cfg.Entities, 2)
	assert.Equal(t, "User", cfg.Entities[0].Name)
	assert.Equal(t, "users", cfg.Entities[0].Table)
	assert.Equal(t, "user_name", cfg.Entities[0].Fields["userName"])
	require.Len(t, cfg.Entities[0].Relations, 1)
	assert.Equal(t, "orders", cfg.Entities[0].Relations[0].Property)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig("", nil)
	require.NoError(t, err)

	assert.False(t, cfg.Verbose)
	assert.Equal(t, config.DefaultOutput, cfg.OutputFormat)
	assert.Empty(t, cfg.Entities)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("HQLBRIDGE_OUTPUT", "sql")

	cfg, err := config.LoadConfig(writeConfig(t, sampleConfig), nil)
	require.NoError(t, err)
	assert.Equal(t, "sql", cfg.OutputFormat)
}

func TestLoadConfigFlagOverride(t *testing.T) {
	t.Setenv("HQLBRIDGE_OUTPUT", "sql")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{"--output", "table"}))

	cfg, err := config.LoadConfig(writeConfig(t, sampleConfig), flags)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.OutputFormat)
	// Unchanged flags do not override the file
	assert.True(t, cfg.Verbose)
}

func TestNewConverterFromConfig(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, sampleConfig), nil)
	require.NoError(t, err)

	conv, err := cfg.NewConverter()
	require.NoError(t, err)

	sql, err := conv.Convert("SELECT u.emailAddress FROM User u JOIN u.orders o WHERE o.orderDate > :since")
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT u.email FROM users u LEFT JOIN orders o ON o.user_id = u.id WHERE o.order_date > :since",
		sql)
}

func TestNewConverterRejectsBadJoinType(t *testing.T) {
	cfg := &config.Config{
		Entities: []config.EntityConfig{{
			Name: "User",
			Relations: []config.RelationConfig{{
				Property: "orders",
				JoinType: "SIDEWAYS",
			}},
		}},
	}

	_, err := cfg.NewConverter()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "join_type")
}

func TestNewConverterRejectsBadCardinality(t *testing.T) {
	cfg := &config.Config{
		Entities: []config.EntityConfig{{
			Name: "User",
			Relations: []config.RelationConfig{{
				Property:    "orders",
				Cardinality: "many",
			}},
		}},
	}

	_, err := cfg.NewConverter()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cardinality")
}
