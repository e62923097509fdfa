package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestNewConvertCommand(t *testing.T) {
	cmd := NewConvertCommand()

	assert.Equal(t, "convert [query]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestConvertCommandFallbackMappings(t *testing.T) {
	// Without config everything resolves through name-based fallbacks
	out, err := execute(t, NewConvertCommand(), "SELECT u.firstName FROM User u")
	require.NoError(t, err)
	assert.Equal(t, "SELECT u.first_name FROM user u\n", out)
}

func TestConvertCommandParseErrorFails(t *testing.T) {
	_, err := execute(t, NewConvertCommand(), "SELECT FROM")
	require.Error(t, err)
}

func TestNewAnalyzeCommand(t *testing.T) {
	cmd := NewAnalyzeCommand()

	assert.Equal(t, "analyze [query]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("format"), "flag format should exist")
}

func TestAnalyzeCommandTable(t *testing.T) {
	out, err := execute(t, NewAnalyzeCommand(),
		"SELECT u.name FROM User u WHERE u.age > :minAge")
	require.NoError(t, err)

	assert.Contains(t, out, "Query type: SELECT")
	assert.Contains(t, out, "User")
	assert.Contains(t, out, "name, age")
	assert.Contains(t, out, "Parameters: minAge")
}

func TestAnalyzeCommandYAML(t *testing.T) {
	out, err := execute(t, NewAnalyzeCommand(),
		"--format", "yaml", "SELECT u.name FROM User u")
	require.NoError(t, err)

	assert.Contains(t, out, "query_type: SELECT")
	assert.Contains(t, out, "name: User")
	assert.Contains(t, out, "- name")
}

func TestAnalyzeCommandUnknownFormat(t *testing.T) {
	_, err := execute(t, NewAnalyzeCommand(), "--format", "xml", "SELECT u FROM User u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()
	assert.Equal(t, "validate [query]", cmd.Use)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, NewValidateCommand(), "SELECT u FROM User u")
	require.NoError(t, err)
	assert.Contains(t, out, "OK")

	_, err = execute(t, NewValidateCommand(), "SELECT u FROM User u WHERE u.age >")
	require.Error(t, err)
}

func TestNewVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3", "2026-01-01", "abc123"))
	require.NoError(t, err)

	assert.Contains(t, out, "hqlbridge v1.2.3")
	assert.Contains(t, out, "2026-01-01")
	assert.Contains(t, out, "abc123")
}
