package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/hqlbridge/pkg/analysis"
	"github.com/leapstack-labs/hqlbridge/pkg/parser"
)

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	Format string // Output format: table, yaml
}

// analysisReport is the serializable form of the query metadata.
type analysisReport struct {
	QueryType  string         `yaml:"query_type"`
	Entities   []entityReport `yaml:"entities"`
	Parameters []string       `yaml:"parameters,omitempty"`
}

type entityReport struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`
	Fields  []string `yaml:"fields,omitempty"`
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze [query]",
		Short: "Show entities, fields, and parameters referenced by a query",
		Long: `Parse an HQL/JPQL query and report the entities, aliases, fields,
and parameters it references, in the order they appear.`,
		Example: `  # Tabular report
  hqlbridge analyze "SELECT u.name FROM User u WHERE u.age > :minAge"

  # YAML for scripting
  hqlbridge analyze --format yaml "SELECT u FROM User u"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd, args)
			if err != nil {
				return err
			}
			return runAnalyze(cmd, query, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, yaml")
	return cmd
}

func runAnalyze(cmd *cobra.Command, query string, opts *AnalyzeOptions) error {
	stmt, err := parser.Parse(query)
	if err != nil {
		return err
	}
	report := buildReport(analysis.Analyze(stmt))

	format := opts.Format
	if format == "" {
		format = getConfig(cmd.Context()).OutputFormat
	}

	switch format {
	case "yaml":
		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	case "", "table", "sql":
		renderReportTable(cmd, report)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func buildReport(md *analysis.Metadata) analysisReport {
	report := analysisReport{
		QueryType:  string(md.QueryType()),
		Parameters: md.Parameters(),
	}

	aliasesByEntity := make(map[string][]string)
	for _, alias := range md.Aliases() {
		if entity, ok := md.EntityForAlias(alias); ok {
			aliasesByEntity[entity] = append(aliasesByEntity[entity], alias)
		}
	}

	for _, entity := range md.EntityNames() {
		report.Entities = append(report.Entities, entityReport{
			Name:    entity,
			Aliases: aliasesByEntity[entity],
			Fields:  md.FieldsForEntity(entity),
		})
	}
	return report
}

func renderReportTable(cmd *cobra.Command, report analysisReport) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "Query type: %s\n", report.QueryType)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Entity", "Aliases", "Fields"})
	for _, entity := range report.Entities {
		t.AppendRow(table.Row{
			entity.Name,
			strings.Join(entity.Aliases, ", "),
			strings.Join(entity.Fields, ", "),
		})
	}
	t.Render()

	if len(report.Parameters) > 0 {
		_, _ = fmt.Fprintf(w, "Parameters: %s\n", strings.Join(report.Parameters, ", "))
	}
}
