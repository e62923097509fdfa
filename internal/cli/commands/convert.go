package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [query]",
		Short: "Translate an HQL query to PostgreSQL SQL",
		Long: `Translate an HQL/JPQL query to PostgreSQL SQL.

The query is read from the first argument, or from stdin when no
argument is given. Mappings come from the config file; unmapped names
fall back to lowercased tables and snake_case columns.`,
		Example: `  # Convert a query given as an argument
  hqlbridge convert "SELECT u FROM User u WHERE u.isActive = true"

  # Convert a query from stdin
  echo "SELECT o FROM Order o" | hqlbridge convert`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd, args)
			if err != nil {
				return err
			}

			conv, err := newConverter(cmd)
			if err != nil {
				return err
			}

			sql, err := conv.Convert(query)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), sql)
			return nil
		},
	}
}
