package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hqlbridge/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [query]",
		Short: "Check whether an HQL query parses",
		Long: `Parse an HQL/JPQL query and report the first syntax error, if any.
Exits non-zero when the query does not parse.`,
		Example: `  hqlbridge validate "SELECT u FROM User u WHERE u.age >"`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd, args)
			if err != nil {
				return err
			}
			if _, err := parser.Parse(query); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}
