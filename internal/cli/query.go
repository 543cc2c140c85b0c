package cli

import (
	"github.com/spf13/cobra"

	"github.com/msgpo/repose/internal/repo"
)

// NewQueryCmd creates the query command
func NewQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query [name...]",
		Short: "Query package metadata from the database",
		Long: `Query prints the stored metadata for the named packages. Without names
every package in the database is listed. A name missing from the database
fails the query; names after it are not looked up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := repoConfig(cmd)
			if err != nil {
				return err
			}
			return repo.QueryDatabase(cmd.OutOrStdout(), cfg.DatabasePath(), args)
		},
	}
}
