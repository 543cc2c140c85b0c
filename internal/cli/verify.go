package cli

import (
	"github.com/spf13/cobra"

	"github.com/msgpo/repose/internal/repo"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify the contents of the database",
		Long: `Verify checks that every package file recorded in the database still
exists on disk and still matches its stored MD5 and SHA256 checksums.
The database itself is never modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := repoConfig(cmd)
			if err != nil {
				return err
			}
			return repo.VerifyDatabase(cfg.DatabasePath())
		},
	}
}
