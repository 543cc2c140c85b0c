package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/msgpo/repose/internal/models"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repose",
		Short: "Manage pacman repository databases",
		Long: `Repose maintains pacman repository databases. It scans directories for
built packages, keeps the newest version of every package name, and
rewrites the compressed database archive that pacman clients sync.

The repository name defaults to the machine's hostname. The database is
written to <name>.db.tar.gz with a <name>.db symlink beside it.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringP("repo", "r", "", "Repository name (defaults to the hostname)")

	// Add subcommands
	rootCmd.AddCommand(NewUpdateCmd())
	rootCmd.AddCommand(NewVerifyCmd())
	rootCmd.AddCommand(NewQueryCmd())

	return rootCmd
}

// repoConfig builds the run configuration from the persistent flags,
// falling back to the hostname when no repository name was given.
func repoConfig(cmd *cobra.Command) (*models.RepositoryConfig, error) {
	name, _ := cmd.Flags().GetString("repo")
	if name == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, &models.RepoError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("no repo name given and hostname lookup failed: %w", err),
			}
		}
		name = host
		logrus.Debugf("Using hostname %s as repository name", name)
	}

	return &models.RepositoryConfig{RepoName: name}, nil
}
