package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/msgpo/repose/internal/models"
	"github.com/msgpo/repose/internal/repo"
	"github.com/msgpo/repose/internal/scanner"
	"github.com/msgpo/repose/internal/signer"
)

// NewUpdateCmd creates the update command
func NewUpdateCmd() *cobra.Command {
	var clean bool
	var gpgKey, gpgPassphrase string

	cmd := &cobra.Command{
		Use:   "update [path...]",
		Short: "Update the repository database",
		Long: `Update reads the existing database, drops entries whose package files
have disappeared, and folds in the packages found under the given paths.
A package replaces an existing entry of the same name only when its
version is newer. The database is rewritten only when something changed.

With no paths, only the existing entries are revalidated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := repoConfig(cmd)
			if err != nil {
				return err
			}
			cfg.Clean = clean
			cfg.GPGKeyPath = gpgKey
			cfg.GPGPassphrase = gpgPassphrase

			var sgn signer.Signer
			if cfg.GPGKeyPath != "" {
				gpg, err := signer.NewGPGSigner(cfg.GPGKeyPath, cfg.GPGPassphrase)
				if err != nil {
					return &models.RepoError{
						Type: models.ErrSigning,
						Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
					}
				}
				sgn = gpg
				logrus.Info("GPG signer initialized")
			}

			engine := repo.NewEngine(cfg, scanner.NewFileSystemScanner(), sgn)
			return engine.Update(cmd.Context(), args)
		},
	}

	cmd.Flags().BoolVarP(&clean, "clean", "c", false, "Delete superseded package files from disk")
	cmd.Flags().StringVarP(&gpgKey, "gpg-key", "k", "", "Path to GPG private key for signing the database")
	cmd.Flags().StringVarP(&gpgPassphrase, "gpg-passphrase", "p", "", "GPG key passphrase")

	return cmd
}
