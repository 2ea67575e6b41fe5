package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcoot/blogadmin/internal/config"
	"github.com/mcoot/blogadmin/internal/factory"
	"github.com/mcoot/blogadmin/internal/services/provision"
)

// ErrMemoryStore is returned when seed-admin would write to a store that
// disappears when the command exits.
var ErrMemoryStore = errors.New("record store is in-memory; set STORAGE_TYPE=mongo or pass --allow-memory")

// newSeedAdminCmd seeds an admin straight into the configured store. It
// reads the same settings as the server rather than calling the API.
func newSeedAdminCmd() *cobra.Command {
	var req provision.SeedRequest
	var allowMemory bool

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the first administrator if it does not exist",
		Long: `seed-admin creates an administrator in the store the server is configured
to use (STORAGE_TYPE, MONGO_URI, ...). It does nothing if an admin with the
email already exists.

Email and password default to SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD, then
to the built-in development credentials.

With the in-memory record store nothing outlives the command, so it refuses
unless --allow-memory is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			persistent := settings.Storage.Type != config.StorageMemory
			if !persistent && !allowMemory {
				return ErrMemoryStore
			}

			level, err := settings.LogLevel()
			if err != nil {
				return err
			}
			if !cfg.Verbose {
				level = max(level, slog.LevelWarn)
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			factoryCfg, err := factory.FromSettings(settings, logger)
			if err != nil {
				return err
			}
			app, err := factory.New(factoryCfg)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close(context.Background()) }()

			if req.Email == "" {
				req.Email = getEnvOrDefault("SEED_ADMIN_EMAIL", provision.DefaultAdminEmail)
			}
			if req.Password == "" {
				req.Password = getEnvOrDefault("SEED_ADMIN_PASSWORD", provision.DefaultAdminPassword)
			}

			admin, created, err := app.ProvisionService.SeedAdmin(cmd.Context(), req)
			if err != nil {
				return err
			}

			result := SeedResult{Email: req.Email, Created: created, Persistent: persistent}
			if admin != nil {
				result.ID = string(admin.ID)
				result.Email = admin.Email
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Admin email (env: SEED_ADMIN_EMAIL)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Admin password (env: SEED_ADMIN_PASSWORD)")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name")
	cmd.Flags().BoolVar(&allowMemory, "allow-memory", false, "Seed even when STORAGE_TYPE=memory (nothing is persisted)")

	return cmd
}

