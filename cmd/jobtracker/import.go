package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/jobtracker/internal/db"
	"github.com/jonathan/jobtracker/internal/schemas"
	"github.com/jonathan/jobtracker/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newImportCmd(configPath *string) *cobra.Command {
	var email, file string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-create applications from a JSON file",
		Long: `Validate a JSON file of the form {"applications": [...]} against the import schema and
create each entry for the user. Nothing is written unless every entry is valid.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := schemas.ValidateFile(schemas.ApplicationImportSchema(), file)
			if err != nil {
				return err
			}
			var payload types.ApplicationImport
			if err := json.Unmarshal(doc, &payload); err != nil {
				return fmt.Errorf("failed to decode %s: %w", file, err)
			}

			ctx := cmd.Context()
			rt, err := openRuntime(ctx, *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			user, err := rt.userByEmail(ctx, email)
			if err != nil {
				return err
			}

			apps, err := buildImport(user, payload, time.Now().UTC())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if dryRun {
				_, _ = fmt.Fprintf(out, "%d applications valid, nothing written (dry run)\n", len(apps))
				return nil
			}

			for i, app := range apps {
				if _, err := rt.store.CreateApplication(ctx, app); err != nil {
					return fmt.Errorf("entry %d (%s): %w", i, app.Company, err)
				}
			}
			rt.invalidateCache(ctx, user)
			rt.logger.Info("applications imported", zap.String("user_id", user.ID.String()), zap.Int("count", len(apps)))
			_, _ = fmt.Fprintf(out, "Imported %d applications for %s\n", len(apps), user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email of the owning user (required)")
	cmd.Flags().StringVar(&file, "file", "", "Path to the JSON import file (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate only")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// buildImport converts every entry with the same rules as the create endpoint.
// All failures are reported together.
func buildImport(user *db.User, payload types.ApplicationImport, now time.Time) ([]*db.Application, error) {
	apps := make([]*db.Application, 0, len(payload.Applications))
	var errs []error
	for i, entry := range payload.Applications {
		req := entry.CreateRequest()
		if err := req.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		app, err := db.NewApplication(user.ID, req, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		apps = append(apps, app)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return apps, nil
}
