package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobtracker/internal/fetch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newFetchPostingCmd(configPath *string) *cobra.Command {
	var email, jobID string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "fetch-posting",
		Short: "Download an application's job posting into its description",
		Long: `Fetch the application's jobUrl, extract the posting text using job-board aware selectors
and store it as the application's jobDescription.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(jobID)
			if err != nil {
				return fmt.Errorf("invalid --job-id %q: %w", jobID, err)
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
			app, err := rt.store.GetApplication(ctx, user.ID, id)
			if err != nil {
				return err
			}
			if app == nil {
				return fmt.Errorf("no application %s for %s", id, user.Email)
			}
			if app.JobURL == "" {
				return fmt.Errorf("application %s has no jobUrl", id)
			}

			opts := fetch.DefaultOptions()
			opts.Timeout = timeout
			posting, err := fetch.JobPosting(ctx, app.JobURL, opts)
			if err != nil {
				return err
			}

			app.JobDescription = posting.Text
			if _, err := rt.store.UpdateApplication(ctx, app); err != nil {
				return err
			}

			rt.logger.Info("job posting stored",
				zap.String("application_id", id.String()),
				zap.String("board", string(posting.Board)),
				zap.Int("bytes", len(posting.Text)),
				zap.Bool("truncated", posting.Truncated))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored %d characters from %s (%s)\n",
				len([]rune(posting.Text)), app.JobURL, posting.Board)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email of the owning user (required)")
	cmd.Flags().StringVar(&jobID, "job-id", "", "Application ID (required)")
	cmd.Flags().DurationVar(&timeout, "timeout", fetch.DefaultTimeout, "Download timeout")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("job-id")
	return cmd
}
