package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/lessonbridge-backend/internal/app"
	"github.com/yungbote/lessonbridge-backend/internal/platform/envutil"
	"github.com/yungbote/lessonbridge-backend/internal/services"
)

func newCheckInCommand(lookup envutil.LookupFunc) *cobra.Command {
	var (
		onlyIfUnset bool
		dryRun      bool
	)
	cmd := &cobra.Command{
		Use:   "checkin <lesson-id>",
		Short: "Stamp a lesson's check-in time with the current time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			lessonID := args[0]

			application, err := app.New(ctx, app.Options{Lookup: lookup})
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer closeJoined(&err, application)

			out := cmd.OutOrStdout()
			if dryRun {
				lesson, err := application.Services.Lesson.GetLesson(ctx, nil, lessonID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "lesson %s: check-in %s (dry run, not written)\n", lesson.ID, formatCheckIn(lesson.CheckedInAt))
				return nil
			}

			res, err := application.Services.CheckIn.CheckIn(ctx, nil, lessonID, services.CheckInOptions{
				OnlyIfUnset: onlyIfUnset,
			})
			if err != nil {
				return err
			}
			if res.AlreadyCheckedIn {
				fmt.Fprintf(out, "lesson %s already checked in at %s\n", res.Lesson.ID, res.CheckedInAt.Format(time.RFC3339Nano))
				return nil
			}
			fmt.Fprintf(out, "lesson %s checked in at %s\n", res.Lesson.ID, res.CheckedInAt.Format(time.RFC3339Nano))
			return nil
		},
	}
	cmd.Flags().BoolVar(&onlyIfUnset, "only-if-unset", false, "Keep an existing check-in time instead of overwriting it")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the lesson without writing")
	return cmd
}

func formatCheckIn(at *time.Time) string {
	if at == nil {
		return "none"
	}
	return at.UTC().Format(time.RFC3339Nano)
}

// closeJoined closes c and folds a close failure into *errp so a failed
// disconnect still fails the command.
func closeJoined(errp *error, c io.Closer) {
	if cerr := c.Close(); cerr != nil {
		*errp = errors.Join(*errp, fmt.Errorf("disconnect: %w", cerr))
	}
}
