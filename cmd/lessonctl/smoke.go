package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/lessonbridge-backend/internal/config"
	"github.com/yungbote/lessonbridge-backend/internal/platform/envutil"
	"github.com/yungbote/lessonbridge-backend/internal/smoke"
)

func newSmokeCommand(lookup envutil.LookupFunc) *cobra.Command {
	var (
		baseURL  string
		planPath string
		lessonID string
		token    string
		timeout  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run HTTP smoke checks against a running API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadSmokeConfig(lookup, nil)
			if cmd.Flags().Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if cmd.Flags().Changed("lesson") {
				cfg.LessonID = lessonID
			}
			if cmd.Flags().Changed("token") {
				cfg.Token = token
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = timeout
			}

			plan := smoke.DefaultPlan()
			if planPath != "" {
				p, err := smoke.LoadPlan(planPath)
				if err != nil {
					return fmt.Errorf("load plan: %w", err)
				}
				plan = p
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "smoke: %s (%d checks)\n", cfg.BaseURL, len(plan.Checks))
			res := smoke.NewResults(out)
			smoke.NewRunner(cfg.BaseURL, cfg.LessonID, cfg.Token, cfg.Timeout).Run(cmd.Context(), plan, res)
			res.Summary()
			if !res.OK() {
				return fmt.Errorf("%d smoke checks failed", len(res.Failed))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", config.DefaultSmokeBaseURL, "API base URL (env SMOKE_BASE_URL)")
	cmd.Flags().StringVar(&planPath, "plan", "", "YAML plan file; defaults to the built-in plan")
	cmd.Flags().StringVar(&lessonID, "lesson", "", "Lesson id for mutating checks (env SMOKE_LESSON_ID)")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token for protected routes (env SMOKE_TOKEN)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Per-request timeout (env SMOKE_TIMEOUT)")
	return cmd
}
