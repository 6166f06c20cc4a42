// Package cli implements presencectl, the manual trigger for the daily sweep
// and the monthly claim evaluation.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eliezerb2/presence/internal/attendance"
	"github.com/eliezerb2/presence/internal/automation"
	"github.com/eliezerb2/presence/internal/calendar"
	"github.com/eliezerb2/presence/internal/claim"

	"github.com/spf13/cobra"
)

// Env is what the commands run against. Close may be nil.
type Env struct {
	Sweeper   automation.Sweeper
	Evaluator claim.Evaluator
	Migrate   func(ctx context.Context) error
	Schedule  attendance.Schedule
	Now       func() time.Time
	Close     func()
}

// Opener connects lazily so --help works without a database.
type Opener func(ctx context.Context) (*Env, error)

func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "presencectl",
		Short:         "Run attendance automation by hand",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSweepCommand(open), newEvaluateCommand(open), newMigrateCommand(open))
	return root
}

func newSweepCommand(open Opener) *cobra.Command {
	var date, at string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the daily sweep for one date",
		Long: `Runs permanent absences, seeding, the reminder and every time-gated
transition for --date as of --at (school-local HH:MM). Both default to now.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				now := env.Now().In(location(env.Schedule))
				day := env.Schedule.DateOf(now)

				if date != "" {
					parsed, err := calendar.ParseDate(date)
					if err != nil {
						return fmt.Errorf("--date: %w", err)
					}
					day = parsed
				}
				if at != "" {
					clock, err := attendance.ParseClockTime(at)
					if err != nil {
						return fmt.Errorf("--at: %w", err)
					}
					now = clock.On(day, location(env.Schedule))
				}

				res, err := env.Sweeper.RunDailySweep(ctx, day, now)
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "school date, YYYY-MM-DD")
	cmd.Flags().StringVar(&at, "at", "", "time of day to sweep as, HH:MM")
	return cmd
}

func newEvaluateCommand(open Opener) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate claim thresholds for one month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				now := env.Now().In(location(env.Schedule))
				ym := calendar.YearMonthOf(now)
				if month != "" {
					parsed, err := calendar.ParseYearMonth(month)
					if err != nil {
						return fmt.Errorf("--month: %w", err)
					}
					ym = parsed
				}

				res, err := env.Evaluator.EvaluateMonth(ctx, ym, now)
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to evaluate, YYYY-MM")
	return cmd
}

func newMigrateCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				if err := env.Migrate(ctx); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
				return err
			})
		},
	}
}

func withEnv(cmd *cobra.Command, open Opener, fn func(ctx context.Context, env *Env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := open(ctx)
	if err != nil {
		return err
	}
	if env.Close != nil {
		defer env.Close()
	}
	if env.Now == nil {
		env.Now = time.Now
	}
	return fn(ctx, env)
}

func location(s attendance.Schedule) *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
