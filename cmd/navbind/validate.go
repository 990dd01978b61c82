package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/navbind"
	"github.com/aretw0/navbind/internal/presentation/tui"
	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/navigation"
	"github.com/spf13/cobra"
)

// errValidation is returned when a page does not satisfy its bindings.
var errValidation = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every trigger exists on the page",
	Long: `Binds the page, reports every missing trigger, and activates each bound
trigger once to check it navigates to its target. Exits 1 on any failure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		p, err := loadProject(flagsFrom(cmd))
		if err != nil {
			return err
		}
		// Every binding is checked, whatever the configured policy.
		p.policy = domain.PolicyBestEffort

		binder := navbind.New(navigation.NewNavigator(nil), p.binderOptions(navbind.WithLogger(logger))...)
		return runValidate(cmd.Context(), cmd.OutOrStdout(), binder, p)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(ctx context.Context, w io.Writer, binder *navbind.Binder, p *project) error {
	if ctx == nil {
		ctx = context.Background()
	}

	err := binder.Initialize(ctx, p.page)
	missing := domain.MissingTriggers(err)
	if err != nil && len(missing) == 0 {
		return err
	}

	failures := len(missing)
	for _, id := range missing {
		tui.StatusLine(w, tui.StatusFail, "trigger %q not found on page", id)
	}

	for _, b := range binder.Bindings() {
		actx, capture := navigation.WithCapture(ctx)
		if _, err := p.page.Dispatch(actx, b.TriggerID, binder.EventType()); err != nil {
			failures++
			tui.StatusLine(w, tui.StatusFail, "%s: %v", b.TriggerID, err)
			continue
		}
		target, ok := capture.Target()
		if !ok || target != b.TargetPath || capture.Count() != 1 {
			failures++
			tui.StatusLine(w, tui.StatusFail, "%s: expected one navigation to %s, got %d (last %q)", b.TriggerID, b.TargetPath, capture.Count(), target)
			continue
		}
		tui.StatusLine(w, tui.StatusOK, "%s -> %s", b.TriggerID, b.TargetPath)
	}

	if failures > 0 {
		return fmt.Errorf("%w: %d problem(s)", errValidation, failures)
	}
	fmt.Fprintln(w, "Page is valid! ✅")
	return nil
}
