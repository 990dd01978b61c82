package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/navbind"
	"github.com/aretw0/navbind/internal/presentation/graph"
	"github.com/aretw0/navbind/internal/presentation/tui"
	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/navigation"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the bindings",
	Long: `Prints the bindings as a markdown table (rendered for the terminal) or as a
Mermaid flowchart. With --page, triggers missing from the page are marked
in the flowchart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		plain, _ := cmd.Flags().GetBool("plain")
		return runInspect(cmd.Context(), cmd.OutOrStdout(), flagsFrom(cmd), format, plain)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().String("format", "markdown", "Output format: markdown or mermaid")
	inspectCmd.Flags().Bool("plain", false, "Print raw markdown instead of rendering it")
}

func runInspect(ctx context.Context, w io.Writer, f projectFlags, format string, plain bool) error {
	p, err := loadProject(f)
	if err != nil {
		return err
	}

	switch format {
	case "markdown", "md":
		render := tui.NewRenderer(plain)
		out, err := render(tui.BindingsMarkdown(p.bindings, p.policy, p.eventType))
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		fmt.Fprint(w, out)
		return nil

	case "mermaid":
		var overlay *graph.GraphOverlay
		if f.page != "" {
			if ctx == nil {
				ctx = context.Background()
			}
			p.policy = domain.PolicyBestEffort
			binder := navbind.New(navigation.NewNavigator(nil), p.binderOptions()...)
			err := binder.Initialize(ctx, p.page)
			missing := domain.MissingTriggers(err)
			if err != nil && len(missing) == 0 {
				return err
			}
			overlay = &graph.GraphOverlay{MissingTriggers: missing}
		}
		fmt.Fprint(w, graph.GenerateMermaid(p.bindings, p.eventType, overlay))
		return nil

	default:
		return fmt.Errorf("unknown format %q (supported: markdown, mermaid)", format)
	}
}
