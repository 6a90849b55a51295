package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// renderMarkdown styles md for the command's output. style "auto" picks
// dark, light or notty from the output itself.
func renderMarkdown(cmd *cobra.Command, md, style string, width int) (string, error) {
	if style == "" || style == "auto" {
		style = markdownStyle(termenv.NewOutput(cmd.OutOrStdout()))
	}
	r, err := glamour.NewTermRenderer(
		// WithAutoStyle would query the terminal even when output is piped.
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(md)
}

func markdownStyle(out *termenv.Output) string {
	if out.Profile == termenv.Ascii {
		return "notty"
	}
	if out.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
