package cli

import (
	"fmt"
	"strings"

	"swipedeck/internal/docs"

	"github.com/spf13/cobra"
)

type topicList []docs.Topic

func (l topicList) TableHeaders() []string { return []string{"TOPIC", "SUMMARY"} }

func (l topicList) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, t := range l {
		rows = append(rows, []string{t.Name, t.Summary})
	}
	return rows
}

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var width int
	var style string

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Built-in guides (gestures, decks, config)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, topicList(docs.Topics()))
			}
			md, ok := docs.Get(args[0])
			if !ok {
				names := make([]string, 0)
				for _, t := range docs.Topics() {
					names = append(names, t.Name)
				}
				return writeErr(cmd, fmt.Errorf("unknown topic %q (topics: %s)", args[0], strings.Join(names, ", ")))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			out, err := renderMarkdown(cmd, md, style, width)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown source")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width")
	cmd.Flags().StringVar(&style, "style", envOr("SWIPEDECK_MARKDOWN_STYLE", "auto"), "Markdown style (auto|dark|light|notty)")
	return cmd
}
