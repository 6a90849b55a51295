package cli

import (
	"fmt"
	"strconv"

	"swipedeck/internal/store"

	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"
)

func newDecksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decks",
		Short: "Inspect decks",
	}
	cmd.AddCommand(newDecksShowCmd(app))
	return cmd
}

type deckListing struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Count       int               `json:"count"`
	Cards       []store.CardEntry `json:"cards"`
}

func (l deckListing) TableHeaders() []string { return []string{"#", "TITLE", "BODY", "BACK"} }

func (l deckListing) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Cards))
	for i, c := range l.Cards {
		back := ""
		if c.Back != nil {
			back = c.Back.Title
		}
		rows = append(rows, []string{strconv.Itoa(i), c.Title, truncate.StringWithTail(c.Body, 40, "…"), back})
	}
	return rows
}

func newDecksShowCmd(app *App) *cobra.Command {
	var render bool
	var width int
	var style string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the deck's cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gc, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := loadDeck(app, gc)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !render {
				return writeOut(cmd, app, deckListing{
					Name:        d.Name,
					Description: d.Description,
					Count:       len(d.Cards),
					Cards:       d.Cards,
				})
			}
			out, err := renderMarkdown(cmd, d.Markdown(), style, width)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "Render the deck as styled markdown")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for --render")
	cmd.Flags().StringVar(&style, "style", envOr("SWIPEDECK_MARKDOWN_STYLE", "auto"), "Markdown style for --render (auto|dark|light|notty)")
	return cmd
}
