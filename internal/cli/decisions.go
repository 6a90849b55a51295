package cli

import (
	"strconv"
	"time"

	"swipedeck/internal/store"

	"github.com/spf13/cobra"
)

func newDecisionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decisions",
		Short: "Inspect recorded swipes",
	}
	cmd.AddCommand(newDecisionsListCmd(app))
	cmd.AddCommand(newDecisionsTallyCmd(app))
	return cmd
}

type decisionList []store.Decision

func (l decisionList) TableHeaders() []string {
	return []string{"ID", "DECK", "#", "TITLE", "DIRECTION", "DECIDED"}
}

func (l decisionList) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, d := range l {
		rows = append(rows, []string{
			d.ID, d.Deck, strconv.Itoa(d.Index), d.Title, d.Direction,
			d.DecidedAt.Local().Format(time.DateTime),
		})
	}
	return rows
}

func openDecisionLog(cmd *cobra.Command, app *App) (*store.DecisionLog, error) {
	st, err := store.Open(app.Dir)
	if err != nil {
		return nil, err
	}
	return st.OpenDecisionLog(cmd.Context())
}

func newDecisionsListCmd(app *App) *cobra.Command {
	var limit int
	var deckName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List swipes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dl, err := openDecisionLog(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer dl.Close()

			got, err := dl.List(cmd.Context(), store.DecisionFilter{Deck: deckName, Limit: limit})
			if err != nil {
				return writeErr(cmd, err)
			}
			if got == nil {
				got = []store.Decision{}
			}
			return writeOut(cmd, app, decisionList(got))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum decisions to print (0 = all)")
	cmd.Flags().StringVar(&deckName, "deck-name", "", "Only decisions for this deck")
	return cmd
}

type tally struct {
	Deck  string `json:"deck"`
	Left  int    `json:"left"`
	Right int    `json:"right"`
}

func (t tally) TableHeaders() []string { return []string{"DECK", "LEFT", "RIGHT"} }

func (t tally) TableRows() [][]string {
	return [][]string{{t.Deck, strconv.Itoa(t.Left), strconv.Itoa(t.Right)}}
}

func newDecisionsTallyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tally [deck-name]",
		Short: "Count left and right swipes for a deck",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := store.SampleDeckName
			if len(args) == 1 {
				name = args[0]
			} else if app.DeckPath != "" {
				d, err := store.LoadDeck(app.DeckPath)
				if err != nil {
					return writeErr(cmd, err)
				}
				name = d.Name
			}

			dl, err := openDecisionLog(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer dl.Close()

			counts, err := dl.Tally(cmd.Context(), name)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, tally{Deck: name, Left: counts["left"], Right: counts["right"]})
		},
	}
}
