package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"coursekit/internal/domain"
	"coursekit/internal/tui"
)

var (
	studyDeckID      string
	studyCards       int
	studyNoSummaries bool
)

var studyCmd = &cobra.Command{
	Use:   "study [path]",
	Short: "Open the interactive study screen",
	Long: `Open a terminal screen to ask questions, flip through flashcards and
page through topic summaries.

Examples:
  coursekit study notes/
  coursekit study --deck 3f2c... notes/   # use a saved deck`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStudy,
}

func init() {
	rootCmd.AddCommand(studyCmd)
	studyCmd.Flags().StringVar(&studyDeckID, "deck", "", "saved deck to study instead of generating one")
	studyCmd.Flags().IntVarP(&studyCards, "count", "n", 0, "number of generated cards (default from config)")
	studyCmd.Flags().BoolVar(&studyNoSummaries, "no-summaries", false, "skip topic summaries")
}

func runStudy(cmd *cobra.Command, args []string) error {
	session, err := openSession(args)
	if err != nil {
		return err
	}

	var deck domain.Deck
	if studyDeckID != "" {
		st, err := openStore()
		if err != nil {
			return err
		}
		deck, err = st.GetDeck(studyDeckID)
		st.Close()
		if err != nil {
			return err
		}
	} else {
		deck, err = session.GenerateFlashcards(studyCards)
		if err != nil {
			return fmt.Errorf("flashcard generation failed: %w", err)
		}
	}

	var summaries domain.TopicSummaries
	if !studyNoSummaries {
		summaries, err = session.SummarizeTopics(cmd.Context(), nil)
		if err != nil {
			return fmt.Errorf("summarize failed: %w", err)
		}
	}

	p := tea.NewProgram(tui.New(session, session.Name, deck, summaries), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("study screen failed: %w", err)
	}
	return nil
}
