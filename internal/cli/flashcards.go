package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"coursekit/internal/domain"
)

var (
	flashcardsCount int
	flashcardsJSON  bool
	flashcardsSave  bool
)

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards [path]",
	Short: "Generate question and answer flashcards",
	Long: `Generate flashcards from definitions, dates, percentages and key
sentences in the course materials.

Examples:
  coursekit flashcards biology.txt
  coursekit flashcards -n 20 --save notes/
  coursekit flashcards --json notes/ > deck.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFlashcards,
}

func init() {
	rootCmd.AddCommand(flashcardsCmd)
	flashcardsCmd.Flags().IntVarP(&flashcardsCount, "count", "n", 0, "maximum number of cards (default from config)")
	flashcardsCmd.Flags().BoolVar(&flashcardsJSON, "json", false, "output as JSON")
	flashcardsCmd.Flags().BoolVar(&flashcardsSave, "save", false, "save the deck to the deck store")
}

func runFlashcards(cmd *cobra.Command, args []string) error {
	session, err := openSession(args)
	if err != nil {
		return err
	}

	deck, err := session.GenerateFlashcards(flashcardsCount)
	if err != nil {
		return fmt.Errorf("flashcard generation failed: %w", err)
	}

	if flashcardsSave && len(deck.Cards) > 0 {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.PutDeck(deck); err != nil {
			return fmt.Errorf("failed to save deck: %w", err)
		}
		if !flashcardsJSON {
			fmt.Printf("Saved deck %s (%d cards)\n\n", deck.ID, len(deck.Cards))
		}
	}

	if flashcardsJSON {
		output, err := json.MarshalIndent(deck, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	printDeck(deck)
	return nil
}

func printDeck(deck domain.Deck) {
	if len(deck.Cards) == 0 {
		fmt.Println("No flashcards could be generated from this document.")
		return
	}
	for i, c := range deck.Cards {
		fmt.Printf("%d. Q: %s\n   A: %s\n\n", i+1, c.Question, c.Answer)
	}
}
