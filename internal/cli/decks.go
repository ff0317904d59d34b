package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var decksJSON bool

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "Manage saved flashcard decks and summaries",
}

var decksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved decks, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDecksList,
}

var decksShowCmd = &cobra.Command{
	Use:   "show <deck-id>",
	Short: "Print the cards of a saved deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecksShow,
}

var decksDeleteCmd = &cobra.Command{
	Use:   "delete <deck-id>",
	Short: "Delete a saved deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecksDelete,
}

var decksSummariesCmd = &cobra.Command{
	Use:   "summaries <source>",
	Short: "Print the topic summaries saved for a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecksSummaries,
}

func init() {
	rootCmd.AddCommand(decksCmd)
	decksCmd.AddCommand(decksListCmd, decksShowCmd, decksDeleteCmd, decksSummariesCmd)
	decksCmd.PersistentFlags().BoolVar(&decksJSON, "json", false, "output as JSON")
}

func runDecksList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	decks, err := st.ListDecks()
	if err != nil {
		return fmt.Errorf("failed to list decks: %w", err)
	}

	if decksJSON {
		return printJSON(decks)
	}
	if len(decks) == 0 {
		fmt.Println("No saved decks.")
		return nil
	}
	for _, d := range decks {
		fmt.Printf("%s  %s  %3d cards  %s\n", d.ID, d.CreatedAt.Local().Format("2006-01-02 15:04"), len(d.Cards), d.Source)
	}
	return nil
}

func runDecksShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	deck, err := st.GetDeck(args[0])
	if err != nil {
		return err
	}
	if decksJSON {
		return printJSON(deck)
	}
	fmt.Printf("Deck %s from %s\n\n", deck.ID, deck.Source)
	printDeck(deck)
	return nil
}

func runDecksDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteDeck(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted deck %s\n", args[0])
	return nil
}

func runDecksSummaries(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	summaries, err := st.GetSummaries(args[0])
	if err != nil {
		return err
	}
	if decksJSON {
		return printJSON(summaries)
	}
	for _, s := range summaries {
		fmt.Printf("== %s ==\n%s\n\n", s.Topic, s.Text)
	}
	return nil
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
