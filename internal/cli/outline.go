package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var outlineJSON bool

var outlineCmd = &cobra.Command{
	Use:   "outline [path]",
	Short: "Show headings and chapter markers found in the course materials",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOutline,
}

func init() {
	rootCmd.AddCommand(outlineCmd)
	outlineCmd.Flags().BoolVar(&outlineJSON, "json", false, "output as JSON")
}

func runOutline(cmd *cobra.Command, args []string) error {
	session, err := openSession(args)
	if err != nil {
		return err
	}

	outline := session.Outline()
	if outlineJSON {
		output, err := json.MarshalIndent(outline, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	stats := session.Stats()
	fmt.Printf("%s: %d chunks, %d terms (%d unique)\n", session.Name, stats.TotalChunks, stats.TotalTerms, stats.UniqueTerms)

	if len(outline.Chapters) > 0 {
		fmt.Println("\nChapters:")
		for _, c := range outline.Chapters {
			fmt.Printf("  %s\n", c)
		}
	}
	if len(outline.Sections) > 0 {
		fmt.Println("\nSections:")
		for _, s := range outline.Sections {
			fmt.Printf("  %s\n", s)
		}
	}
	if len(outline.Chapters) == 0 && len(outline.Sections) == 0 {
		fmt.Println("\nNo headings found.")
	}
	return nil
}
