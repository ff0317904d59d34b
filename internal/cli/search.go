package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchQuery string
	searchTopK  int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [path]",
	Short: "Rank course passages against a query",
	Long: `Rank indexed passages by how often they contain the query's keywords.
When no passage shares a keyword with the query, the first passages are
listed and marked as not relevant.

Examples:
  coursekit search -q "cellular respiration" notes/
  coursekit search -q "entropy" -k 10 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("query")
}

type searchResult struct {
	Chunk int     `json:"chunk"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

type searchOutput struct {
	Query    string         `json:"query"`
	Relevant bool           `json:"relevant"`
	Results  []searchResult `json:"results"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	session, err := openSession(args)
	if err != nil {
		return err
	}

	ret, err := session.Retrieve(searchQuery, searchTopK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := searchOutput{Query: searchQuery, Relevant: ret.Relevant}
	for _, c := range ret.Chunks {
		out.Results = append(out.Results, searchResult{Chunk: c.Chunk.ID, Score: c.Score, Text: c.Chunk.Text})
	}

	if searchJSON {
		output, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if len(out.Results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	if !out.Relevant {
		fmt.Printf("No passage mentions: %s (showing the first %d)\n\n", searchQuery, len(out.Results))
	} else {
		fmt.Printf("Found %d results for: %s\n\n", len(out.Results), searchQuery)
	}
	for i, r := range out.Results {
		fmt.Printf("--- [%d] chunk %d (score: %.2f) ---\n", i+1, r.Chunk, r.Score)
		fmt.Println(truncateText(r.Text, 500))
		fmt.Println()
	}
	return nil
}
