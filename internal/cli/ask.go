package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askQuestion string
	askJSON     bool
	askSources  bool
)

var askCmd = &cobra.Command{
	Use:   "ask [path]",
	Short: "Answer a question from the course materials",
	Long: `Answer a question using sentences extracted from the course materials.
When nothing relevant is found a fixed fallback message is printed.

Examples:
  coursekit ask -q "What is photosynthesis?" biology.txt
  coursekit ask -q "What is this course about?" notes/ --sources`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "question to answer (required)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "print the passages the answer came from")
	askCmd.MarkFlagRequired("question")
}

type answerOutput struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Outcome  string   `json:"outcome"`
	Sources  []string `json:"sources,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	session, err := openSession(args)
	if err != nil {
		return err
	}

	ans, err := session.Answer(askQuestion)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	if askJSON {
		out := answerOutput{
			Question: ans.Question,
			Answer:   ans.Text,
			Outcome:  ans.Outcome.String(),
		}
		for _, c := range ans.Sources {
			out.Sources = append(out.Sources, c.Text)
		}
		output, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(ans.Text)
	if askSources && len(ans.Sources) > 0 {
		fmt.Println()
		for i, c := range ans.Sources {
			fmt.Printf("--- [%d] chunk %d ---\n", i+1, c.ID)
			fmt.Println(truncateText(c.Text, 500))
			fmt.Println()
		}
	}
	return nil
}

// truncateText shortens text for terminal display.
func truncateText(text string, maxRunes int) string {
	r := []rune(text)
	if len(r) <= maxRunes {
		return text
	}
	return string(r[:maxRunes]) + "..."
}
