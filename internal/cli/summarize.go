package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"coursekit/internal/domain"
)

var (
	summarizeTopic  string
	summarizeRender bool
	summarizeJSON   bool
	summarizeSave   bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [path]",
	Short: "Summarize the topics of the course materials",
	Long: `Extract the main topics of the course materials and write a short
extractive summary for each of them.

Examples:
  coursekit summarize notes/
  coursekit summarize --topic "Cellular Respiration" biology.txt
  coursekit summarize --render --save notes/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVarP(&summarizeTopic, "topic", "t", "", "summarize a single topic")
	summarizeCmd.Flags().BoolVar(&summarizeRender, "render", false, "render the summaries as markdown")
	summarizeCmd.Flags().BoolVar(&summarizeJSON, "json", false, "output as JSON")
	summarizeCmd.Flags().BoolVar(&summarizeSave, "save", false, "save the summaries to the deck store")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	session, err := openSession(args)
	if err != nil {
		return err
	}

	var summaries domain.TopicSummaries
	if summarizeTopic != "" {
		sum, err := session.SummarizeTopic(summarizeTopic)
		if err != nil {
			return fmt.Errorf("summarize failed: %w", err)
		}
		summaries = domain.TopicSummaries{sum}
	} else {
		summaries, err = session.SummarizeTopics(cmd.Context(), summaryProgress())
		if err != nil {
			return fmt.Errorf("summarize failed: %w", err)
		}
	}

	if summarizeSave {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.PutSummaries(session.Name, summaries); err != nil {
			return fmt.Errorf("failed to save summaries: %w", err)
		}
		fmt.Printf("Saved %d summaries for %s\n\n", len(summaries), session.Name)
	}

	return printSummaries(session.Name, summaries)
}

// summaryProgress draws a progress bar once the topic count is known.
func summaryProgress() func(done, total int) {
	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time

	return func(done, total int) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Summarizing[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}

		bar.Set(done)

		if done > 0 && done < total {
			rate := float64(done) / time.Since(startTime).Seconds()
			if rate > 0 {
				eta := time.Duration(float64(total-done)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]Summarizing[reset] ETA: %s", formatDuration(eta)))
			}
		}
	}
}

func printSummaries(name string, summaries domain.TopicSummaries) error {
	switch {
	case summarizeJSON:
		output, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Println(string(output))

	case summarizeRender:
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		out, err := r.Render(summariesMarkdown(name, summaries))
		if err != nil {
			return fmt.Errorf("failed to render summaries: %w", err)
		}
		fmt.Print(out)

	default:
		if len(summaries) == 0 {
			fmt.Println("No topics found.")
			return nil
		}
		for _, s := range summaries {
			fmt.Printf("== %s ==\n%s\n\n", s.Topic, s.Text)
		}
	}
	return nil
}

func summariesMarkdown(name string, summaries domain.TopicSummaries) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	if len(summaries) == 0 {
		b.WriteString("_No topics found._\n")
	}
	for _, s := range summaries {
		fmt.Fprintf(&b, "## %s\n\n", s.Topic)
		if s.Found() {
			b.WriteString(s.Text)
		} else {
			fmt.Fprintf(&b, "_%s_", s.Text)
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
