package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var topicsJSON bool

var topicsCmd = &cobra.Command{
	Use:   "topics [path]",
	Short: "List the main topics of the course materials",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTopics,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
	topicsCmd.Flags().BoolVar(&topicsJSON, "json", false, "output as JSON")
}

func runTopics(cmd *cobra.Command, args []string) error {
	session, err := openSession(args)
	if err != nil {
		return err
	}

	topicList := session.Topics()
	if topicsJSON {
		output, err := json.MarshalIndent(topicList, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if len(topicList) == 0 {
		fmt.Println("No topics found.")
		return nil
	}
	for i, t := range topicList {
		fmt.Printf("%2d. %s\n", i+1, t.Label)
	}
	return nil
}
