package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"coursekit/config"
	"coursekit/internal/usecase"
)

func main() {
	coursePath := flag.String("course", ".", "Path to course materials")
	query := flag.String("q", "", "Question to test")
	topK := flag.Int("k", 4, "Number of passages")
	runs := flag.Int("n", 100, "Repeated retrievals")
	flag.Parse()

	if *query == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -course ./notes -q \"question\"")
		fmt.Println("\nTests:")
		fmt.Println("  1. Index build time")
		fmt.Println("  2. Cold and cached retrieval latency")
		fmt.Println("  3. Answer extraction for the question")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*coursePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	session, result, err := usecase.OpenSession(*coursePath, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading course: %v\n", err)
		os.Exit(1)
	}
	buildTime := time.Since(start)

	stats := session.Stats()
	fmt.Println("RETRIEVAL BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Files:        %d\n", len(result.Files))
	fmt.Printf("Chunks:       %d\n", stats.TotalChunks)
	fmt.Printf("Terms:        %d (%d unique)\n", stats.TotalTerms, stats.UniqueTerms)
	fmt.Printf("Build time:   %s\n", buildTime)
	fmt.Println()

	fmt.Printf("Query: \"%s\"\n", *query)
	fmt.Println(strings.Repeat("-", 70))

	start = time.Now()
	ret, err := session.Retrieve(*query, *topK)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search error: %v\n", err)
		os.Exit(1)
	}
	cold := time.Since(start)

	start = time.Now()
	for i := 0; i < *runs; i++ {
		if _, err := session.Retrieve(*query, *topK); err != nil {
			fmt.Fprintf(os.Stderr, "Search error: %v\n", err)
			os.Exit(1)
		}
	}
	cached := time.Since(start) / time.Duration(max(1, *runs))

	fmt.Printf("Top %d passages (relevant: %v):\n\n", len(ret.Chunks), ret.Relevant)
	for i, c := range ret.Chunks {
		preview := c.Chunk.Text
		if len(preview) > 150 {
			preview = preview[:150] + "..."
		}
		fmt.Printf("%d. [%.3f] chunk %d\n", i+1, c.Score, c.Chunk.ID)
		fmt.Printf("   %s\n\n", preview)
	}

	start = time.Now()
	ans, err := session.Answer(*query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Answer error: %v\n", err)
		os.Exit(1)
	}
	answerTime := time.Since(start)

	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("LATENCY:\n")
	fmt.Printf("  Cold retrieval:   %s\n", cold)
	fmt.Printf("  Cached retrieval: %s (avg of %d)\n", cached, *runs)
	fmt.Printf("  Answer:           %s\n", answerTime)
	fmt.Println()
	fmt.Printf("ANSWER (%s):\n  %s\n", ans.Outcome, ans.Text)
}
