package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"coursekit/config"
	"coursekit/internal/adapter/store"
	"coursekit/internal/logger"
	"coursekit/internal/usecase"
)

// logLevelEnv overrides logging.level from the config file.
const logLevelEnv = "COURSEKIT_LOG_LEVEL"

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "coursekit",
	Short: "Study assistant for course materials",
	Long: `coursekit indexes course text files and answers questions, summarizes
topics and builds flashcards from them, using only the text itself.

Example usage:
  coursekit ask -q "What is photosynthesis?" notes/   # Answer a question
  coursekit summarize notes/                          # Summarize every topic
  coursekit flashcards -n 20 --save notes/            # Build and save a deck
  coursekit study notes/                              # Interactive study screen`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if level := os.Getenv(logLevelEnv); level != "" {
			cfg.Logging.Level = level
		}
		logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

		return cfg.Validate()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./coursekit.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "course directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

// coursePath resolves the optional path argument shared by the session
// commands.
func coursePath(args []string) (string, error) {
	if len(args) == 0 {
		return GetRootDir(), nil
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	return path, nil
}

// openSession loads the course at the path argument and reports files that
// could not be read.
func openSession(args []string) (*usecase.Session, error) {
	path, err := coursePath(args)
	if err != nil {
		return nil, err
	}

	session, result, err := usecase.OpenSession(path, GetConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	for _, e := range result.Errors {
		slog.Warn("skipped course file", "error", e)
	}
	slog.Info("course loaded", "name", session.Name, "files", len(result.Files), "chunks", result.Chunks)
	return session, nil
}

func openStore() (*store.DeckStore, error) {
	st, err := store.NewDeckStore(GetConfig().StorePath(GetRootDir()))
	if err != nil {
		return nil, fmt.Errorf("failed to open deck store: %w", err)
	}
	return st, nil
}
