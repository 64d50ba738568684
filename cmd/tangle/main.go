package main

import (
	"fmt"
	"log"
	"os"

	"tangle/internal/config"
	"tangle/internal/crawler"
	"tangle/internal/index"
	"tangle/internal/storage"
	"tangle/internal/web"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "tangle",
		Short: "Extract and assemble source code from literate Markdown documents",
	}
	configPath string
	dbPath     string
	language   string
	section    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	log.SetPrefix("tangle: ")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "tangle.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the web snapshot database (SQLite)")
	rootCmd.PersistentFlags().StringVarP(&language, "language", "l", "", "Code block language to extract (default from config)")
	rootCmd.PersistentFlags().StringVarP(&section, "section", "s", "", "Section to start from (default: the root section)")

	rootCmd.AddCommand(weaveCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig reads the configuration file and applies the persistent flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flags := cmd.Flags()
	if flags.Changed("language") {
		cfg.Weave.Language = language
	}
	if flags.Changed("section") {
		cfg.Weave.Section = section
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = dbPath
	}
	return cfg
}

func mustPatterns(cfg *config.Config) *web.Patterns {
	p, err := cfg.Patterns()
	if err != nil {
		log.Fatalf("Invalid delimiters: %v", err)
	}
	return p
}

func newIndexer(cfg *config.Config, p *web.Patterns) *index.Indexer {
	cr := crawler.NewCrawler(cfg.Input.Extensions, cfg.Input.Ignore)
	return index.NewIndexer(cr, p, cfg.Weave.Language)
}

// buildWeb reads the documents named by args, or the current directory.
func buildWeb(cfg *config.Config, p *web.Patterns, args []string) (*web.Web, []string) {
	paths := inputPaths(args)
	w, err := newIndexer(cfg, p).BuildWeb(paths...)
	if err != nil {
		log.Fatalf("Build failed: %v", err)
	}
	return w, paths
}

func initStore(cfg *config.Config) *storage.SQLiteStore {
	store, err := storage.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	return store
}

func inputPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// writeOutput writes text to path, or to stdout when path is empty.
func writeOutput(path, text string) {
	if path == "" {
		if _, err := os.Stdout.WriteString(text); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
}
