package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"tangle/internal/syntax"
	"tangle/internal/web"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

var (
	weaveOut      string
	strict        bool
	noMarkers     bool
	commentPrefix string
	checkSyntax   bool
	debugBlocks   bool
	fromDB        bool
)

var weaveCmd = &cobra.Command{
	Use:   "weave [paths...]",
	Short: "Assemble a section and everything it references into source code",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig(cmd)
		flags := cmd.Flags()
		if flags.Changed("strict") {
			cfg.Weave.Strict = strict
		}
		if noMarkers {
			cfg.Weave.Markers = false
		}
		if flags.Changed("comment-prefix") {
			cfg.Weave.CommentPrefix = commentPrefix
		}
		p := mustPatterns(cfg)

		if debugBlocks {
			blocks, err := newIndexer(cfg, p).ScanBlocks(inputPaths(args)...)
			if err != nil {
				log.Fatalf("Scan failed: %v", err)
			}
			pp.Println(blocks)
			return
		}

		// 1. Build or load the web
		var (
			w       *web.Web
			sources []string
		)
		if fromDB {
			store := initStore(cfg)
			defer store.Close()
			if !flags.Changed("language") {
				if lang, err := store.Language(ctx); err == nil && lang != "" {
					cfg.Weave.Language = lang
				}
			}
			loaded, err := store.LoadWeb(ctx, p)
			if err != nil {
				log.Fatalf("Failed to load web: %v", err)
			}
			w, sources = loaded, []string{cfg.Storage.DBPath}
		} else {
			w, sources = buildWeb(cfg, p, args)
		}
		if checkSyntax && !syntax.Supported(cfg.Weave.Language) {
			log.Printf("warning: no syntax check available for %s", cfg.Weave.Language)
			checkSyntax = false
		}

		// 2. Weave
		opts := append(cfg.WeaverOptions(), web.WithUnresolvedHandler(func(u web.UnresolvedReference) {
			log.Printf("warning: %s: unresolved reference %s in section %s", u.Location, u.Raw, web.DisplayKey(u.From))
		}))
		out, err := web.NewWeaver(w, opts...).Weave(cfg.Weave.Section)
		if err != nil {
			if errors.Is(err, web.ErrSectionNotFound) && web.Normalize(cfg.Weave.Section) == "" {
				fmt.Fprintf(os.Stderr, "no %s code found in %s\n", cfg.Weave.Language, strings.Join(sources, ", "))
				os.Exit(1)
			}
			log.Fatalf("Weave failed: %v", err)
		}

		writeOutput(weaveOut, out)

		// 3. Optional syntax check of the result
		if !checkSyntax {
			return
		}
		problems, err := syntax.NewChecker().Check(ctx, cfg.Weave.Language, out)
		if err != nil {
			log.Fatalf("Syntax check failed: %v", err)
		}
		for _, pr := range problems {
			log.Printf("syntax: %s", pr)
		}
		if len(problems) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	weaveCmd.Flags().StringVarP(&weaveOut, "out", "o", "", "Write the woven source to a file instead of stdout")
	weaveCmd.Flags().BoolVar(&strict, "strict", false, "Fail on references to undefined sections")
	weaveCmd.Flags().BoolVar(&noMarkers, "no-markers", false, "Do not emit a comment line before inlined sections")
	weaveCmd.Flags().StringVar(&commentPrefix, "comment-prefix", "//", "Line comment used for section markers")
	weaveCmd.Flags().BoolVar(&checkSyntax, "check", false, "Parse the woven source and report syntax errors")
	weaveCmd.Flags().BoolVar(&debugBlocks, "debug", false, "Print the scanned code blocks instead of weaving")
	weaveCmd.Flags().BoolVar(&fromDB, "from-db", false, "Weave from the stored snapshot instead of reading documents")
}
