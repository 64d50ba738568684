package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"tangle/internal/analysis"
	"tangle/internal/graph"
	"tangle/internal/resolver"

	"github.com/spf13/cobra"
)

var lintStrict bool

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Report unresolved references, cycles and unused sections",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		if cmd.Flags().Changed("strict") {
			cfg.Weave.Strict = lintStrict
		}
		w, _ := buildWeb(cfg, mustPatterns(cfg), args)
		g := graph.FromWeb(w)
		for _, stage := range resolver.NewDefaultChain().Run(g) {
			if stage.Err != nil {
				log.Printf("warning: %s resolver failed: %v", stage.Resolver, stage.Err)
			}
		}

		findings := analysis.Lint(w, g, analysis.Options{
			Root:   cfg.Weave.Section,
			Strict: cfg.Weave.Strict,
		})
		if len(findings) == 0 {
			fmt.Println("✅ No problems found.")
			return
		}
		for _, f := range findings {
			fmt.Println(f)
		}
		if counts := g.UnresolvedReasonCounts(); len(counts) > 0 {
			reasons := make([]string, 0, len(counts))
			for reason, n := range counts {
				reasons = append(reasons, fmt.Sprintf("%s: %d", reason, n))
			}
			sort.Strings(reasons)
			fmt.Printf("📊 %d unresolved references (%s)\n", len(g.Unresolved), strings.Join(reasons, ", "))
		}
		if analysis.HasErrors(findings) {
			os.Exit(1)
		}
	},
}

func init() {
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Treat unresolved references as errors")
}
