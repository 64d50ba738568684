package main

import (
	"fmt"
	"log"

	"tangle/internal/analysis"
	"tangle/internal/generator"
	"tangle/internal/git"
	"tangle/internal/graph"
	"tangle/internal/retrieval"
	"tangle/internal/web"

	"github.com/spf13/cobra"
)

var impactGraphHops int

var impactCmd = &cobra.Command{
	Use:   "impact [ref] [paths...]",
	Short: "Show which sections are affected by uncommitted or ref-relative changes",
	Run: func(cmd *cobra.Command, args []string) {
		ref := "HEAD"
		if len(args) > 0 {
			ref, args = args[0], args[1:]
		}
		cfg := loadConfig(cmd)
		paths := inputPaths(args)

		// 1. Get Git Changes
		changes, err := git.GetChangedFiles(ref, paths...)
		if err != nil {
			log.Fatalf("Failed to get git changes: %v", err)
		}
		if len(changes) == 0 {
			fmt.Println("✅ No changes detected.")
			return
		}
		fmt.Printf("📝 Detected %d changed files.\n", len(changes))

		// 2. Map changes onto sections
		w, _ := buildWeb(cfg, mustPatterns(cfg), paths)
		g := graph.FromWeb(w)
		report := analysis.AnalyzeImpact(w, g, changes)

		fmt.Printf("  -> %d sections directly affected\n", len(report.DirectlyAffected))
		for _, key := range report.DirectlyAffected {
			fmt.Printf("     %s\n", web.DisplayKey(key))
		}
		fmt.Printf("  -> %d sections indirectly affected (includers)\n", len(report.IndirectlyAffected))
		for _, key := range report.IndirectlyAffected {
			fmt.Printf("     %s\n", web.DisplayKey(key))
		}

		if impactGraphHops > 0 {
			sg := retrieval.ExtractFromChanges(g, changes, retrieval.Config{MaxHops: impactGraphHops})
			if len(sg.Keys) > 0 {
				fmt.Println()
				fmt.Print((&generator.MermaidGenerator{}).GenerateSectionGraph(g, sg.Keys))
			}
		}
	},
}

func init() {
	impactCmd.Flags().IntVar(&impactGraphHops, "graph", 0, "Also draw the changed sections and their neighbors within this many hops")
}
