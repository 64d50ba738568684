package main

import (
	"encoding/json"
	"log"

	"tangle/internal/generator"
	"tangle/internal/graph"
	"tangle/internal/ir"
	"tangle/internal/resolver"
	"tangle/internal/retrieval"
	"tangle/internal/web"

	"github.com/spf13/cobra"
)

var (
	graphFormat string
	graphOut    string
	graphHops   int
)

var graphCmd = &cobra.Command{
	Use:   "graph [paths...]",
	Short: "Render the section reference graph",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		w, _ := buildWeb(cfg, mustPatterns(cfg), args)
		g := graph.FromWeb(w)
		resolver.NewDefaultChain().Run(g)

		switch graphFormat {
		case "mermaid":
			var keys []string
			if cmd.Flags().Changed("section") {
				key := web.Normalize(cfg.Weave.Section)
				if graphHops > 0 {
					keys = retrieval.Extract(g, []string{key}, retrieval.Config{MaxHops: graphHops}).Keys
				} else {
					keys = g.Reachable(key)
				}
				if keys == nil {
					log.Fatalf("Section not found: %s", web.DisplayKey(key))
				}
			}
			writeOutput(graphOut, (&generator.MermaidGenerator{}).GenerateSectionGraph(g, keys))
		case "markdown":
			writeOutput(graphOut, generator.NewMarkdownGenerator().GenerateSectionIndex(g))
		case "json":
			data, err := json.MarshalIndent(ir.Snapshot(w, g), "", "  ")
			if err != nil {
				log.Fatalf("Failed to encode graph: %v", err)
			}
			writeOutput(graphOut, string(data)+"\n")
		default:
			log.Fatalf("Unknown format %q (want mermaid, markdown or json)", graphFormat)
		}
	},
}

func init() {
	graphCmd.Flags().StringVarP(&graphFormat, "format", "f", "mermaid", "Output format: mermaid, markdown or json")
	graphCmd.Flags().IntVar(&graphHops, "hops", 0, "With --section, draw only sections within this many references (0: everything it includes)")
	graphCmd.Flags().StringVarP(&graphOut, "out", "o", "", "Write the graph to a file instead of stdout")
}
