package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [paths...]",
	Short: "Build the web and store a snapshot in the local database",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig(cmd)
		p := mustPatterns(cfg)

		// 1. Initialize Store
		store := initStore(cfg)
		defer store.Close()

		// 2. Build Web
		fmt.Println("🚀 Building web...")
		start := time.Now()
		w, paths := buildWeb(cfg, p, args)
		fmt.Printf("✅ Web built from %v in %v. Found %d sections in %d fragments.\n",
			paths, time.Since(start), w.Len(), w.FragmentCount())

		// 3. Save to DB
		fmt.Println("💾 Saving to local database...")
		stats, err := store.SaveWeb(ctx, w, cfg.Weave.Language)
		if err != nil {
			log.Fatalf("Failed to save web: %v", err)
		}

		fmt.Printf("  -> %s documents (%s), %s unchanged, %s removed\n",
			humanize.Comma(int64(stats.Documents)),
			humanize.Bytes(uint64(stats.Bytes)),
			humanize.Comma(int64(stats.Unchanged)),
			humanize.Comma(int64(stats.Removed)),
		)
		fmt.Printf("  -> %s fragments, %s references\n",
			humanize.Comma(int64(stats.Fragments)),
			humanize.Comma(int64(stats.References)),
		)
		fmt.Printf("🎉 Index complete! Database: %s\n", cfg.Storage.DBPath)
	},
}
