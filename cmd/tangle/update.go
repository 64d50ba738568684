package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tangle/internal/crawler"
	"tangle/internal/git"
	"tangle/internal/pipeline"
	"tangle/internal/web"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update [ref]",
	Short: "Incrementally refresh the stored web from git changes",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		ref := "HEAD"
		if len(args) > 0 {
			ref = args[0]
		}
		cfg := loadConfig(cmd)

		// 1. Get Local Git Changes
		changes, err := git.GetChangedFiles(ref)
		if err != nil {
			log.Fatalf("Failed to get git changes: %v", err)
		}
		if len(changes) == 0 {
			fmt.Println("✅ No changes detected.")
			return
		}
		fmt.Printf("📝 Detected %d changed files.\n", len(changes))

		// 2. Apply them to the stored snapshot
		store := initStore(cfg)
		defer store.Close()

		// Keep the snapshot's language unless one is asked for explicitly.
		language := cfg.Weave.Language
		if !cmd.Flags().Changed("language") {
			language = ""
		}

		cr := crawler.NewCrawler(cfg.Input.Extensions, cfg.Input.Ignore)
		sync := pipeline.NewIncrementalSync(store, mustPatterns(cfg), language)
		sync.IsDocument = cr.Matches

		fmt.Println("🔄 Updating stored web...")
		res, err := sync.Run(ctx, changes)
		if errors.Is(err, pipeline.ErrNoSnapshot) {
			log.Fatalf("Nothing stored in %s yet, run 'tangle index' first", cfg.Storage.DBPath)
		}
		if err != nil {
			log.Fatalf("Update failed: %v", err)
		}

		fmt.Printf("📊 Web Update (%s): %d updated, %d added, %d removed documents.\n",
			res.Language, len(res.Updated), len(res.Added), len(res.Deleted))
		fmt.Printf("  -> %d sections directly affected\n", len(res.Impact.DirectlyAffected))
		for _, key := range res.Impact.DirectlyAffected {
			fmt.Printf("     %s\n", web.DisplayKey(key))
		}
		fmt.Printf("  -> %d sections indirectly affected (includers)\n", len(res.Impact.IndirectlyAffected))
		for _, key := range res.Impact.IndirectlyAffected {
			fmt.Printf("     %s\n", web.DisplayKey(key))
		}
	},
}
