package main

import (
	"bandarcms/internal/app"
	"bandarcms/internal/domain/post"
	"bandarcms/internal/watch"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Index existing documents that have no metadata yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cms, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer()

			stats, err := cms.IndexNew()
			if err != nil {
				return err
			}
			fmt.Printf("indexed: %d  skipped: %d  failed: %d\n",
				stats.Inserted, stats.Skipped, stats.Failed)
			return nil
		},
	}
}

func newReindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Re-scan every document, preserving curated metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			cms, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer()

			stats, err := cms.ReindexAll()
			if err != nil {
				return err
			}
			fmt.Printf("updated: %d  failed: %d\n", stats.Updated, stats.Failed)
			return nil
		},
	}
}

func newUpdateIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-index",
		Short: "Regenerate the listing page from the metadata store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cms, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer()

			return cms.UpdateListing()
		},
	}
}

func authoringFlags(cmd *cobra.Command, in *app.CreateInput, contentFile *string) {
	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "post title")
	f.StringVar(&in.Author, "author", "", "author name")
	f.StringVar((*string)(&in.PostType), "type", "", "post type (Article|Poster|Video)")
	f.StringVar(&in.Series, "series", "", "series key")
	f.StringVar(&in.YouTubeID, "youtube-id", "", "YouTube video id (video posts)")
	f.StringVar(&in.Description, "description", "", "post description")
	f.StringVar(&in.Keywords, "keywords", "", "comma-separated keywords")
	f.StringVar(&in.ImageURL, "image-url", "", "thumbnail image URL")
	f.StringVar(contentFile, "content", "", "markdown content file, or '-' for stdin")
}

func readContent(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func newCreateCmd() *cobra.Command {
	var in app.CreateInput
	var contentFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new post from its template",
		RunE: func(cmd *cobra.Command, args []string) error {
			cms, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer()

			if in.PostType == "" {
				in.PostType = post.TypeArticle
			}
			in.Content, err = readContent(contentFile)
			if err != nil {
				return fmt.Errorf("read content: %w", err)
			}

			rec, err := cms.CreatePost(in)
			if err != nil {
				return err
			}
			fmt.Printf("created %s (%s)\n", rec.Slug, rec.PostType)
			return nil
		},
	}
	authoringFlags(cmd, &in, &contentFile)
	return cmd
}

func newEditCmd() *cobra.Command {
	var in app.CreateInput
	var contentFile string

	cmd := &cobra.Command{
		Use:   "edit <slug>",
		Short: "Edit an existing post; empty flags keep current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cms, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer()

			in.Content, err = readContent(contentFile)
			if err != nil {
				return fmt.Errorf("read content: %w", err)
			}

			rec, err := cms.EditPost(args[0], in)
			if err != nil {
				return err
			}
			fmt.Printf("updated %s\n", rec.Slug)
			return nil
		},
	}
	authoringFlags(cmd, &in, &contentFile)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a post and its document (a backup is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete %q without --yes", args[0])
			}
			cms, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer()

			if err := cms.DeletePost(args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func printRecords(cms *app.CMS, records []post.Record) {
	for _, rec := range records {
		status := "published"
		if !rec.Published {
			status = "draft"
		}
		scanned := ""
		if rec.Scanned {
			scanned = " [scanned]"
		}
		fmt.Printf("%-40s  %-7s  %-10s  %s%s\n",
			rec.Slug, rec.PostType, status, rec.Created, scanned)
		fmt.Printf("    %s | by %s | series: %s\n",
			rec.Title, rec.Author, cms.Config().Site.SeriesName(rec.Series))
	}
	fmt.Printf("%d post(s)\n", len(records))
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cms, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer()

			records, err := cms.List()
			if err != nil {
				return err
			}
			printRecords(cms, records)
			return nil
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search posts by title, description, keywords or series",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cms, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer()

			records, err := cms.Search(strings.Join(args, " "))
			if err != nil {
				return err
			}
			printRecords(cms, records)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show blog statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cms, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer()

			stats, err := cms.Statistics()
			if err != nil {
				return err
			}

			fmt.Printf("total: %d  published: %d  drafts: %d  scanned: %d\n",
				stats.Total, stats.Published, stats.Drafts, stats.Scanned)
			fmt.Println("by type:")
			for t, n := range stats.ByType {
				fmt.Printf("  %s: %d\n", t, n)
			}
			fmt.Println("by series:")
			for name, n := range stats.BySeries {
				fmt.Printf("  %s: %d\n", name, n)
			}
			fmt.Println("by author:")
			for name, n := range stats.ByAuthor {
				fmt.Printf("  %s: %d\n", name, n)
			}
			if len(stats.Recent) > 0 {
				fmt.Println("recent:")
				for _, rec := range stats.Recent {
					fmt.Printf("  %s (%s)\n", rec.Title, rec.Created)
				}
			}
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the corpus and reindex on changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cms, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watch.Run(ctx, cms, newLogger())
		},
	}
}
