package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vidscribe/internal/store"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored posts, newest first",
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "maximum posts to show (0 for all)")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := store.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	posts, err := s.ListPosts(context.Background(), listLimit)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Println("No posts yet. Run 'vidscribe generate' first.")
		return nil
	}

	for _, p := range posts {
		fmt.Printf("%s  %s  [%s]  %s\n",
			p.ID, p.CreatedAt.Local().Format("2006-01-02 15:04"), p.Model, p.Title)
	}
	return nil
}
