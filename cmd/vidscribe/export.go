package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vidscribe/internal/render"
	"vidscribe/internal/store"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export [post id]",
	Short: "Export a stored post as markdown or HTML",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "output format: md or html")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := store.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	post, err := s.GetPost(context.Background(), args[0])
	if err != nil {
		return err
	}

	var out string
	switch exportFormat {
	case "md", "markdown":
		out = render.Markdown(post)
	case "html":
		out, err = render.HTML(post)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want md or html)", exportFormat)
	}

	if exportOut == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(exportOut, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("Wrote %s\n", exportOut)
	return nil
}
