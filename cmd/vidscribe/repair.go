package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vidscribe/internal/repair"
	"vidscribe/internal/store"
)

var repairID string

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Fix stored posts whose content is a raw JSON payload",
	Long: `Scans the post database for posts whose content field still holds the
model's JSON output instead of prose, and rewrites them in place. Safe to
run repeatedly; already-repaired posts are left untouched.`,
	RunE: runRepair,
}

func init() {
	repairCmd.Flags().StringVar(&repairID, "id", "", "repair a single post by id")
}

func runRepair(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s, err := store.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := repair.NewRunner(s, logger).Repair(ctx, repairID)
	if err != nil {
		return err
	}
	fmt.Printf("Repaired %d post(s)\n", n)
	return nil
}
