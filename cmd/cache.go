package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the resolution cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached resolutions",
	RunE:  cacheClearRun,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

func cacheClearRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	if err := st.CacheClear(context.Background()); err != nil {
		return err
	}
	fmt.Println("Resolution cache cleared.")
	return nil
}
