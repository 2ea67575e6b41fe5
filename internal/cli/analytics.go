package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Stats
			if err := client.Get("/api/stats", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Category
			if err := client.Get("/api/categories", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newPerformanceCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "performance",
		Short: "Show posts per day and per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/blog-performance"
			if days != 0 {
				path = fmt.Sprintf("%s?days=%d", path, days)
			}

			var result Performance
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Window length in days (server default when unset)")

	return cmd
}
