package main

import (
	"context"
	"fmt"

	"github.com/oatlas/oatlas/client"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var entityType string
	var page, limit int
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search entities by name or acronym",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			opts := &client.SearchOptions{
				EntityType: entityType,
				Page:       page,
				Limit:      limit,
			}
			result, err := apiClient.Search.Search(context.Background(), args[0], opts)
			if err != nil {
				fatal("search", err)
			}
			if flagFmt == "table" {
				printEntityTable(result.Items)
				return
			}
			if flagFmt == "quiet" {
				for _, e := range result.Items {
					fmt.Println(e.ID)
				}
				return
			}
			output(result, "")
		},
	}
	cmd.Flags().StringVar(&entityType, "type", "", "Restrict to country or institution")
	cmd.Flags().IntVar(&page, "page", 0, "Page number (zero-based)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size")
	return cmd
}
