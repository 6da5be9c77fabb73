package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDownloadCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "download <type> <id>",
		Short: "Download an entity's data archive",
		Long:  "Fetch the zip archive with yearly statistics, e.g. oatlas download country NZL",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			entityType, id := args[0], args[1]
			data, err := apiClient.Entities.Download(context.Background(), entityType, id)
			if err != nil {
				fatal("download", err)
			}
			if outPath == "" {
				outPath = fmt.Sprintf("%s_%s.zip", entityType, id)
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				fatal("write archive", err)
			}
			fmt.Printf("wrote %s (%d bytes)\n", outPath, len(data))
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default <type>_<id>.zip)")
	return cmd
}
