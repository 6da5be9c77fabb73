package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/oatlas/oatlas/client"
	"github.com/spf13/cobra"
)

func newEntityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entity",
		Short: "Look up and list countries and institutions",
	}
	cmd.AddCommand(entityGetCmd())
	cmd.AddCommand(entityListCmd())
	return cmd
}

func entityGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <type> <id>",
		Short: "Get one entity by type and ID",
		Long:  "Fetch a single country or institution, e.g. oatlas entity get country NZL",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			ent, err := apiClient.Entities.Get(context.Background(), args[0], args[1])
			if err != nil {
				fatal("get entity", err)
			}
			output(ent, ent.ID)
		},
	}
}

func entityListCmd() *cobra.Command {
	var (
		ids, countries, subregions, regions, institutionTypes string
		minNOutputs, maxNOutputs                              int
		minNOutputsOpen, maxNOutputsOpen                      int
		minPOutputsOpen, maxPOutputsOpen                      float64
		page, limit                                           int
		orderBy, orderDir                                     string
	)
	cmd := &cobra.Command{
		Use:   "list <collection>",
		Short: "List a collection with filters",
		Long:  "Run a filtered, sorted, paginated query, e.g. oatlas entity list institutions --countries NZL",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			collection := args[0]
			if collection != "countries" && collection != "institutions" {
				fmt.Fprintf(os.Stderr, "Error: collection must be countries or institutions\n")
				os.Exit(1)
			}
			opts := &client.ListOptions{
				IDs:              splitList(ids),
				Countries:        splitList(countries),
				Subregions:       splitList(subregions),
				Regions:          splitList(regions),
				InstitutionTypes: splitList(institutionTypes),
				MinNOutputs:      minNOutputs,
				MaxNOutputs:      maxNOutputs,
				MinNOutputsOpen:  minNOutputsOpen,
				MaxNOutputsOpen:  maxNOutputsOpen,
				MinPOutputsOpen:  minPOutputsOpen,
				MaxPOutputsOpen:  maxPOutputsOpen,
				Page:             page,
				Limit:            limit,
				OrderBy:          orderBy,
				OrderDir:         orderDir,
			}
			result, err := apiClient.Entities.List(context.Background(), collection, opts)
			if err != nil {
				fatal("list entities", err)
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
	cmd.Flags().StringVar(&ids, "ids", "", "Comma-separated entity IDs")
	cmd.Flags().StringVar(&countries, "countries", "", "Comma-separated country codes")
	cmd.Flags().StringVar(&subregions, "subregions", "", "Comma-separated subregions")
	cmd.Flags().StringVar(&regions, "regions", "", "Comma-separated regions")
	cmd.Flags().StringVar(&institutionTypes, "institution-types", "", "Comma-separated institution types")
	cmd.Flags().IntVar(&minNOutputs, "min-n-outputs", 0, "Minimum total outputs")
	cmd.Flags().IntVar(&maxNOutputs, "max-n-outputs", 0, "Maximum total outputs")
	cmd.Flags().IntVar(&minNOutputsOpen, "min-n-outputs-open", 0, "Minimum open outputs")
	cmd.Flags().IntVar(&maxNOutputsOpen, "max-n-outputs-open", 0, "Maximum open outputs")
	cmd.Flags().Float64Var(&minPOutputsOpen, "min-p-outputs-open", 0, "Minimum open access percentage")
	cmd.Flags().Float64Var(&maxPOutputsOpen, "max-p-outputs-open", 0, "Maximum open access percentage")
	cmd.Flags().IntVar(&page, "page", 0, "Page number (zero-based)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "Sort field: name|n_outputs|n_outputs_open|p_outputs_open")
	cmd.Flags().StringVar(&orderDir, "order-dir", "", "Sort direction: asc|dsc")
	return cmd
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
