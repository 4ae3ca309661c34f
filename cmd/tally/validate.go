package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahrav/go-tally/infrastructure/dataset"
	"github.com/ahrav/go-tally/internal/application"
)

func (c *cli) newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a dataset's records without analyzing it",
		Long: `Loads a dataset and checks every record: non-empty identifiers, non-negative
prices, positive quantities and discounts between 0 and 100. All problems
are reported at once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := c.loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			if err := dataset.Validate(data); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d sellers, %d products, %d purchase records\n",
				len(data.Sellers), len(data.Products), len(data.PurchaseRecords))
			return err
		},
	}

	cmd.Flags().String("data", "", "Dataset JSON document")
	cmd.Flags().String("dir", "", "Directory with one JSON file per collection")
	return cmd
}

func (c *cli) newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the registered revenue and bonus strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			revenue, bonus := application.NewCalculatorRegistry().SupportedStrategies()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "revenue: %v\nbonus: %v\n", revenue, bonus)
			return err
		},
	}
}
