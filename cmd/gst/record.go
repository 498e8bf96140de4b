package main

import (
	"context"
	"errors"

	"github.com/Veraticus/global-series-tracker/internal/cli"
	"github.com/Veraticus/global-series-tracker/internal/config"
	"github.com/Veraticus/global-series-tracker/internal/ledger"
	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/workflow"
	"github.com/spf13/cobra"
)

func recordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a sale",
		Long: `Record that a product series was sold to a customer in a country.

Without flags, prompts for the series, the country (from a list of common
markets, or OTHER to type one) and the customer. The series must be one of
the imported products.`,
		Example: `  gst record
  gst record --series HB851 --country Japan --customer "LLC Tech"
  gst record --series HB851 --custom-country Atlantis --customer Acme`,
		RunE: runRecord,
	}

	cmd.Flags().String("series", "", "product series name")
	cmd.Flags().String("country", "", "country the series was sold to")
	cmd.Flags().String("custom-country", "", "country outside the suggested list (implies --country "+model.OtherCountry+")")
	cmd.Flags().String("customer", "", "customer name or abbreviation")

	return cmd
}

func runRecord(cmd *cobra.Command, _ []string) error {
	series, _ := cmd.Flags().GetString("series")
	country, _ := cmd.Flags().GetString("country")
	customCountry, _ := cmd.Flags().GetString("custom-country")
	customer, _ := cmd.Flags().GetString("customer")
	if customCountry != "" && country == "" {
		country = model.OtherCountry
	}

	return withStore(cmd, func(ctx context.Context, _ config.Config, store *ledger.Store) error {
		prompter := cli.NewCLIPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

		var form workflow.Form
		if series == "" && country == "" && customer == "" {
			filled, err := prompter.FillSaleForm(ctx, store.Products())
			if err != nil {
				return err
			}
			form = filled
		} else {
			form = workflow.Form{Series: series, Customer: customer}
			form.SelectCountry(country)
			if form.UseCustomCountry {
				form.CustomCountry = customCountry
			}
		}

		n := form.Submit(ctx, store)
		if err := prompter.ShowNotification(n); err != nil {
			return err
		}
		if n.IsError() {
			return errors.New(n.Message)
		}
		return nil
	})
}
