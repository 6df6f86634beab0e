package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showCmd = &cobra.Command{
	Use:   "show <listing-id>",
	Short: "Show one listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid listing id %q", args[0])
		}

		ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("timeout"))
		defer cancel()

		l, err := newClient().Listing(ctx, id)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		rows := [][2]string{
			{"Vehicle", strings.TrimSpace(l.Make + " " + l.Model)},
			{"Year", intOrDash(l.Year)},
			{"Price", formatPrice(l.Price)},
			{"Mileage", intOrDash(l.Mileage)},
			{"Condition", l.Condition},
			{"Status", l.Status},
			{"Fuel", stringOrDash(l.FuelType)},
			{"Transmission", stringOrDash(l.Transmission)},
			{"Body", stringOrDash(l.BodyType)},
			{"Color", stringOrDash(l.ExteriorColor)},
			{"Location", stringOrDash(l.LocationCity)},
			{"Seller", stringOrDash(l.SellerName)},
		}
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if l.Description != nil && *l.Description != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", *l.Description)
		}
		return nil
	},
}
