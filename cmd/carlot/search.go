package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rajivgeraev/dealer-api/internal/filterstate"
)

var filterFlags = []struct {
	flag  string
	field filterstate.Field
	usage string
}{
	{"make", filterstate.FieldMake, "make, substring match"},
	{"model", filterstate.FieldModel, "model, substring match"},
	{"year-from", filterstate.FieldYearMin, "minimum year"},
	{"year-to", filterstate.FieldYearMax, "maximum year"},
	{"price-min", filterstate.FieldPriceMin, "minimum price"},
	{"price-max", filterstate.FieldPriceMax, "maximum price"},
	{"mileage-min", filterstate.FieldMileageMin, "minimum mileage"},
	{"mileage-max", filterstate.FieldMileageMax, "maximum mileage"},
	{"fuel-type", filterstate.FieldFuelType, "fuel type"},
	{"transmission", filterstate.FieldTransmission, "transmission"},
	{"condition", filterstate.FieldCondition, "new or used"},
	{"body-type", filterstate.FieldBodyType, "body type"},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search listings",
	Example: `  carlot search --make merc --price-max 60000 --sort price-asc
  carlot search --link "http://localhost:3000/inventory?make=BMW&page=2"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := openLocation(mustString(cmd, "link"))
		if err != nil {
			return err
		}

		// Флаги накладываются поверх ссылки
		filters, sort, page := filterstate.Decode(loc.Query())
		for _, f := range filterFlags {
			if !cmd.Flags().Changed(f.flag) {
				continue
			}
			if filters, err = filters.With(f.field, mustString(cmd, f.flag)); err != nil {
				return err
			}
			page = 1
		}
		if cmd.Flags().Changed("sort") {
			sort = filterstate.ParseSortOption(mustString(cmd, "sort"))
		}
		if cmd.Flags().Changed("page") {
			page, _ = cmd.Flags().GetInt("page")
		}
		loc.Replace(filterstate.Encode(filters, sort, page))

		ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("timeout"))
		defer cancel()

		controller, err := newController(newClient(), loc)
		if err != nil {
			return err
		}
		controller.Start(ctx)

		return printSnapshot(cmd.OutOrStdout(), controller.Snapshot(), shareableLink(loc))
	},
}

func init() {
	for _, f := range filterFlags {
		searchCmd.Flags().String(f.flag, "", f.usage)
	}
	searchCmd.Flags().String("sort", filterstate.DefaultSort.String(), "sort option, field-direction")
	searchCmd.Flags().Int("page", 1, "page number")
	searchCmd.Flags().String("link", "", "shareable link to start from")
}

func mustString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag %s: %v", name, err))
	}
	return v
}
