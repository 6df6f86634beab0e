package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var makesCmd = &cobra.Command{
	Use:   "makes [make]",
	Short: "List makes, or the models of one make",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("timeout"))
		defer cancel()

		client := newClient()
		makes, err := client.Makes(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, m := range makes {
				fmt.Fprintln(out, m.Name)
			}
			return nil
		}

		for _, m := range makes {
			if !strings.EqualFold(m.Name, args[0]) {
				continue
			}
			carModels, err := client.Models(ctx, m.ID)
			if err != nil {
				return err
			}
			for _, model := range carModels {
				fmt.Fprintln(out, model.Name)
			}
			return nil
		}
		return fmt.Errorf("make %q not found", args[0])
	},
}
