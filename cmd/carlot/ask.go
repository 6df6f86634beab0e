package main

import (
	"context"
	"errors"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rajivgeraev/dealer-api/internal/filterstate"
)

var askCmd = &cobra.Command{
	Use:     "ask <request>",
	Short:   "Search with a free-text request",
	Example: `  carlot ask "family SUV under 30k, not older than 2019"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := openLocation(mustString(cmd, "link"))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("timeout"))
		defer cancel()

		controller, err := newController(newClient(), loc)
		if err != nil {
			return err
		}
		controller.ApplyIntent(ctx, strings.Join(args, " "))

		snap := controller.Snapshot()
		if snap.IntentErr != "" {
			return errors.New(snap.IntentErr)
		}

		out := cmd.OutOrStdout()
		if snap.IntentMessage == filterstate.HighConfidenceMessage {
			color.New(color.FgGreen).Fprintln(out, snap.IntentMessage)
		} else {
			color.New(color.FgYellow).Fprintln(out, snap.IntentMessage)
		}
		return printSnapshot(out, snap, shareableLink(loc))
	},
}

func init() {
	askCmd.Flags().String("link", "", "shareable link whose filters the request refines")
}
