package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/spacetask/internal/presentation/tui"
	"github.com/aretw0/spacetask/pkg/environment"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Inspect the environment catalog given by --env or the settings file",
}

var envSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Describe the loaded environment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return tui.Write(cmd.OutOrStdout(), tui.SummaryMarkdown(app.Engine.Catalog().Summary()))
	},
}

var envSuggestCmd = &cobra.Command{
	Use:   "suggest [partial]",
	Short: "List destination names matching a partial input",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		var partial string
		if len(args) > 0 {
			partial = args[0]
		}
		for _, name := range app.Engine.Catalog().Suggest(partial, limit) {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var envPlacesCmd = &cobra.Command{
	Use:   "places",
	Short: "List places, optionally filtered by zone, purpose, free seats or logical place",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		catalog := app.Engine.Catalog()
		flags := cmd.Flags()

		var places []environment.Place
		switch {
		case flags.Changed("zone"):
			zone, _ := flags.GetString("zone")
			places = catalog.PlacesByZone(zone)
		case flags.Changed("purpose"):
			purpose, _ := flags.GetString("purpose")
			places = catalog.PlacesByPurpose(purpose)
		case flags.Changed("min-seats"):
			seats, _ := flags.GetFloat64("min-seats")
			places = catalog.AvailablePlaces(seats)
		case flags.Changed("logical"):
			id, _ := flags.GetString("logical")
			resolved, ok := catalog.ResolveLogical(id)
			if !ok {
				return fmt.Errorf("logical place %q not found", id)
			}
			places = resolved
		default:
			places = catalog.Places()
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(places)
	},
}

func init() {
	envSuggestCmd.Flags().Int("limit", 10, "Maximum number of suggestions")

	envPlacesCmd.Flags().String("zone", "", "Only places in this zone")
	envPlacesCmd.Flags().String("purpose", "", "Only places with this purpose")
	envPlacesCmd.Flags().Float64("min-seats", 0, "Only places with at least this many free seats")
	envPlacesCmd.Flags().String("logical", "", "Places matched by this logical place")

	envCmd.AddCommand(envSummaryCmd, envSuggestCmd, envPlacesCmd)
	rootCmd.AddCommand(envCmd)
}
