package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rajivgeraev/dealer-api/internal/apiclient"
	"github.com/rajivgeraev/dealer-api/internal/filterstate"
)

const inventoryPath = "/inventory"

var rootCmd = &cobra.Command{
	Use:   "carlot",
	Short: "Search the dealership inventory from the terminal",
	Long: `carlot queries the inventory API with the same filters as the web catalogue.
Every search prints a shareable link that reproduces it.`,
	SilenceUsage: true,
}

// Execute запускает корневую команду
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "http://localhost:8080", "inventory API base URL")
	rootCmd.PersistentFlags().String("web-url", "http://localhost:3000", "base URL of shareable links")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "request timeout")
	rootCmd.PersistentFlags().Bool("track", true, "report searches to the popularity analytics")
	rootCmd.PersistentFlags().String("session-id", "", "analytics session id (random per run if empty)")

	viper.SetEnvPrefix("CARLOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	cobra.CheckErr(viper.BindPFlags(rootCmd.PersistentFlags()))

	rootCmd.AddCommand(searchCmd, askCmd, makesCmd, showCmd)
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("api-url"), nil)
}

// newController создает контроллер поиска. Если аналитика включена,
// успешные поиски отправляются в /api/track/search.
func newController(client *apiclient.Client, loc filterstate.Location) (*filterstate.Controller, error) {
	var opts []filterstate.Option
	if viper.GetBool("track") {
		sessionID, err := parseSessionID(viper.GetString("session-id"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, filterstate.WithTracker(client, sessionID))
	}
	return filterstate.NewController(client, client, loc, opts...), nil
}

// parseSessionID разбирает --session-id, пустое значение дает новую сессию
func parseSessionID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id: %w", err)
	}
	return id, nil
}

// openLocation создает историю из ссылки --link. Принимается полный адрес
// или только строка параметров.
func openLocation(link string) (*filterstate.MemoryLocation, error) {
	if link == "" {
		return filterstate.NewMemoryLocation(inventoryPath, nil), nil
	}
	u, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("invalid link: %w", err)
	}
	return filterstate.NewMemoryLocation(inventoryPath, u.Query()), nil
}

func shareableLink(loc *filterstate.MemoryLocation) string {
	return strings.TrimRight(viper.GetString("web-url"), "/") + loc.String()
}
