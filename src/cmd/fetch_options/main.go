package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	_ "time/tzdata"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kerrybackapps/options-market-data/src/cmd/fetch_options/run"
	"github.com/kerrybackapps/options-market-data/src/eventmodels"
	"github.com/kerrybackapps/options-market-data/src/eventservices"
	"github.com/kerrybackapps/options-market-data/src/logger"
	"github.com/kerrybackapps/options-market-data/src/utils"
)

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/fetch_options/main.go --ticker AAPL --kind call --maturity 4",
	Short: "Print the option chain of a ticker for one maturity",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		if err := utils.InitEnvironmentVariables(utils.GetEnvOrDefault("PROJECTS_DIR", "."), goEnv); err != nil {
			log.Fatalf("error loading environment variables: %v", err)
		}

		logger.Setup(utils.GetEnvOrDefault("LOG_LEVEL", "warn"), os.Getenv("LOG_FORMAT"))

		config, err := eventservices.LoadViewerConfig()
		if err != nil {
			log.Fatalf("error loading viewer config: %v", err)
		}

		defaults := config.DefaultQuery()

		ticker, err := cmd.Flags().GetString("ticker")
		if err != nil {
			log.Fatalf("error getting ticker: %v", err)
		}

		if ticker == "" {
			ticker = defaults.Ticker.String()
		}

		kind, err := cmd.Flags().GetString("kind")
		if err != nil {
			log.Fatalf("error getting kind: %v", err)
		}

		optionType := defaults.OptionType
		if kind != "" {
			if optionType, err = eventmodels.ParseOptionType(kind); err != nil {
				log.Fatalf("invalid kind: %v", err)
			}
		}

		maturityIndex := defaults.MaturityIndex
		if cmd.Flags().Changed("maturity") {
			if maturityIndex, err = cmd.Flags().GetInt("maturity"); err != nil {
				log.Fatalf("error getting maturity: %v", err)
			}
		}

		extended := config.GetExtendedColumns()
		if cmd.Flags().Changed("extended") {
			if extended, err = cmd.Flags().GetBool("extended"); err != nil {
				log.Fatalf("error getting extended: %v", err)
			}
		}

		csv, err := cmd.Flags().GetBool("csv")
		if err != nil {
			log.Fatalf("error getting csv: %v", err)
		}

		loc, err := eventmodels.LoadDisplayLocation(config.GetTimezone())
		if err != nil {
			log.Fatalf("error loading display timezone: %v", err)
		}

		provider, err := eventservices.NewMarketDataProvider(config, eventservices.ProviderCredentialsFromEnv())
		if err != nil {
			log.Fatalf("error creating market data provider: %v", err)
		}

		query := eventmodels.NewOptionsQuery(ticker, optionType, maturityIndex).Clamp(config.GetMaxMaturityIndex())

		if err := run.Run(context.Background(), provider, run.RunArgs{
			Query: query,
			Options: eventservices.FetchOptionsTableOptions{
				Extended: extended,
				Location: loc,
			},
			CSV: csv,
		}, os.Stdout); err != nil {
			var fetchErr *eventmodels.FetchError
			if errors.As(err, &fetchErr) {
				fmt.Fprintln(os.Stderr, fetchErr.UserMessage())
				os.Exit(1)
			}

			log.Fatalf("error fetching options: %v", err)
		}
	},
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	runCmd.PersistentFlags().String("ticker", "", "The stock ticker. Defaults to the configured ticker.")
	runCmd.PersistentFlags().String("kind", "", "The option type: call or put.")
	runCmd.PersistentFlags().Int("maturity", eventmodels.DefaultMaturityIndex, "The position of the expiration date in the provider's maturity list.")
	runCmd.PersistentFlags().Bool("extended", true, "Include change, percent change and implied volatility columns.")
	runCmd.PersistentFlags().Bool("csv", false, "Write the table as csv.")

	if err := runCmd.Execute(); err != nil {
		log.Fatalf("error executing command: %v", err)
	}
}
