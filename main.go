package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nestfinder/config"
	"nestfinder/di"
	"nestfinder/logging"
	"nestfinder/models"
	"nestfinder/util"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "nestfinder",
		Short: "Apartment search and ranking service",
		Long:  `Ranks rental listings against a renter's budget, commute and priorities`,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createSearchCmd())
	rootCmd.AddCommand(createLoadCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads config, builds the logger and wires the container.
func bootstrap(ctx context.Context) (*di.Container, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	container, err := di.NewContainer(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return container, logger, nil
}

func createServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			container, logger, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer container.Close()

			return container.NestfinderHttpServer.Run(ctx)
		},
	}
}

func createLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load the configured datasets into the listing store and geo index",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, logger, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer container.Close()

			ds := container.Datasets
			fmt.Printf("Listings loaded: %d\n", len(ds.Listings))
			for _, category := range models.POICategories {
				fmt.Printf("%s indexed: %d\n", category, ds.POICounts[category])
			}
			fmt.Printf("Neighborhoods with reference data: %d\n", len(ds.Neighborhoods.Names()))
			fmt.Printf("Incident-based safety: %t\n", ds.Safety != nil)
			return nil
		},
	}
}

func createSearchCmd() *cobra.Command {
	var (
		criteria   models.SearchCriteria
		bedrooms   int
		lat, lng   float64
		priorities []string
		mode       string
		chartPath  string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one search and print the ranked recommendations as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("bedrooms") {
				criteria.Bedrooms = &bedrooms
			}
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
				criteria.Destination.Pinned = &models.Coordinates{Lat: lat, Lng: lng}
			}
			for _, p := range priorities {
				criteria.Priorities = append(criteria.Priorities, models.Priority(p))
			}
			criteria.TransportMode = models.TransportMode(mode)

			container, logger, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer container.Close()

			resp, err := container.CoordinatorService.Search(cmd.Context(), criteria)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp); err != nil {
				return err
			}

			if chartPath != "" {
				f, err := os.Create(chartPath)
				if err != nil {
					return fmt.Errorf("failed to create chart file: %w", err)
				}
				defer f.Close()
				if err := util.RenderScoreChart(f, resp); err != nil {
					return err
				}
				logger.Info("score chart written", zap.String("path", chartPath))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&criteria.BudgetMin, "budget-min", 0, "minimum monthly rent")
	flags.IntVar(&criteria.BudgetMax, "budget-max", 0, "maximum monthly rent")
	flags.IntVar(&bedrooms, "bedrooms", 0, "exact bedroom count (0 for studio)")
	flags.StringVar(&criteria.Destination.Address, "address", "", "work or school address")
	flags.Float64Var(&lat, "lat", 0, "pinned destination latitude")
	flags.Float64Var(&lng, "lng", 0, "pinned destination longitude")
	flags.StringSliceVar(&priorities, "priority", nil, "priority tags, most important first")
	flags.StringVar(&mode, "mode", string(models.ModeTransit), "preferred transport mode")
	flags.IntVar(&criteria.MaxCommuteMinutes, "max-commute", 45, "maximum acceptable commute in minutes")
	flags.StringVar(&chartPath, "chart", "", "write an HTML score chart to this path")
	_ = cmd.MarkFlagRequired("budget-max")

	return cmd
}
