package main

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"homebooking/internal/catalog"
	"homebooking/internal/client"
	"homebooking/internal/config"
	"homebooking/internal/form"
	"homebooking/internal/logging"
	"homebooking/internal/pkg/utils"
	"homebooking/internal/wizard/tui"
)

var (
	apiURL     string
	apiTimeout time.Duration
	timezone   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Booking API base URL (default $BOOKING_API_URL or http://localhost:8080)")
	rootCmd.PersistentFlags().DurationVar(&apiTimeout, "timeout", 0, "Request timeout (default $BOOKING_API_TIMEOUT or 15s)")
	rootCmd.Flags().StringVar(&timezone, "tz", "Asia/Manila", "Time zone used to pick dates")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(pingCmd)
}

// catalogCmd prints every option table
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the service catalog as YAML",
	Example: `  # Everything the wizard offers
  book catalog`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeCatalog(cmd.OutOrStdout())
	},
}

func writeCatalog(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalog.All()); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}

// pingCmd checks the API is reachable
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the booking API is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), effectiveTimeout())
		defer cancel()

		msg, err := c.Ping(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var clientCfg *config.ClientConfig

func loadClientConfig() (*config.ClientConfig, error) {
	if clientCfg != nil {
		return clientCfg, nil
	}
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if apiTimeout > 0 {
		cfg.APITimeout = apiTimeout
	}
	clientCfg = cfg
	return cfg, nil
}

func effectiveTimeout() time.Duration {
	if clientCfg != nil {
		return clientCfg.APITimeout
	}
	return 15 * time.Second
}

func newClient() (*client.Client, *zap.Logger, error) {
	cfg, err := loadClientConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.NewCLI(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return client.New(cfg.APIURL, cfg.APITimeout, nil, logger), logger, nil
}

func runWizard(cmd *cobra.Command, args []string) error {
	c, logger, err := newClient()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("invalid --tz: %w", err)
	}

	f := form.NewModel(c, form.WithLocation(loc), form.WithLogger(logger))

	// The http.Client timeout bounds each submission.
	p := tea.NewProgram(tui.New(cmd.Context(), f), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	if n := f.Submitted(); n > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d booking request(s) sent. We will contact you soon.\n", n)
	}
	return nil
}
