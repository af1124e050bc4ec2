package cli

import (
	"fmt"

	"resumelens/internal/analyzer"
	"resumelens/internal/config"
	"resumelens/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server for session-based resume analysis",
	Long: `Start an HTTP server exposing the resume analysis workflow as a REST API.
Each session owns its own workflow state: the selected file, the analysis
in flight, and the rendered report with its charts.

Available endpoints:
- POST /api/sessions: Start a workflow session
- POST /api/sessions/{id}/file: Upload a resume to a session
- POST /api/sessions/{id}/analyze: Analyze the uploaded resume
- GET /api/sessions/{id}/report: Rendered analysis report
- GET /api/sessions/{id}/charts/{kind}.png: Chart PNG (skills or trend)
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info`,
	RunE: runServe,
}

func init() {
	registerServeFlags(serveCmd.Flags())
}

func registerServeFlags(flags *pflag.FlagSet) {
	flags.StringP("port", "p", "", "Port to listen on (default from config)")
	flags.String("host", "", "Host to bind to (default from config)")
	flags.String("mode", "", "Analysis mode: demo or remote (overrides config)")
	flags.String("endpoint", "", "Remote scoring endpoint URL (overrides config)")
}

// applyServeFlags copies explicitly set command-line flags over the loaded
// configuration. Config loading runs before cobra parses flags, so the
// overrides cannot go through viper bindings.
func applyServeFlags(flags *pflag.FlagSet, cfg *config.Config) {
	override := func(name string, dst *string) {
		if !flags.Changed(name) {
			return
		}
		if v, err := flags.GetString(name); err == nil {
			*dst = v
		}
	}

	override("port", &cfg.Server.Port)
	override("host", &cfg.Server.Host)
	override("mode", &cfg.Analyzer.Mode)
	override("endpoint", &cfg.Analyzer.Endpoint)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	applyServeFlags(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := analyzer.NewProvider(&cfg.Analyzer, logger)
	if err != nil {
		return fmt.Errorf("failed to create analysis provider: %w", err)
	}

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		SessionTTL:     cfg.Server.SessionTTL,
		MaxRequestSize: cfg.App.MaxRequestSize,
		RateLimit:      &cfg.Server.RateLimit,
	}
	return server.NewServer(cfg, serverCfg, provider, logger).Start()
}
