package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/glow-labs/glowbot/internal/config"
	"github.com/glow-labs/glowbot/internal/logging"
	"github.com/glow-labs/glowbot/internal/proxy"
	"github.com/glow-labs/glowbot/internal/resolver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat proxy and link resolver service",
	Long: `Starts the HTTP service the browser widget talks to: POST /chat
forwards chat requests to the model API with the server-held key, and
GET /resolve maps a product name to a product-page URL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.APIKey == "" {
			fmt.Fprintln(os.Stderr, "Error: API key not found (set GLOWBOT_API_KEY).")
			os.Exit(1)
		}

		logger := logging.New(cfg.LogLevel, false)

		res := resolver.New(cfg.BrandDomains, logger)
		handler := proxy.NewHandler(cfg.UpstreamURL, cfg.APIKey, cfg.Model, res, logger)

		logger.Info().Str("addr", cfg.ListenAddr).Str("model", cfg.Model).Msg("glowbot proxy listening")
		return http.ListenAndServe(cfg.ListenAddr, handler)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
