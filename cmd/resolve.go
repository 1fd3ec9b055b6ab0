package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glow-labs/glowbot/internal/config"
	"github.com/glow-labs/glowbot/internal/logging"
	"github.com/glow-labs/glowbot/internal/resolver"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <product name>",
	Short: "Resolve a product name to a product-page URL",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := logging.New(cfg.LogLevel, true)

		product := strings.Join(args, " ")
		res := resolver.New(cfg.BrandDomains, logger)

		target, err := res.Resolve(context.Background(), product)
		if err != nil {
			// Same policy as the widget's click handler: never a dead
			// end, fall back to the constructed search URL.
			logger.Warn().Err(err).Msg("search fetch failed, using fallback URL")
			target = res.FallbackURL(product)
		}

		fmt.Fprintln(os.Stdout, target)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
