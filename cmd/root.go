package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	apiKey      string
	upstreamURL string
	model       string
	listenAddr  string
	stateDir    string
	logLevel    string
	Version     = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "glowbot",
	Version: Version,
	Short:   "Glowbot - L'Oréal product-advice chat assistant",
	Long: `Glowbot is a branded product-advice assistant: an interactive chat
client plus a small proxy service that forwards chat requests to the
model API and resolves product names to product-page URLs.`,
	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand: start the interactive chat client.
		startChat()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.glowbot/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "key", "", "API key for the chat-completion API")
	rootCmd.PersistentFlags().StringVar(&upstreamURL, "upstream-url", "", "chat-completion API base URL")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "model name (default gpt-4o)")
	rootCmd.PersistentFlags().StringVar(&listenAddr, "listen", "", "proxy listen address (default :8787)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "directory for persisted conversation state")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("key"))
	viper.BindPFlag("upstream_url", rootCmd.PersistentFlags().Lookup("upstream-url"))
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("listen_addr", rootCmd.PersistentFlags().Lookup("listen"))
	viper.BindPFlag("state_dir", rootCmd.PersistentFlags().Lookup("state-dir"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := home + "/.glowbot"
		os.MkdirAll(configDir, 0755)

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("GLOWBOT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
