package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jaycalderwood/KQL/internal/console"
	"github.com/jaycalderwood/KQL/internal/logs"
	"github.com/jaycalderwood/KQL/internal/message"
	"github.com/jaycalderwood/KQL/internal/output"
	"github.com/jaycalderwood/KQL/pkg/azure"
	"github.com/jaycalderwood/KQL/pkg/query"
)

var cfgFile string

// rootCmd starts the interactive console when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:          "kql",
	Short:        "Interactive console for running library KQL queries against Azure backends.",
	SilenceUsage: true,
	RunE:         runConsole,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.kql.yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress informational messages")

	rootCmd.Flags().StringP("library", "l", "queries", "query library root path")
	rootCmd.Flags().StringP("timespan", "t", query.DefaultHuntingSpan, "default ISO-8601 timespan")
	rootCmd.Flags().IntP("max-rows", "m", 1000, "row-count ceiling for inventory queries")
	rootCmd.Flags().StringP("output", "o", "output", "directory for exported files")

	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("library", rootCmd.Flags().Lookup("library"))
	viper.BindPFlag("timespan", rootCmd.Flags().Lookup("timespan"))
	viper.BindPFlag("max-rows", rootCmd.Flags().Lookup("max-rows"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".kql" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".kql")
	}

	viper.SetEnvPrefix("KQL")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runConsole(cmd *cobra.Command, args []string) error {
	logs.Init(viper.GetBool("debug"))
	message.SetQuiet(viper.GetBool("quiet"))
	if viper.GetBool("no-color") || !isatty.IsTerminal(os.Stdout.Fd()) {
		message.SetNoColor(true)
	}

	cred, err := azure.NewCredential()
	if err != nil {
		return err
	}
	graph, err := azure.NewGraphClient(cred)
	if err != nil {
		return err
	}
	logsClient, err := azure.NewLogsClient(cred)
	if err != nil {
		return err
	}
	huntingClient, err := azure.NewHuntingClient(cred)
	if err != nil {
		return err
	}

	dispatcher := &query.Dispatcher{
		Logs:        logsClient,
		Hunting:     huntingClient,
		Inventory:   graph,
		DefaultSpan: viper.GetString("timespan"),
	}

	prompt := console.NewPrompter(os.Stdin, os.Stdout)
	sink := output.New(viper.GetString("output"), prompt, os.Stdout)
	cfg := console.Config{
		LibraryRoot: viper.GetString("library"),
		DefaultSpan: viper.GetString("timespan"),
		MaxRows:     viper.GetInt("max-rows"),
	}

	return console.New(cfg, prompt, azure.NewDirectory(cred, graph), dispatcher, sink, os.Stdout).Run(cmd.Context())
}
