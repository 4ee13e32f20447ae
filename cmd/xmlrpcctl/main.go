package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"extend-xmlrpc/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "xmlrpcctl",
	Short: "xmlrpcctl - client and fixture tool for the getPosts XML-RPC service",
	Long: `xmlrpcctl talks to a running getPosts XML-RPC server and loads sample
blog data into its MongoDB store.

Examples:
  # 10 most recently modified posts in the sports category
  xmlrpcctl get-posts -u editor -p secret --category sports --filter orderby=modified

  # posts and pages, as yaml
  xmlrpcctl get-posts --post-type post --post-type page --format yaml

  # load users, terms and posts
  xmlrpcctl seed --file testdata/fixture.yaml`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel)
	},
}

var (
	format   string
	logLevel string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "json", "Output format: json|yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level")

	rootCmd.AddCommand(newGetPostsCmd())
	rootCmd.AddCommand(newSeedCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
