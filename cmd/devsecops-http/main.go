// Package main provides the CLI entry point for issuing API requests through
// the devsecops request facade.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devsecops-cli/devsecops-cli/internal/api"
)

// version is set at build time via ldflags.
var version = "dev"

func buildRootCmd() *cobra.Command {
	opts := &requestOptions{}

	rootCmd := &cobra.Command{
		Use:   "devsecops-http",
		Short: "Issue HTTP requests with shared defaults and request logging",
		Long: `A small HTTP client that applies base headers and query parameters from a
configuration file to every request and logs each exchange to stderr.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add common flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to configuration file (default ./devsecops.yaml)")
	flags.StringVar(&opts.prefix, "prefix", "", "Log line prefix (overrides log.prefix)")
	flags.BoolVar(&opts.color, "color", false, "Colour log levels")
	flags.StringArrayVarP(&opts.headers, "header", "H", nil, `Request header "Name: value" (repeatable)`)
	flags.StringArrayVarP(&opts.params, "param", "p", nil, `Query parameter "key=value" (repeatable)`)
	flags.BoolVar(&opts.requestID, "request-id", false, "Send a generated X-Request-Id header")
	flags.StringVarP(&opts.query, "query", "q", "", "gjson path to extract from the response")
	flags.StringVarP(&opts.output, "output", "o", "json", "Output format: json, yaml or raw")
	flags.StringVar(&opts.schema, "schema", "", "JSON schema file the response must satisfy")

	// Add commands
	rootCmd.AddCommand(verbCmd(api.MethodGet, opts))
	rootCmd.AddCommand(verbCmd(api.MethodPost, opts))
	rootCmd.AddCommand(verbCmd(api.MethodPut, opts))
	rootCmd.AddCommand(verbCmd(api.MethodPatch, opts))
	rootCmd.AddCommand(verbCmd(api.MethodDelete, opts))
	rootCmd.AddCommand(requestCmd(opts))

	return rootCmd
}

func main() {
	ctx := context.Background()
	rootCmd := buildRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
