package cmd

import (
	"github.com/spf13/cobra"

	"github.com/omarcoswillian/monitora-prymo-sub000/cmd/check"
	"github.com/omarcoswillian/monitora-prymo-sub000/cmd/serve"
	"github.com/omarcoswillian/monitora-prymo-sub000/cmd/version"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
)

// NewRootCmd builds the base command with all subcommands attached
func NewRootCmd() *cobra.Command {
	logger := logger.NewDefault()
	rootCmd := &cobra.Command{
		Use:   "monitora",
		Short: "A site-health monitoring server",
		Long:  `monitora watches registered pages, classifies failures and tracks incidents.`,
	}

	rootCmd.AddCommand(serve.Command(logger))
	rootCmd.AddCommand(check.Command(logger))
	rootCmd.AddCommand(version.NewVersionCmd())
	return rootCmd
}
