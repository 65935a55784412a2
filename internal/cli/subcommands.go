package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/tocmd/internal/config"
	"github.com/temirov/tocmd/internal/services/mcp"
	"github.com/temirov/tocmd/internal/utils"
)

// createInitCommand returns the init subcommand that writes the default configuration.
func createInitCommand(dependencies Dependencies) *cobra.Command {
	var writeGlobal bool
	var overwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:        target,
				Force:         overwrite,
				HomeDirectory: dependencies.HomeDirectory,
			})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), configurationWrittenTemplate, writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&overwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// createMcpCommand returns the mcp subcommand serving table of contents generation over stdio.
func createMcpCommand(dependencies Dependencies, options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   mcpUse,
		Short: mcpShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			logger, releaseLogger, loggerError := resolveLogger(dependencies, options.verbose)
			if loggerError != nil {
				return loggerError
			}
			defer releaseLogger()

			applicationConfiguration, configurationError := loadConfiguration(dependencies, options.configurationPath)
			if configurationError != nil {
				return configurationError
			}
			server := mcp.NewServer(mcp.Config{
				Name:      rootUse,
				Version:   utils.GetApplicationVersion(),
				Generator: newTocBuilder(logger, applicationConfiguration.Toc),
				Logger:    logger,
			})
			logger.Debug("serving MCP over stdio")
			return server.ServeStdio()
		},
	}
}
