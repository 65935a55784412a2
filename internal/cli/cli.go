// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/tocmd/internal/commands"
	"github.com/temirov/tocmd/internal/config"
	"github.com/temirov/tocmd/internal/services/clipboard"
	"github.com/temirov/tocmd/internal/types"
	"github.com/temirov/tocmd/internal/utils"
)

const (
	directoryFlagName    = "dir"
	directoryShorthand   = "d"
	rootFlagName         = "root"
	rootShorthand        = "r"
	extractH1FlagName    = "extract-h1"
	extractH1Shorthand   = "e"
	obsidianFlagName     = "obsidian"
	obsidianShorthand    = "o"
	githubFlagName       = "github"
	githubShorthand      = "g"
	numberedFlagName     = "numbered"
	copyFlagName         = "copy"
	configFlagName       = "config"
	verboseFlagName      = "verbose"
	versionFlagName      = "version"
	globalFlagName       = "global"
	forceFlagName        = "force"
	defaultScanDirectory = "."

	versionTemplate      = "tocmd version: %s\n"
	rootUse              = "tocmd"
	rootShortDescription = "Generate a Markdown table of contents tree"
	rootLongDescription  = `tocmd scans a directory for Markdown files and prints a nested table of contents.
Numbered names such as "1. Intro.md" are ordered numerically and shown without their prefix.
Use --obsidian for wikilinks or --github (default) for percent-encoded Markdown links.`
	rootUsageExample = `  # Table of contents for the docs directory with first-level headings
  tocmd -d docs -e

  # Obsidian wikilinks relative to the vault root
  tocmd -d vault/notes -r vault -o

  # Plain bullets instead of order numbers, copied to the clipboard
  tocmd --numbered false --copy`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	mcpUse               = "mcp"
	mcpShortDescription  = "serve the generate_toc tool over stdio"

	directoryFlagDescription = "directory to scan"
	rootFlagDescription      = "root directory for relative links (default: current working directory)"
	extractH1FlagDescription = "include first-level headings from files"
	obsidianFlagDescription  = "Obsidian format (wikilinks)"
	githubFlagDescription    = "GitHub/Gitea format (default)"
	numberedFlagDescription  = "show order numbers for numbered files in GitHub format"
	copyFlagDescription      = "copy the table of contents to the clipboard"
	configFlagDescription    = "path to a configuration file (default: ./" + utils.ConfigFileName + ")"
	verboseFlagDescription   = "log diagnostic messages to stderr"
	versionFlagDescription   = "display application version"
	globalFlagDescription    = "write the configuration under the home directory"
	forceFlagDescription     = "overwrite an existing configuration file"

	configurationWrittenTemplate = "Configuration written to %s\n"

	// errorDirectoryMissingFormat reports a scan directory that does not exist.
	errorDirectoryMissingFormat = "directory '%s' does not exist"
	// errorNotDirectoryFormat reports a scan path that is not a directory.
	errorNotDirectoryFormat = "'%s' is not a directory"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorWorkingDirectoryFormat reports failure to determine the working directory.
	errorWorkingDirectoryFormat = "unable to determine working directory: %w"
	// errorConfigurationFormat wraps configuration loading failures.
	errorConfigurationFormat = "load configuration: %w"
	// errorInvalidFormatMessage reports an unsupported configured format.
	errorInvalidFormatMessage = "invalid format value '%s'"
	// errorLoggerFormat wraps logger construction failures.
	errorLoggerFormat = "create logger: %w"
)

// Dependencies holds collaborators the commands use for side effects.
// Zero values select the system clipboard, a logger built from --verbose and the user's home directory.
type Dependencies struct {
	Copier        clipboard.Copier
	Logger        *zap.Logger
	HomeDirectory string
}

// Execute runs the tocmd application with the process arguments.
func Execute() error {
	return ExecuteWithArguments(Dependencies{}, os.Args[1:])
}

// ExecuteWithArguments runs the tocmd application with explicit dependencies and arguments.
func ExecuteWithArguments(dependencies Dependencies, arguments []string) error {
	rootCommand := createRootCommand(dependencies)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, arguments))
	return rootCommand.Execute()
}

// rootOptions stores the values bound to root command flags.
type rootOptions struct {
	scanDirectory     string
	linkRootDirectory string
	extractHeadings   bool
	obsidian          bool
	github            bool
	numbered          bool
	copyToClipboard   bool
	configurationPath string
	verbose           bool
	showVersion       bool
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies Dependencies) *cobra.Command {
	var options rootOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			return runToc(command, dependencies, options)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&options.scanDirectory, directoryFlagName, directoryShorthand, defaultScanDirectory, directoryFlagDescription)
	flagSet.StringVarP(&options.linkRootDirectory, rootFlagName, rootShorthand, "", rootFlagDescription)
	flagSet.BoolVarP(&options.extractHeadings, extractH1FlagName, extractH1Shorthand, false, extractH1FlagDescription)
	flagSet.BoolVarP(&options.obsidian, obsidianFlagName, obsidianShorthand, false, obsidianFlagDescription)
	flagSet.BoolVarP(&options.github, githubFlagName, githubShorthand, false, githubFlagDescription)
	registerBooleanFlag(flagSet, &options.numbered, numberedFlagName, true, numberedFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.MarkFlagsMutuallyExclusive(obsidianFlagName, githubFlagName)

	persistentFlags := rootCommand.PersistentFlags()
	persistentFlags.StringVar(&options.configurationPath, configFlagName, "", configFlagDescription)
	persistentFlags.BoolVar(&options.verbose, verboseFlagName, false, verboseFlagDescription)

	rootCommand.AddCommand(
		createInitCommand(dependencies),
		createMcpCommand(dependencies, &options),
	)
	return rootCommand
}

// runToc renders the table of contents for the root command.
func runToc(command *cobra.Command, dependencies Dependencies, options rootOptions) error {
	logger, releaseLogger, loggerError := resolveLogger(dependencies, options.verbose)
	if loggerError != nil {
		return loggerError
	}
	defer releaseLogger()

	applicationConfiguration, configurationError := loadConfiguration(dependencies, options.configurationPath)
	if configurationError != nil {
		return configurationError
	}
	tocOptions, linkRootDirectory, copyToClipboard, resolveError := resolveTocSettings(command, options, applicationConfiguration.Toc)
	if resolveError != nil {
		return resolveError
	}

	scanPath, scanPathError := resolveScanDirectory(options.scanDirectory)
	if scanPathError != nil {
		return scanPathError
	}

	tocBuilder := newTocBuilder(logger, applicationConfiguration.Toc)
	logger.Debug("rendering table of contents",
		zap.String("directory", scanPath.AbsolutePath),
		zap.String("root", linkRootDirectory),
		zap.String("format", tocOptions.Format),
		zap.Bool("headings", tocOptions.IncludeHeadings),
		zap.Bool("numbered", tocOptions.Numbered),
	)
	toc, tocError := tocBuilder.GetTocData(scanPath.AbsolutePath, linkRootDirectory, tocOptions)
	if tocError != nil {
		return tocError
	}

	fmt.Fprintln(command.OutOrStdout(), toc)

	if copyToClipboard {
		copier := dependencies.Copier
		if copier == nil {
			copier = clipboard.NewService()
		}
		if copyError := copier.Copy(toc); copyError != nil {
			return copyError
		}
	}
	return nil
}

// resolveTocSettings merges configuration defaults with explicitly set flags.
func resolveTocSettings(command *cobra.Command, options rootOptions, tocConfiguration config.TocConfiguration) (types.TocOptions, string, bool, error) {
	tocOptions := types.DefaultTocOptions()
	flagSet := command.Flags()

	if tocConfiguration.Format != "" {
		configuredFormat := strings.ToLower(tocConfiguration.Format)
		if !types.IsSupportedFormat(configuredFormat) {
			return types.TocOptions{}, "", false, fmt.Errorf(errorInvalidFormatMessage, tocConfiguration.Format)
		}
		tocOptions.Format = configuredFormat
	}
	switch {
	case flagSet.Changed(obsidianFlagName) && options.obsidian:
		tocOptions.Format = types.FormatObsidian
	case flagSet.Changed(githubFlagName) && options.github:
		tocOptions.Format = types.FormatGitHub
	}

	tocOptions.IncludeHeadings = resolveBoolean(flagSet.Changed(extractH1FlagName), options.extractHeadings, tocConfiguration.ExtractH1, false)
	tocOptions.Numbered = resolveBoolean(flagSet.Changed(numberedFlagName), options.numbered, tocConfiguration.Numbered, true)
	copyToClipboard := resolveBoolean(flagSet.Changed(copyFlagName), options.copyToClipboard, tocConfiguration.Copy, false)

	linkRootDirectory := tocConfiguration.Root
	if flagSet.Changed(rootFlagName) {
		linkRootDirectory = options.linkRootDirectory
	}
	if linkRootDirectory == "" {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return types.TocOptions{}, "", false, fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
		}
		linkRootDirectory = workingDirectory
	}
	return tocOptions, linkRootDirectory, copyToClipboard, nil
}

func resolveBoolean(flagChanged bool, flagValue bool, configured *bool, fallback bool) bool {
	if flagChanged {
		return flagValue
	}
	if configured != nil {
		return *configured
	}
	return fallback
}

// resolveScanDirectory converts the scan directory to absolute form and checks that it is a directory.
func resolveScanDirectory(input string) (types.ValidatedPath, error) {
	absolutePath, absolutePathError := filepath.Abs(input)
	if absolutePathError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePathFormat, input, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return types.ValidatedPath{}, fmt.Errorf(errorDirectoryMissingFormat, input)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatFormat, input, fileStatusError)
	}
	if !info.IsDir() {
		return types.ValidatedPath{}, fmt.Errorf(errorNotDirectoryFormat, input)
	}
	return types.ValidatedPath{AbsolutePath: cleanPath, IsDir: true}, nil
}

func loadConfiguration(dependencies Dependencies, explicitPath string) (config.ApplicationConfiguration, error) {
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: explicitPath,
		HomeDirectory:    dependencies.HomeDirectory,
	})
	if loadError != nil {
		return config.ApplicationConfiguration{}, fmt.Errorf(errorConfigurationFormat, loadError)
	}
	return applicationConfiguration, nil
}

func newTocBuilder(logger *zap.Logger, tocConfiguration config.TocConfiguration) *commands.TocBuilder {
	tocBuilder := &commands.TocBuilder{Logger: logger}
	if tocConfiguration.MaxLength != nil {
		tocBuilder.MaxLength = *tocConfiguration.MaxLength
	}
	return tocBuilder
}

// resolveLogger returns the injected logger or builds one honoring --verbose.
// The returned release function flushes a logger created here.
func resolveLogger(dependencies Dependencies, verbose bool) (*zap.Logger, func(), error) {
	if dependencies.Logger != nil {
		return dependencies.Logger, func() {}, nil
	}
	logger, loggerError := utils.NewApplicationLogger(verbose)
	if loggerError != nil {
		return nil, nil, fmt.Errorf(errorLoggerFormat, loggerError)
	}
	return logger, func() { _ = logger.Sync() }, nil
}
