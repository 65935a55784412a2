package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName               = "bool"
	booleanFlagTrueLiteral            = "true"
	booleanFlagAcceptedValuesListing  = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueErrorLabel = "invalid boolean value"
	invalidBooleanValueFormat         = booleanFlagInvalidValueErrorLabel + " %q for --%s; accepted values: %s"
	longFlagPrefix                    = "--"
	flagValueSeparator                = "="
	joinedFlagFormat                  = "--%s=%s"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// literalBooleanFlag is a pflag.Value for flags such as --numbered that accept yes/no style literals.
type literalBooleanFlag struct {
	destination *bool
	name        string
}

func (flagValue *literalBooleanFlag) Set(input string) error {
	parsed, known := booleanFlagLiterals[strings.ToLower(strings.TrimSpace(input))]
	if !known {
		return fmt.Errorf(invalidBooleanValueFormat, input, flagValue.name, booleanFlagAcceptedValuesListing)
	}
	*flagValue.destination = parsed
	return nil
}

func (flagValue *literalBooleanFlag) String() string {
	return strconv.FormatBool(*flagValue.destination)
}

func (flagValue *literalBooleanFlag) Type() string {
	return booleanFlagTypeName
}

// registerBooleanFlag binds a literal boolean flag. A bare flag means true.
func registerBooleanFlag(flagSet *pflag.FlagSet, destination *bool, name string, defaultValue bool, usage string) {
	*destination = defaultValue
	flagSet.Var(&literalBooleanFlag{destination: destination, name: name}, name, usage)
	registeredFlag := flagSet.Lookup(name)
	registeredFlag.DefValue = strconv.FormatBool(defaultValue)
	registeredFlag.NoOptDefVal = booleanFlagTrueLiteral
}

// normalizeBooleanFlagArguments rewrites "--numbered false" as "--numbered=false" so pflag validates the value.
// The following argument stays separate when it is another flag or names a subcommand; the flag then means true.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	literalFlagNames := map[string]struct{}{}
	subcommandNames := map[string]struct{}{}
	collectCommandNames(command, literalFlagNames, subcommandNames)
	if len(literalFlagNames) == 0 {
		return arguments
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == longFlagPrefix {
			return append(normalized, arguments[index:]...)
		}
		if index+1 < len(arguments) && takesSeparateValue(currentArgument, arguments[index+1], literalFlagNames, subcommandNames) {
			normalized = append(normalized, fmt.Sprintf(joinedFlagFormat, strings.TrimPrefix(currentArgument, longFlagPrefix), arguments[index+1]))
			index++
			continue
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func takesSeparateValue(argument string, nextArgument string, literalFlagNames map[string]struct{}, subcommandNames map[string]struct{}) bool {
	if !strings.HasPrefix(argument, longFlagPrefix) || strings.Contains(argument, flagValueSeparator) {
		return false
	}
	if _, isLiteralFlag := literalFlagNames[strings.TrimPrefix(argument, longFlagPrefix)]; !isLiteralFlag {
		return false
	}
	if strings.HasPrefix(nextArgument, "-") {
		return false
	}
	_, namesSubcommand := subcommandNames[nextArgument]
	return !namesSubcommand
}

// collectCommandNames walks the command tree recording literal boolean flags and subcommand names with aliases.
func collectCommandNames(command *cobra.Command, literalFlagNames map[string]struct{}, subcommandNames map[string]struct{}) {
	recordLiteralFlag := func(flag *pflag.Flag) {
		if _, isLiteral := flag.Value.(*literalBooleanFlag); isLiteral {
			literalFlagNames[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(recordLiteralFlag)
	command.Flags().VisitAll(recordLiteralFlag)
	for _, subcommand := range command.Commands() {
		subcommandNames[subcommand.Name()] = struct{}{}
		for _, alias := range subcommand.Aliases {
			subcommandNames[alias] = struct{}{}
		}
		collectCommandNames(subcommand, literalFlagNames, subcommandNames)
	}
}
