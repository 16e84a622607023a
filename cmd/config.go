package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidpool/vidpool/color"
	"github.com/vidpool/vidpool/config"
	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/filesystem"
	"github.com/vidpool/vidpool/icon"
	"github.com/vidpool/vidpool/style"
	"github.com/vidpool/vidpool/where"
)

func errUnknownKey(key string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})

	return fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closest),
	)
}

func lookupField(key string) config.Field {
	field, ok := config.Default[key]
	if !ok {
		handleErr(errUnknownKey(key))
	}
	return field
}

// parseValue converts command line words into the type of the field's default.
func parseValue(field config.Field, words []string) (any, error) {
	if len(words) == 0 {
		return nil, errors.New("value is required")
	}
	raw := words[0]

	switch field.Value.(type) {
	case string:
		return raw, nil
	case int:
		return strconv.Atoi(raw)
	case int64:
		return strconv.ParseInt(raw, 10, 64)
	case bool:
		return strconv.ParseBool(raw)
	case time.Duration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a duration, try something like 4s or 10m", raw)
		}
		return d, nil
	case []string:
		// set k a b and set k a,b are the same
		return lo.FlatMap(words, func(w string, _ int) []string {
			return lo.Compact(lo.Map(strings.Split(w, ","), func(s string, _ int) string {
				return strings.TrimSpace(s)
			}))
		}), nil
	default:
		return nil, fmt.Errorf("%s cannot be set from the command line", field.Key)
	}
}

func configFile() string {
	return filepath.Join(where.Config(), constant.Vidpool+".toml")
}

// persist writes the in-memory configuration, creating the file on first use.
func persist() {
	var notFound viper.ConfigFileNotFoundError
	if err := viper.WriteConfig(); errors.As(err, &notFound) {
		handleErr(viper.SafeWriteConfig())
	} else {
		handleErr(err)
	}
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configSetCmd, configGetCmd, configWriteCmd, configDeleteCmd, configResetCmd)

	configInfoCmd.Flags().StringSliceP("key", "k", nil, "Only describe these keys")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")

	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change settings",
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe settings with their current values and defaults",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		keys := lo.Must(cmd.Flags().GetStringSlice("key"))
		if len(keys) == 0 {
			keys = lo.Keys(config.Default)
		}
		sort.Strings(keys)

		fields := lo.Map(keys, func(k string, _ int) *config.Field {
			field := lookupField(k)
			return &field
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		cmd.Println(strings.Join(lo.Map(fields, func(f *config.Field, _ int) string {
			return f.Pretty()
		}), "\n\n"))
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set <key> <value>...",
	Short:             "Change a setting and save it to the config file",
	Example:           "  vidpool config set stream.timeout 6s\n  vidpool config set stream.qualities 720p,1080p",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field := lookupField(args[0])

		value, err := parseValue(field, args[1:])
		handleErr(err)

		viper.Set(field.Key, value)
		persist()

		fmt.Printf(
			"%s set %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(field.Key),
			style.Fg(color.Yellow)(fmt.Sprint(value)),
		)
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the current value of a setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(viper.Get(lookupField(args[0]).Key))
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Save the current settings to the config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if exists, _ := filesystem.API().Exists(path); exists {
				handleErr(filesystem.API().Remove(path))
			}
		}

		handleErr(viper.SafeWriteConfig())
		fmt.Printf("%s wrote config to %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Delete the config file",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFile()))
		fmt.Printf("%s deleted config\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key]...",
	Short:             "Restore settings to their defaults",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))
		if all == (len(args) > 0) {
			handleErr(errors.New("name the keys to reset or pass --all"))
		}

		fields := lo.Values(config.Default)
		if !all {
			fields = lo.Map(args, func(k string, _ int) config.Field { return lookupField(k) })
		}

		for _, field := range fields {
			viper.Set(field.Key, field.Value)
		}
		persist()

		if all {
			fmt.Printf("%s reset all config values\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		for _, field := range fields {
			fmt.Printf(
				"%s reset %s to %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				style.Fg(color.Purple)(field.Key),
				style.Fg(color.Yellow)(fmt.Sprint(field.Value)),
			)
		}
	},
}
