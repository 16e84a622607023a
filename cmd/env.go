package cmd

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidpool/vidpool/color"
	"github.com/vidpool/vidpool/config"
	"github.com/vidpool/vidpool/style"
	"github.com/vidpool/vidpool/where"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only list variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only list variables that are unset")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// envVariables lists every variable vidpool reads, sorted by name.
func envVariables() []string {
	names := lo.Map(lo.Values(config.Default), func(f config.Field, _ int) string {
		return f.Env()
	})
	names = append(names, where.EnvConfigPath)
	slices.Sort(names)
	return names
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables vidpool reads",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
			name      = style.New().Bold(true).Foreground(color.Purple).Render
		)

		for _, env := range envVariables() {
			value, set := os.LookupEnv(env)
			if (setOnly && !set) || (unsetOnly && set) {
				continue
			}

			shown := style.Fg(color.Red)("unset")
			if set {
				shown = style.Fg(color.Green)(value)
			}
			cmd.Println(fmt.Sprintf("%s=%s", name(env), shown))
		}
	},
}
