// Package cmd implements the vidpool command-line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidpool/vidpool/color"
	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/filesystem"
	"github.com/vidpool/vidpool/icon"
	"github.com/vidpool/vidpool/key"
	"github.com/vidpool/vidpool/log"
	"github.com/vidpool/vidpool/style"
	"github.com/vidpool/vidpool/version"
	"github.com/vidpool/vidpool/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("endpoints", "E", "", "Path to the YAML endpoint catalog")
	lo.Must0(viper.BindPFlag(key.EndpointsFile, rootCmd.PersistentFlags().Lookup("endpoints")))

	rootCmd.PersistentFlags().String("policy", "", "Candidate ordering inside a priority tier (ordered, shuffle)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("policy", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"ordered", "shuffle"}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.SelectionPolicy, rootCmd.PersistentFlags().Lookup("policy")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	go func() {
		_ = filesystem.API().RemoveAll(where.Temp())
	}()
}

// rootCmd defines the entry point for the vidpool application.
var rootCmd = &cobra.Command{
	Use:   constant.Vidpool,
	Short: "Resolve video streams and metadata through a pool of public endpoints",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Resolve video streams and metadata through a pool of public endpoints"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
