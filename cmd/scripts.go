package cmd

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vidpool/vidpool/color"
	"github.com/vidpool/vidpool/icon"
	"github.com/vidpool/vidpool/network"
	"github.com/vidpool/vidpool/provider/custom"
	"github.com/vidpool/vidpool/style"
	"github.com/vidpool/vidpool/util"
	"github.com/vidpool/vidpool/where"
)

func init() {
	rootCmd.AddCommand(scriptsCmd)
	scriptsCmd.AddCommand(scriptsListCmd, scriptsInstallCmd)

	scriptsInstallCmd.Flags().StringP("name", "n", "", "File name to install as. Defaults to the last path segment of the URL")
}

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "Manage Lua scripts of custom endpoints",
}

var scriptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed scripts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		names, err := custom.List(where.Scripts())
		handleErr(err)

		if len(names) == 0 {
			fmt.Println(style.Faint("No scripts installed in " + where.Scripts()))
			return
		}

		for _, name := range names {
			fmt.Printf("%s %s\n", style.Fg(color.Purple)(util.FileStem(name)), style.Faint(filepath.Join(where.Scripts(), name)))
		}
	},
}

var scriptsInstallCmd = &cobra.Command{
	Use:   "install <url>",
	Short: "Download or update a script",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = path.Base(args[0])
		}
		if filepath.Ext(name) != ".lua" {
			name += ".lua"
		}

		ctx, cancel := interruptible()
		defer cancel()

		erase := util.PrintErasable(fmt.Sprintf("%s Downloading %s...", icon.Get(icon.Progress), name))
		changed, err := custom.Install(ctx, network.Client, args[0], name)
		erase()
		handleErr(err)

		if !changed {
			fmt.Printf("%s %s is up to date\n", icon.Get(icon.Success), name)
			return
		}

		fmt.Printf(
			"%s installed %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(custom.Resolve(name)),
		)
	},
}
