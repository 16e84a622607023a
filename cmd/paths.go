package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/vidpool/vidpool/color"
	"github.com/vidpool/vidpool/filesystem"
	"github.com/vidpool/vidpool/icon"
	"github.com/vidpool/vidpool/style"
	"github.com/vidpool/vidpool/util"
	"github.com/vidpool/vidpool/where"
)

// location is a per-user path `where` can print and, when clearable, `clear` can remove.
type location struct {
	name      string
	flag      string
	short     mo.Option[string]
	path      func() string
	hidden    bool
	clearable bool
}

var locations = []location{
	{name: "Config", flag: "config", short: mo.Some("c"), path: where.Config},
	{name: "Endpoints", flag: "endpoints", short: mo.Some("e"), path: where.Endpoints},
	{name: "Scripts", flag: "scripts", short: mo.Some("s"), path: where.Scripts},
	{name: "Logs", flag: "logs", short: mo.Some("l"), path: where.Logs, clearable: true},
	{name: "Cache", flag: "cache", short: mo.None[string](), path: where.Cache, hidden: true, clearable: true},
	{name: "Temp", flag: "temp", short: mo.None[string](), path: where.Temp, hidden: true, clearable: true},
}

func (l location) register(cmd *cobra.Command, usage string) {
	if short, ok := l.short.Get(); ok {
		cmd.Flags().BoolP(l.flag, short, false, usage)
	} else {
		cmd.Flags().Bool(l.flag, false, usage)
	}
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		l.register(whereCmd, l.name+" path")
		if l.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(l.flag))
		}
	}
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string { return l.flag })...)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where vidpool keeps its files",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range locations {
			if lo.Must(cmd.Flags().GetBool(l.flag)) {
				cmd.Println(l.path())
				return
			}
		}

		visible := lo.Reject(locations, func(l location, _ int) bool { return l.hidden })
		for i, l := range visible {
			cmd.Printf("%s %s\n", style.New().Bold(true).Foreground(color.HiPurple).Render(l.name+"?"), style.Fg(color.Yellow)("--"+l.flag))
			cmd.Println(l.path())

			if i < len(visible)-1 {
				cmd.Println()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, l := range locations {
		if l.clearable {
			l.register(clearCmd, "Clear the "+l.flag+" directory")
		}
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached and temporary files",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		targets := lo.Filter(locations, func(l location, _ int) bool {
			return l.clearable && lo.Must(cmd.Flags().GetBool(l.flag))
		})
		if len(targets) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, l := range targets {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), l.flag))
			err := filesystem.API().RemoveAll(l.path())
			erase()
			handleErr(err)
			fmt.Printf("%s %s directory cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)), l.name)
		}
	},
}
