package cmd

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Only print the version number")
	versionCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	versionCmd.Flags().StringP("output", "o", "", "Write the output to a file instead of stdout")
}

type buildInfo struct {
	App      string `json:"app"`
	Version  string `json:"version"`
	Revision string `json:"revision"`
	BuiltAt  string `json:"built_at"`
	BuiltBy  string `json:"built_by"`
	Platform string `json:"platform"`
}

func currentBuild() buildInfo {
	return buildInfo{
		App:      constant.Vidpool,
		Version:  constant.Version,
		Revision: constant.Revision,
		BuiltAt:  strings.TrimSpace(constant.BuiltAt),
		BuiltBy:  constant.BuiltBy,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify()

		info := currentBuild()
		emit(cmd, info, func(out io.Writer) {
			_, _ = fmt.Fprintf(out, "%s %s\n\n", headerStyle("▇▇▇"), headerStyle(info.App))
			field(out, "Version", info.Version)
			field(out, "Revision", info.Revision)
			field(out, "Built at", info.BuiltAt)
			field(out, "Built by", info.BuiltBy)
			field(out, "Platform", info.Platform)
		})
	},
}
