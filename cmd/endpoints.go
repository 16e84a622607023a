package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidpool/vidpool/color"
	"github.com/vidpool/vidpool/endpoint"
	"github.com/vidpool/vidpool/icon"
	"github.com/vidpool/vidpool/style"
	"github.com/vidpool/vidpool/util"
)

func init() {
	rootCmd.AddCommand(endpointsCmd)
	outputFlags(endpointsCmd)

	endpointsCmd.Flags().StringP("capability", "c", "", "Only list endpoints serving this capability")
	lo.Must0(endpointsCmd.RegisterFlagCompletionFunc("capability", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(endpoint.Capabilities(), func(c endpoint.Capability, _ int) string { return string(c) }), cobra.ShellCompDirectiveNoFileComp
	}))
	endpointsCmd.Flags().StringP("find", "f", "", "Fuzzy-match endpoint names and addresses")
}

type endpointRow struct {
	Name       string              `json:"name"`
	URL        string              `json:"url"`
	Capability endpoint.Capability `json:"capability"`
	Priority   int                 `json:"priority"`
	Dialect    string              `json:"dialect"`
	Script     string              `json:"script,omitempty"`
	Eligible   bool                `json:"eligible"`
}

var endpointsCmd = &cobra.Command{
	Use:     "endpoints",
	Short:   "List the endpoint pool",
	Aliases: []string{"pool"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if printSchema(cmd, []endpointRow{}) {
			return
		}

		engine := newEngine()
		list := engine.Registry().All()

		if find := lo.Must(cmd.Flags().GetString("find")); find != "" {
			list = engine.Registry().Find(find)
		}

		if raw := lo.Must(cmd.Flags().GetString("capability")); raw != "" {
			capability, err := endpoint.ParseCapability(raw)
			handleErr(err)
			list = lo.Filter(list, func(e endpoint.Endpoint, _ int) bool {
				return e.Capability == capability
			})
		}

		rows := lo.Map(list, func(e endpoint.Endpoint, _ int) endpointRow {
			return endpointRow{
				Name:       e.Name,
				URL:        e.BaseURL,
				Capability: e.Capability,
				Priority:   e.Priority,
				Dialect:    e.Dialect,
				Script:     e.Script,
				Eligible:   engine.Tracker().Eligible(e),
			}
		})
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Capability != rows[j].Capability {
				return rows[i].Capability < rows[j].Capability
			}
			return rows[i].Priority < rows[j].Priority
		})

		emit(cmd, rows, func(out io.Writer) {
			renderEndpoints(out, rows)
		})
	},
}

func renderEndpoints(out io.Writer, rows []endpointRow) {
	var capability endpoint.Capability
	for _, row := range rows {
		if row.Capability != capability {
			if capability != "" {
				_, _ = fmt.Fprintln(out)
			}
			capability = row.Capability
			_, _ = fmt.Fprintln(out, headerStyle(util.Capitalize(string(capability))))
		}

		mark := style.Fg(color.Green)(icon.Get(icon.Eligible))
		if !row.Eligible {
			mark = style.Fg(color.Yellow)(icon.Get(icon.Cooling))
		}

		_, _ = fmt.Fprintf(
			out,
			"  %s %s %s %s\n",
			mark,
			style.Faint(fmt.Sprintf("%2d", row.Priority)),
			valueStyle(fmt.Sprintf("%-14s", row.Name)),
			labelStyle(fmt.Sprintf("%s [%s]", row.URL, row.Dialect)),
		)
	}
}
