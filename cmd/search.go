package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidpool/vidpool/icon"
	"github.com/vidpool/vidpool/key"
	"github.com/vidpool/vidpool/source"
	"github.com/vidpool/vidpool/util"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	outputFlags(searchCmd)

	searchCmd.Flags().IntP("page", "p", 1, "Result page, starting from 1")
}

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "Search videos across the endpoint pool",
	Example: "  vidpool search lofi hip hop --page 2",
	Args: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if printSchema(cmd, []*source.VideoSummary{}) {
			return
		}

		ctx, cancel := interruptible()
		defer cancel()

		query := strings.Join(args, " ")
		erase := util.PrintErasable(fmt.Sprintf("%s Searching %q...", icon.Get(icon.Progress), query))
		list, err := newEngine().ResolveSearch(ctx, query, lo.Must(cmd.Flags().GetInt("page")))
		erase()
		handleErr(err)

		emit(cmd, list, func(out io.Writer) {
			renderSummaries(out, list)
		})
	},
}

func init() {
	rootCmd.AddCommand(trendingCmd)
	outputFlags(trendingCmd)

	trendingCmd.Flags().StringP("region", "r", "", "Two-letter region code. Defaults to trending.region")
}

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List trending videos of a region",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if printSchema(cmd, []*source.VideoSummary{}) {
			return
		}

		ctx, cancel := interruptible()
		defer cancel()

		region := lo.Must(cmd.Flags().GetString("region"))
		if region == "" {
			region = viper.GetString(key.TrendingRegion)
		}

		erase := util.PrintErasable(fmt.Sprintf("%s Fetching trending videos in %s...", icon.Get(icon.Progress), strings.ToUpper(region)))
		list, err := newEngine().ResolveTrending(ctx, region)
		erase()
		handleErr(err)

		emit(cmd, list, func(out io.Writer) {
			renderSummaries(out, list)
		})
	},
}
