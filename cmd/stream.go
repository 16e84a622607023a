package cmd

import (
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidpool/vidpool/icon"
	"github.com/vidpool/vidpool/open"
	"github.com/vidpool/vidpool/source"
	"github.com/vidpool/vidpool/util"
)

func init() {
	rootCmd.AddCommand(streamCmd)
	outputFlags(streamCmd)

	streamCmd.Flags().StringSliceP("quality", "q", nil, "Quality labels to keep (e.g. 720p,1080p). Defaults to stream.qualities")
	streamCmd.Flags().BoolP("url", "u", false, "Print only the best playable URL")
	streamCmd.Flags().Bool("open", false, "Open the best playable URL")
	streamCmd.Flags().String("with", "", "Application to open the URL with (e.g. mpv). Defaults to the system handler")
}

var streamCmd = &cobra.Command{
	Use:     "stream <video-id>",
	Short:   "Resolve playable stream URLs and metadata of a video",
	Example: "  vidpool stream dQw4w9WgXcQ -q 720p,1080p",
	Args: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if printSchema(cmd, &source.VideoResult{}) {
			return
		}

		ctx, cancel := interruptible()
		defer cancel()

		erase := util.PrintErasable(fmt.Sprintf("%s Resolving %s...", icon.Get(icon.Progress), args[0]))
		video, err := newEngine().ResolveStream(ctx, args[0], lo.Must(cmd.Flags().GetStringSlice("quality"))...)
		erase()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(bestURL(video), lo.Must(cmd.Flags().GetString("with"))))
		}

		if lo.Must(cmd.Flags().GetBool("url")) {
			out, closer := writer(cmd)
			defer closer()
			_, _ = fmt.Fprintln(out, bestURL(video))
			return
		}

		emit(cmd, video, func(out io.Writer) {
			renderVideo(out, video)
		})
	},
}

// bestURL picks the highest quality playable URL, then HLS, then the embed page.
func bestURL(v *source.VideoResult) string {
	if qualities := v.Qualities(); len(qualities) > 0 {
		return v.QualityStreams[qualities[0]].PlaybackURL()
	}
	if v.HLS != "" {
		return v.HLS
	}
	return v.EmbedURL
}
