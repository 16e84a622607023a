package cmd

import (
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidpool/vidpool/icon"
	"github.com/vidpool/vidpool/source"
	"github.com/vidpool/vidpool/util"
)

func init() {
	rootCmd.AddCommand(commentsCmd)
	outputFlags(commentsCmd)
}

var commentsCmd = &cobra.Command{
	Use:   "comments <video-id>",
	Short: "Fetch the top-level comments of a video",
	Args: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if printSchema(cmd, []*source.Comment{}) {
			return
		}

		ctx, cancel := interruptible()
		defer cancel()

		erase := util.PrintErasable(fmt.Sprintf("%s Fetching comments...", icon.Get(icon.Progress)))
		list, err := newEngine().ResolveComments(ctx, args[0])
		erase()
		handleErr(err)

		emit(cmd, list, func(out io.Writer) {
			renderComments(out, list)
		})
	},
}
