package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidpool/vidpool/embed"
	"github.com/vidpool/vidpool/open"
)

func init() {
	rootCmd.AddCommand(embedCmd)

	embedCmd.Flags().StringP("kind", "k", "", "Embed flavour (education, nocookie, youtube). Defaults to embed.kind")
	lo.Must0(embedCmd.RegisterFlagCompletionFunc("kind", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(embed.Kinds(), func(k embed.Kind, _ int) string { return string(k) }), cobra.ShellCompDirectiveNoFileComp
	}))
	embedCmd.Flags().Bool("open", false, "Open the URL in the browser")
}

var embedCmd = &cobra.Command{
	Use:   "embed <video-id>",
	Short: "Build an embeddable player URL for a video",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var kind embed.Kind
		if raw := lo.Must(cmd.Flags().GetString("kind")); raw != "" {
			parsed, err := embed.ParseKind(raw)
			handleErr(err)
			kind = parsed
		}

		ctx, cancel := interruptible()
		defer cancel()

		link := newEngine().SynthesizeEmbedURL(ctx, args[0], kind)
		fmt.Println(link)

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(link, ""))
		}
	},
}
