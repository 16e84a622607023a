package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidpool/vidpool/color"
	"github.com/vidpool/vidpool/icon"
	"github.com/vidpool/vidpool/key"
	"github.com/vidpool/vidpool/server"
	"github.com/vidpool/vidpool/style"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "Listen address")
	lo.Must0(viper.BindPFlag(key.ServerAddress, serveCmd.Flags().Lookup("address")))

	serveCmd.Flags().String("mode", "", "Router mode (debug, release, test)")
	lo.Must0(viper.BindPFlag(key.ServerMode, serveCmd.Flags().Lookup("mode")))

	serveCmd.Flags().StringSlice("cors", nil, "Origins allowed to call the API from a browser")
	lo.Must0(viper.BindPFlag(key.ServerOrigins, serveCmd.Flags().Lookup("cors")))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resolver as a JSON HTTP API",
	Long: `Serve the resolver as a JSON HTTP API.

Routes:
  GET /api/stream/:id     ?quality=720p,1080p
  GET /api/search         ?q=...&page=1
  GET /api/trending       ?region=JP
  GET /api/comments/:id
  GET /api/embed/:id      ?kind=education
  GET /api/endpoints      ?capability=stream
  GET /metrics`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := interruptible()
		defer cancel()

		address := viper.GetString(key.ServerAddress)
		srv := server.New(
			newEngine(),
			viper.GetString(key.ServerMode),
			server.WithCORS(viper.GetStringSlice(key.ServerOrigins)),
		)

		fmt.Printf(
			"%s listening on %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Yellow)(address),
		)
		handleErr(srv.Run(ctx, address))
	},
}
