package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"
	"syscall"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidpool/vidpool/color"
	"github.com/vidpool/vidpool/filesystem"
	"github.com/vidpool/vidpool/icon"
	"github.com/vidpool/vidpool/resolver"
	"github.com/vidpool/vidpool/source"
	"github.com/vidpool/vidpool/style"
	"github.com/vidpool/vidpool/util"
)

// outputFlags registers the flags shared by every resolution command.
func outputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	cmd.Flags().StringP("output", "o", "", "Write the output to a file instead of stdout")
	cmd.Flags().Bool("schema", false, "Print the JSON Schema of the output and exit")
}

func newEngine() *resolver.Engine {
	engine, err := resolver.FromConfig()
	handleErr(err)
	return engine
}

// interruptible is cancelled on SIGINT or SIGTERM.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func writer(cmd *cobra.Command) (io.Writer, func()) {
	output := lo.Must(cmd.Flags().GetString("output"))
	if output == "" {
		return cmd.OutOrStdout(), func() {}
	}

	file, err := filesystem.API().Create(output)
	handleErr(err)
	return file, func() { util.Ignore(file.Close) }
}

func schema(v any) *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		return filepath.Base(t.PkgPath()) + "." + t.Name()
	}
	return reflector.Reflect(v)
}

// printSchema reports whether --schema was set, printing the schema of v if so.
func printSchema(cmd *cobra.Command, v any) bool {
	if !lo.Must(cmd.Flags().GetBool("schema")) {
		return false
	}

	handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(schema(v)))
	return true
}

// emit writes v as JSON when --json is set and calls pretty otherwise.
func emit(cmd *cobra.Command, v any, pretty func(io.Writer)) {
	out, closer := writer(cmd)
	defer closer()

	if lo.Must(cmd.Flags().GetBool("json")) {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(v))
		return
	}

	pretty(out)
}

var (
	headerStyle = style.New().Bold(true).Foreground(color.Accent).Render
	labelStyle  = style.Fg(color.Muted)
	valueStyle  = style.Fg(color.Text)
	sourceStyle = style.Tag(color.Ink, color.Secondary)
)

func width() int {
	return util.Min(util.TerminalWidth(100), 120)
}

func field(out io.Writer, label, value string) {
	if value == "" {
		return
	}
	_, _ = fmt.Fprintf(out, "  %s %s\n", labelStyle(fmt.Sprintf("%-11s", label)), valueStyle(value))
}

func renderVideo(out io.Writer, v *source.VideoResult) {
	w := width()

	_, _ = fmt.Fprintf(out, "%s %s\n\n", headerStyle(util.Ellipsis(v.Title, w-20)), sourceStyle(v.Source))
	field(out, "Author", v.Author)
	if v.Duration > 0 {
		field(out, "Duration", fmt.Sprintf("%d:%02d", v.Duration/60, v.Duration%60))
	}
	field(out, "Views", fmt.Sprint(v.Views))
	field(out, "Published", v.Published)

	for _, quality := range v.Qualities() {
		d := v.QualityStreams[quality]
		mark := icon.Get(icon.Stream)
		if !d.HasAudio {
			mark = icon.Get(icon.Audio)
		}
		field(out, quality, fmt.Sprintf("%s %s", mark, util.Ellipsis(d.PlaybackURL(), w-20)))
	}

	if v.BestAudio != nil {
		field(out, "Audio", fmt.Sprintf("%d bps %s", v.BestAudio.Bitrate, util.Ellipsis(v.BestAudio.URL, w-30)))
	}
	field(out, "HLS", v.HLS)
	field(out, "Embed", v.EmbedURL)

	if description := strings.TrimSpace(v.Description); description != "" {
		_, _ = fmt.Fprintf(out, "\n%s\n", style.Faint(util.Wrap(description, w-4)))
	}
}

func renderSummaries(out io.Writer, list []*source.VideoSummary) {
	w := width()

	_, _ = fmt.Fprintln(out, headerStyle(util.Quantify(len(list), "video", "videos")))
	for i, s := range list {
		_, _ = fmt.Fprintf(
			out,
			"%s %s %s\n    %s\n",
			style.Faint(fmt.Sprintf("%3d", i+1)),
			valueStyle(util.Ellipsis(s.Title, w-30)),
			sourceStyle(s.Source),
			labelStyle(fmt.Sprintf("%s · %s · %s", s.ID, s.Author, util.Quantify(int(s.Views), "view", "views"))),
		)
	}
}

func renderComments(out io.Writer, list []*source.Comment) {
	w := width()

	_, _ = fmt.Fprintln(out, headerStyle(util.Quantify(len(list), "comment", "comments")))
	for _, c := range list {
		_, _ = fmt.Fprintf(out, "\n%s %s\n", style.Bold(c.Author), labelStyle(c.Published))
		_, _ = fmt.Fprintln(out, util.Wrap(c.Content, w-4))
	}
}
