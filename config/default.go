package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidpool/vidpool/color"
	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/key"
	"github.com/vidpool/vidpool/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Vidpool + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON includes the current value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.TypeName(),
	})
}

// TypeName returns the name of the field's underlying value type.
func (f *Field) TypeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case int64:
		return "int64"
	case bool:
		return "bool"
	case time.Duration:
		return "duration"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
	}

	register(key.EndpointsFile, "", "Path to the YAML endpoint catalog.\nEmpty means endpoints.yaml in the config directory, falling back to the built-in catalog")
	register(key.SelectionPolicy, "ordered", "How candidates are ordered inside one priority tier.\nAvailable options are: ordered, shuffle")
	register(key.SelectionSeed, int64(0), "Seed for the shuffle policy. 0 seeds from the clock")

	register(key.BreakerCooldown, 120*time.Second, "How long a failed endpoint is skipped")
	register(key.BreakerJitter, time.Duration(0), "Upper bound of random time added to each cool-down")

	register(key.CacheSize, 4096, "Maximum number of cached responses")
	register(key.CacheSingleFlight, false, "Collapse concurrent lookups of the same key into one outbound request")

	register(key.StreamTimeout, 2*time.Second, "Per-call timeout of stream lookups. Keep it below fanout.budget so a second endpoint gets a chance")
	register(key.StreamTTL, 10*time.Minute, "Cache lifetime of stream lookups")
	register(key.StreamMaxAttempts, 0, "Maximum endpoints tried per stream lookup. 0 tries all of them")
	register(key.StreamQualities, constant.DefaultQualities, "Quality labels returned when none are requested")

	register(key.SearchTimeout, 2*time.Second, "Per-call timeout of searches")
	register(key.SearchTTL, 5*time.Minute, "Cache lifetime of search results")
	register(key.SearchMaxAttempts, 3, "Maximum endpoints tried per search. 0 tries all of them")

	register(key.TrendingTimeout, 4*time.Second, "Per-call timeout of trending lookups")
	register(key.TrendingTTL, 5*time.Minute, "Cache lifetime of trending lists")
	register(key.TrendingRegion, "JP", "Region used when none is requested")

	register(key.CommentsTimeout, 5*time.Second, "Per-call timeout of comment lookups")
	register(key.CommentsTTL, 5*time.Minute, "Cache lifetime of comment lists")

	register(key.MetadataTimeout, 2500*time.Millisecond, "Per-call timeout of supplementary metadata lookups")
	register(key.MetadataTTL, 10*time.Minute, "Cache lifetime of supplementary metadata")

	register(key.TokenTimeout, 2500*time.Millisecond, "Per-call timeout of the embed token fetch")
	register(key.TokenTTL, 30*time.Minute, "Cache lifetime of the embed token")

	register(key.EmbedTimeout, 2*time.Second, "Per-call timeout of embed base path discovery")
	register(key.EmbedTTL, 2*time.Hour, "Cache lifetime of the discovered embed base path")
	register(key.EmbedKind, "education", "Embed URL flavour.\nAvailable options are: education, nocookie, youtube")
	register(key.EmbedSampleID, constant.EmbedSampleID, "Known-playable video used to discover the embed base path")
	register(key.EmbedDefaultBase, constant.EducationEmbedBase, "Embed base path used until discovery succeeds")

	register(key.FanoutBudget, 3*time.Second, "Wait budget of a parallel fan-out. Unfinished sources are cancelled")
	register(key.FanoutWorkers, 5, "Maximum concurrently running fan-out sources")

	register(key.ServerAddress, ":8080", "Listen address of `vidpool serve`")
	register(key.ServerMode, "release", "Router mode.\nAvailable options are: debug, release, test")
	register(key.ServerOrigins, []string{}, "Origins allowed to call the HTTP API from a browser. Empty disables CORS")

	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		case time.Duration:
			return style.Fg(color.Cyan)(value.String())
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
