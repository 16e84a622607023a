package resolver

import (
	"net/http"
	"time"

	"github.com/spf13/viper"
	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/embed"
	"github.com/vidpool/vidpool/endpoint"
	"github.com/vidpool/vidpool/key"
	"github.com/vidpool/vidpool/metrics"
	"github.com/vidpool/vidpool/network"
)

// Options tunes an Engine. Zero values fall back to DefaultOptions.
type Options struct {
	Policy endpoint.Policy

	// Timeouts and TTLs are per capability.
	Timeouts map[endpoint.Capability]time.Duration
	TTLs     map[endpoint.Capability]time.Duration
	// MaxAttempts caps how many endpoints one sequential lookup calls. 0 is unlimited.
	MaxAttempts map[endpoint.Capability]int

	// Qualities filters stream descriptors when a lookup names none. Empty keeps every quality.
	Qualities []string
	Region    string

	Budget  time.Duration
	Workers int

	EmbedKind        embed.Kind
	EmbedSample      string
	EmbedDefaultBase string

	SingleFlight bool

	Metrics *metrics.Collector
	// Client returns the HTTP client used for an endpoint.
	Client func(endpoint.Endpoint) *http.Client
}

// DefaultOptions mirrors the registered configuration defaults.
func DefaultOptions() Options {
	return Options{
		Policy: endpoint.Ordered{},
		Timeouts: map[endpoint.Capability]time.Duration{
			endpoint.Stream:   2 * time.Second,
			endpoint.Search:   2 * time.Second,
			endpoint.Trending: 4 * time.Second,
			endpoint.Comments: 5 * time.Second,
			endpoint.Metadata: 2500 * time.Millisecond,
			endpoint.Token:    2500 * time.Millisecond,
			endpoint.Embed:    2 * time.Second,
		},
		TTLs: map[endpoint.Capability]time.Duration{
			endpoint.Stream:   10 * time.Minute,
			endpoint.Search:   5 * time.Minute,
			endpoint.Trending: 5 * time.Minute,
			endpoint.Comments: 5 * time.Minute,
			endpoint.Metadata: 10 * time.Minute,
			endpoint.Token:    30 * time.Minute,
			endpoint.Embed:    2 * time.Hour,
		},
		MaxAttempts: map[endpoint.Capability]int{
			endpoint.Search: 3,
		},
		Qualities:        constant.DefaultQualities,
		Region:           "JP",
		Budget:           3 * time.Second,
		Workers:          5,
		EmbedKind:        embed.Education,
		EmbedSample:      constant.EmbedSampleID,
		EmbedDefaultBase: constant.EducationEmbedBase,
		Client:           network.For,
	}
}

// OptionsFromConfig reads every engine setting from viper.
func OptionsFromConfig() (Options, error) {
	opts := DefaultOptions()

	policy, err := endpoint.NewPolicy(viper.GetString(key.SelectionPolicy), viper.GetInt64(key.SelectionSeed))
	if err != nil {
		return Options{}, err
	}
	opts.Policy = policy

	timeouts := map[endpoint.Capability]string{
		endpoint.Stream:   key.StreamTimeout,
		endpoint.Search:   key.SearchTimeout,
		endpoint.Trending: key.TrendingTimeout,
		endpoint.Comments: key.CommentsTimeout,
		endpoint.Metadata: key.MetadataTimeout,
		endpoint.Token:    key.TokenTimeout,
		endpoint.Embed:    key.EmbedTimeout,
	}
	for c, k := range timeouts {
		opts.Timeouts[c] = viper.GetDuration(k)
	}

	ttls := map[endpoint.Capability]string{
		endpoint.Stream:   key.StreamTTL,
		endpoint.Search:   key.SearchTTL,
		endpoint.Trending: key.TrendingTTL,
		endpoint.Comments: key.CommentsTTL,
		endpoint.Metadata: key.MetadataTTL,
		endpoint.Token:    key.TokenTTL,
		endpoint.Embed:    key.EmbedTTL,
	}
	for c, k := range ttls {
		opts.TTLs[c] = viper.GetDuration(k)
	}

	opts.MaxAttempts[endpoint.Stream] = viper.GetInt(key.StreamMaxAttempts)
	opts.MaxAttempts[endpoint.Search] = viper.GetInt(key.SearchMaxAttempts)

	opts.Qualities = viper.GetStringSlice(key.StreamQualities)
	opts.Region = viper.GetString(key.TrendingRegion)
	opts.Budget = viper.GetDuration(key.FanoutBudget)
	opts.Workers = viper.GetInt(key.FanoutWorkers)

	kind, err := embed.ParseKind(viper.GetString(key.EmbedKind))
	if err != nil {
		return Options{}, err
	}
	opts.EmbedKind = kind
	opts.EmbedSample = viper.GetString(key.EmbedSampleID)
	opts.EmbedDefaultBase = viper.GetString(key.EmbedDefaultBase)
	opts.SingleFlight = viper.GetBool(key.CacheSingleFlight)

	return opts, nil
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()

	if o.Policy == nil {
		o.Policy = def.Policy
	}
	if o.Timeouts == nil {
		o.Timeouts = def.Timeouts
	}
	if o.TTLs == nil {
		o.TTLs = def.TTLs
	}
	if o.MaxAttempts == nil {
		o.MaxAttempts = map[endpoint.Capability]int{}
	}
	if o.Region == "" {
		o.Region = def.Region
	}
	if o.Budget <= 0 {
		o.Budget = def.Budget
	}
	if o.Workers <= 0 {
		o.Workers = def.Workers
	}
	if o.EmbedKind == "" {
		o.EmbedKind = def.EmbedKind
	}
	if o.EmbedSample == "" {
		o.EmbedSample = def.EmbedSample
	}
	if o.EmbedDefaultBase == "" {
		o.EmbedDefaultBase = def.EmbedDefaultBase
	}
	if o.Client == nil {
		o.Client = def.Client
	}
	return o
}

func (o Options) timeout(e endpoint.Endpoint) time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	if t, ok := o.Timeouts[e.Capability]; ok && t > 0 {
		return t
	}
	return 4 * time.Second
}
