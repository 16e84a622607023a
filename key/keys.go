// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Endpoint catalog and candidate ordering.
const (
	EndpointsFile   = "endpoints.file"
	SelectionPolicy = "selection.policy"
	SelectionSeed   = "selection.seed"
)

// Failure tracker.
const (
	BreakerCooldown = "breaker.cooldown"
	BreakerJitter   = "breaker.jitter"
)

// Response cache.
const (
	CacheSize         = "cache.size"
	CacheSingleFlight = "cache.single_flight"
)

// Stream lookup.
const (
	StreamTimeout     = "stream.timeout"
	StreamTTL         = "stream.ttl"
	StreamMaxAttempts = "stream.max_attempts"
	StreamQualities   = "stream.qualities"
)

// Search.
const (
	SearchTimeout     = "search.timeout"
	SearchTTL         = "search.ttl"
	SearchMaxAttempts = "search.max_attempts"
)

// Trending.
const (
	TrendingTimeout = "trending.timeout"
	TrendingTTL     = "trending.ttl"
	TrendingRegion  = "trending.region"
)

// Comments.
const (
	CommentsTimeout = "comments.timeout"
	CommentsTTL     = "comments.ttl"
)

// Supplementary metadata (video details and catalogue search from data APIs).
const (
	MetadataTimeout = "metadata.timeout"
	MetadataTTL     = "metadata.ttl"
)

// Signed embed token.
const (
	TokenTimeout = "token.timeout"
	TokenTTL     = "token.ttl"
)

// Embed URL synthesis and base path discovery.
const (
	EmbedTimeout     = "embed.timeout"
	EmbedTTL         = "embed.ttl"
	EmbedKind        = "embed.kind"
	EmbedSampleID    = "embed.sample_id"
	EmbedDefaultBase = "embed.default_base"
)

// Parallel fan-out.
const (
	FanoutBudget  = "fanout.budget"
	FanoutWorkers = "fanout.workers"
)

// HTTP facade started by `vidpool serve`.
const (
	ServerAddress = "server.address"
	ServerMode    = "server.mode"
	ServerOrigins = "server.cors_origins"
)

// Iconography.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
