package resolver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/vidpool/vidpool/embed"
	"github.com/vidpool/vidpool/endpoint"
	"github.com/vidpool/vidpool/internal/cache"
	"github.com/vidpool/vidpool/normalize"
	"github.com/vidpool/vidpool/provider"
	"github.com/vidpool/vidpool/source"
)

var errEmptyArgument = errors.New("empty argument")

// exhausted makes sure the cause chain carries ErrPoolExhausted.
func exhausted(cause error) error {
	switch {
	case cause == nil:
		return source.ErrPoolExhausted
	case errors.Is(cause, source.ErrPoolExhausted):
		return cause
	default:
		return fmt.Errorf("%w: %w", source.ErrPoolExhausted, cause)
	}
}

// ResolveStream looks up streams and metadata of id. The stream chain, the metadata chain and
// the embed synthesizer run side by side; their results are merged in that priority order.
// qualities filters the returned descriptors and defaults to the configured set.
func (e *Engine) ResolveStream(ctx context.Context, id string, qualities ...string) (*source.VideoResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, source.Unavailable("stream", errEmptyArgument)
	}

	// A result without streams because the stream chain missed the budget is served but not kept.
	var partial bool

	video, err := cachedIf(ctx, e, endpoint.Stream, cache.Key(string(endpoint.Stream), id), func(ctx context.Context) (*source.VideoResult, error) {
		args := provider.Args{ID: id}

		results := FanOut(ctx, e, "stream", []Task[*source.VideoResult]{
			{Name: "stream", Run: func(ctx context.Context) (*source.VideoResult, error) {
				video, ep, err := Sequential(ctx, e, endpoint.Stream, provider.Streams, args)
				if err != nil {
					return nil, err
				}
				video.Source = ep.Name
				return video, nil
			}},
			{Name: "metadata", Run: func(ctx context.Context) (*source.VideoResult, error) {
				return e.metadata(ctx, id)
			}},
			{Name: "embed", Run: func(ctx context.Context) (*source.VideoResult, error) {
				return &source.VideoResult{ID: id, EmbedURL: e.embed.URL(ctx, id, e.opts.EmbedKind)}, nil
			}},
		})

		merged := mergeVideo(id, values(results))
		if !usable(merged) {
			return nil, exhausted(firstError(results))
		}
		partial = !merged.HasStreams() && errors.Is(results[0].Err, errLate)
		return merged, nil
	}, func(*source.VideoResult) bool { return !partial })
	if err != nil {
		return nil, source.Unavailable("stream", err)
	}

	if len(qualities) == 0 {
		qualities = e.opts.Qualities
	}
	return withQualities(video, qualities), nil
}

// metadata is the cached supplementary lookup of video details.
func (e *Engine) metadata(ctx context.Context, id string) (*source.VideoResult, error) {
	return cached(ctx, e, endpoint.Metadata, cache.Key(string(endpoint.Metadata), "video", id), func(ctx context.Context) (*source.VideoResult, error) {
		video, ep, err := Sequential(ctx, e, endpoint.Metadata, provider.Videos, provider.Args{ID: id})
		if err != nil {
			return nil, err
		}
		video.Source = ep.Name
		return video, nil
	})
}

func tag(list []*source.VideoSummary, name string) []*source.VideoSummary {
	for _, v := range list {
		v.Source = name
	}
	return list
}

// ResolveSearch merges the search chain with the catalogue search of metadata endpoints,
// deduplicated by id with search results first. Catalogue search has no pages and only joins page 1.
func (e *Engine) ResolveSearch(ctx context.Context, query string, page int) ([]*source.VideoSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, source.Unavailable("search", errEmptyArgument)
	}
	page = lo.Max([]int{page, 1})

	list, err := cached(ctx, e, endpoint.Search, cache.Key(string(endpoint.Search), strings.ToLower(query), strconv.Itoa(page)), func(ctx context.Context) ([]*source.VideoSummary, error) {
		args := provider.Args{Query: query, Page: page, Region: e.opts.Region}

		chain := func(capability endpoint.Capability) Task[[]*source.VideoSummary] {
			return Task[[]*source.VideoSummary]{Name: string(capability), Run: func(ctx context.Context) ([]*source.VideoSummary, error) {
				list, ep, err := Sequential(ctx, e, capability, provider.Searches, args)
				if err != nil {
					return nil, err
				}
				return tag(list, ep.Name), nil
			}}
		}

		tasks := []Task[[]*source.VideoSummary]{chain(endpoint.Search)}
		if page == 1 {
			tasks = append(tasks, chain(endpoint.Metadata))
		}

		results := FanOut(ctx, e, "search", tasks)
		lists := values(results)
		if len(lists) == 0 {
			return nil, exhausted(firstError(results))
		}
		return normalize.Dedupe(lists...), nil
	})
	if err != nil {
		return nil, source.Unavailable("search", err)
	}
	return list, nil
}

// ResolveTrending lists trending videos of region, the configured region when empty.
func (e *Engine) ResolveTrending(ctx context.Context, region string) ([]*source.VideoSummary, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = strings.ToUpper(e.opts.Region)
	}

	list, err := cached(ctx, e, endpoint.Trending, cache.Key(string(endpoint.Trending), region), func(ctx context.Context) ([]*source.VideoSummary, error) {
		list, ep, err := Sequential(ctx, e, endpoint.Trending, provider.Trends, provider.Args{Region: region})
		if err != nil {
			return nil, err
		}
		return normalize.Dedupe(tag(list, ep.Name)), nil
	})
	if err != nil {
		return nil, source.Unavailable("trending", err)
	}
	return list, nil
}

// ResolveComments lists the top-level comments of id.
func (e *Engine) ResolveComments(ctx context.Context, id string) ([]*source.Comment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, source.Unavailable("comments", errEmptyArgument)
	}

	comments, err := cached(ctx, e, endpoint.Comments, cache.Key(string(endpoint.Comments), id), func(ctx context.Context) ([]*source.Comment, error) {
		comments, _, err := Sequential(ctx, e, endpoint.Comments, provider.Comments, provider.Args{ID: id})
		if err != nil {
			return nil, err
		}
		for _, c := range comments {
			c.Author = normalize.Author(c.Author)
			c.AuthorThumbnails = normalize.AuthorThumbnails(c.AuthorThumbnails)
		}
		return comments, nil
	})
	if err != nil {
		return nil, source.Unavailable("comments", err)
	}
	return comments, nil
}

// SynthesizeEmbedURL never fails: without a token or a discovered base path it degrades to the defaults.
// An empty kind uses the configured one.
func (e *Engine) SynthesizeEmbedURL(ctx context.Context, id string, kind embed.Kind) string {
	if kind == "" {
		kind = e.opts.EmbedKind
	}
	return e.embed.URL(ctx, strings.TrimSpace(id), kind)
}

// Token fetches the signed embed token. It implements embed.Fetcher.
func (e *Engine) Token(ctx context.Context) (string, error) {
	return cached(ctx, e, endpoint.Token, cache.Key(string(endpoint.Token)), func(ctx context.Context) (string, error) {
		token, _, err := Sequential(ctx, e, endpoint.Token, provider.Tokens, provider.Args{})
		return token, err
	})
}

// BasePath discovers where the education player lives by probing a known-playable video.
// It implements embed.Fetcher.
func (e *Engine) BasePath(ctx context.Context) (string, error) {
	sample := e.opts.EmbedSample
	return cached(ctx, e, endpoint.Embed, cache.Key(string(endpoint.Embed), sample), func(ctx context.Context) (string, error) {
		base, _, err := Sequential(ctx, e, endpoint.Embed, provider.Bases, provider.Args{ID: sample})
		return base, err
	})
}
