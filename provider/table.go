package provider

import (
	"github.com/vidpool/vidpool/endpoint"
	"github.com/vidpool/vidpool/source"
)

// Source is how one dialect serves one operation.
type Source[T any] struct {
	Build func(Args) (Request, error)
	Parse func(body []byte, args Args) (T, error)
}

// Table maps dialects onto the Source serving an operation.
type Table[T any] struct {
	Op       Operation
	Dialects map[string]Source[T]
	// Scripted builds the Source of a custom endpoint from its Lua script.
	Scripted func(script string, op Operation) Source[T]
}

// Lookup finds the Source for e. False means the dialect does not implement the operation.
func (t Table[T]) Lookup(e endpoint.Endpoint) (Source[T], bool) {
	if e.Dialect == endpoint.Custom {
		if t.Scripted == nil || e.Script == "" {
			return Source[T]{}, false
		}
		return t.Scripted(e.Script, t.Op), true
	}

	s, ok := t.Dialects[e.Dialect]
	return s, ok
}

// Tables consumed by the orchestrator, one per operation.
var (
	Streams = Table[*source.VideoResult]{
		Op: OpStream,
		Dialects: map[string]Source[*source.VideoResult]{
			endpoint.Invidious: {Build: invidiousVideoRequest, Parse: parseInvidiousStream},
			endpoint.Siawaseok: {Build: siawaseokStreamRequest, Parse: parseSiawaseokStream},
		},
		Scripted: scriptedVideo,
	}

	Videos = Table[*source.VideoResult]{
		Op: OpVideo,
		Dialects: map[string]Source[*source.VideoResult]{
			endpoint.Kahoot:    {Build: kahootVideoRequest, Parse: parseKahootVideo},
			endpoint.Noembed:   {Build: noembedRequest, Parse: parseNoembed},
			endpoint.Invidious: {Build: invidiousVideoRequest, Parse: parseInvidiousMetadata},
		},
		Scripted: scriptedVideo,
	}

	Searches = Table[[]*source.VideoSummary]{
		Op: OpSearch,
		Dialects: map[string]Source[[]*source.VideoSummary]{
			endpoint.Invidious: {Build: invidiousSearchRequest, Parse: parseInvidiousList},
			endpoint.Siawaseok: {Build: siawaseokSearchRequest, Parse: parseSiawaseokList},
			endpoint.Kahoot:    {Build: kahootSearchRequest, Parse: parseKahootSearch},
		},
		Scripted: scriptedSummaries,
	}

	Trends = Table[[]*source.VideoSummary]{
		Op: OpTrending,
		Dialects: map[string]Source[[]*source.VideoSummary]{
			endpoint.Invidious: {Build: invidiousTrendingRequest, Parse: parseInvidiousList},
			endpoint.Siawaseok: {Build: siawaseokTrendingRequest, Parse: parseSiawaseokList},
		},
		Scripted: scriptedSummaries,
	}

	Comments = Table[[]*source.Comment]{
		Op: OpComments,
		Dialects: map[string]Source[[]*source.Comment]{
			endpoint.Invidious: {Build: invidiousCommentsRequest, Parse: parseInvidiousComments},
			endpoint.Siawaseok: {Build: siawaseokCommentsRequest, Parse: parseSiawaseokComments},
		},
		Scripted: scriptedComments,
	}

	Tokens = Table[string]{
		Op: OpToken,
		Dialects: map[string]Source[string]{
			endpoint.Kahoot: {Build: kahootKeyRequest, Parse: parseKahootKey},
		},
		Scripted: scriptedText,
	}

	Bases = Table[string]{
		Op: OpDiscover,
		Dialects: map[string]Source[string]{
			endpoint.Siawaseok: {Build: siawaseokDiscoverRequest, Parse: parseEmbedBase},
		},
		Scripted: scriptedText,
	}
)
