package provider

import (
	"net/http"
	"net/url"

	"github.com/samber/lo"
	"github.com/vidpool/vidpool/provider/custom"
	"github.com/vidpool/vidpool/source"
)

// scriptedRequest asks the script for the call serving op. A script that cannot be loaded
// fails the call like any other broken endpoint would.
func scriptedRequest(script string, op Operation) func(Args) (Request, error) {
	return func(a Args) (Request, error) {
		s, err := custom.Load(script)
		if err != nil {
			return Request{}, source.Malformedf("load script: %w", err)
		}

		call, err := s.Request(string(op), a.Map())
		if err != nil {
			return Request{}, source.Malformedf("%s: %w", s.Name(), err)
		}

		query := url.Values{}
		for k, v := range call.Query {
			query.Set(k, v)
		}

		return Request{
			Method: lo.Ternary(call.Method == "", http.MethodGet, call.Method),
			Path:   call.Path,
			Query:  query,
		}, nil
	}
}

// scriptedParse loads the script and hands it to parse; any script error is a malformed payload.
func scriptedParse[T any](script string, parse func(s *custom.Script, body []byte, a Args) (T, error)) func([]byte, Args) (T, error) {
	return func(body []byte, a Args) (T, error) {
		var zero T

		s, err := custom.Load(script)
		if err != nil {
			return zero, source.Malformedf("load script: %w", err)
		}

		value, err := parse(s, body, a)
		if err != nil {
			return zero, source.Malformedf("%s: %w", s.Name(), err)
		}
		return value, nil
	}
}

func scriptedVideo(script string, op Operation) Source[*source.VideoResult] {
	return Source[*source.VideoResult]{
		Build: scriptedRequest(script, op),
		Parse: scriptedParse(script, func(s *custom.Script, body []byte, a Args) (*source.VideoResult, error) {
			video, err := s.Video(string(op), body, a.ID)
			if err != nil {
				return nil, err
			}
			if op == OpStream && !video.HasStreams() && video.HLS == "" {
				return nil, source.Malformedf("no playable formats")
			}
			return video, nil
		}),
	}
}

func scriptedSummaries(script string, op Operation) Source[[]*source.VideoSummary] {
	return Source[[]*source.VideoSummary]{
		Build: scriptedRequest(script, op),
		Parse: scriptedParse(script, func(s *custom.Script, body []byte, _ Args) ([]*source.VideoSummary, error) {
			return s.Summaries(string(op), body)
		}),
	}
}

func scriptedComments(script string, op Operation) Source[[]*source.Comment] {
	return Source[[]*source.Comment]{
		Build: scriptedRequest(script, op),
		Parse: scriptedParse(script, func(s *custom.Script, body []byte, _ Args) ([]*source.Comment, error) {
			return s.Comments(string(op), body)
		}),
	}
}

func scriptedText(script string, op Operation) Source[string] {
	return Source[string]{
		Build: scriptedRequest(script, op),
		Parse: scriptedParse(script, func(s *custom.Script, body []byte, _ Args) (string, error) {
			return s.Text(string(op), body)
		}),
	}
}
