package provider

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"

	"github.com/samber/lo"
	"github.com/vidpool/vidpool/normalize"
	"github.com/vidpool/vidpool/source"
)

type kahootThumbnail struct {
	URL    string        `json:"url"`
	Width  normalize.Int `json:"width"`
	Height normalize.Int `json:"height"`
}

type kahootSnippet struct {
	Title        normalize.Text             `json:"title"`
	Description  normalize.Text             `json:"description"`
	ChannelTitle normalize.Text             `json:"channelTitle"`
	ChannelID    normalize.Text             `json:"channelId"`
	PublishedAt  normalize.Text             `json:"publishedAt"`
	Thumbnails   map[string]kahootThumbnail `json:"thumbnails"`
}

// thumbnailOrder is best first.
var thumbnailOrder = []string{"maxres", "standard", "high", "medium", "default"}

func (s kahootSnippet) thumbnails() []source.Thumbnail {
	return lo.FilterMap(thumbnailOrder, func(q string, _ int) (source.Thumbnail, bool) {
		t, ok := s.Thumbnails[q]
		return source.Thumbnail{URL: t.URL, Quality: q, Width: int(t.Width), Height: int(t.Height)}, ok
	})
}

type kahootVideo struct {
	ID             normalize.Text `json:"id"`
	Snippet        kahootSnippet  `json:"snippet"`
	ContentDetails struct {
		Duration normalize.Seconds `json:"duration"`
	} `json:"contentDetails"`
	Statistics struct {
		ViewCount normalize.Int `json:"viewCount"`
	} `json:"statistics"`
}

func kahootVideoRequest(a Args) (Request, error) {
	if a.ID == "" {
		return Request{}, errors.New("missing video id")
	}
	return Get("/videos", url.Values{
		"id":   {a.ID},
		"part": {"snippet,contentDetails,statistics"},
	}), nil
}

func parseKahootVideo(body []byte, a Args) (*source.VideoResult, error) {
	var payload struct {
		Items *[]kahootVideo `json:"items"`
	}
	if err := DecodeObject(body, &payload); err != nil {
		return nil, err
	}
	if payload.Items == nil || len(*payload.Items) == 0 {
		return nil, source.Malformedf("no items")
	}

	v := (*payload.Items)[0]
	if v.Snippet.Title == "" {
		return nil, source.Malformedf("missing title")
	}

	id := normalize.First(string(v.ID), a.ID)
	return &source.VideoResult{
		ID:               id,
		Title:            string(v.Snippet.Title),
		Author:           normalize.Author(string(v.Snippet.ChannelTitle)),
		AuthorID:         string(v.Snippet.ChannelID),
		AuthorThumbnails: normalize.DefaultAuthorThumbnails(),
		Description:      string(v.Snippet.Description),
		Duration:         int(v.ContentDetails.Duration),
		Views:            int64(v.Statistics.ViewCount),
		Published:        string(v.Snippet.PublishedAt),
		Thumbnails:       normalize.Thumbnails(id, v.Snippet.thumbnails()),
	}, nil
}

// kahootSearchID is either {"videoId": "..."} or a bare string.
type kahootSearchID string

func (k *kahootSearchID) UnmarshalJSON(data []byte) error {
	*k = ""
	switch topLevel(data) {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = kahootSearchID(s)
	case '{':
		var obj struct {
			VideoID string `json:"videoId"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*k = kahootSearchID(obj.VideoID)
	}
	return nil
}

func kahootSearchRequest(a Args) (Request, error) {
	if a.Query == "" {
		return Request{}, errors.New("missing query")
	}
	query := url.Values{
		"q":               {a.Query},
		"maxResults":      {strconv.Itoa(lo.Ternary(a.Limit > 0, a.Limit, 20))},
		"regionCode":      {normalize.First(a.Region, "JP")},
		"type":            {"video"},
		"part":            {"snippet"},
		"safeSearch":      {"moderate"},
		"videoEmbeddable": {"true"},
	}
	return Get("/search", query), nil
}

func parseKahootSearch(body []byte, _ Args) ([]*source.VideoSummary, error) {
	var payload struct {
		Items *[]struct {
			ID      kahootSearchID `json:"id"`
			Snippet kahootSnippet  `json:"snippet"`
		} `json:"items"`
	}
	if err := DecodeObject(body, &payload); err != nil {
		return nil, err
	}
	if payload.Items == nil {
		return nil, source.Malformedf("missing items")
	}

	summaries := make([]*source.VideoSummary, 0, len(*payload.Items))
	for _, it := range *payload.Items {
		id := string(it.ID)
		if id == "" {
			continue
		}
		summaries = append(summaries, &source.VideoSummary{
			ID:         id,
			Title:      string(it.Snippet.Title),
			Author:     normalize.Author(string(it.Snippet.ChannelTitle)),
			AuthorID:   string(it.Snippet.ChannelID),
			Published:  string(it.Snippet.PublishedAt),
			Thumbnails: normalize.Thumbnails(id, it.Snippet.thumbnails()),
		})
	}
	return summaries, nil
}

func kahootKeyRequest(Args) (Request, error) {
	return Get("/key", nil), nil
}

func parseKahootKey(body []byte, _ Args) (string, error) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := DecodeObject(body, &payload); err != nil {
		return "", err
	}
	if payload.Key == "" {
		return "", source.Malformedf("empty key")
	}
	return payload.Key, nil
}
