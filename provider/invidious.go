package provider

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/samber/lo"
	"github.com/vidpool/vidpool/normalize"
	"github.com/vidpool/vidpool/source"
)

type invidiousThumbnail struct {
	URL     string        `json:"url"`
	Quality string        `json:"quality"`
	Width   normalize.Int `json:"width"`
	Height  normalize.Int `json:"height"`
}

func (t invidiousThumbnail) canonical() source.Thumbnail {
	return source.Thumbnail{URL: t.URL, Quality: t.Quality, Width: int(t.Width), Height: int(t.Height)}
}

func invidiousThumbnails(thumbs []invidiousThumbnail) []source.Thumbnail {
	return lo.Map(thumbs, func(t invidiousThumbnail, _ int) source.Thumbnail {
		return t.canonical()
	})
}

type invidiousFormat struct {
	URL          string        `json:"url"`
	QualityLabel string        `json:"qualityLabel"`
	Quality      string        `json:"quality"`
	Resolution   string        `json:"resolution"`
	Size         string        `json:"size"`
	Type         string        `json:"type"`
	Container    string        `json:"container"`
	Bitrate      normalize.Int `json:"bitrate"`
	AudioQuality string        `json:"audioQuality"`
}

func (f invidiousFormat) canonical() normalize.Format {
	return normalize.Format{
		URL:       f.URL,
		Quality:   normalize.QualityLabel(f.QualityLabel, f.Resolution, f.Size, f.Quality),
		Container: normalize.First(f.Container, normalize.ContainerOf(f.Type)),
		Bitrate:   int(f.Bitrate),
		Audio:     normalize.IsAudioFormat(f.AudioQuality, f.Type),
	}
}

type invidiousVideo struct {
	Error            string               `json:"error"`
	VideoID          string               `json:"videoId"`
	Title            normalize.Text       `json:"title"`
	Description      normalize.Text       `json:"description"`
	Author           normalize.Text       `json:"author"`
	AuthorID         normalize.Text       `json:"authorId"`
	AuthorThumbnails []invidiousThumbnail `json:"authorThumbnails"`
	LengthSeconds    normalize.Seconds    `json:"lengthSeconds"`
	ViewCount        normalize.Int        `json:"viewCount"`
	PublishedText    normalize.Text       `json:"publishedText"`
	VideoThumbnails  []invidiousThumbnail `json:"videoThumbnails"`
	FormatStreams    []invidiousFormat    `json:"formatStreams"`
	AdaptiveFormats  []invidiousFormat    `json:"adaptiveFormats"`
	HlsURL           string               `json:"hlsUrl"`
}

func (v *invidiousVideo) canonical(id string) *source.VideoResult {
	streams, audio := normalize.Classify(
		lo.Map(v.FormatStreams, func(f invidiousFormat, _ int) normalize.Format { return f.canonical() }),
		lo.Map(v.AdaptiveFormats, func(f invidiousFormat, _ int) normalize.Format { return f.canonical() }),
	)

	return &source.VideoResult{
		ID:               normalize.First(v.VideoID, id),
		Title:            string(v.Title),
		Author:           normalize.Author(string(v.Author)),
		AuthorID:         string(v.AuthorID),
		AuthorThumbnails: normalize.AuthorThumbnails(invidiousThumbnails(v.AuthorThumbnails)),
		Description:      string(v.Description),
		Duration:         int(v.LengthSeconds),
		Views:            int64(v.ViewCount),
		Published:        string(v.PublishedText),
		Thumbnails:       normalize.Thumbnails(id, invidiousThumbnails(v.VideoThumbnails)),
		QualityStreams:   streams,
		BestAudio:        audio,
		HLS:              v.HlsURL,
	}
}

func invidiousVideoRequest(a Args) (Request, error) {
	if a.ID == "" {
		return Request{}, errors.New("missing video id")
	}
	return Get("/api/v1/videos/"+url.PathEscape(a.ID), nil), nil
}

func decodeInvidiousVideo(body []byte) (*invidiousVideo, error) {
	var v invidiousVideo
	if err := DecodeObject(body, &v); err != nil {
		return nil, err
	}
	if v.Error != "" {
		return nil, source.Malformedf("endpoint error: %s", v.Error)
	}
	return &v, nil
}

func parseInvidiousStream(body []byte, a Args) (*source.VideoResult, error) {
	v, err := decodeInvidiousVideo(body)
	if err != nil {
		return nil, err
	}

	result := v.canonical(a.ID)
	if !result.HasStreams() && result.HLS == "" {
		return nil, source.Malformedf("no playable formats")
	}
	return result, nil
}

func parseInvidiousMetadata(body []byte, a Args) (*source.VideoResult, error) {
	v, err := decodeInvidiousVideo(body)
	if err != nil {
		return nil, err
	}
	if v.Title == "" {
		return nil, source.Malformedf("missing title")
	}
	return v.canonical(a.ID), nil
}

type invidiousListItem struct {
	Type            string               `json:"type"`
	VideoID         string               `json:"videoId"`
	Title           normalize.Text       `json:"title"`
	Author          normalize.Text       `json:"author"`
	AuthorID        normalize.Text       `json:"authorId"`
	LengthSeconds   normalize.Seconds    `json:"lengthSeconds"`
	ViewCount       normalize.Int        `json:"viewCount"`
	PublishedText   normalize.Text       `json:"publishedText"`
	VideoThumbnails []invidiousThumbnail `json:"videoThumbnails"`
}

func invidiousSearchRequest(a Args) (Request, error) {
	if a.Query == "" {
		return Request{}, errors.New("missing query")
	}
	query := url.Values{"q": {a.Query}, "type": {"video"}}
	if a.Page > 0 {
		query.Set("page", strconv.Itoa(a.Page))
	}
	if a.Region != "" {
		query.Set("region", a.Region)
	}
	return Get("/api/v1/search", query), nil
}

func invidiousTrendingRequest(a Args) (Request, error) {
	query := url.Values{}
	if a.Region != "" {
		query.Set("region", a.Region)
	}
	return Get("/api/v1/trending", query), nil
}

func parseInvidiousList(body []byte, _ Args) ([]*source.VideoSummary, error) {
	var items []invidiousListItem
	if err := DecodeArray(body, &items); err != nil {
		return nil, err
	}

	return lo.FilterMap(items, func(it invidiousListItem, _ int) (*source.VideoSummary, bool) {
		if it.VideoID == "" || (it.Type != "" && it.Type != "video") {
			return nil, false
		}
		return &source.VideoSummary{
			ID:         it.VideoID,
			Title:      string(it.Title),
			Author:     normalize.Author(string(it.Author)),
			AuthorID:   string(it.AuthorID),
			Duration:   int(it.LengthSeconds),
			Views:      int64(it.ViewCount),
			Published:  string(it.PublishedText),
			Thumbnails: normalize.Thumbnails(it.VideoID, invidiousThumbnails(it.VideoThumbnails)),
		}, true
	}), nil
}

type invidiousComment struct {
	Author           normalize.Text       `json:"author"`
	AuthorID         normalize.Text       `json:"authorId"`
	AuthorThumbnails []invidiousThumbnail `json:"authorThumbnails"`
	Content          normalize.Text       `json:"content"`
	PublishedText    normalize.Text       `json:"publishedText"`
	LikeCount        normalize.Int        `json:"likeCount"`
}

func (c invidiousComment) canonical() *source.Comment {
	return &source.Comment{
		Author:           normalize.Author(string(c.Author)),
		AuthorID:         string(c.AuthorID),
		AuthorThumbnails: normalize.AuthorThumbnails(invidiousThumbnails(c.AuthorThumbnails)),
		Content:          string(c.Content),
		Published:        string(c.PublishedText),
		Likes:            int64(c.LikeCount),
	}
}

func invidiousCommentsRequest(a Args) (Request, error) {
	if a.ID == "" {
		return Request{}, errors.New("missing video id")
	}
	return Get("/api/v1/comments/"+url.PathEscape(a.ID), nil), nil
}

func parseInvidiousComments(body []byte, _ Args) ([]*source.Comment, error) {
	var payload struct {
		Error    string              `json:"error"`
		Comments *[]invidiousComment `json:"comments"`
	}
	if err := DecodeObject(body, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, source.Malformedf("endpoint error: %s", payload.Error)
	}
	if payload.Comments == nil {
		return nil, source.Malformedf("missing comments")
	}

	return lo.Map(*payload.Comments, func(c invidiousComment, _ int) *source.Comment {
		return c.canonical()
	}), nil
}
