package provider

import (
	"errors"
	"net/url"

	"github.com/vidpool/vidpool/normalize"
	"github.com/vidpool/vidpool/source"
)

func noembedRequest(a Args) (Request, error) {
	if a.ID == "" {
		return Request{}, errors.New("missing video id")
	}
	return Get("/embed", url.Values{"url": {"https://www.youtube.com/watch?v=" + a.ID}}), nil
}

// parseNoembed only knows title, author and a thumbnail; everything else stays empty.
func parseNoembed(body []byte, a Args) (*source.VideoResult, error) {
	var payload struct {
		Error           string         `json:"error"`
		Title           normalize.Text `json:"title"`
		AuthorName      normalize.Text `json:"author_name"`
		AuthorURL       string         `json:"author_url"`
		ThumbnailURL    string         `json:"thumbnail_url"`
		ThumbnailWidth  normalize.Int  `json:"thumbnail_width"`
		ThumbnailHeight normalize.Int  `json:"thumbnail_height"`
	}
	if err := DecodeObject(body, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, source.Malformedf("endpoint error: %s", payload.Error)
	}
	if payload.Title == "" {
		return nil, source.Malformedf("missing title")
	}

	return &source.VideoResult{
		ID:               a.ID,
		Title:            string(payload.Title),
		Author:           normalize.Author(string(payload.AuthorName)),
		AuthorThumbnails: normalize.DefaultAuthorThumbnails(),
		Thumbnails: normalize.Thumbnails(a.ID, []source.Thumbnail{{
			URL:    payload.ThumbnailURL,
			Width:  int(payload.ThumbnailWidth),
			Height: int(payload.ThumbnailHeight),
		}}),
	}, nil
}
