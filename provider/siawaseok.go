package provider

import (
	"encoding/json"
	"errors"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/vidpool/vidpool/normalize"
	"github.com/vidpool/vidpool/source"
	"github.com/vidpool/vidpool/util"
)

// siawaseokMeta covers both field spellings the service uses for metadata.
type siawaseokMeta struct {
	Title         normalize.Text    `json:"title"`
	Description   normalize.Text    `json:"description"`
	Uploader      normalize.Text    `json:"uploader"`
	Author        normalize.Text    `json:"author"`
	UploaderID    normalize.Text    `json:"uploader_id"`
	AuthorID      normalize.Text    `json:"authorId"`
	ViewCount     normalize.Int     `json:"view_count"`
	ViewCountAlt  normalize.Int     `json:"viewCount"`
	Duration      normalize.Seconds `json:"duration"`
	LengthSeconds normalize.Seconds `json:"lengthSeconds"`
	UploadDate    normalize.Text    `json:"upload_date"`
	PublishedText normalize.Text    `json:"publishedText"`
	ThumbnailURL  string            `json:"thumbnailUrl"`
	Thumbnail     string            `json:"thumbnail"`
	HLS           string            `json:"hls"`
	VideoStreams  []siawaseokFormat `json:"videoStreams"`
	AudioStreams  []siawaseokFormat `json:"audioStreams"`
}

// siawaseokFormat is the list layout some mirrors serve instead of quality keys.
type siawaseokFormat struct {
	URL       string        `json:"url"`
	Quality   string        `json:"quality"`
	MimeType  string        `json:"mimeType"`
	Format    string        `json:"format"`
	Bitrate   normalize.Int `json:"bitrate"`
	VideoOnly bool          `json:"videoOnly"`
}

func (f siawaseokFormat) canonical(audio bool) normalize.Format {
	return normalize.Format{
		URL:       f.URL,
		Quality:   f.Quality,
		Container: normalize.First(normalize.ContainerOf(f.MimeType), strings.ToLower(f.Format)),
		Bitrate:   int(f.Bitrate),
		Audio:     audio,
	}
}

type siawaseokPair struct {
	Video *Link `json:"video"`
	Audio *Link `json:"audio"`
}

var qualityKey = regexp.MustCompile(`^\d{3,4}p$`)

func siawaseokStreamRequest(a Args) (Request, error) {
	if a.ID == "" {
		return Request{}, errors.New("missing video id")
	}
	return Get("/api/stream/"+url.PathEscape(a.ID)+"/type2", nil), nil
}

// parseSiawaseokStream reads the type2 layout: "muxed360p" is a combined stream,
// every "<height>p" key holds a video/audio pair. Mirrors that serve videoStreams/audioStreams lists are read too.
func parseSiawaseokStream(body []byte, a Args) (*source.VideoResult, error) {
	var meta siawaseokMeta
	if err := DecodeObject(body, &meta); err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, source.Malformedf("decode object: %w", err)
	}

	var combined, adaptive []normalize.Format

	if muxed, ok := raw["muxed360p"]; ok {
		var link Link
		if err := json.Unmarshal(muxed, &link); err != nil {
			return nil, source.Malformedf("muxed360p: %w", err)
		}
		combined = append(combined, normalize.Format{URL: link.URL, Quality: "360p", Container: normalize.First(link.Container, "mp4")})
	}

	// Highest first, so ties on bitrate resolve to the best quality's audio on every run.
	heights := lo.Filter(lo.Keys(raw), func(k string, _ int) bool { return qualityKey.MatchString(k) })
	sort.Slice(heights, func(i, j int) bool {
		a, _ := strconv.Atoi(strings.TrimSuffix(heights[i], "p"))
		b, _ := strconv.Atoi(strings.TrimSuffix(heights[j], "p"))
		return a > b
	})

	for _, k := range heights {
		v := raw[k]

		var pair siawaseokPair
		if json.Unmarshal(v, &pair) != nil || (pair.Video == nil && pair.Audio == nil) {
			// Some responses put a bare link under the quality key.
			var link Link
			if json.Unmarshal(v, &link) != nil || link.URL == "" {
				return nil, source.Malformedf("%s: unexpected shape", k)
			}
			pair = siawaseokPair{Video: &link}
		}

		if pair.Video != nil {
			video := normalize.Format{URL: pair.Video.URL, Quality: k, Container: pair.Video.Container}
			if pair.Audio != nil {
				video.Companion = pair.Audio.URL
			}
			adaptive = append(adaptive, video)
		}
		if pair.Audio != nil {
			adaptive = append(adaptive, normalize.Format{URL: pair.Audio.URL, Bitrate: pair.Audio.Bitrate, Container: pair.Audio.Container, Audio: true})
		}
	}

	for _, f := range meta.VideoStreams {
		if f.VideoOnly {
			adaptive = append(adaptive, f.canonical(false))
		} else {
			combined = append(combined, f.canonical(false))
		}
	}
	for _, f := range meta.AudioStreams {
		adaptive = append(adaptive, f.canonical(true))
	}

	streams, audio := normalize.Classify(combined, adaptive)
	result := &source.VideoResult{
		ID:               a.ID,
		Title:            string(meta.Title),
		Author:           normalize.Author(string(normalize.First(meta.Uploader, meta.Author))),
		AuthorID:         string(normalize.First(meta.UploaderID, meta.AuthorID)),
		AuthorThumbnails: normalize.DefaultAuthorThumbnails(),
		Description:      string(meta.Description),
		Duration:         int(normalize.First(meta.Duration, meta.LengthSeconds)),
		Views:            int64(normalize.First(meta.ViewCount, meta.ViewCountAlt)),
		Published:        string(normalize.First(meta.UploadDate, meta.PublishedText)),
		Thumbnails:       normalize.Thumbnails(a.ID, []source.Thumbnail{{URL: normalize.First(meta.ThumbnailURL, meta.Thumbnail)}}),
		QualityStreams:   streams,
		BestAudio:        audio,
		HLS:              meta.HLS,
	}

	if !result.HasStreams() && result.HLS == "" {
		return nil, source.Malformedf("no playable formats")
	}
	return result, nil
}

type siawaseokItem struct {
	Type          string            `json:"type"`
	VideoID       normalize.Text    `json:"videoId"`
	ID            normalize.Text    `json:"id"`
	Title         normalize.Text    `json:"title"`
	Author        normalize.Text    `json:"author"`
	Uploader      normalize.Text    `json:"uploader"`
	AuthorID      normalize.Text    `json:"authorId"`
	LengthSeconds normalize.Seconds `json:"lengthSeconds"`
	Duration      normalize.Seconds `json:"duration"`
	ViewCount     normalize.Int     `json:"viewCount"`
	ViewCountAlt  normalize.Int     `json:"view_count"`
	PublishedText normalize.Text    `json:"publishedText"`
	UploadDate    normalize.Text    `json:"upload_date"`
	Thumbnail     string            `json:"thumbnail"`
}

func (it siawaseokItem) canonical() (*source.VideoSummary, bool) {
	id := string(normalize.First(it.VideoID, it.ID))
	if id == "" || (it.Type != "" && it.Type != "video") {
		return nil, false
	}
	return &source.VideoSummary{
		ID:         id,
		Title:      string(it.Title),
		Author:     normalize.Author(string(normalize.First(it.Author, it.Uploader))),
		AuthorID:   string(it.AuthorID),
		Duration:   int(normalize.First(it.LengthSeconds, it.Duration)),
		Views:      int64(normalize.First(it.ViewCount, it.ViewCountAlt)),
		Published:  string(normalize.First(it.PublishedText, it.UploadDate)),
		Thumbnails: normalize.Thumbnails(id, []source.Thumbnail{{URL: it.Thumbnail}}),
	}, true
}

func siawaseokSearchRequest(a Args) (Request, error) {
	if a.Query == "" {
		return Request{}, errors.New("missing query")
	}
	query := url.Values{"q": {a.Query}}
	if a.Page > 0 {
		query.Set("page", strconv.Itoa(a.Page))
	}
	return Get("/api/search", query), nil
}

func siawaseokTrendingRequest(Args) (Request, error) {
	return Get("/api/trend", nil), nil
}

// parseSiawaseokList accepts the list under any of the keys the service has used.
func parseSiawaseokList(body []byte, _ Args) ([]*source.VideoSummary, error) {
	var payload struct {
		Results  *[]siawaseokItem `json:"results"`
		Videos   *[]siawaseokItem `json:"videos"`
		Items    *[]siawaseokItem `json:"items"`
		Trending *[]siawaseokItem `json:"trending"`
	}
	if err := DecodeObject(body, &payload); err != nil {
		return nil, err
	}

	list, ok := lo.Find([]*[]siawaseokItem{payload.Results, payload.Videos, payload.Items, payload.Trending}, func(l *[]siawaseokItem) bool {
		return l != nil
	})
	if !ok {
		return nil, source.Malformedf("no result list")
	}

	return lo.FilterMap(*list, func(it siawaseokItem, _ int) (*source.VideoSummary, bool) {
		return it.canonical()
	}), nil
}

type siawaseokComment struct {
	Author        normalize.Text `json:"author"`
	AuthorID      normalize.Text `json:"authorId"`
	Thumbnail     string         `json:"authorThumbnail"`
	Content       normalize.Text `json:"content"`
	Text          normalize.Text `json:"text"`
	PublishedText normalize.Text `json:"publishedText"`
	Published     normalize.Text `json:"published"`
	LikeCount     normalize.Int  `json:"likeCount"`
}

func siawaseokCommentsRequest(a Args) (Request, error) {
	if a.ID == "" {
		return Request{}, errors.New("missing video id")
	}
	return Get("/api/comments/"+url.PathEscape(a.ID), nil), nil
}

func parseSiawaseokComments(body []byte, _ Args) ([]*source.Comment, error) {
	var payload struct {
		Comments *[]siawaseokComment `json:"comments"`
	}
	if err := DecodeObject(body, &payload); err != nil {
		return nil, err
	}
	if payload.Comments == nil {
		return nil, source.Malformedf("missing comments")
	}

	return lo.Map(*payload.Comments, func(c siawaseokComment, _ int) *source.Comment {
		return &source.Comment{
			Author:           normalize.Author(string(c.Author)),
			AuthorID:         string(c.AuthorID),
			AuthorThumbnails: normalize.AuthorThumbnails([]source.Thumbnail{{URL: c.Thumbnail, Width: 88, Height: 88}}),
			Content:          string(normalize.First(c.Content, c.Text)),
			Published:        string(normalize.First(c.PublishedText, c.Published)),
			Likes:            int64(c.LikeCount),
		}
	}), nil
}

func siawaseokDiscoverRequest(a Args) (Request, error) {
	if a.ID == "" {
		return Request{}, errors.New("missing sample id")
	}
	return Get("/api/stream/"+url.PathEscape(a.ID), nil), nil
}

var embedHosts = []string{"youtubeeducation.com", "youtube-nocookie.com", "youtube.com"}

// parseEmbedBase walks the payload for the first player URL and returns it cut at "/embed".
// Well-known keys are preferred over a full walk.
func parseEmbedBase(body []byte, _ Args) (string, error) {
	var root map[string]any
	if err := DecodeObject(body, &root); err != nil {
		return "", err
	}

	for _, k := range []string{"youtube_education_url", "embed_url", "youtube_url", "education_url"} {
		if s, ok := root[k].(string); ok {
			if base, ok := embedBase(s); ok {
				return base, nil
			}
		}
	}

	// Keys are visited in reverse order so pops come out sorted, keeping the walk deterministic.
	stack := util.Stack[any]{root}
	for {
		node, ok := stack.Pop()
		if !ok {
			break
		}

		switch node := node.(type) {
		case string:
			if base, ok := embedBase(node); ok {
				return base, nil
			}
		case map[string]any:
			keys := lo.Keys(node)
			sort.Sort(sort.Reverse(sort.StringSlice(keys)))
			for _, k := range keys {
				stack.Push(node[k])
			}
		case []any:
			for i := len(node) - 1; i >= 0; i-- {
				stack.Push(node[i])
			}
		}
	}

	return "", source.Malformedf("no embed url in payload")
}

func embedBase(s string) (string, bool) {
	i := strings.Index(s, "/embed/")
	if i < 0 {
		return "", false
	}

	base := s[:i] + "/embed"
	u, err := url.Parse(base)
	if err != nil || u.Scheme != "https" {
		return "", false
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	return base, lo.Contains(embedHosts, host)
}
