package custom

import (
	"fmt"
	"strings"

	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/normalize"
	"github.com/vidpool/vidpool/source"
	lua "github.com/yuin/gopher-lua"
)

func getString(table *lua.LTable, key string) string {
	switch v := table.RawGetString(key).(type) {
	case lua.LString:
		return strings.TrimSpace(string(v))
	case lua.LNumber:
		return v.String()
	default:
		return ""
	}
}

// getInt accepts numbers and count strings such as "1,234 views".
func getInt(table *lua.LTable, key string) int64 {
	switch v := table.RawGetString(key).(type) {
	case lua.LNumber:
		return int64(v)
	case lua.LString:
		return normalize.ParseCount(string(v))
	default:
		return 0
	}
}

// getSeconds accepts numbers and any duration string the normalizer understands.
func getSeconds(table *lua.LTable, key string) int {
	switch v := table.RawGetString(key).(type) {
	case lua.LNumber:
		return int(v)
	case lua.LString:
		return normalize.ParseDuration(string(v))
	default:
		return 0
	}
}

func getStringMap(table *lua.LTable, key string) map[string]string {
	sub, ok := table.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}

	m := make(map[string]string)
	sub.ForEach(func(k, v lua.LValue) {
		if v.Type() == lua.LTString || v.Type() == lua.LTNumber {
			m[k.String()] = v.String()
		}
	})
	return m
}

// rows returns the table entries of an array-like table, in index order.
func rows(table *lua.LTable) []*lua.LTable {
	var out []*lua.LTable
	for i := 1; i <= table.Len(); i++ {
		if row, ok := table.RawGetInt(i).(*lua.LTable); ok {
			out = append(out, row)
		}
	}
	return out
}

func thumbnail(table *lua.LTable, key string) []source.Thumbnail {
	return []source.Thumbnail{{URL: getString(table, key)}}
}

func formatFromTable(table *lua.LTable) normalize.Format {
	kind := strings.ToLower(getString(table, "type"))
	return normalize.Format{
		URL:       getString(table, "url"),
		Quality:   getString(table, "quality"),
		Container: getString(table, "container"),
		Bitrate:   int(getInt(table, "bitrate")),
		Audio:     kind == "audio",
	}
}

func videoFromTable(table *lua.LTable, id string) (*source.VideoResult, error) {
	var combined, adaptive []normalize.Format
	if streams, ok := table.RawGetString("streams").(*lua.LTable); ok {
		for _, row := range rows(streams) {
			f := formatFromTable(row)
			if strings.EqualFold(getString(row, "type"), "combined") {
				combined = append(combined, f)
			} else {
				adaptive = append(adaptive, f)
			}
		}
	}

	qualities, audio := normalize.Classify(combined, adaptive)
	video := &source.VideoResult{
		ID:               normalize.First(getString(table, "id"), id),
		Title:            getString(table, "title"),
		Author:           normalize.Author(getString(table, "author")),
		AuthorID:         getString(table, "author_id"),
		AuthorThumbnails: normalize.AuthorThumbnails(thumbnail(table, "author_thumbnail")),
		Description:      getString(table, "description"),
		Duration:         getSeconds(table, "duration"),
		Views:            getInt(table, "views"),
		Published:        getString(table, "published"),
		Thumbnails:       normalize.Thumbnails(id, thumbnail(table, "thumbnail")),
		QualityStreams:   qualities,
		BestAudio:        audio,
		HLS:              getString(table, "hls"),
	}

	if video.Title == "" && !video.HasStreams() && video.HLS == "" {
		return nil, fmt.Errorf("video must have a title or streams")
	}
	return video, nil
}

func summaryFromTable(table *lua.LTable) (*source.VideoSummary, error) {
	id := getString(table, "id")
	if id == "" {
		return nil, fmt.Errorf("video summary must have id")
	}

	return &source.VideoSummary{
		ID:         id,
		Title:      getString(table, "title"),
		Author:     normalize.Author(getString(table, "author")),
		AuthorID:   getString(table, "author_id"),
		Duration:   getSeconds(table, "duration"),
		Views:      getInt(table, "views"),
		Published:  getString(table, "published"),
		Thumbnails: normalize.Thumbnails(id, thumbnail(table, "thumbnail")),
	}, nil
}

func commentFromTable(table *lua.LTable) *source.Comment {
	return &source.Comment{
		Author:           normalize.Author(getString(table, "author")),
		AuthorID:         getString(table, "author_id"),
		AuthorThumbnails: normalize.AuthorThumbnails(thumbnail(table, "author_thumbnail")),
		Content:          getString(table, "content"),
		Published:        getString(table, "published"),
		Likes:            getInt(table, "likes"),
	}
}

// Video parses body into a video. The returned table may set id, title, author, author_id,
// author_thumbnail, description, duration, views, published, thumbnail, hls and
// streams = { { url, quality, type = "combined" | "video" | "audio", bitrate, container } }.
func (s *Script) Video(op string, body []byte, id string) (video *source.VideoResult, err error) {
	err = s.parse(op, body, lua.LTTable, func(v lua.LValue) error {
		video, err = videoFromTable(v.(*lua.LTable), id)
		return err
	})
	return
}

// Summaries parses body into a list of search or trending entries.
// Entries without an id are skipped; a list made only of invalid entries is an error.
func (s *Script) Summaries(op string, body []byte) (list []*source.VideoSummary, err error) {
	err = s.parse(op, body, lua.LTTable, func(v lua.LValue) error {
		var errs []error
		for _, row := range rows(v.(*lua.LTable)) {
			summary, err := summaryFromTable(row)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			list = append(list, summary)
		}

		if len(list) == 0 && len(errs) > 0 {
			return errs[0]
		}
		return nil
	})
	return
}

// Comments parses body into top-level comments.
func (s *Script) Comments(op string, body []byte) (list []*source.Comment, err error) {
	err = s.parse(op, body, lua.LTTable, func(v lua.LValue) error {
		for _, row := range rows(v.(*lua.LTable)) {
			list = append(list, commentFromTable(row))
		}
		return nil
	})
	return
}

// Text parses body into a single string, such as a token or a base path.
func (s *Script) Text(op string, body []byte) (text string, err error) {
	err = s.parse(op, body, lua.LTString, func(v lua.LValue) error {
		text = strings.TrimSpace(v.String())
		if text == "" {
			return fmt.Errorf("%s returned an empty string", constant.ParseFn)
		}
		return nil
	})
	return
}
