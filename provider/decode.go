package provider

import (
	"bytes"
	"encoding/json"

	"github.com/vidpool/vidpool/normalize"
	"github.com/vidpool/vidpool/source"
)

func topLevel(body []byte) byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// DecodeObject requires a JSON object at the top level.
func DecodeObject(body []byte, v any) error {
	if topLevel(body) != '{' {
		return source.Malformedf("expected a JSON object")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return source.Malformedf("decode object: %w", err)
	}
	return nil
}

// DecodeArray requires a JSON array at the top level.
func DecodeArray(body []byte, v any) error {
	if topLevel(body) != '[' {
		return source.Malformedf("expected a JSON array")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return source.Malformedf("decode array: %w", err)
	}
	return nil
}

// Link is a stream reference that some endpoints send as a bare URL and others as an object.
type Link struct {
	URL       string
	Container string
	MimeType  string
	Bitrate   int
}

func (l *Link) UnmarshalJSON(data []byte) error {
	*l = Link{}
	switch topLevel(data) {
	case '"':
		return json.Unmarshal(data, &l.URL)
	case '{':
		var obj struct {
			URL       string        `json:"url"`
			Container string        `json:"container"`
			MimeType  string        `json:"mimeType"`
			Bitrate   normalize.Int `json:"bitrate"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		l.URL = obj.URL
		l.MimeType = obj.MimeType
		l.Container = normalize.First(obj.Container, normalize.ContainerOf(obj.MimeType))
		l.Bitrate = int(obj.Bitrate)
	}
	return nil
}
