// Package normalize turns the loosely typed values third-party endpoints return into canonical ones.
//
// Every parser here is total: input it cannot make sense of becomes the zero value instead of an error,
// so one odd field never discards an otherwise good payload.
package normalize

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/vidpool/vidpool/util"
)

var isoDuration = regexp.MustCompile(`^P(?:(?P<days>\d+)D)?(?:T(?:(?P<hours>\d+)H)?(?:(?P<minutes>\d+)M)?(?:(?P<seconds>\d+)S)?)?$`)

// ParseDuration accepts integer seconds, "mm:ss", "hh:mm:ss" and ISO-8601 "PT#H#M#S".
func ParseDuration(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}

	if strings.HasPrefix(s, "P") {
		if s == "P" || s == "PT" || !isoDuration.MatchString(s) {
			return 0
		}
		groups := util.ReGroups(isoDuration, s)
		atoi := func(k string) int {
			n, _ := strconv.Atoi(groups[k])
			return n
		}
		return atoi("days")*86400 + atoi("hours")*3600 + atoi("minutes")*60 + atoi("seconds")
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// ParseCount strips every non-digit, so "1,234,567 回視聴" → 1234567.
func ParseCount(s string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Int decodes from a JSON number, a numeric string or a localized count string.
type Int int64

func (i *Int) UnmarshalJSON(data []byte) error {
	*i = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*i = Int(f)
			return nil
		}
		*i = Int(ParseCount(s))
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*i = Int(f)
	}
	return nil
}

// Seconds decodes any duration representation ParseDuration understands.
type Seconds int

func (s *Seconds) UnmarshalJSON(data []byte) error {
	*s = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err == nil {
			*s = Seconds(ParseDuration(str))
		}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil && f > 0 {
		*s = Seconds(f)
	}
	return nil
}

// Text decodes strings and stringifies numbers, which some endpoints send for ids and dates.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*t = Text(strings.TrimFunc(s, unicode.IsSpace))
		}
		return nil
	}

	if data[0] == '{' || data[0] == '[' {
		return nil
	}

	*t = Text(data)
	return nil
}

// First returns the first non-empty value.
func First[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
