package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vidpool/vidpool/util"
)

var (
	labelPattern = regexp.MustCompile(`^(?P<height>\d{3,4})p`)
	sizePattern  = regexp.MustCompile(`^(?P<width>\d+)x(?P<height>\d+)$`)
)

// legacy itag quality names used by combined formats.
var namedQualities = map[string]int{
	"tiny":   144,
	"small":  240,
	"medium": 360,
	"large":  480,
	"hd720":  720,
	"hd1080": 1080,
	"hd1440": 1440,
	"hd2160": 2160,
}

// QualityLabel derives a canonical "<height>p" label from whichever hint is present.
// Frame rate suffixes are dropped ("720p60" → "720p"). Returns "" when nothing matches.
func QualityLabel(hints ...string) string {
	for _, hint := range hints {
		hint = strings.ToLower(strings.TrimSpace(hint))
		if hint == "" {
			continue
		}

		if groups := util.ReGroups(labelPattern, hint); groups["height"] != "" {
			return groups["height"] + "p"
		}

		if groups := util.ReGroups(sizePattern, hint); groups["height"] != "" {
			return groups["height"] + "p"
		}

		if h, ok := namedQualities[hint]; ok {
			return strconv.Itoa(h) + "p"
		}

		if h, err := strconv.Atoi(hint); err == nil && h > 0 {
			return strconv.Itoa(h) + "p"
		}
	}

	return ""
}

// ContainerOf reads the container from a mime type such as `video/mp4; codecs="avc1"`.
func ContainerOf(mime string) string {
	mime = strings.TrimSpace(mime)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if i := strings.IndexByte(mime, '/'); i >= 0 {
		return mime[i+1:]
	}
	return mime
}
