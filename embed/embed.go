// Package embed synthesizes player URLs for a video instead of fetching a ready-made stream.
package embed

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/log"
)

// Kind selects the player an embed URL targets.
type Kind string

const (
	Education Kind = "education"
	Nocookie  Kind = "nocookie"
	Youtube   Kind = "youtube"
)

// Kinds lists every kind, default first.
func Kinds() []Kind {
	return []Kind{Education, Nocookie, Youtube}
}

// ParseKind validates a kind name. The empty string is Education.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return Education, nil
	case Education, Nocookie, Youtube:
		return k, nil
	default:
		return "", fmt.Errorf("unknown embed kind %q", s)
	}
}

// Fetcher supplies the auxiliary values an education URL needs.
// Both may fail; the synthesizer then degrades instead of failing.
type Fetcher interface {
	Token(ctx context.Context) (string, error)
	BasePath(ctx context.Context) (string, error)
}

// Synthesizer builds embed URLs. It never fails.
type Synthesizer struct {
	fetch       Fetcher
	defaultBase string
}

// New returns a Synthesizer. A nil fetcher means no token and the default base path, always.
func New(fetch Fetcher, defaultBase string) *Synthesizer {
	if defaultBase == "" {
		defaultBase = constant.EducationEmbedBase
	}
	return &Synthesizer{fetch: fetch, defaultBase: strings.TrimRight(defaultBase, "/")}
}

// URL returns the embed URL of id for kind.
func (s *Synthesizer) URL(ctx context.Context, id string, kind Kind) string {
	switch kind {
	case Nocookie:
		return Build(Nocookie, constant.NocookieEmbedBase, id, "")
	case Youtube:
		return Build(Youtube, constant.YoutubeEmbedBase, id, "")
	}

	base, token := s.defaultBase, ""
	if s.fetch != nil {
		if b, err := s.fetch.BasePath(ctx); err == nil && b != "" {
			base = strings.TrimRight(b, "/")
		} else if err != nil {
			log.Debugf("embed base path: %s, using %s", err, base)
		}

		if t, err := s.fetch.Token(ctx); err == nil {
			token = t
		} else {
			log.Debugf("embed token: %s, omitting embed_config", err)
		}
	}

	return Build(Education, base, id, token)
}

// Build applies the template of kind. The token is only used by Education and only when non-empty.
func Build(kind Kind, base, id, token string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	b.WriteByte('/')
	b.WriteString(url.PathEscape(id))

	if kind != Education {
		b.WriteString("?autoplay=1&controls=1&rel=0&showinfo=0&modestbranding=1")
		return b.String()
	}

	b.WriteString("?autoplay=1&mute=0&controls=1&start=0")
	b.WriteString("&origin=" + url.QueryEscape(constant.EducationOrigin))
	b.WriteString("&playsinline=1&showinfo=0&rel=0&iv_load_policy=3&modestbranding=1&fs=1")
	if token != "" {
		config := fmt.Sprintf(`{"enc":"%s","hideTitle":true}`, token)
		b.WriteString("&embed_config=" + url.QueryEscape(config))
	}
	b.WriteString("&enablejsapi=1&widgetid=1")

	return b.String()
}
