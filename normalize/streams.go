package normalize

import (
	"strings"

	"github.com/samber/lo"
	"github.com/vidpool/vidpool/source"
)

// Format is one stream entry as a dialect decoded it.
type Format struct {
	URL       string
	Quality   string
	Container string
	Bitrate   int
	// Audio marks an audio-only adaptive stream.
	Audio bool
	// Companion is the audio the source paired with this video stream, if any.
	Companion string
}

// IsAudioFormat applies the usual detection: an audioQuality field or a mime type mentioning audio.
func IsAudioFormat(audioQuality, mime string) bool {
	return audioQuality != "" || strings.Contains(strings.ToLower(mime), "audio")
}

// BestAudio picks the highest bitrate. Earlier entries win ties.
func BestAudio(candidates []source.AudioStream) *source.AudioStream {
	candidates = lo.Filter(candidates, func(a source.AudioStream, _ int) bool {
		return a.URL != ""
	})
	if len(candidates) == 0 {
		return nil
	}

	best := lo.MaxBy(candidates, func(a, b source.AudioStream) bool {
		return a.Bitrate > b.Bitrate
	})
	return &best
}

// Classify builds the quality map. Combined formats yield descriptors with audio.
// Adaptive video formats keep the audio they were paired with, or get the best adaptive audio.
func Classify(combined, adaptive []Format) (map[string]*source.StreamDescriptor, *source.AudioStream) {
	streams := make(map[string]*source.StreamDescriptor)

	audio := BestAudio(lo.FilterMap(adaptive, func(f Format, _ int) (source.AudioStream, bool) {
		return source.AudioStream{URL: f.URL, Bitrate: f.Bitrate, Container: f.Container}, f.Audio
	}))

	descriptor := func(label string) *source.StreamDescriptor {
		if d, ok := streams[label]; ok {
			return d
		}
		d := &source.StreamDescriptor{Quality: label}
		streams[label] = d
		return d
	}

	for _, f := range adaptive {
		if f.Audio || f.URL == "" {
			continue
		}
		label := QualityLabel(f.Quality)
		if label == "" {
			continue
		}

		d := descriptor(label)
		if d.VideoURL != "" {
			continue
		}
		d.VideoURL = f.URL
		d.Container = First(d.Container, f.Container)
		switch {
		case f.Companion != "":
			d.AudioURL = f.Companion
		case audio != nil:
			d.AudioURL = audio.URL
		}
	}

	for _, f := range combined {
		if f.URL == "" {
			continue
		}
		label := QualityLabel(f.Quality)
		if label == "" {
			continue
		}

		d := descriptor(label)
		if d.CombinedURL != "" {
			continue
		}
		d.CombinedURL = f.URL
		d.HasAudio = true
		d.Container = First(f.Container, d.Container)
	}

	return streams, audio
}

// FilterQualities keeps the requested labels. An empty request keeps everything.
func FilterQualities(streams map[string]*source.StreamDescriptor, wanted []string) map[string]*source.StreamDescriptor {
	if len(wanted) == 0 {
		return streams
	}

	keep := lo.SliceToMap(wanted, func(q string) (string, struct{}) {
		return QualityLabel(q), struct{}{}
	})
	return lo.PickBy(streams, func(label string, _ *source.StreamDescriptor) bool {
		_, ok := keep[label]
		return ok
	})
}
