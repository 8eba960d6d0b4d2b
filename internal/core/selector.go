package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

type InteractionKind string

const (
	KindRetweet InteractionKind = "retweet"
	KindReply   InteractionKind = "reply"
	KindQuote   InteractionKind = "quote"
	KindMention InteractionKind = "mention"
)

func (k InteractionKind) Validate() error {
	switch k {
	case KindRetweet, KindReply, KindQuote, KindMention:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownKind, k)
}

// NetworkType is one of the two graph kinds the engine analyzes.
type NetworkType string

const (
	NetworkRetweet NetworkType = "retweet"
	NetworkReply   NetworkType = "reply"
)

func (t NetworkType) Validate() error {
	switch t {
	case NetworkRetweet, NetworkReply:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownNetworkType, t)
}

// Kind returns the interaction kind whose edges make up this network.
func (t NetworkType) Kind() InteractionKind {
	if t == NetworkReply {
		return KindReply
	}
	return KindRetweet
}

// TimeWindow is a half-open interval [Start, End).
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func (w TimeWindow) Validate() error {
	if !w.Start.Before(w.End) {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidTimeWindow, w.Start, w.End)
	}
	return nil
}

// Selector identifies the universe of interaction rows one analysis covers.
type Selector struct {
	Campaign string
	Hashtags []string
	Language string
	Window   *TimeWindow
}

func (s Selector) Validate() error {
	if strings.TrimSpace(s.Campaign) == "" {
		return fmt.Errorf("%w: empty campaign", ErrInvalidSelector)
	}
	if s.Window != nil {
		return s.Window.Validate()
	}
	return nil
}

// NormalizedHashtagList returns the hashtag filter in canonical form:
// lowercased, leading '#' stripped, deduplicated and sorted.
func (s Selector) NormalizedHashtagList() []string {
	tags := lo.FilterMap(s.Hashtags, func(tag string, _ int) (string, bool) {
		tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
		return tag, tag != ""
	})
	tags = lo.Uniq(tags)
	sort.Strings(tags)
	return tags
}

// NormalizedHashtags joins the canonical hashtag set with commas. Two
// selectors with the same campaign and the same canonical set share a
// fingerprint.
func (s Selector) NormalizedHashtags() string {
	return strings.Join(s.NormalizedHashtagList(), ",")
}

// Fingerprint is the deduplication key for the analysis cache.
func (s Selector) Fingerprint() (campaign, hashtags string) {
	return strings.TrimSpace(s.Campaign), s.NormalizedHashtags()
}
