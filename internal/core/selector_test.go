package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"xtrack/internal/core"
)

func TestSelector_Fingerprint(t *testing.T) {
	t.Parallel()

	t.Run("normalizes hashtags", func(t *testing.T) {
		t.Parallel()

		sel := core.Selector{
			Campaign: "election",
			Hashtags: []string{"#Vote", "vote", "  #CLIMATE ", "vote"},
		}

		campaign, hashtags := sel.Fingerprint()
		require.Equal(t, "election", campaign)
		require.Equal(t, "climate,vote", hashtags)
	})

	t.Run("identical for equivalent selectors", func(t *testing.T) {
		t.Parallel()

		a := core.Selector{Campaign: "election", Hashtags: []string{"#Vote", "Climate"}}
		b := core.Selector{Campaign: "election", Hashtags: []string{"climate", "VOTE", "#vote"}}

		aCampaign, aHashtags := a.Fingerprint()
		bCampaign, bHashtags := b.Fingerprint()
		require.Equal(t, aCampaign, bCampaign)
		require.Equal(t, aHashtags, bHashtags)
	})

	t.Run("empty without hashtags", func(t *testing.T) {
		t.Parallel()

		_, hashtags := core.Selector{Campaign: "election"}.Fingerprint()
		require.Empty(t, hashtags)
	})

	t.Run("drops blank tags", func(t *testing.T) {
		t.Parallel()

		_, hashtags := core.Selector{Campaign: "election", Hashtags: []string{"#", "  ", "ok"}}.Fingerprint()
		require.Equal(t, "ok", hashtags)
	})
}

func TestSelector_Validate(t *testing.T) {
	t.Parallel()

	t.Run("empty campaign", func(t *testing.T) {
		t.Parallel()

		err := core.Selector{Campaign: "  "}.Validate()
		require.ErrorIs(t, err, core.ErrInvalidSelector)
	})

	t.Run("inverted window", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		err := core.Selector{
			Campaign: "election",
			Window:   &core.TimeWindow{Start: now, End: now.Add(-time.Hour)},
		}.Validate()
		require.ErrorIs(t, err, core.ErrInvalidTimeWindow)
	})

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		err := core.Selector{
			Campaign: "election",
			Window:   &core.TimeWindow{Start: now, End: now.Add(time.Hour)},
		}.Validate()
		require.NoError(t, err)
	})
}

func TestNetworkType_Kind(t *testing.T) {
	t.Parallel()

	require.Equal(t, core.KindRetweet, core.NetworkRetweet.Kind())
	require.Equal(t, core.KindReply, core.NetworkReply.Kind())
}

func TestInteractionKind_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, core.KindQuote.Validate())
	require.ErrorIs(t, core.InteractionKind("follow").Validate(), core.ErrUnknownKind)
}
