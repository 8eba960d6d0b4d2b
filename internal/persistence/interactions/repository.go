// Package interactions queries the ingested social-media rows. It is strictly
// read-only: the ingestion pipeline owns these tables.
package interactions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"xtrack/internal/core"
)

type Repository struct {
	DB core.DB
}

// edgeJoins maps an interaction kind to the relationship table and the two
// tweet-side columns its edges connect. The mention kind is special-cased in
// Edges because its target is a user row, not a tweet.
var edgeJoins = map[core.InteractionKind]struct {
	table     string
	targetCol string
}{
	core.KindRetweet: {table: "retweet", targetCol: "retweeted"},
	core.KindReply:   {table: "reply", targetCol: "reply_to"},
	core.KindQuote:   {table: "quote", targetCol: "quoted"},
}

func (r *Repository) Edges(ctx context.Context, sel core.Selector, kind core.InteractionKind, window *core.TimeWindow) ([]core.InteractionEdge, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	var query strings.Builder
	var args []any

	if kind == core.KindMention {
		query.WriteString(`
			SELECT COALESCE(u_src.username, u_src.user_id) AS source,
			       COALESCE(u_dst.username, u_dst.user_id) AS target,
			       COUNT(*) AS weight
			FROM mention m
			INNER JOIN tweet t_src ON t_src.id = m.tweet_id
			INNER JOIN "user" u_src ON u_src.id = t_src.author_id
			INNER JOIN "user" u_dst ON u_dst.id = m.user_id
			WHERE t_src.campaign = ?`)
		args = append(args, sel.Campaign)
	} else {
		join := edgeJoins[kind]
		fmt.Fprintf(&query, `
			SELECT COALESCE(u_src.username, u_src.user_id) AS source,
			       COALESCE(u_dst.username, u_dst.user_id) AS target,
			       COUNT(*) AS weight
			FROM %s rel
			INNER JOIN tweet t_src ON t_src.id = rel.tweet_id
			INNER JOIN tweet t_dst ON t_dst.id = rel.%s
			INNER JOIN "user" u_src ON u_src.id = t_src.author_id
			INNER JOIN "user" u_dst ON u_dst.id = t_dst.author_id
			WHERE (t_src.campaign = ? OR t_dst.campaign = ?)`, join.table, join.targetCol)
		args = append(args, sel.Campaign, sel.Campaign)
	}

	args = appendTweetFilters(&query, args, sel, window, "t_src")
	query.WriteString(" GROUP BY source, target")

	var edges []core.InteractionEdge
	err := r.DB.Raw(query.String(), args...).WithContext(ctx).Scan(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query %s edges: %w", kind, err)
	}

	return edges, nil
}

func (r *Repository) CampaignWindow(ctx context.Context, sel core.Selector) (core.TimeWindow, error) {
	if err := sel.Validate(); err != nil {
		return core.TimeWindow{}, err
	}

	var query strings.Builder
	var args []any

	query.WriteString(`SELECT MIN(t.created_at) AS first, MAX(t.created_at) AS last FROM tweet t WHERE t.campaign = ?`)
	args = append(args, sel.Campaign)
	args = appendTweetFilters(&query, args, sel, nil, "t")

	var bounds struct {
		First *time.Time
		Last  *time.Time
	}
	err := r.DB.Raw(query.String(), args...).WithContext(ctx).Scan(&bounds).Error
	if err != nil {
		return core.TimeWindow{}, fmt.Errorf("failed to query campaign window: %w", err)
	}
	if bounds.First == nil || bounds.Last == nil {
		return core.TimeWindow{}, fmt.Errorf("%w: campaign %q has no posts", core.ErrNotFound, sel.Campaign)
	}

	// Half-open interval that still covers the last post.
	return core.TimeWindow{
		Start: bounds.First.UTC(),
		End:   bounds.Last.UTC().Add(24 * time.Hour),
	}, nil
}

func (r *Repository) TopPosters(ctx context.Context, sel core.Selector, k int) ([]core.UserCount, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT COALESCE(u.username, u.user_id) AS "user", COUNT(*) AS count
		FROM tweet t
		INNER JOIN "user" u ON u.id = t.author_id
		WHERE t.campaign = ?`)
	args = append(args, sel.Campaign)
	args = appendTweetFilters(&query, args, sel, sel.Window, "t")
	query.WriteString(` GROUP BY "user" ORDER BY count DESC, "user" ASC LIMIT ?`)
	args = append(args, k)

	return r.userCounts(ctx, query.String(), args)
}

func (r *Repository) TopRepliers(ctx context.Context, sel core.Selector, k int) ([]core.UserCount, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT COALESCE(u.username, u.user_id) AS "user", COUNT(*) AS count
		FROM reply rel
		INNER JOIN tweet t ON t.id = rel.tweet_id
		INNER JOIN "user" u ON u.id = t.author_id
		WHERE t.campaign = ?`)
	args = append(args, sel.Campaign)
	args = appendTweetFilters(&query, args, sel, sel.Window, "t")
	query.WriteString(` GROUP BY "user" ORDER BY count DESC, "user" ASC LIMIT ?`)
	args = append(args, k)

	return r.userCounts(ctx, query.String(), args)
}

func (r *Repository) TopImpact(ctx context.Context, sel core.Selector, mode core.ImpactMode, k int) ([]core.UserCount, error) {
	var expr string
	switch mode {
	case core.ImpactAmplification:
		expr = "t.num_retweets + t.num_likes"
	case core.ImpactConversation:
		expr = "t.num_replies + t.num_quotes"
	default:
		return nil, fmt.Errorf("unknown impact mode: %s", mode)
	}

	var query strings.Builder
	var args []any

	fmt.Fprintf(&query, `
		SELECT COALESCE(u.username, u.user_id) AS "user", SUM(%s) AS count
		FROM tweet t
		INNER JOIN "user" u ON u.id = t.author_id
		WHERE t.campaign = ?`, expr)
	args = append(args, sel.Campaign)
	args = appendTweetFilters(&query, args, sel, sel.Window, "t")
	query.WriteString(` GROUP BY "user" ORDER BY count DESC, "user" ASC LIMIT ?`)
	args = append(args, k)

	return r.userCounts(ctx, query.String(), args)
}

func (r *Repository) ActivityScores(ctx context.Context, sel core.Selector, users []string) (map[string]float64, error) {
	if len(users) == 0 {
		return map[string]float64{}, nil
	}

	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT COALESCE(u.username, u.user_id) AS "user", COUNT(*) AS count
		FROM tweet t
		INNER JOIN "user" u ON u.id = t.author_id
		WHERE t.campaign = ? AND COALESCE(u.username, u.user_id) IN ?`)
	args = append(args, sel.Campaign, users)
	args = appendTweetFilters(&query, args, sel, sel.Window, "t")
	query.WriteString(` GROUP BY "user"`)

	counts, err := r.userCounts(ctx, query.String(), args)
	if err != nil {
		return nil, err
	}

	max := lo.MaxBy(counts, func(a, b core.UserCount) bool { return a.Count > b.Count }).Count
	scores := make(map[string]float64, len(users))
	for _, user := range users {
		scores[user] = 0
	}
	if max == 0 {
		return scores, nil
	}
	for _, row := range counts {
		scores[row.User] = float64(row.Count) / float64(max)
	}

	return scores, nil
}

func (r *Repository) userCounts(ctx context.Context, query string, args []any) ([]core.UserCount, error) {
	var rows []core.UserCount
	err := r.DB.Raw(query, args...).WithContext(ctx).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query user counts: %w", err)
	}
	return rows, nil
}

// appendTweetFilters adds the shared selector filters (hashtags, language,
// time window) scoped to the given tweet alias.
func appendTweetFilters(query *strings.Builder, args []any, sel core.Selector, window *core.TimeWindow, alias string) []any {
	if tags := sel.NormalizedHashtagList(); len(tags) > 0 {
		fmt.Fprintf(query, `
			AND EXISTS (
				SELECT 1 FROM hashtagt_tweet ht
				INNER JOIN hashtag h ON h.id = ht.hashtag_id
				WHERE ht.tweet_id = %s.id AND LOWER(h.hashtag) IN ?
			)`, alias)
		args = append(args, tags)
	}
	if sel.Language != "" {
		fmt.Fprintf(query, " AND %s.lang = ?", alias)
		args = append(args, sel.Language)
	}
	if window != nil {
		fmt.Fprintf(query, " AND %s.created_at >= ? AND %s.created_at < ?", alias, alias)
		args = append(args, window.Start, window.End)
	}
	return args
}
