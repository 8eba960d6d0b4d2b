// Package influence aggregates independently-ranked influence criteria into
// one consensus ranking. A user showing up in many top-k lists is more
// robustly influential than one topping a single metric, which guards against
// single-metric artifacts like one viral post.
package influence

import "sort"

// Criterion is one named top-N ranking, best first. Rankings may differ in
// length and in the users they contain.
type Criterion struct {
	Name  string
	Users []string
}

// Placement is one position of the consensus ranking. Appearances counts the
// criteria whose top-k contained the user.
type Placement struct {
	User        string
	Position    int
	Appearances int
}

// Consensus merges the criteria into the top-k consensus ranking. Each user
// appearing within a criterion's top-k scores one appearance per such
// criterion; users are ordered by appearances descending, then by the sum of
// their raw rank positions ascending, then lexicographically.
func Consensus(criteria []Criterion, k int) []Placement {
	if k <= 0 {
		return nil
	}

	type tally struct {
		appearances int
		rankSum     int
	}
	tallies := map[string]*tally{}

	for _, criterion := range criteria {
		users := criterion.Users
		if len(users) > k {
			users = users[:k]
		}
		for position, user := range users {
			t := tallies[user]
			if t == nil {
				t = &tally{}
				tallies[user] = t
			}
			t.appearances++
			t.rankSum += position + 1
		}
	}

	users := make([]string, 0, len(tallies))
	for user := range tallies {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		a, b := tallies[users[i]], tallies[users[j]]
		if a.appearances != b.appearances {
			return a.appearances > b.appearances
		}
		if a.rankSum != b.rankSum {
			return a.rankSum < b.rankSum
		}
		return users[i] < users[j]
	})

	if len(users) > k {
		users = users[:k]
	}

	placements := make([]Placement, len(users))
	for i, user := range users {
		placements[i] = Placement{
			User:        user,
			Position:    i + 1,
			Appearances: tallies[user].appearances,
		}
	}
	return placements
}

// TopUsers orders a score map descending and returns up to k users. Score
// ties break lexicographically so rankings are deterministic.
func TopUsers(scores map[string]float64, k int) []string {
	users := make([]string, 0, len(scores))
	for user := range scores {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		if scores[users[i]] != scores[users[j]] {
			return scores[users[i]] > scores[users[j]]
		}
		return users[i] < users[j]
	})
	if len(users) > k {
		users = users[:k]
	}
	return users
}
