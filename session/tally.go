// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sort"

	"github.com/contestops/compareround/models"
)

// playerKey is the composite identity used for grouping and deduplication.
// Player numbers alone are not globally unique across grades.
type playerKey struct {
	number int
	uid    string
}

func keyOf(p models.PlayerRef) playerKey {
	k := playerKey{number: p.PlayerNumber}
	if p.PlayerUID != nil {
		k.uid = *p.PlayerUID
	}
	return k
}

// Tally counts votes per player across the whole judge map. Players nobody
// voted for are absent from the output, not zero-filled. Malformed entries
// (no player number and no uid) are skipped: one bad vote must not abort
// the whole tally.
//
// Output order is deterministic regardless of map iteration: votes
// descending, then player number, then uid.
func Tally(judges map[int]models.JudgeVote) []models.VoteTallyEntry {
	counts := make(map[playerKey]models.VoteTallyEntry)

	for _, judge := range judges {
		for _, player := range judge.SelectedPlayers {
			if player.PlayerNumber <= 0 && player.PlayerUID == nil {
				continue
			}
			k := keyOf(player)
			entry, ok := counts[k]
			if !ok {
				entry = models.VoteTallyEntry{Player: player}
			}
			entry.VotedCount++
			counts[k] = entry
		}
	}

	entries := make([]models.VoteTallyEntry, 0, len(counts))
	for _, entry := range counts {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.VotedCount != b.VotedCount {
			return a.VotedCount > b.VotedCount
		}
		if a.Player.PlayerNumber != b.Player.PlayerNumber {
			return a.Player.PlayerNumber < b.Player.PlayerNumber
		}
		return keyOf(a.Player).uid < keyOf(b.Player).uid
	})

	return entries
}

// PickTop returns the leading n tally entries with tie-expansion: every
// entry past position n whose count equals the count at the boundary rank
// is included too. A tied contender is never silently dropped to stay at
// exactly n; breaking the tie is left to the human operators (usually via
// a further round).
func PickTop(tally []models.VoteTallyEntry, n int) []models.VoteTallyEntry {
	if n <= 0 {
		return nil
	}

	sorted := append([]models.VoteTallyEntry(nil), tally...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].VotedCount > sorted[j].VotedCount
	})

	if len(sorted) <= n {
		return sorted
	}

	cutoff := sorted[n-1].VotedCount
	end := n
	for end < len(sorted) && sorted[end].VotedCount == cutoff {
		end++
	}
	return sorted[:end]
}

// AllVotesComplete is the validity gate a normal confirm is conditioned
// on: true iff every seat's vote status is completed. Force-confirm exists
// precisely to bypass it when a judge can never finish.
func AllVotesComplete(judges map[int]models.JudgeVote) bool {
	for _, judge := range judges {
		if judge.VoteStatus != models.VoteCompleted {
			return false
		}
	}
	return true
}

// dedupPlayers removes duplicate composite identities, keeping first
// occurrence order.
func dedupPlayers(players []models.PlayerRef) []models.PlayerRef {
	seen := make(map[playerKey]bool, len(players))
	out := make([]models.PlayerRef, 0, len(players))
	for _, p := range players {
		k := keyOf(p)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}

// countCompleted returns how many seats have finished voting.
func countCompleted(judges map[int]models.JudgeVote) int {
	n := 0
	for _, judge := range judges {
		if judge.VoteStatus == models.VoteCompleted {
			n++
		}
	}
	return n
}
