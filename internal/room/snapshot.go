package room

import (
	"sort"

	"bluff-card/internal/game"
	"bluff-card/internal/shared"
)

// ReasonAbandoned annotates a forced game end after a mid-game mass
// disconnect.
const ReasonAbandoned = "player_abandoned"

// PlayerView is a seat as seen by one viewer: everyone gets the card count,
// only the owner gets the cards.
type PlayerView struct {
	UserID    string      `json:"userId"`
	Nickname  string      `json:"nickname"`
	CardCount int         `json:"cardCount"`
	Cards     []game.Card `json:"cards,omitempty"`
	Ready     bool        `json:"ready"`
	IsHost    bool        `json:"isHost"`
	Online    bool        `json:"online"`
}

// RoomView is the outbound room snapshot.
type RoomView struct {
	RoomID             string       `json:"roomId"`
	Status             string       `json:"status"`
	CurrentPlayerIndex int          `json:"currentPlayerIndex"`
	DeskCount          int          `json:"deskCount"`
	LastClaimedRank    string       `json:"lastClaimedRank,omitempty"`
	LastPlayerID       string       `json:"lastPlayerId,omitempty"`
	Players            []PlayerView `json:"players"`
}

// RankRow is one entry of a final ranking.
type RankRow struct {
	UserID    string `json:"userId"`
	Nickname  string `json:"nickname"`
	CardCount int    `json:"cardCount"`
	IsWin     bool   `json:"isWin,omitempty"`
}

// GameOverResult is the GAME_OVER payload.
type GameOverResult struct {
	Ranking []RankRow `json:"ranking"`
	Reason  string    `json:"reason,omitempty"`
}

// ChallengeResult is the CHALLENGE_RESULT payload; Room is the viewer's own
// snapshot.
type ChallengeResult struct {
	IsLying      bool     `json:"isLying"`
	LoserID      string   `json:"loserId"`
	ChallengerID string   `json:"challengerId"`
	LastPlayerID string   `json:"lastPlayerId"`
	Room         RoomView `json:"room"`
}

// SnapshotFor renders the room as seen by viewerID. Caller holds r.Mu.
func SnapshotFor(r *shared.Room, viewerID string) RoomView {
	view := RoomView{
		RoomID:             r.RoomID,
		Status:             r.Status,
		CurrentPlayerIndex: r.CurrentPlayerIndex,
		DeskCount:          len(r.DeskPile),
		LastClaimedRank:    r.LastClaimedRank,
		LastPlayerID:       r.LastPlayerID,
		Players:            make([]PlayerView, 0, len(r.Players)),
	}
	for _, p := range r.Players {
		pv := PlayerView{
			UserID:    p.UserID,
			Nickname:  p.Nickname,
			CardCount: p.CardCount(),
			Ready:     p.Ready,
			IsHost:    p.IsHost,
			Online:    p.Online,
		}
		if p.UserID == viewerID {
			pv.Cards = append([]game.Card(nil), p.Hand...)
		}
		view.Players = append(view.Players, pv)
	}
	return view
}

// snapshotViews builds the per-viewer snapshot for every seat. Caller holds
// r.Mu; the returned map is safe to use after release.
func snapshotViews(r *shared.Room) map[string]any {
	views := make(map[string]any, len(r.Players))
	for _, p := range r.Players {
		views[p.UserID] = SnapshotFor(r, p.UserID)
	}
	return views
}

// ranking orders seats by ascending hand size. With a winner given (forced
// end), the winner ranks first regardless of hand size and is flagged.
func ranking(players []*shared.Player, winner *shared.Player) []RankRow {
	rest := make([]*shared.Player, 0, len(players))
	for _, p := range players {
		if winner == nil || p.UserID != winner.UserID {
			rest = append(rest, p)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].CardCount() < rest[j].CardCount()
	})

	out := make([]RankRow, 0, len(players))
	if winner != nil {
		out = append(out, RankRow{
			UserID:    winner.UserID,
			Nickname:  winner.Nickname,
			CardCount: winner.CardCount(),
			IsWin:     true,
		})
	}
	for _, p := range rest {
		out = append(out, RankRow{
			UserID:    p.UserID,
			Nickname:  p.Nickname,
			CardCount: p.CardCount(),
		})
	}
	return out
}
