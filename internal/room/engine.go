package room

import (
	"log"
	"math/rand"
	"time"

	"bluff-card/internal/game"
	"bluff-card/internal/shared"
)

// HandleJoin marks the caller's seat online and rebroadcasts the room. A
// reconnect lands here too: the seat already exists, so it just comes back
// online.
func (m *Manager) HandleJoin(roomID, userID string) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return
	}

	r.Mu.Lock()
	if p := r.FindPlayer(userID); p != nil {
		p.Online = true
		p.LastSeen = time.Now()
	}
	views := snapshotViews(r)
	r.Mu.Unlock()

	m.sendViews(views, shared.TypeRoomUpdate)
}

// HandleReady toggles the caller's ready flag and starts the hand once all
// three seats are ready.
func (m *Manager) HandleReady(roomID, userID string) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return
	}

	r.Mu.Lock()
	p := r.FindPlayer(userID)
	if p == nil {
		r.Mu.Unlock()
		return
	}
	p.Ready = !p.Ready
	p.LastSeen = time.Now()

	allReady := len(r.Players) == shared.MaxPlayers
	for _, seat := range r.Players {
		if !seat.Ready {
			allReady = false
			break
		}
	}

	if !allReady {
		views := snapshotViews(r)
		r.Mu.Unlock()
		m.sendViews(views, shared.TypeRoomUpdate)
		return
	}

	m.startGameLocked(r)
	views := snapshotViews(r)
	r.Mu.Unlock()

	m.sendViews(views, shared.TypeGameStart)
	m.resetTurnTimer(roomID)
}

// startGameLocked deals a fresh hand: full shuffled deck round-robin, random
// starting seat, clean desk. Caller holds r.Mu.
func (m *Manager) startGameLocked(r *shared.Room) {
	r.Status = shared.StatusPlaying

	deck := game.ShuffleDeck(game.NewDeck())
	for _, p := range r.Players {
		p.Hand = p.Hand[:0]
	}
	for i, c := range deck {
		p := r.Players[i%shared.MaxPlayers]
		p.Hand = append(p.Hand, c)
	}

	for _, p := range r.Players {
		p.Online = true
	}
	r.CurrentPlayerIndex = rand.Intn(shared.MaxPlayers)
	r.DeskPile = r.DeskPile[:0]
	r.LastClaimedRank = ""
	r.LastPlayedCards = nil
	r.LastPlayerID = ""

	log.Printf("[game] room %s started, seat %d opens", r.RoomID, r.CurrentPlayerIndex)
}

// HandlePlay adjudicates a card play: cards go face-down onto the desk pile
// together with the claim, and the truth of the claim is left entirely to a
// later challenge.
func (m *Manager) HandlePlay(roomID, userID string, cards []game.Card, claimedRank string) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return
	}

	r.Mu.Lock()
	if r.Status != shared.StatusPlaying {
		r.Mu.Unlock()
		return
	}
	current := r.CurrentPlayer()
	if current == nil || current.UserID != userID {
		r.Mu.Unlock()
		return
	}
	if len(cards) == 0 || game.ParseRank(claimedRank) == 0 {
		r.Mu.Unlock()
		return
	}
	if !game.HandContains(current.Hand, cards) {
		r.Mu.Unlock()
		return
	}
	current.LastSeen = time.Now()

	played := append([]game.Card(nil), cards...)
	r.DeskPile = append(r.DeskPile, played...)
	r.LastPlayedCards = played
	r.LastClaimedRank = claimedRank
	r.LastPlayerID = userID
	current.Hand = game.RemoveCards(current.Hand, played)

	m.moveToNextPlayer(r)
	views := snapshotViews(r)
	r.Mu.Unlock()

	m.sendViews(views, shared.TypeGameUpdate)
	m.resetTurnTimer(roomID)
}

// HandlePass advances the turn past the caller. When the turn would come
// back around to the last claimant (or land on an offline seat), the round
// is settled without a challenge: nobody takes the pile.
func (m *Manager) HandlePass(roomID, userID string) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return
	}

	r.Mu.Lock()
	if r.Status != shared.StatusPlaying {
		r.Mu.Unlock()
		return
	}
	current := r.CurrentPlayer()
	if current == nil || current.UserID != userID {
		r.Mu.Unlock()
		return
	}
	current.LastSeen = time.Now()

	m.moveToNextPlayer(r)

	next := r.CurrentPlayer()
	if next != nil && r.LastPlayerID != "" && (next.UserID == r.LastPlayerID || !next.Online) {
		if winner := emptyHanded(r); winner != nil {
			over, views := m.finishGameLocked(r, nil, "")
			r.Mu.Unlock()
			m.sendAll(views, shared.TypeGameOver, over)
			m.sendViews(views, shared.TypeRoomUpdate)
			return
		}
		r.DeskPile = r.DeskPile[:0]
		r.LastClaimedRank = ""
		r.LastPlayedCards = nil
		r.LastPlayerID = ""
	}

	views := snapshotViews(r)
	r.Mu.Unlock()

	m.sendViews(views, shared.TypeGameUpdate)
	m.resetTurnTimer(roomID)
}

// HandleChallenge resolves a bluff accusation against the most recent claim.
// The loser takes the whole desk pile; the next turn goes to whoever was
// vindicated.
func (m *Manager) HandleChallenge(roomID, challengerID string) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return
	}

	r.Mu.Lock()
	if r.LastPlayerID == "" {
		r.Mu.Unlock()
		return
	}

	if p := r.FindPlayer(challengerID); p != nil {
		p.LastSeen = time.Now()
	}

	target := game.ParseRank(r.LastClaimedRank)
	isLying := game.IsLyingClaim(r.LastPlayedCards, target)

	lastPlayerID := r.LastPlayerID
	loserID := challengerID
	if isLying {
		loserID = lastPlayerID
	}
	loser := r.FindPlayer(loserID)
	if loser == nil {
		r.Mu.Unlock()
		return
	}

	loser.Hand = append(loser.Hand, r.DeskPile...)
	r.DeskPile = r.DeskPile[:0]
	r.LastClaimedRank = ""
	r.LastPlayedCards = nil
	r.LastPlayerID = ""

	if winner := emptyHanded(r); winner != nil {
		over, views := m.finishGameLocked(r, nil, "")
		r.Mu.Unlock()
		m.sendAll(views, shared.TypeGameOver, over)
		m.sendViews(views, shared.TypeRoomUpdate)
		return
	}

	// Successful challenge hands the turn to the challenger, a failed one
	// back to the vindicated bluffer.
	nextID := lastPlayerID
	if isLying {
		nextID = challengerID
	}
	for i, p := range r.Players {
		if p.UserID == nextID {
			r.CurrentPlayerIndex = i
			break
		}
	}
	if cur := r.CurrentPlayer(); cur != nil && !cur.Online {
		r.CurrentPlayerIndex = (r.CurrentPlayerIndex + 1) % len(r.Players)
	}

	views := snapshotViews(r)
	r.Mu.Unlock()

	results := make(map[string]any, len(views))
	for userID, v := range views {
		results[userID] = ChallengeResult{
			IsLying:      isLying,
			LoserID:      loserID,
			ChallengerID: challengerID,
			LastPlayerID: lastPlayerID,
			Room:         v.(RoomView),
		}
	}
	m.sendViews(results, shared.TypeChallengeResult)
	m.resetTurnTimer(roomID)
}

// HandleDisconnect is the transport telling us a user's connection dropped.
// The seat is kept for the reconnect grace window; mid-game it goes offline
// and the game force-ends once at most one player remains connected.
func (m *Manager) HandleDisconnect(userID string) {
	for _, r := range m.store.AllRooms() {
		r.Mu.Lock()
		p := r.FindPlayer(userID)
		if p == nil {
			r.Mu.Unlock()
			continue
		}
		p.Online = false
		p.LastSeen = time.Now()
		log.Printf("[game] %s went offline in room %s", userID, r.RoomID)

		if r.Status == shared.StatusPlaying {
			m.settleAbandonedLocked(r)
			continue // lock released by settleAbandonedLocked
		}

		views := snapshotViews(r)
		r.Mu.Unlock()
		m.sendViews(views, shared.TypeRoomUpdate)
	}
}

// moveToNextPlayer advances the turn cyclically, skipping offline seats. If
// every seat is offline the index still advances one step so the turn never
// wedges. Caller holds r.Mu; desk state is untouched.
func (m *Manager) moveToNextPlayer(r *shared.Room) {
	n := len(r.Players)
	if n == 0 {
		return
	}
	next := (r.CurrentPlayerIndex + 1) % n
	for i := 0; i < n; i++ {
		if r.Players[next].Online {
			r.CurrentPlayerIndex = next
			return
		}
		next = (next + 1) % n
	}
	r.CurrentPlayerIndex = (r.CurrentPlayerIndex + 1) % n
}

// emptyHanded returns the first seat with no cards left, or nil.
func emptyHanded(r *shared.Room) *shared.Player {
	for _, p := range r.Players {
		if len(p.Hand) == 0 {
			return p
		}
	}
	return nil
}

// finishGameLocked ends the hand: ranking computed before the reset wipes
// the hands, then the room goes back to WAITING so the same seats can play
// again. Caller holds r.Mu and sends the returned payloads after release
// (GAME_OVER first, then the reset ROOM_UPDATE).
func (m *Manager) finishGameLocked(r *shared.Room, winner *shared.Player, reason string) (GameOverResult, map[string]any) {
	r.Status = shared.StatusFinished
	if winner == nil {
		winner = emptyHanded(r)
	}
	over := GameOverResult{
		Ranking: ranking(r.Players, winner),
		Reason:  reason,
	}

	for _, p := range r.Players {
		p.Ready = false
		p.Hand = nil
	}
	r.DeskPile = nil
	r.LastClaimedRank = ""
	r.LastPlayedCards = nil
	r.LastPlayerID = ""
	r.Status = shared.StatusWaiting
	m.cancelTurnTimer(r.RoomID)

	log.Printf("[game] room %s finished (%d ranked), back to waiting", r.RoomID, len(over.Ranking))
	return over, snapshotViews(r)
}
