package room

import (
	"log"
	"time"

	"bluff-card/internal/shared"
)

// turnTimer is the pending auto-pass deadline for one room. The generation
// counter is bumped on every re-arm and cancel; a fire whose generation no
// longer matches is stale and must do nothing, regardless of how late the
// underlying timer pool delivers it.
type turnTimer struct {
	gen   uint64
	timer *time.Timer
}

// resetTurnTimer arms the per-turn deadline for roomID, atomically
// superseding any timer already pending for that room.
func (m *Manager) resetTurnTimer(roomID string) {
	m.timersMu.Lock()
	t := m.timers[roomID]
	if t == nil {
		t = &turnTimer{}
		m.timers[roomID] = t
	}
	t.gen++
	gen := t.gen
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(m.cfg.TurnTimeout, func() {
		m.onTurnTimeout(roomID, gen)
	})
	m.timersMu.Unlock()
}

func (m *Manager) cancelTurnTimer(roomID string) {
	m.timersMu.Lock()
	if t, ok := m.timers[roomID]; ok {
		t.gen++
		if t.timer != nil {
			t.timer.Stop()
		}
		delete(m.timers, roomID)
	}
	m.timersMu.Unlock()
}

// onTurnTimeout fires the deadline: whoever holds the turn right now is
// passed through the normal pass path, which re-validates turn ownership and
// re-arms. A failure here is logged and never takes the timer pool down.
func (m *Manager) onTurnTimeout(roomID string, gen uint64) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[timer] room %s timeout handler panicked: %v", roomID, rec)
		}
	}()

	m.timersMu.Lock()
	t, ok := m.timers[roomID]
	stale := !ok || t.gen != gen
	m.timersMu.Unlock()
	if stale {
		return
	}

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
	if current == nil {
		r.Mu.Unlock()
		return
	}
	userID := current.UserID
	r.Mu.Unlock()

	log.Printf("[timer] room %s: %s timed out, auto-passing", roomID, userID)
	m.HandlePass(roomID, userID)
}
