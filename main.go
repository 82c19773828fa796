package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bluff-card/internal/config"
	"bluff-card/internal/game"
	"bluff-card/internal/room"
	"bluff-card/internal/shared"
	"bluff-card/internal/store"
)

// consoleSessions feeds the engine's outbound traffic to stdout instead of
// websockets so the game can be played hot-seat from one terminal. Only the
// first seat's envelopes are printed to avoid triple output.
type consoleSessions struct {
	narrator string
}

func (s *consoleSessions) Send(userID string, e shared.Envelope) error {
	if userID != s.narrator {
		return nil
	}
	switch e.Type {
	case shared.TypeChallengeResult, shared.TypeGameOver:
		js, _ := json.MarshalIndent(e.Payload, "", "  ")
		fmt.Printf("\n== %s ==\n%s\n", e.Type, js)
	}
	return nil
}

func (s *consoleSessions) IsOnline(string) bool { return true }

func main() {
	cfg := config.Load()
	cfg.TurnTimeout = time.Hour // no auto-pass at the console

	sessions := &consoleSessions{narrator: "p1"}
	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg, sessions)

	rx := rm.CreateRoom(&shared.Player{UserID: "p1", Nickname: "Alice"})
	if _, err := rm.JoinRoom(rx.RoomID, &shared.Player{UserID: "p2", Nickname: "Bob"}); err != nil {
		fmt.Println("join failed:", err)
		return
	}
	if _, err := rm.JoinRoom(rx.RoomID, &shared.Player{UserID: "p3", Nickname: "Cara"}); err != nil {
		fmt.Println("join failed:", err)
		return
	}
	for _, id := range []string{"p1", "p2", "p3"} {
		rm.HandleJoin(rx.RoomID, id)
		rm.HandleReady(rx.RoomID, id)
	}

	fmt.Println("Hot-seat bluff game. Commands:")
	fmt.Println("  play <idx> [idx...] <rank>   e.g. play 0 3 5")
	fmt.Println("  pass | challenge | state | quit")

	reader := bufio.NewReader(os.Stdin)
	for {
		rx.Mu.Lock()
		if rx.Status != shared.StatusPlaying {
			rx.Mu.Unlock()
			fmt.Println("\nGame over, room reset.")
			return
		}
		cur := rx.CurrentPlayer()
		userID := cur.UserID
		hand := append([]game.Card(nil), cur.Hand...)
		view := room.SnapshotFor(rx, userID)
		rx.Mu.Unlock()

		fmt.Printf("\nTurn: %s (%s)\n", cur.Nickname, userID)
		fmt.Printf("Desk: %d cards, last claim %q by %s\n", view.DeskCount, view.LastClaimedRank, view.LastPlayerID)
		for i, c := range hand {
			fmt.Printf("  [%d] %d-%s", i, c.Value, c.Suit)
			if (i+1)%6 == 0 {
				fmt.Println()
			}
		}
		fmt.Println()

		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "quit":
			return
		case "state":
			js, _ := json.MarshalIndent(view, "", "  ")
			fmt.Println(string(js))
		case "pass":
			rm.HandlePass(rx.RoomID, userID)
		case "challenge":
			rm.HandleChallenge(rx.RoomID, userID)
		case "play":
			if len(parts) < 3 {
				fmt.Println("need at least one index and a rank")
				continue
			}
			rank := parts[len(parts)-1]
			cards := make([]game.Card, 0, len(parts)-2)
			bad := false
			for _, s := range parts[1 : len(parts)-1] {
				i, err := strconv.Atoi(s)
				if err != nil || i < 0 || i >= len(hand) {
					fmt.Println("bad card index:", s)
					bad = true
					break
				}
				cards = append(cards, hand[i])
			}
			if bad {
				continue
			}
			rm.HandlePlay(rx.RoomID, userID, cards, rank)
		default:
			fmt.Println("unknown command:", parts[0])
		}
	}
}
