package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"bluff-card/internal/api/ws"
	"bluff-card/internal/config"
	"bluff-card/internal/room"
	"bluff-card/internal/store"
)

type roomResp struct {
	UserID string        `json:"userId"`
	Room   room.RoomView `json:"room"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{HTTPAddr: ":0", TurnTimeout: time.Hour, ZombieGrace: time.Hour}
	mem := store.NewMemoryStore()
	hub := ws.NewHub()
	rm := room.NewManager(mem, cfg, hub)
	hub.SetEngine(rm)

	srv := httptest.NewServer(NewRouter(rm, hub))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	js, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(js))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestCreateRoom(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/room/create", PlayerRequest{Nickname: "Alice"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := decode[roomResp](t, resp)

	if got.UserID == "" {
		t.Fatal("no userId minted for anonymous player")
	}
	if len(got.Room.RoomID) != 4 {
		t.Fatalf("room id %q not a 4-digit code", got.Room.RoomID)
	}
	if len(got.Room.Players) != 1 || !got.Room.Players[0].IsHost {
		t.Fatalf("host not seated: %+v", got.Room.Players)
	}
}

func TestCreateRoomRequiresNickname(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/room/create", PlayerRequest{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestJoinRoomFlow(t *testing.T) {
	srv := newTestServer(t)

	created := decode[roomResp](t, postJSON(t, srv.URL+"/api/room/create", PlayerRequest{Nickname: "Alice"}))
	joinURL := srv.URL + "/api/room/join?roomId=" + created.Room.RoomID

	for _, nick := range []string{"Bob", "Cara"} {
		resp := postJSON(t, joinURL, PlayerRequest{Nickname: nick})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s join status = %d, want 200", nick, resp.StatusCode)
		}
		resp.Body.Close()
	}

	// Fourth seat must be refused.
	resp := postJSON(t, joinURL, PlayerRequest{Nickname: "Dave"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("full room status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/room/join?roomId=0000", PlayerRequest{Nickname: "Eve"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("unknown room status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/room/join", PlayerRequest{Nickname: "Eve"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing roomId status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestQuickMatchAndListRooms(t *testing.T) {
	srv := newTestServer(t)

	first := decode[roomResp](t, postJSON(t, srv.URL+"/api/room/match", PlayerRequest{Nickname: "Alice"}))
	second := decode[roomResp](t, postJSON(t, srv.URL+"/api/room/match", PlayerRequest{Nickname: "Bob"}))
	if first.Room.RoomID != second.Room.RoomID {
		t.Fatalf("quick match split players across rooms %s and %s", first.Room.RoomID, second.Room.RoomID)
	}

	listResp, err := http.Get(srv.URL + "/rooms")
	if err != nil {
		t.Fatalf("get rooms: %v", err)
	}
	listing := decode[struct {
		Rooms []room.RoomSummary `json:"rooms"`
	}](t, listResp)
	if len(listing.Rooms) != 1 {
		t.Fatalf("room count = %d, want 1", len(listing.Rooms))
	}
	if listing.Rooms[0].PlayerCount != 2 {
		t.Fatalf("player count = %d, want 2", listing.Rooms[0].PlayerCount)
	}
}

func TestHandMaskedInResponse(t *testing.T) {
	srv := newTestServer(t)

	created := decode[roomResp](t, postJSON(t, srv.URL+"/api/room/create", PlayerRequest{Nickname: "Alice"}))
	joined := decode[roomResp](t, postJSON(t, srv.URL+"/api/room/join?roomId="+created.Room.RoomID, PlayerRequest{Nickname: "Bob"}))

	for _, pv := range joined.Room.Players {
		if pv.UserID != joined.UserID && len(pv.Cards) != 0 {
			t.Fatalf("response leaks %s's cards to %s", pv.UserID, joined.UserID)
		}
	}
}
