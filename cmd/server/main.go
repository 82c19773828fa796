package main

import (
	"log"

	"github.com/joho/godotenv"

	httpapi "bluff-card/internal/api/http"
	"bluff-card/internal/api/ws"
	"bluff-card/internal/config"
	"bluff-card/internal/room"
	"bluff-card/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using environment: %v", err)
	}

	cfg := config.Load()
	mem := store.NewMemoryStore()
	hub := ws.NewHub()
	rm := room.NewManager(mem, cfg, hub)
	hub.SetEngine(rm)

	r := httpapi.NewRouter(rm, hub)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
