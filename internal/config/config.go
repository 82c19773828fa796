package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	TurnTimeout time.Duration // hard per-turn deadline before auto-pass
	ZombieGrace time.Duration // how long a dead seat survives before pruning
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		TurnTimeout: time.Duration(getenvInt("TURN_TIMEOUT_SECONDS", 30)) * time.Second,
		ZombieGrace: time.Duration(getenvInt("ZOMBIE_GRACE_SECONDS", 10)) * time.Second,
	}
}
