package config

import (
	"log"
	"os"
	"strconv"
)

// getInt32Env reads an int32 env var; pgxpool's connection counts are int32.
func getInt32Env(key string, fallback int32) int32 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(i)
		}
		log.Printf("Invalid int32 for %s, using fallback", key)
	}
	return fallback
}
