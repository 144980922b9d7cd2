package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var once sync.Once

// Config reads a variable from .env (falling back to the process env).
func Config(key string) string {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using process environment")
		}
	})
	return os.Getenv(key)
}

// ConfigDefault reads a variable and returns def when it is unset.
func ConfigDefault(key, def string) string {
	if v := Config(key); v != "" {
		return v
	}
	return def
}
