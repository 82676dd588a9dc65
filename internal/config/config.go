package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Window
	WindowWidth  int
	WindowHeight int
	Title        string
	TargetFPS    int

	// Table
	MapTexturePath string
	TableSize      float64
	DiceCount      int

	// Physics
	GravityY float64

	// Stream (empty address disables the observer server)
	StreamAddr string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		WindowWidth:  getEnvInt("WINDOW_WIDTH", 1280),
		WindowHeight: getEnvInt("WINDOW_HEIGHT", 720),
		Title:        getEnv("WINDOW_TITLE", "Tabletop"),
		TargetFPS:    getEnvInt("TARGET_FPS", 60),

		MapTexturePath: getEnv("MAP_TEXTURE", "assets/maps/table.png"),
		TableSize:      getEnvFloat("TABLE_SIZE", 20.0),
		DiceCount:      getEnvInt("DICE_COUNT", 2),

		GravityY: getEnvFloat("GRAVITY_Y", -9.82),

		StreamAddr: getEnv("STREAM_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
