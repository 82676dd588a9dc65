package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 1280, cfg.WindowWidth)
	assert.Equal(t, 720, cfg.WindowHeight)
	assert.Equal(t, "Tabletop", cfg.Title)
	assert.Equal(t, 60, cfg.TargetFPS)
	assert.Equal(t, "assets/maps/table.png", cfg.MapTexturePath)
	assert.Equal(t, 20.0, cfg.TableSize)
	assert.Equal(t, 2, cfg.DiceCount)
	assert.Equal(t, -9.82, cfg.GravityY)
	assert.Empty(t, cfg.StreamAddr)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("WINDOW_WIDTH", "1920")
	t.Setenv("WINDOW_TITLE", "Dice Night")
	t.Setenv("TABLE_SIZE", "32.5")
	t.Setenv("GRAVITY_Y", "-1.62")
	t.Setenv("STREAM_ADDR", ":8090")

	cfg := Load()

	assert.Equal(t, 1920, cfg.WindowWidth)
	assert.Equal(t, "Dice Night", cfg.Title)
	assert.Equal(t, 32.5, cfg.TableSize)
	assert.Equal(t, -1.62, cfg.GravityY)
	assert.Equal(t, ":8090", cfg.StreamAddr)
	// Untouched keys keep their defaults
	assert.Equal(t, 720, cfg.WindowHeight)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("WINDOW_WIDTH", "wide")
	t.Setenv("TABLE_SIZE", "big")

	cfg := Load()

	assert.Equal(t, 1280, cfg.WindowWidth)
	assert.Equal(t, 20.0, cfg.TableSize)
}
