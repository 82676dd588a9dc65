package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"tabletop3d/internal/assets"
	"tabletop3d/internal/config"
	"tabletop3d/internal/entities"
	"tabletop3d/internal/viewer"
)

var dieColors = []rl.Color{
	rl.Red, rl.Blue, rl.Green, rl.Orange, rl.Purple, rl.Gold,
}

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg := config.Load()
	eng := viewer.New(cfg)

	// Start decoding the map texture before the window is even open; the
	// GPU upload waits until setup runs on the render thread.
	mapImage := assets.LoadImageAsync(cfg.MapTexturePath)

	err := eng.Run(func(e *viewer.Engine) error {
		var mapTexture rl.Texture2D
		if res := <-mapImage; res.Err != nil {
			log.Printf("Viewer: map texture unavailable, using flat table: %v", res.Err)
		} else {
			mapTexture = assets.UploadTexture(cfg.MapTexturePath, res.Image)
		}

		e.AddEntity("ground", entities.NewGround(mapTexture, float32(cfg.TableSize)))

		// Dice start in a loose ring above the center of the table so they
		// tumble into each other on the first drop.
		for i := 0; i < cfg.DiceCount; i++ {
			angle := float64(i) / float64(cfg.DiceCount) * 2 * math.Pi
			pos := mgl32.Vec3{
				float32(math.Cos(angle)) * 2,
				5 + float32(i)*1.5,
				float32(math.Sin(angle)) * 2,
			}
			die := entities.NewDie(1, pos, dieColors[i%len(dieColors)])
			die.Spin = mgl32.Vec3{
				rand.Float32()*8 - 4,
				rand.Float32()*8 - 4,
				rand.Float32()*8 - 4,
			}
			e.AddEntity(fmt.Sprintf("die-%d", i), die)
		}

		return nil
	})
	if err != nil {
		log.Fatalf("Viewer: %v", err)
	}
}
