package assets

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var manager *Manager

type Manager struct {
	textures map[string]rl.Texture2D
}

func Init() {
	manager = &Manager{
		textures: make(map[string]rl.Texture2D),
	}
}

// LoadTexture loads and caches a texture. Must run on the render thread.
func LoadTexture(path string) rl.Texture2D {
	if manager == nil {
		Init()
	}

	if texture, exists := manager.textures[path]; exists {
		return texture
	}

	texture := rl.LoadTexture(path)
	manager.textures[path] = texture
	return texture
}

// ImageResult is the outcome of an asynchronous image load.
type ImageResult struct {
	Image *rl.Image
	Err   error
}

// LoadImageAsync decodes an image file off the render thread and delivers
// the result on a 1-buffered channel. The caller uploads the image to the
// GPU itself (UploadTexture) once it receives the result; decoding touches
// no GL state so it is safe in a goroutine. A caller that walks away leaves
// the load to finish and be collected; it is never cancelled.
func LoadImageAsync(path string) <-chan ImageResult {
	ch := make(chan ImageResult, 1)
	go func() {
		if _, err := os.Stat(path); err != nil {
			ch <- ImageResult{Err: fmt.Errorf("assets: %s: %w", path, err)}
			return
		}
		img := rl.LoadImage(path)
		if img == nil || img.Width == 0 || img.Height == 0 {
			ch <- ImageResult{Err: fmt.Errorf("assets: %s: not a decodable image", path)}
			return
		}
		ch <- ImageResult{Image: img}
	}()
	return ch
}

// UploadTexture uploads a decoded image to the GPU and caches the texture
// under the given key. Must run on the render thread.
func UploadTexture(key string, img *rl.Image) rl.Texture2D {
	if manager == nil {
		Init()
	}

	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	manager.textures[key] = texture
	return texture
}

func Unload() {
	if manager == nil {
		return
	}

	for _, texture := range manager.textures {
		rl.UnloadTexture(texture)
	}
	manager.textures = make(map[string]rl.Texture2D)
}
