package viewer

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"tabletop3d/internal/assets"
	"tabletop3d/internal/camera"
	"tabletop3d/internal/config"
	"tabletop3d/internal/engine"
	"tabletop3d/internal/physics"
	"tabletop3d/internal/stream"
)

// Engine owns the renderer, scene, camera, camera controller and physics
// world, and drives the per-frame pipeline: step physics, sync entity
// transforms, poll input, update camera, render. One of each, living as
// long as the window.
type Engine struct {
	Config   *config.Config
	Scene    *engine.Scene
	World    *physics.World
	Camera   *camera.Camera
	Controls *camera.Controller
	Stream   *stream.Server

	overlay overlayState
}

func New(cfg *config.Config) *Engine {
	world := physics.NewWorld()
	world.Gravity = mgl32.Vec3{0, float32(cfg.GravityY), 0}

	cam := camera.NewPerspective(45, mgl32.Vec3{0, 12, 16})
	controls := camera.NewController(cam, mgl32.Vec3{})
	controls.MaxPolarAngle = 1.45 // keep the camera above the table
	controls.MinDistance = 2
	controls.MaxDistance = 80

	e := &Engine{
		Config:   cfg,
		Scene:    engine.NewScene("Table"),
		World:    world,
		Camera:   cam,
		Controls: controls,
	}

	if cfg.StreamAddr != "" {
		e.Stream = stream.NewServer(cfg.StreamAddr)
		e.Controls.OnChange.AddListener(e.publishState)
	}

	return e
}

// AddEntity builds the mesh/body pair, registers the body with the physics
// world and the entity with the scene. Calling twice with the same builder
// tracks the entity twice; there is no duplicate guard.
func (e *Engine) AddEntity(name string, b engine.Builder) *engine.Entity {
	ent := engine.NewEntity(name, b)
	e.World.AddBody(ent.Body)
	e.Scene.AddEntity(ent)
	return ent
}

// RemoveEntity takes the pair out of both the scene and the world and
// releases the entity's render resources.
func (e *Engine) RemoveEntity(ent *engine.Entity) {
	e.World.RemoveBody(ent.Body)
	e.Scene.RemoveEntity(ent)
	ent.Unload()
}

// Run opens the window, calls setup to populate the scene (the GL context
// exists by then), and loops until the window closes. Within one frame the
// order is fixed: physics step, entity sync, camera update, render.
func (e *Engine) Run(setup func(*Engine) error) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(e.Config.WindowWidth), int32(e.Config.WindowHeight), e.Config.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(e.Config.TargetFPS))
	e.Controls.SetViewport(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))

	if e.Stream != nil {
		e.Stream.Start()
		defer e.Stream.Close()
	}
	defer assets.Unload()
	defer e.Scene.Unload()
	defer e.Controls.Dispose()

	if setup != nil {
		if err := setup(e); err != nil {
			return err
		}
	}
	log.Printf("Viewer: scene ready, %d entities", len(e.Scene.Entities))

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()

		e.World.Step(dt)
		e.Scene.Sync()

		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) &&
			(rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt)) {
			e.flickUnderCursor()
		}

		e.Controls.PollInput()
		moved := e.Controls.Update(dt)

		if rl.IsWindowResized() {
			e.Controls.SetViewport(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		}

		e.render()

		if e.Stream != nil && !moved && e.physicsActive() {
			e.publishState()
		}
	}

	return nil
}

func (e *Engine) render() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(24, 26, 32, 255))

	rl.BeginMode3D(e.Camera.Raylib())
	rl.DrawGrid(int32(e.Config.TableSize), 1.0)
	for _, ent := range e.Scene.Entities {
		ent.Draw()
	}
	rl.EndMode3D()

	e.drawOverlay()

	rl.EndDrawing()
}

// physicsActive reports whether any dynamic body is awake, i.e. the table
// state may have moved without camera input.
func (e *Engine) physicsActive() bool {
	for _, b := range e.World.Bodies {
		if !b.Static() && !b.IsSleeping {
			return true
		}
	}
	return false
}

// flickUnderCursor raycasts from the cursor into the scene and knocks the
// hit body along the view ray. Alt-click, so plain drags stay camera input.
func (e *Engine) flickUnderCursor() {
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), e.Camera.Raylib())
	e.flickAlong(
		mgl32.Vec3{ray.Position.X, ray.Position.Y, ray.Position.Z},
		mgl32.Vec3{ray.Direction.X, ray.Direction.Y, ray.Direction.Z},
	)
}

func (e *Engine) flickAlong(origin, dir mgl32.Vec3) {
	hit, ok := e.World.Raycast(origin, dir, 200)
	if !ok || hit.Body.Static() {
		return
	}

	impulse := dir.Mul(3).Add(mgl32.Vec3{0, 2, 0}).Mul(hit.Body.Mass)
	hit.Body.ApplyImpulse(impulse)
	hit.Body.AngularVelocity = hit.Body.AngularVelocity.Add(hit.Normal.Cross(dir).Mul(6))
}

func (e *Engine) publishState() {
	if e.Stream == nil || e.Stream.ClientCount() == 0 {
		return
	}

	msg := stream.StateMessage{Type: "state"}
	for _, ent := range e.Scene.Entities {
		p := ent.Position()
		q := ent.Orientation()
		msg.Entities = append(msg.Entities, stream.EntityPose{
			Name:        ent.Name,
			Position:    [3]float32{p.X(), p.Y(), p.Z()},
			Orientation: [4]float32{q.W, q.V.X(), q.V.Y(), q.V.Z()},
		})
	}
	e.Stream.Broadcast(msg)
}
