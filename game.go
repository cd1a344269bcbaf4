package engine

// Game is the composition root binding one scene, a render backend, an input
// aggregator, an audio subsystem and a fixed-timestep scheduler. An external
// frame pump calls Tick once per display frame until it returns true.
type Game struct {
	scene     *Scene
	renderer  Renderer
	input     Input
	audio     Audio
	timeStep  *FixedTimeStep
	events    *EventBus
	resources *Resources
	connected bool
}

// GameOption customizes game construction.
type GameOption func(*Game)

// WithRenderer binds the render backend. Defaults to NopRenderer.
func WithRenderer(r Renderer) GameOption {
	return func(g *Game) { g.renderer = r }
}

// WithInput binds the input aggregator. Defaults to NopInput.
func WithInput(in Input) GameOption {
	return func(g *Game) { g.input = in }
}

// WithAudio binds the audio subsystem. Defaults to NopAudio.
func WithAudio(a Audio) GameOption {
	return func(g *Game) { g.audio = a }
}

// WithFps sets the initial variable and fixed frame rate targets, clamped to
// [1, 60]. Defaults to 60/60.
func WithFps(fps, fixedFps int) GameOption {
	return func(g *Game) { g.timeStep.SetFps(fps, fixedFps) }
}

// NewGame creates a game instance with its own scene, event bus, resource
// registry and scheduler. Hierarchy membership is mirrored into the render
// backend through the scene tree's hooks.
func NewGame(opts ...GameOption) *Game {
	g := &Game{
		scene:     NewScene(),
		renderer:  NopRenderer{},
		input:     NopInput{},
		audio:     NopAudio{},
		timeStep:  NewFixedTimeStep(maxFrameRate, maxFrameRate),
		events:    NewEventBus(),
		resources: &Resources{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.scene.tree.OnAdd = g.renderer.AddActor
	g.scene.tree.OnRemove = g.renderer.RemoveActor
	return g
}

// Scene returns the game's scene.
func (g *Game) Scene() *Scene {
	return g.scene
}

// Events returns the game's event bus.
func (g *Game) Events() *EventBus {
	return g.events
}

// Resources returns the game's shared-collaborator registry.
func (g *Game) Resources() *Resources {
	return g.resources
}

// TimeStep returns the game's scheduler.
func (g *Game) TimeStep() *FixedTimeStep {
	return g.timeStep
}

// Renderer returns the bound render backend.
func (g *Game) Renderer() Renderer {
	return g.renderer
}

// Input returns the bound input aggregator.
func (g *Game) Input() Input {
	return g.input
}

// Audio returns the bound audio subsystem.
func (g *Game) Audio() Audio {
	return g.audio
}

// Connect wires the input listeners and resize observation and runs the
// scene's one-time awake pass over every registered actor. Connecting twice
// is a no-op.
func (g *Game) Connect() {
	if g.connected {
		return
	}
	g.connected = true
	g.input.Connect()
	g.audio.Connect()
	g.renderer.ObserveResize(func(width, height int) {
		Publish(g.events, Resize{Width: width, Height: height})
	})
	g.scene.Awake()
}

// Disconnect unwires the input listeners and resize observation.
func (g *Game) Disconnect() {
	if !g.connected {
		return
	}
	g.connected = false
	g.renderer.UnobserveResize()
	g.audio.Disconnect()
	g.input.Disconnect()
}

// Start begins accepting ticks.
func (g *Game) Start() {
	g.timeStep.Start()
}

// Stop ends accepting ticks.
func (g *Game) Stop() {
	g.timeStep.Stop()
}

// SetFps retargets the variable and fixed frame rates, clamped to [1, 60].
func (g *Game) SetFps(fps, fixedFps int) {
	g.timeStep.SetFps(fps, fixedFps)
}

// Tick runs one display frame: input poll and scene snapshot, zero or more
// fixed steps, one variable step followed by a draw, then the end-of-frame
// destruction flush. It returns true when the input aggregator requested an
// exit, which is the frame pump's stop signal.
func (g *Game) Tick() bool {
	g.input.Update()
	g.scene.BeginFrame()

	g.timeStep.Tick(
		func(dtMs float64) {
			dt := dtMs / 1000
			Publish(g.events, BeforeFixedUpdate{DeltaSeconds: dt})
			g.scene.FixedUpdate(dt)
			Publish(g.events, AfterFixedUpdate{DeltaSeconds: dt})
		},
		func(_, dtMs float64) {
			dt := dtMs / 1000
			Publish(g.events, BeforeUpdate{DeltaSeconds: dt})
			g.scene.Update(dt)
			Publish(g.events, AfterUpdate{DeltaSeconds: dt})
			g.renderer.Draw()
		},
	)

	g.scene.EndFrame()

	if g.input.ExitRequested() {
		Publish(g.events, ExitRequest{})
		g.renderer.Clear()
		return true
	}
	return false
}
