package engine

// Renderer is the boundary to the external rendering backend. The core tells
// it which actors exist, relays its resize stream and asks it to draw or
// clear; everything else about rendering is the backend's business.
type Renderer interface {
	// AddActor and RemoveActor mirror hierarchy membership into the
	// backend's scene graph.
	AddActor(*Actor)
	RemoveActor(*Actor)
	// ObserveResize starts delivering resize notifications to the given
	// callback; UnobserveResize stops them.
	ObserveResize(func(width, height int))
	UnobserveResize()
	Draw()
	Clear()
}

// Input is the boundary to the input device aggregator. Update is polled once
// per frame before the scene passes; ExitRequested is polled once per frame
// after them.
type Input interface {
	Connect()
	Disconnect()
	Update()
	ExitRequested() bool
}

// Audio is the boundary to the audio subsystem.
type Audio interface {
	Connect()
	Disconnect()
}

// NopRenderer is a Renderer that does nothing, for headless runs and tests.
type NopRenderer struct{}

func (NopRenderer) AddActor(*Actor) {}

func (NopRenderer) RemoveActor(*Actor) {}

func (NopRenderer) ObserveResize(func(int, int)) {}

func (NopRenderer) UnobserveResize() {}

func (NopRenderer) Draw() {}

func (NopRenderer) Clear() {}

// NopInput is an Input that reports no devices and never requests an exit.
type NopInput struct{}

func (NopInput) Connect() {}

func (NopInput) Disconnect() {}

func (NopInput) Update() {}

func (NopInput) ExitRequested() bool { return false }

// NopAudio is an Audio that does nothing.
type NopAudio struct{}

func (NopAudio) Connect() {}

func (NopAudio) Disconnect() {}
