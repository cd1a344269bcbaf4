// Profiling:
// go build ./profile/frames
// go tool pprof -http=":8000" -nodefraction=0.001 ./frames mem.pprof

package main

import (
	"fmt"
	"time"

	"github.com/JollyPixel/engine"
	"github.com/pkg/profile"
)

type spinner struct {
	engine.Behavior
	angle float64
}

func (s *spinner) FixedUpdate(dt float64) {
	s.angle += dt
}

func (s *spinner) Update(dt float64) {
	s.Actor().Transform().SetLocalOrientation(engine.Quaternion{Y: s.angle, W: 1})
}

func main() {
	rounds := 20
	frames := 5000
	actors := 2000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, frames, actors)
	p.Stop()
}

func run(rounds, frames, numActors int) {
	for range rounds {
		game := engine.NewGame()
		scene := game.Scene()
		for i := range numActors {
			parent, err := engine.NewActor(scene, fmt.Sprintf("group%d", i))
			if err != nil {
				panic(err)
			}
			child, err := engine.NewActor(scene, fmt.Sprintf("unit%d", i), engine.WithParent(parent))
			if err != nil {
				panic(err)
			}
			if err := child.AddComponent(&spinner{}); err != nil {
				panic(err)
			}
		}

		current := time.Unix(0, 0)
		game.TimeStep().SetClock(func() time.Time { return current })
		game.Connect()
		game.Start()

		for range frames {
			current = current.Add(16 * time.Millisecond)
			game.Tick()
		}
		game.Stop()
		game.Disconnect()
	}
}
