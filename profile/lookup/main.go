// Profiling:
// go build ./profile/lookup
// go tool pprof -http=":8000" -nodefraction=0.001 ./lookup cpu.prof

package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/JollyPixel/engine"
)

func main() {
	// CPU Profiling
	f, _ := os.Create("cpu.prof")
	_ = pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	rounds := 50
	iters := 10000
	actors := 5000
	run(rounds, iters, actors)

	// Memory Profiling
	memFile, _ := os.Create("mem.prof")
	defer memFile.Close()
	runtime.GC() // Trigger garbage collection
	_ = pprof.WriteHeapProfile(memFile)
}

func run(rounds, iters, numActors int) {
	for range rounds {
		scene := engine.NewScene()
		for i := range numActors {
			parent, err := engine.NewActor(scene, fmt.Sprintf("group%d", i))
			if err != nil {
				panic(err)
			}
			if _, err := engine.NewActor(scene, fmt.Sprintf("unit%d", i), engine.WithParent(parent)); err != nil {
				panic(err)
			}
		}

		patterns := []string{"unit1234", "group*", "**/unit1234", "group1234/*"}
		for range iters {
			for _, pattern := range patterns {
				for range scene.Tree().GetActors(pattern) {
				}
			}
		}
	}
}
