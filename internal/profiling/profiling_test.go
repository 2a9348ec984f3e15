package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	mu.Unlock()
}

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	stop := Track("renderer.upload")
	stop()
	Track("renderer.upload")()

	snap := Snapshot()
	assert.Contains(t, snap, "renderer.upload")
	assert.GreaterOrEqual(t, snap["renderer.upload"], time.Duration(0))
}

func TestTopNAndSums(t *testing.T) {
	ResetFrame()
	record("renderer.draw", 1500*time.Microsecond)
	record("renderer.upload", 200*time.Microsecond)
	record("glfw.SwapBuffers", 3*time.Millisecond)

	assert.Equal(t, "glfw.SwapBuffers:3ms, renderer.draw:1.5ms", TopN(2))
	assert.Equal(t, 1700*time.Microsecond, SumWithPrefix("renderer."))
	assert.Equal(t, 3, len(Snapshot()))
	assert.Equal(t, "glfw.SwapBuffers:3ms, renderer.draw:1.5ms, renderer.upload:0.2ms", TopN(10))

	ResetFrame()
	assert.Empty(t, Snapshot())
	assert.Equal(t, "", TopN(3))
}
