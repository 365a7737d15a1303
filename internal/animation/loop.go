// Package animation drives the rotating wireframe: it advances the rotation
// angle every tick, redraws the mesh and paces frames against a budget.
package animation

import (
	"context"
	"errors"
	"fmt"
	gomath "math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wirespin/internal/logger"
	"github.com/Faultbox/wirespin/internal/render"
)

// Loop errors.
var (
	ErrInvalidStep  = errors.New("rotation step must be positive")
	ErrInvalidLimit = errors.New("rotation limit must be positive")
	ErrDone         = errors.New("animation already finished")
)

// statsInterval is how often Run logs frame statistics.
const statsInterval = time.Second

// State is the loop's lifecycle state.
type State int

const (
	Running State = iota
	Done
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Done:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Mode selects what each frame draws.
type Mode int

const (
	// ModeFaces draws every face outline.
	ModeFaces Mode = iota
	// ModeVertices draws only vertex markers.
	ModeVertices
)

// Display is the grid a Loop draws on. Clear blanks the back buffer and Show
// pushes it to the screen.
type Display interface {
	render.Grid
	Size() (width, height int)
	Clear()
	Show()
}

// Config controls a Loop.
type Config struct {
	Step       float64       // radians added per tick
	Limit      float64       // rotation at which the loop stops
	Budget     time.Duration // frame period
	Mode       Mode
	ShowStatus bool // angle and element count in the top-left corner
}

// Loop is a fixed-length rotation animation of one mesh.
type Loop struct {
	cfg      Config
	mesh     *render.Mesh
	display  Display
	renderer *render.Renderer
	clock    Clock
	budget   *FrameBudget

	state    State
	tick     int
	total    int
	rotation float64
	frames   int
}

// New returns a Loop in the Running state with rotation zero.
func New(cfg Config, mesh *render.Mesh, display Display, renderer *render.Renderer, clock Clock) (*Loop, error) {
	if !(cfg.Step > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStep, cfg.Step)
	}
	if !(cfg.Limit > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLimit, cfg.Limit)
	}
	if clock == nil {
		clock = SystemClock()
	}

	return &Loop{
		cfg:      cfg,
		mesh:     mesh,
		display:  display,
		renderer: renderer,
		clock:    clock,
		budget:   NewFrameBudget(clock, cfg.Budget),
		state:    Running,
		// rotation is derived from the tick count so the number of ticks
		// never depends on accumulated rounding.
		total: int(gomath.Ceil(cfg.Limit / cfg.Step)),
	}, nil
}

// State returns the current state.
func (l *Loop) State() State {
	return l.state
}

// Rotation returns the current rotation angle.
func (l *Loop) Rotation() float64 {
	return l.rotation
}

// Ticks returns how many ticks have run.
func (l *Loop) Ticks() int {
	return l.tick
}

// TotalTicks returns the number of ticks after which the loop is Done.
func (l *Loop) TotalTicks() int {
	return l.total
}

// Frames returns how many frames were drawn.
func (l *Loop) Frames() int {
	return l.frames
}

// Tick advances the rotation by one step and draws a frame, or moves to Done
// once the rotation reaches the limit.
func (l *Loop) Tick() (render.FrameStats, error) {
	if l.state == Done {
		return render.FrameStats{}, ErrDone
	}

	l.tick++
	l.rotation = float64(l.tick) * l.cfg.Step
	if l.tick >= l.total {
		l.state = Done
		return render.FrameStats{}, nil
	}

	l.budget.Begin()
	stats, err := l.drawFrame()
	if err != nil {
		l.state = Done
		return stats, err
	}
	l.budget.Wait()
	return stats, nil
}

func (l *Loop) drawFrame() (render.FrameStats, error) {
	// Follow display resizes; the centre is derived from the current size.
	rast := l.renderer.Rasterizer()
	if view := render.ViewportFor(l.display.Size()); view != rast.Viewport() {
		rast.SetViewport(view)
	}
	l.display.Clear()

	var (
		stats render.FrameStats
		err   error
		count int
	)
	switch l.cfg.Mode {
	case ModeVertices:
		stats, err = l.renderer.DrawVertices(l.mesh, l.rotation)
		count = l.mesh.VertexCount()
	default:
		stats, err = l.renderer.DrawMesh(l.mesh, l.rotation)
		count = l.mesh.FaceCount()
	}
	if err != nil {
		return stats, fmt.Errorf("frame %d: %w", l.tick, err)
	}

	if l.cfg.ShowStatus {
		render.DrawText(l.display, 0, 0, strconv.FormatFloat(l.rotation, 'f', 6, 64))
		render.DrawText(l.display, 1, 0, strconv.Itoa(count))
	}
	rast.DrawCenter()

	l.display.Show()
	l.frames++
	return stats, nil
}

// Run ticks until the loop is Done or ctx is cancelled. A cancelled context
// is reported as ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	logger.Info("animation started",
		zap.Int("faces", l.mesh.FaceCount()),
		zap.Int("vertices", l.mesh.VertexCount()),
		zap.Int("ticks", l.total),
		zap.Duration("budget", l.budget.Budget()),
	)

	var (
		window   render.FrameStats
		frames   int
		reported = l.clock.Now()
	)
	for l.state == Running {
		if err := ctx.Err(); err != nil {
			logger.Info("animation cancelled", zap.Int("tick", l.tick), zap.Float64("rotation", l.rotation))
			return err
		}

		stats, err := l.Tick()
		if err != nil {
			logger.Error("frame failed", zap.Int("tick", l.tick), zap.Error(err))
			return err
		}
		frames++
		window.Edges += stats.Edges
		window.Points += stats.Points
		window.Culled += stats.Culled

		if now := l.clock.Now(); now.Sub(reported) >= statsInterval {
			logger.Debug("frames",
				zap.Int("count", frames),
				zap.Int("edges", window.Edges),
				zap.Int("points", window.Points),
				zap.Int("culled", window.Culled),
				zap.Float64("rotation", l.rotation),
			)
			window = render.FrameStats{}
			frames = 0
			reported = now
		}
	}

	logger.Info("animation finished", zap.Int("ticks", l.tick), zap.Int("frames", l.frames))
	return nil
}
