// Package rlcar implements a car driving through an arena of
// obstacles, sensing its surroundings with distance sensors.
//
// The arena is Width x Height pixels, bounded by walls, with square
// obstacles placed uniformly at random. The car always starts at the
// left edge, midway up, facing right. Its observation is the reading of
// each sensor in SensorAngles, discretized into SensorBins bins over
// [0, SensorLength], so that the state cardinalities are
// (SensorBins, SensorBins, ...). Sensors and collisions are computed by
// ray casting in a Box2D world holding the walls and obstacles.
//
// Actions are discrete:
//
//	Action	Name		Meaning
//	  0		Straight	Drive forward
//	  1		Left		Turn left by TurnAngle, then drive
//	  2		Right		Turn right by TurnAngle, then drive
//	  3		RZ			Rotate right by RotateAngle in place
//	  4		LZ			Rotate left by RotateAngle in place
//	  5		RS			Turn right by SmallTurnAngle, then drive
//	  6		LS			Turn left by SmallTurnAngle, then drive
package rlcar

import (
	"fmt"
	"math"

	"github.com/ByteArena/box2d"
	env "github.com/samuelfneumann/tabq/environment"
	ts "github.com/samuelfneumann/tabq/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	Width  float64 = 1200
	Height float64 = 800

	CarRadius    float64 = 12
	CarSpeed     float64 = 6
	ObstacleSize float64 = 50
	NumObstacles int     = 24
	SensorLength float64 = 400
	SensorBins   int     = 3

	StartX     float64 = 20
	StartY     float64 = Height / 2
	StartClear float64 = 120 // no obstacles within this distance of the start

	// Angles in degrees
	TurnAngle      float64 = 10
	SmallTurnAngle float64 = 5
	RotateAngle    float64 = 15

	// Scale is the number of pixels per Box2D unit
	Scale float64 = 10
)

// Actions of the car
const (
	Straight int = iota
	Left
	Right
	RZ
	LZ
	RS
	LS
)

// ActionNames are the names of the car's actions, indexed by action
var ActionNames = []string{"Straight", "Left", "Right", "RZ", "LZ", "RS",
	"LS"}

// SensorAngles are the directions of the car's sensors in degrees,
// relative to its heading. Positive angles are to the left.
var SensorAngles = []float64{45, 22.5, -22.5, -45}

// Config configures an RlCar environment
type Config struct {
	// Obstacles is the number of obstacles, NumObstacles if 0
	Obstacles int

	// FrameDir is the directory Render writes PNG frames to. Render
	// is a no-op if FrameDir is empty.
	FrameDir string
}

// obstacle is an axis-aligned square obstacle
type obstacle struct {
	x, y float64 // centre
	body *box2d.B2Body
}

// RlCar implements the car environment
type RlCar struct {
	*Drive
	env.UniformActions
	world       box2d.B2World
	walls       []*box2d.B2Body
	obstacles   []obstacle
	discretizer *env.Discretizer

	x, y, angle float64 // angle in radians
	readings    []float64
	lastStep    ts.TimeStep
	closed      bool

	frameDir string
	frame    int
}

// New returns a new RlCar environment. The seed determines the
// obstacle layout and the exploratory action sampler.
func New(c Config, seed uint64) (*RlCar, ts.TimeStep, error) {
	n := c.Obstacles
	if n == 0 {
		n = NumObstacles
	} else if n < 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: cannot have %d "+
			"obstacles", n)
	}

	bounds := make([]r1.Interval, len(SensorAngles))
	bins := make([]int, len(SensorAngles))
	for i := range bounds {
		bounds[i] = r1.Interval{Min: 0, Max: SensorLength}
		bins[i] = SensorBins
	}
	discretizer, err := env.NewDiscretizer(bounds, bins)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	car := &RlCar{
		Drive:          NewDrive(),
		UniformActions: env.NewUniformActions(len(ActionNames), seed+1),
		world:          box2d.MakeB2World(box2d.MakeB2Vec2(0, 0)),
		discretizer:    discretizer,
		frameDir:       c.FrameDir,
	}
	car.createWalls()
	car.createObstacles(n, seed)

	step, err := car.Reset()
	return car, step, err
}

// createWalls creates the static walls bounding the arena
func (r *RlCar) createWalls() {
	W, H := Width/Scale, Height/Scale
	corners := [][2]box2d.B2Vec2{
		{box2d.MakeB2Vec2(0, 0), box2d.MakeB2Vec2(0, H)},
		{box2d.MakeB2Vec2(0, H), box2d.MakeB2Vec2(W, H)},
		{box2d.MakeB2Vec2(W, H), box2d.MakeB2Vec2(W, 0)},
		{box2d.MakeB2Vec2(W, 0), box2d.MakeB2Vec2(0, 0)},
	}

	r.walls = make([]*box2d.B2Body, len(corners))
	for i, c := range corners {
		wallDef := box2d.NewB2BodyDef()
		wallDef.Type = 0 // Static body
		r.walls[i] = r.world.CreateBody(wallDef)

		wallShape := box2d.NewB2EdgeShape()
		wallShape.Set(c[0], c[1])

		wallFix := box2d.MakeB2FixtureDef()
		wallFix.Shape = wallShape
		r.walls[i].CreateFixtureFromDef(&wallFix)
	}
}

// createObstacles places n static square obstacles uniformly at
// random, keeping the start position clear
func (r *RlCar) createObstacles(n int, seed uint64) {
	half := ObstacleSize / 2
	positions := env.NewUniformStarter([]r1.Interval{
		{Min: half, Max: Width - half},
		{Min: half, Max: Height - half},
	}, seed)

	r.obstacles = make([]obstacle, 0, n)
	for len(r.obstacles) < n {
		pos := positions.StartFeatures()
		x, y := pos[0], pos[1]
		if math.Hypot(x-StartX, y-StartY) < StartClear+half {
			continue
		}

		def := box2d.NewB2BodyDef()
		def.Type = 0 // Static body
		def.Position = box2d.MakeB2Vec2(x/Scale, y/Scale)
		body := r.world.CreateBody(def)

		shape := box2d.NewB2PolygonShape()
		shape.SetAsBox(half/Scale, half/Scale)

		fix := box2d.MakeB2FixtureDef()
		fix.Shape = shape
		body.CreateFixtureFromDef(&fix)

		r.obstacles = append(r.obstacles, obstacle{x, y, body})
	}
}

// Reset places the car back at the start position
func (r *RlCar) Reset() (ts.TimeStep, error) {
	if r.closed {
		return ts.TimeStep{}, fmt.Errorf("reset: environment closed")
	}

	r.x, r.y, r.angle = StartX, StartY, 0
	r.readings = r.sense()
	r.lastStep = r.timeStep(ts.First, 0, 0)
	return r.lastStep, nil
}

// Step takes one environmental step given action and returns the next
// TimeStep and whether the car crashed
func (r *RlCar) Step(action int) (ts.TimeStep, bool, error) {
	if r.closed {
		return ts.TimeStep{}, false, fmt.Errorf("step: environment closed")
	}

	var turn, speed float64
	switch action {
	case Straight:
		speed = CarSpeed
	case Left:
		turn, speed = TurnAngle, CarSpeed
	case Right:
		turn, speed = -TurnAngle, CarSpeed
	case RZ:
		turn = -RotateAngle
	case LZ:
		turn = RotateAngle
	case RS:
		turn, speed = -SmallTurnAngle, CarSpeed
	case LS:
		turn, speed = SmallTurnAngle, CarSpeed
	default:
		return ts.TimeStep{}, false, fmt.Errorf("step: illegal action %d",
			action)
	}

	r.angle = math.Mod(r.angle+turn*math.Pi/180, 2*math.Pi)
	r.x += speed * math.Cos(r.angle)
	r.y += speed * math.Sin(r.angle)

	crashed := r.crashed()
	r.readings = r.sense()

	step := r.timeStep(ts.Mid, r.GetReward(crashed), r.lastStep.Number+1)
	last := r.End(&step, crashed)

	r.lastStep = step
	return step, last, nil
}

// timeStep constructs a TimeStep from the current sensor readings
func (r *RlCar) timeStep(t ts.StepType, reward float64, n int) ts.TimeStep {
	step := ts.New(t, reward, r.discretizer.Discretize(r.readings), n)
	step.Features = append([]float64{}, r.readings...)
	return step
}

// sense returns the distance measured by each sensor
func (r *RlCar) sense() []float64 {
	readings := make([]float64, len(SensorAngles))
	for i, angle := range SensorAngles {
		readings[i] = r.rayCast(r.angle+angle*math.Pi/180, SensorLength)
	}
	return readings
}

// crashed returns whether the car overlaps a wall or an obstacle
func (r *RlCar) crashed() bool {
	if r.x < CarRadius || r.x > Width-CarRadius ||
		r.y < CarRadius || r.y > Height-CarRadius {
		return true
	}

	const rays = 8
	for i := 0; i < rays; i++ {
		angle := float64(i) * 2 * math.Pi / rays
		if r.rayCast(angle, CarRadius) < CarRadius {
			return true
		}
	}
	return false
}

// rayCast returns the distance from the car to the closest wall or
// obstacle in direction angle, or length if nothing is within length
func (r *RlCar) rayCast(angle, length float64) float64 {
	from := box2d.MakeB2Vec2(r.x/Scale, r.y/Scale)
	to := box2d.MakeB2Vec2(
		(r.x+length*math.Cos(angle))/Scale,
		(r.y+length*math.Sin(angle))/Scale,
	)

	closest := 1.0
	r.world.RayCast(func(_ *box2d.B2Fixture, _, _ box2d.B2Vec2,
		fraction float64) float64 {
		if fraction < closest {
			closest = fraction
		}

		// Clip the ray to the closest hit so far
		return fraction
	}, from, to)

	return closest * length
}

// StateCardinalities returns the number of bins of each sensor
func (r *RlCar) StateCardinalities() []int {
	return r.discretizer.Cardinalities()
}

// ActionNames returns the names of each action
func (r *RlCar) ActionNames() []string {
	return append([]string{}, ActionNames...)
}

// Position returns the car's position in pixels and heading in radians
func (r *RlCar) Position() (x, y, angle float64) {
	return r.x, r.y, r.angle
}

// Close destroys the Box2D world's bodies
func (r *RlCar) Close() error {
	if r.closed {
		return fmt.Errorf("close: environment already closed")
	}
	r.closed = true

	for _, o := range r.obstacles {
		r.world.DestroyBody(o.body)
	}
	for _, w := range r.walls {
		r.world.DestroyBody(w)
	}
	return nil
}

func (r *RlCar) String() string {
	str := "RlCar | At: (%.1f, %.1f)  |  Heading: %.1f°  |  Sensors: %v"
	return fmt.Sprintf(str, r.x, r.y, r.angle*180/math.Pi, r.readings)
}
