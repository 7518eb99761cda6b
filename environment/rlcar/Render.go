package rlcar

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

// Render draws the arena, obstacles, car and sensor rays and saves the
// drawing as the next numbered PNG frame in the frame directory
func (r *RlCar) Render() error {
	if r.frameDir == "" {
		return nil
	}
	if err := os.MkdirAll(r.frameDir, 0o755); err != nil {
		return fmt.Errorf("render: could not create frame directory: %v",
			err)
	}

	dc := gg.NewContext(int(Width), int(Height))
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	// Images have y pointing down
	flip := func(y float64) float64 { return Height - y }

	// Walls
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Stroke()

	// Obstacles
	half := ObstacleSize / 2
	dc.SetRGB(0.6, 0.6, 0.6)
	for _, o := range r.obstacles {
		dc.DrawRectangle(o.x-half, flip(o.y+half), ObstacleSize,
			ObstacleSize)
	}
	dc.Fill()

	// Sensors
	dc.SetRGB(1, 1, 0)
	for i, angle := range SensorAngles {
		a := r.angle + angle*math.Pi/180
		d := r.readings[i]
		dc.DrawLine(r.x, flip(r.y), r.x+d*math.Cos(a), flip(r.y+d*math.Sin(a)))
	}
	dc.Stroke()

	// Car
	dc.SetRGB(1, 1, 1)
	dc.DrawCircle(r.x, flip(r.y), CarRadius)
	dc.Fill()

	filename := filepath.Join(r.frameDir, fmt.Sprintf("frame-%06d.png",
		r.frame))
	r.frame++

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("render: %v", err)
	}
	return nil
}
