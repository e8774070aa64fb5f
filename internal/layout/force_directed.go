// Package layout places correlation-network nodes with a
// Fruchterman-Reingold force simulation. The result is visual-only: the only
// guarantee is that coordinates end up inside the bounding box after the
// fixed iteration budget.
package layout

import "math"

type Node struct {
	ID string
	X  float64
	Y  float64
}

type Edge struct {
	Source int
	Target int
	// Weight scales the attractive force; correlation networks pass |rho|.
	Weight float64
}

type Config struct {
	Width      float64
	Height     float64
	Iterations int
}

func DefaultConfig() Config {
	return Config{Width: 800, Height: 600, Iterations: 150}
}

// Arrange mutates the nodes' coordinates in place. Initial positions lie on a
// circle in index order, so the layout is deterministic for a given node and
// edge ordering.
func Arrange(nodes []Node, edges []Edge, cfg Config) {
	n := len(nodes)
	if n == 0 {
		return
	}

	cx, cy := cfg.Width/2, cfg.Height/2
	radius := math.Min(cfg.Width, cfg.Height) / 3
	for i := range nodes {
		angle := 2 * math.Pi * float64(i) / float64(n)
		nodes[i].X = cx + radius*math.Cos(angle)
		nodes[i].Y = cy + radius*math.Sin(angle)
	}
	if n == 1 {
		return
	}

	area := cfg.Width * cfg.Height
	k := math.Sqrt(area / float64(n))
	temperature := cfg.Width / 10
	cooling := temperature / float64(cfg.Iterations+1)

	dispX := make([]float64, n)
	dispY := make([]float64, n)

	for iter := 0; iter < cfg.Iterations; iter++ {
		for i := range dispX {
			dispX[i], dispY[i] = 0, 0
		}

		// pairwise repulsion, inverse to distance
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := nodes[i].X - nodes[j].X
				dy := nodes[i].Y - nodes[j].Y
				dist := math.Hypot(dx, dy)
				if dist < 1e-9 {
					// coincident nodes push apart along a fixed axis
					dx, dy, dist = 1e-3, 1e-3, math.Sqrt2*1e-3
				}
				force := k * k / dist
				dispX[i] += dx / dist * force
				dispY[i] += dy / dist * force
				dispX[j] -= dx / dist * force
				dispY[j] -= dy / dist * force
			}
		}

		// edge attraction, scaled by weight
		for _, e := range edges {
			if e.Source == e.Target || e.Source >= n || e.Target >= n {
				continue
			}
			dx := nodes[e.Source].X - nodes[e.Target].X
			dy := nodes[e.Source].Y - nodes[e.Target].Y
			dist := math.Hypot(dx, dy)
			if dist < 1e-9 {
				continue
			}
			force := dist * dist / k * e.Weight
			dispX[e.Source] -= dx / dist * force
			dispY[e.Source] -= dy / dist * force
			dispX[e.Target] += dx / dist * force
			dispY[e.Target] += dy / dist * force
		}

		// displacement clamped by the cooling temperature
		for i := range nodes {
			disp := math.Hypot(dispX[i], dispY[i])
			if disp < 1e-9 {
				continue
			}
			limited := math.Min(disp, temperature)
			nodes[i].X += dispX[i] / disp * limited
			nodes[i].Y += dispY[i] / disp * limited
		}
		temperature -= cooling
		if temperature < 1e-3 {
			temperature = 1e-3
		}
	}

	for i := range nodes {
		nodes[i].X = clamp(nodes[i].X, 0, cfg.Width)
		nodes[i].Y = clamp(nodes[i].Y, 0, cfg.Height)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
