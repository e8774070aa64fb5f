package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Arrange(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("coordinates stay inside the bounding box", func(t *testing.T) {
		nodes := make([]Node, 12)
		for i := range nodes {
			nodes[i] = Node{ID: string(rune('A' + i))}
		}
		edges := []Edge{}
		for i := 1; i < len(nodes); i++ {
			edges = append(edges, Edge{Source: 0, Target: i, Weight: 0.5})
		}

		Arrange(nodes, edges, cfg)

		for _, n := range nodes {
			require.GreaterOrEqual(t, n.X, 0.0, "node %s", n.ID)
			require.LessOrEqual(t, n.X, cfg.Width, "node %s", n.ID)
			require.GreaterOrEqual(t, n.Y, 0.0, "node %s", n.ID)
			require.LessOrEqual(t, n.Y, cfg.Height, "node %s", n.ID)
		}
	})

	t.Run("hub node ends up closer to the centroid than the spokes", func(t *testing.T) {
		nodes := make([]Node, 8)
		for i := range nodes {
			nodes[i] = Node{ID: string(rune('A' + i))}
		}
		edges := []Edge{}
		for i := 1; i < len(nodes); i++ {
			edges = append(edges, Edge{Source: 0, Target: i, Weight: 0.9})
		}

		Arrange(nodes, edges, cfg)

		var cx, cy float64
		for _, n := range nodes {
			cx += n.X
			cy += n.Y
		}
		cx /= float64(len(nodes))
		cy /= float64(len(nodes))

		hubDist := math.Hypot(nodes[0].X-cx, nodes[0].Y-cy)
		var spokeDist float64
		for _, n := range nodes[1:] {
			spokeDist += math.Hypot(n.X-cx, n.Y-cy)
		}
		spokeDist /= float64(len(nodes) - 1)

		require.Less(t, hubDist, spokeDist)
	})

	t.Run("deterministic for a fixed input order", func(t *testing.T) {
		build := func() ([]Node, []Edge) {
			nodes := []Node{{ID: "A"}, {ID: "B"}, {ID: "C"}}
			edges := []Edge{{Source: 0, Target: 1, Weight: 0.7}}
			return nodes, edges
		}
		first, firstEdges := build()
		second, secondEdges := build()
		Arrange(first, firstEdges, cfg)
		Arrange(second, secondEdges, cfg)

		for i := range first {
			require.Equal(t, first[i].X, second[i].X)
			require.Equal(t, first[i].Y, second[i].Y)
		}
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		Arrange(nil, nil, cfg)

		single := []Node{{ID: "A"}}
		Arrange(single, nil, cfg)
		require.Equal(t, cfg.Width/2+math.Min(cfg.Width, cfg.Height)/3, single[0].X)
		require.Equal(t, cfg.Height/2, single[0].Y)
	})
}
