// Package network builds the social graphs that link households and
// answers neighborhood queries against them.
package network

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/graphs/gen"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// Topology names a supported graph family.
type Topology string

const (
	ErdosRenyi     Topology = "erdos_renyi"
	BarabasiAlbert Topology = "barabasi_albert"
	WattsStrogatz  Topology = "watts_strogatz"
	NoNetwork      Topology = "no_network"
)

// ParseTopology maps a config string onto a Topology.
func ParseTopology(name string) (Topology, error) {
	switch t := Topology(name); t {
	case ErdosRenyi, BarabasiAlbert, WattsStrogatz, NoNetwork:
		return t, nil
	}
	return "", fmt.Errorf("unknown network topology %q (valid: erdos_renyi, barabasi_albert, watts_strogatz, no_network)", name)
}

// Params carries the per-topology knobs. Each topology reads only the
// fields it needs.
type Params struct {
	// ConnectionProbability is the watts_strogatz rewiring probability.
	ConnectionProbability float64
	// AttachmentEdges is the barabasi_albert edge count per new node.
	AttachmentEdges int
	// NearestNeighbours sizes the erdos_renyi edge probability
	// (NearestNeighbours/n) and the watts_strogatz ring degree.
	NearestNeighbours int
}

// DefaultParams mirrors the stock configuration.
func DefaultParams() Params {
	return Params{
		ConnectionProbability: 0.4,
		AttachmentEdges:       3,
		NearestNeighbours:     5,
	}
}

// Network is an immutable social graph over households. Household i
// occupies node i-1.
type Network struct {
	g        *simple.UndirectedGraph
	topology Topology
}

// Build constructs an n-node graph of the requested topology. The
// generator draws from its own source at a fixed offset of the run
// seed so that population and network randomness stay independent.
func Build(topology Topology, n int, p Params, seed int64) (*Network, error) {
	if n <= 0 {
		return nil, fmt.Errorf("network size must be positive, got %d", n)
	}
	g := simple.NewUndirectedGraph()
	src := rand.New(rand.NewSource(seed + 400))

	switch topology {
	case NoNetwork:
		for i := 0; i < n; i++ {
			g.AddNode(simple.Node(i))
		}

	case ErdosRenyi:
		prob := float64(p.NearestNeighbours) / float64(n)
		if prob > 1 {
			prob = 1
		}
		if err := gen.Gnp(g, n, prob, src); err != nil {
			return nil, fmt.Errorf("build erdos_renyi graph: %w", err)
		}

	case BarabasiAlbert:
		if p.AttachmentEdges < 1 || p.AttachmentEdges >= n {
			return nil, fmt.Errorf("barabasi_albert attachment edges %d out of range [1,%d)", p.AttachmentEdges, n)
		}
		if err := gen.PreferentialAttachment(g, n, p.AttachmentEdges, src); err != nil {
			return nil, fmt.Errorf("build barabasi_albert graph: %w", err)
		}

	case WattsStrogatz:
		d := p.NearestNeighbours / 2
		if d < 1 {
			d = 1
		}
		if max := (n - 1) / 2; d > max {
			d = max
		}
		if d < 1 {
			return nil, fmt.Errorf("watts_strogatz needs at least 3 nodes, got %d", n)
		}
		if err := gen.SmallWorldsBB(g, n, d, p.ConnectionProbability, src); err != nil {
			return nil, fmt.Errorf("build watts_strogatz graph: %w", err)
		}

	default:
		return nil, fmt.Errorf("unknown network topology %q", topology)
	}

	return &Network{g: g, topology: topology}, nil
}

// NeighborCount reports how many households sit within radius hops of
// the given household, excluding the household itself. Unknown IDs
// count zero neighbors. A nil network is a wiring bug, not an empty
// neighborhood, so it panics.
func (n *Network) NeighborCount(householdID, radius int) int {
	if n == nil {
		panic("network: NeighborCount on nil network")
	}
	if radius < 1 {
		return 0
	}
	start := n.g.Node(int64(householdID - 1))
	if start == nil {
		return 0
	}

	count := 0
	bfs := traverse.BreadthFirst{}
	bfs.Walk(n.g, start, func(_ graph.Node, depth int) bool {
		if depth > radius {
			return true
		}
		if depth > 0 {
			count++
		}
		return false
	})
	return count
}

// NodeCount returns the number of households in the graph.
func (n *Network) NodeCount() int { return n.g.Nodes().Len() }

// EdgeCount returns the number of social ties in the graph.
func (n *Network) EdgeCount() int { return n.g.Edges().Len() }

// Kind reports which graph family the network was built from.
func (n *Network) Kind() Topology { return n.topology }
