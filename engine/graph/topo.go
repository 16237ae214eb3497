package graph

import (
	"sort"

	"github.com/vizij-ai/vizij-go-runtime/engine/diagnostics"
)

// topoOrder computes a topological ordering of spec's nodes using Kahn's
// algorithm; among nodes simultaneously ready, the lexically smallest id
// is emitted first, for a deterministic order across runs. A cycle
// produces a CycleError naming every node that never reached zero
// in-degree.
func topoOrder(spec GraphSpec) ([]string, error) {
	indeg := make(map[string]int, len(spec.Nodes))
	adj := make(map[string][]string, len(spec.Nodes))

	for _, n := range spec.Nodes {
		if _, ok := indeg[n.ID]; !ok {
			indeg[n.ID] = 0
		}
	}
	for _, n := range spec.Nodes {
		for _, conn := range n.Inputs {
			if _, ok := indeg[conn.NodeID]; !ok {
				continue // dangling reference; treated as having no effect on ordering
			}
			adj[conn.NodeID] = append(adj[conn.NodeID], n.ID)
			indeg[n.ID]++
		}
	}

	frontier := make([]string, 0, len(indeg))
	for id, d := range indeg {
		if d == 0 {
			frontier = append(frontier, id)
		}
	}
	sort.Strings(frontier)

	order := make([]string, 0, len(indeg))
	for len(frontier) > 0 {
		sort.Strings(frontier)
		u := frontier[0]
		frontier = frontier[1:]
		order = append(order, u)

		next := append([]string(nil), adj[u]...)
		sort.Strings(next)
		for _, v := range next {
			indeg[v]--
			if indeg[v] == 0 {
				frontier = append(frontier, v)
			}
		}
	}

	if len(order) != len(indeg) {
		var stuck []string
		visited := make(map[string]bool, len(order))
		for _, id := range order {
			visited[id] = true
		}
		for id := range indeg {
			if !visited[id] {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)
		return nil, &diagnostics.CycleError{NodeIDs: stuck}
	}
	return order, nil
}
