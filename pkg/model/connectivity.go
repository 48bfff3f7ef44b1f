package model

import (
	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/samber/lo"
)

// Adjacency is a symmetric wall-sharing predicate such as IsAdjacent or IsEdgeAdjacent.
type Adjacency func(b *cp.Builder, roomA, roomB *Room) cp.BoolVar

// Closure returns the reachability matrix of the rooms: entry (u, v) is true when a chain of
// adjacent rooms links u to v. Step k builds a new matrix from the previous one, so no entry is
// ever read after being replaced.
func Closure(b *cp.Builder, rooms []*Room, adjacent Adjacency) [][]cp.BoolVar {
	n := len(rooms)
	path := make([][]cp.BoolVar, n)
	for u := range n {
		path[u] = make([]cp.BoolVar, n)
	}
	for u := range n {
		for v := u; v < n; v++ {
			path[u][v] = adjacent(b, rooms[u], rooms[v])
			path[v][u] = path[u][v]
		}
	}

	for k := range n {
		next := make([][]cp.BoolVar, n)
		for u := range n {
			next[u] = make([]cp.BoolVar, n)
			for v := range n {
				next[u][v] = Or(b, path[u][v], And(b, path[u][k], path[k][v]))
			}
		}
		path = next
	}
	return path
}

// EnforceConnected requires the rooms to form a single connected component.
func EnforceConnected(b *cp.Builder, rooms []*Room, adjacent Adjacency) [][]cp.BoolVar {
	path := Closure(b, rooms, adjacent)
	b.AddBoolAnd(lo.Flatten(path)...)
	return path
}
