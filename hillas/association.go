package hillas

import (
	"github.com/arthurkushman/go-hungarian"
)

// MatchingAlgorithm is for algorithm type for matching observations to identities
type MatchingAlgorithm uint16

const (
	// MatchingAlgorithmGreedy assigns each observation, in input order, the nearest unclaimed identity
	MatchingAlgorithmGreedy MatchingAlgorithm = iota
	// MatchingAlgorithmHungarian uses the Hungarian algorithm (Kuhn-Munkres) for globally optimal assignment.
	// Results may differ from the greedy rule when observations compete for an identity.
	MatchingAlgorithmHungarian
)

func (m MatchingAlgorithm) String() string {
	switch m {
	case MatchingAlgorithmGreedy:
		return "greedy"
	case MatchingAlgorithmHungarian:
		return "hungarian"
	default:
		return "unknown"
	}
}

// associateGreedy returns, for every position, the claimed prior identity or 0.
// priors must be sorted in ascending order.
func associateGreedy(positions []Point, priors []int, lastPositions map[int]Point, maxDistance float64) []int {
	matches := make([]int, len(positions))
	claimed := make(map[int]struct{}, len(priors))
	for i, pos := range positions {
		candidates := make(candidateHeap, 0, len(priors))
		for _, identity := range priors {
			dist := euclideanDistance(pos, lastPositions[identity])
			if dist <= maxDistance {
				candidates.Push(candidate{identity: identity, distance: dist})
			}
		}
		for candidates.Len() > 0 {
			c := candidates.Pop()
			if _, ok := claimed[c.identity]; ok {
				continue
			}
			claimed[c.identity] = struct{}{}
			matches[i] = c.identity
			break
		}
	}
	return matches
}

// associateHungarian maximises the total gated similarity (maxDistance - distance + 1)
// over all observation/identity pairs. Pairs beyond maxDistance are never matched.
func associateHungarian(positions []Point, priors []int, lastPositions map[int]Point, maxDistance float64) []int {
	matches := make([]int, len(positions))
	if len(positions) == 0 || len(priors) == 0 {
		return matches
	}
	size := maxInt(len(positions), len(priors))
	// Padding is done with 0.0 values (never preferred over a gated pair)
	similarity := make([][]float64, size)
	for i := range similarity {
		similarity[i] = make([]float64, size)
	}
	for i, pos := range positions {
		for j, identity := range priors {
			dist := euclideanDistance(pos, lastPositions[identity])
			if dist <= maxDistance {
				similarity[i][j] = maxDistance - dist + 1
			}
		}
	}
	assignments := hungarian.SolveMax(similarity)
	for row, cols := range assignments {
		if row >= len(positions) {
			continue
		}
		for col := range cols {
			if col < len(priors) && similarity[row][col] > 0 {
				matches[row] = priors[col]
			}
			break
		}
	}
	return matches
}
