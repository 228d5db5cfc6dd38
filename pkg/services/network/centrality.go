package network

import "sort"

// adjacency is an undirected weighted graph over node indexes.
type adjacency struct {
	neighbors [][]int
	weights   [][]float64
}

func newAdjacency(n int) *adjacency {
	return &adjacency{
		neighbors: make([][]int, n),
		weights:   make([][]float64, n),
	}
}

func (a *adjacency) connect(u, v int, weight float64) {
	a.neighbors[u] = append(a.neighbors[u], v)
	a.weights[u] = append(a.weights[u], weight)
	a.neighbors[v] = append(a.neighbors[v], u)
	a.weights[v] = append(a.weights[v], weight)
}

func (a *adjacency) size() int {
	return len(a.neighbors)
}

const (
	pageRankDamping    = 0.85
	pageRankIterations = 20
	labelIterations    = 10
)

// pageRank runs weighted power iteration, spreading the mass of nodes without
// edges evenly, and normalises scores so the most central node scores 1.
func pageRank(a *adjacency) []float64 {
	n := a.size()
	if n == 0 {
		return nil
	}

	strength := make([]float64, n)
	for u := range a.neighbors {
		for _, w := range a.weights[u] {
			strength[u] += w
		}
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / float64(n)
	}

	for iter := 0; iter < pageRankIterations; iter++ {
		dangling := 0.0
		for u := range scores {
			if strength[u] == 0 {
				dangling += scores[u]
			}
		}

		next := make([]float64, n)
		base := (1-pageRankDamping)/float64(n) + pageRankDamping*dangling/float64(n)
		for v := range next {
			next[v] = base
		}
		for u, nbrs := range a.neighbors {
			if strength[u] == 0 {
				continue
			}
			for i, v := range nbrs {
				next[v] += pageRankDamping * scores[u] * a.weights[u][i] / strength[u]
			}
		}
		scores = next
	}

	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore > 0 {
		for i := range scores {
			scores[i] /= maxScore
		}
	}
	return scores
}

// betweenness is Brandes' algorithm over unweighted shortest paths, normalised
// for an undirected graph so values fall in [0, 1].
func betweenness(a *adjacency) []float64 {
	n := a.size()
	cb := make([]float64, n)
	if n < 3 {
		return cb
	}

	sigma := make([]float64, n)
	dist := make([]int, n)
	delta := make([]float64, n)
	preds := make([][]int, n)
	stack := make([]int, 0, n)
	queue := make([]int, 0, n)

	for s := 0; s < n; s++ {
		for i := 0; i < n; i++ {
			sigma[i] = 0
			dist[i] = -1
			delta[i] = 0
			preds[i] = preds[i][:0]
		}
		sigma[s] = 1
		dist[s] = 0
		stack = stack[:0]
		queue = append(queue[:0], s)

		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range a.neighbors[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	// each pair was counted from both ends
	scale := 1 / float64((n-1)*(n-2))
	for i := range cb {
		cb[i] *= scale
	}
	return cb
}

// communities runs weighted label propagation over nodes that have at least
// one edge. Ties go to the smallest label so results are reproducible.
// Communities are ordered by size, then by their first member.
func communities(a *adjacency) [][]int {
	n := a.size()
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i
	}

	for iter := 0; iter < labelIterations; iter++ {
		changed := false
		for u := 0; u < n; u++ {
			if len(a.neighbors[u]) == 0 {
				continue
			}
			votes := make(map[int]float64)
			for i, v := range a.neighbors[u] {
				votes[labels[v]] += a.weights[u][i]
			}
			best, bestVotes := labels[u], -1.0
			for label, count := range votes {
				if count > bestVotes || (count == bestVotes && label < best) {
					best, bestVotes = label, count
				}
			}
			if best != labels[u] {
				labels[u] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	groups := make(map[int][]int)
	for u := 0; u < n; u++ {
		if len(a.neighbors[u]) == 0 {
			continue
		}
		groups[labels[u]] = append(groups[labels[u]], u)
	}

	out := make([][]int, 0, len(groups))
	for _, members := range groups {
		out = append(out, members)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i][0] < out[j][0]
	})
	return out
}
