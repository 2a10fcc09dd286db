// Package cluster groups embedding vectors with density-based clustering.
package cluster

import (
	"errors"
	"fmt"

	"github.com/viterin/vek/vek32"
)

// Noise marks a point that is not density-reachable from any core point.
// It never appears when MinSamples is 1.
const Noise = -1

const (
	DefaultEps        = 1.1
	DefaultMinSamples = 1
)

var ErrInvalidParams = errors.New("cluster: eps must be > 0 and min samples >= 1")

// DBSCAN assigns labels using euclidean distance. Two points share a label
// when a chain of core points connects them with every hop <= Eps.
type DBSCAN struct {
	Eps        float64
	MinSamples int
}

func New(eps float64, minSamples int) (*DBSCAN, error) {
	d := &DBSCAN{Eps: eps, MinSamples: minSamples}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DBSCAN) validate() error {
	if d.Eps <= 0 || d.MinSamples < 1 {
		return fmt.Errorf("%w (eps=%v, min_samples=%d)", ErrInvalidParams, d.Eps, d.MinSamples)
	}
	return nil
}

// Fit returns one label per vector, in input order. Labels are 0, 1, 2, ...
// in order of discovery by input index, so the same input yields the same labels.
func (d *DBSCAN) Fit(vectors [][]float32) ([]int, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return []int{}, nil
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("cluster: vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}

	neighbours := d.regionQueries(vectors)

	const unvisited = -2
	labels := make([]int, len(vectors))
	for i := range labels {
		labels[i] = unvisited
	}

	next := 0
	for i := range vectors {
		if labels[i] != unvisited {
			continue
		}
		if len(neighbours[i]) < d.MinSamples {
			labels[i] = Noise
			continue
		}

		labels[i] = next
		queue := append([]int(nil), neighbours[i]...)
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]

			if labels[j] == Noise {
				// border point
				labels[j] = next
			}
			if labels[j] != unvisited {
				continue
			}
			labels[j] = next
			if len(neighbours[j]) >= d.MinSamples {
				queue = append(queue, neighbours[j]...)
			}
		}
		next++
	}

	return labels, nil
}

// regionQueries returns, for every point, the indexes within Eps (itself included).
func (d *DBSCAN) regionQueries(vectors [][]float32) [][]int {
	eps := float32(d.Eps)
	n := len(vectors)
	out := make([][]int, n)
	for i := 0; i < n; i++ {
		out[i] = append(out[i], i)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if vek32.Distance(vectors[i], vectors[j]) <= eps {
				out[i] = append(out[i], j)
				out[j] = append(out[j], i)
			}
		}
	}
	return out
}

// Partition groups input indexes by label, ordered by each group's first index.
// Comparing partitions instead of raw labels ignores label numbering.
func Partition(labels []int) [][]int {
	index := make(map[int]int)
	var groups [][]int
	for i, label := range labels {
		if label == Noise {
			groups = append(groups, []int{i})
			continue
		}
		g, ok := index[label]
		if !ok {
			g = len(groups)
			index[label] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}
