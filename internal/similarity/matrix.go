package similarity

import (
	"runtime"
	"sync"

	"github.com/JairAlexey/AnalisisDeMallas/internal/textnorm"
)

// ScoreFunc computes a similarity score in [0, 1] between two term sets.
type ScoreFunc func(a, b textnorm.TermSet) float64

// Matrix holds a symmetric pairwise similarity matrix. It is fully
// materialized before any grouping pass consumes it, so parallel
// computation cannot affect grouping order or output values.
type Matrix struct {
	scores [][]float64
}

// At returns the score between items i and j. The diagonal is 1.0 for
// non-empty sets by construction of the score functions.
func (m *Matrix) At(i, j int) float64 {
	return m.scores[i][j]
}

// Len returns the number of items the matrix covers.
func (m *Matrix) Len() int {
	return len(m.scores)
}

// ComputeMatrix computes the full pairwise matrix over sets using score.
// workers controls parallelism: 0 means runtime.NumCPU(), 1 forces a
// sequential pass. Each cell is written exactly once, so the result is
// identical regardless of worker count.
func ComputeMatrix(sets []textnorm.TermSet, score ScoreFunc, workers int) *Matrix {
	n := len(sets)
	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = make([]float64, n)
	}
	m := &Matrix{scores: scores}
	if n == 0 {
		return m
	}

	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	fillRow := func(i int) {
		scores[i][i] = score(sets[i], sets[i])
		for j := i + 1; j < n; j++ {
			s := score(sets[i], sets[j])
			scores[i][j] = s
			scores[j][i] = s
		}
	}

	if workers <= 1 {
		for i := 0; i < n; i++ {
			fillRow(i)
		}
		return m
	}

	var wg sync.WaitGroup
	rows := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				fillRow(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()

	return m
}
