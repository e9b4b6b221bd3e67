package optimizer

import (
	"math/rand"
	"time"

	"github.com/mgallet/horaire/core/model"
)

// GeneticOptimizer searches over task orderings with a permutation GA. Each
// candidate ordering is scored by running it through the greedy forward
// allocator; the best ordering ever seen wins.
type GeneticOptimizer struct {
	PopulationSize int
	Generations    int
	CrossoverRate  float64
	MutationRate   float64
}

// NewGeneticOptimizer returns a GA with the default search budget.
func NewGeneticOptimizer() GeneticOptimizer {
	return GeneticOptimizer{
		PopulationSize: 20,
		Generations:    50,
		CrossoverRate:  0.8,
		MutationRate:   0.2,
	}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// evaluate runs one ordering through the greedy allocator and scores it.
func evaluate(perm []int, tasks []*model.Task, existing map[string]float64, p Params) (*Result, float64) {
	ordered := make([]*model.Task, len(perm))
	for i, idx := range perm {
		ordered[i] = tasks[idx]
	}
	res, err := runForward(ordered, existing, p, InputOrder, false)
	if err != nil {
		return nil, 0
	}
	return res, fitness(res, p)
}

func (g GeneticOptimizer) Optimize(tasks []*model.Task, existing map[string]float64, p Params) (*Result, error) {
	p.setDefaults()
	if err := p.validate(); err != nil {
		return nil, err
	}
	rng := newRand(p.Seed)

	popSize := g.PopulationSize
	if popSize < 2 {
		popSize = 2
	}
	n := len(tasks)

	pop := make([][]int, popSize)
	for i := range pop {
		pop[i] = rng.Perm(n)
	}

	var best *Result
	bestFit := 0.0
	scores := make([]float64, popSize)
	score := func(perm []int) float64 {
		res, fit := evaluate(perm, tasks, existing, p)
		if best == nil || fit > bestFit {
			best, bestFit = res, fit
		}
		return fit
	}

	for i, perm := range pop {
		scores[i] = score(perm)
	}

	for gen := 0; gen < g.Generations; gen++ {
		next := make([][]int, 0, popSize)
		for len(next) < popSize {
			a := tournament(pop, scores, rng)
			b := tournament(pop, scores, rng)
			child := append([]int(nil), a...)
			if rng.Float64() < g.CrossoverRate && n > 1 {
				child = orderCrossover(a, b, rng)
			}
			if rng.Float64() < g.MutationRate && n > 1 {
				i, j := rng.Intn(n), rng.Intn(n)
				child[i], child[j] = child[j], child[i]
			}
			next = append(next, child)
		}
		pop = next
		for i, perm := range pop {
			scores[i] = score(perm)
		}
	}

	if best == nil {
		// Empty batch: nothing to search, run the greedy allocator once.
		return runForward(tasks, existing, p, InputOrder, false)
	}
	return best, nil
}

// tournament picks the fittest of three random population members.
func tournament(pop [][]int, scores []float64, rng *rand.Rand) []int {
	best := rng.Intn(len(pop))
	for k := 0; k < 2; k++ {
		i := rng.Intn(len(pop))
		if scores[i] > scores[best] {
			best = i
		}
	}
	return pop[best]
}

// orderCrossover (OX) keeps a random segment of parent a and fills the rest
// with parent b's tasks in b's order, preserving permutation membership.
func orderCrossover(a, b []int, rng *rand.Rand) []int {
	n := len(a)
	lo, hi := rng.Intn(n), rng.Intn(n)
	if lo > hi {
		lo, hi = hi, lo
	}
	child := make([]int, n)
	used := make(map[int]bool, hi-lo+1)
	for i := lo; i <= hi; i++ {
		child[i] = a[i]
		used[a[i]] = true
	}
	pos := (hi + 1) % n
	for k := 0; k < n; k++ {
		v := b[(hi+1+k)%n]
		if used[v] {
			continue
		}
		child[pos] = v
		pos = (pos + 1) % n
	}
	return child
}
