package optimizer

import "github.com/mgallet/horaire/core/model"

// MonteCarloOptimizer draws random task orderings, scores each through the
// greedy forward allocator and keeps the best. It is the degenerate
// single-generation, no-crossover case of the genetic search and shares its
// fitness function.
type MonteCarloOptimizer struct {
	Samples int
}

// NewMonteCarloOptimizer returns a sampler with the default budget.
func NewMonteCarloOptimizer() MonteCarloOptimizer {
	return MonteCarloOptimizer{Samples: 100}
}

func (m MonteCarloOptimizer) Optimize(tasks []*model.Task, existing map[string]float64, p Params) (*Result, error) {
	p.setDefaults()
	if err := p.validate(); err != nil {
		return nil, err
	}
	rng := newRand(p.Seed)

	samples := m.Samples
	if samples < 1 {
		samples = 1
	}

	var best *Result
	bestFit := 0.0
	for i := 0; i < samples; i++ {
		perm := rng.Perm(len(tasks))
		res, fit := evaluate(perm, tasks, existing, p)
		if best == nil || fit > bestFit {
			best, bestFit = res, fit
		}
	}
	return best, nil
}
