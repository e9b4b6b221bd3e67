package optimizer

import (
	"github.com/mgallet/horaire/core/factory"
)

// Algorithm names accepted by New.
const (
	AlgGreedy           = "greedy"
	AlgBalanced         = "balanced"
	AlgBackward         = "backward"
	AlgPriorityFirst    = "priority_first"
	AlgEarliestDeadline = "earliest_deadline"
	AlgRoundRobin       = "round_robin"
	AlgDependencyAware  = "dependency_aware"
	AlgGenetic          = "genetic"
	AlgMonteCarlo       = "monte_carlo"
)

var registry = factory.NewRegistry[Strategy]()

type roundRobinConf struct {
	SliceHours float64 `json:"slice_hours"`
}

type geneticConf struct {
	PopulationSize int     `json:"population_size"`
	Generations    int     `json:"generations"`
	CrossoverRate  float64 `json:"crossover_rate"`
	MutationRate   float64 `json:"mutation_rate"`
}

type monteCarloConf struct {
	Samples int `json:"samples"`
}

func mustRegister(name string, b factory.Builder[Strategy]) {
	if err := registry.Register(name, b); err != nil {
		panic(err)
	}
}

func init() {
	mustRegister(AlgGreedy, func(map[string]any) (Strategy, error) {
		return GreedyAllocator{}, nil
	})
	mustRegister(AlgBalanced, func(map[string]any) (Strategy, error) {
		return BalancedAllocator{}, nil
	})
	mustRegister(AlgBackward, func(map[string]any) (Strategy, error) {
		return BackwardAllocator{}, nil
	})
	mustRegister(AlgPriorityFirst, func(map[string]any) (Strategy, error) {
		return PriorityAllocator{}, nil
	})
	mustRegister(AlgEarliestDeadline, func(map[string]any) (Strategy, error) {
		return DeadlineAllocator{}, nil
	})
	mustRegister(AlgDependencyAware, func(map[string]any) (Strategy, error) {
		return DependencyAllocator{}, nil
	})
	mustRegister(AlgRoundRobin, func(conf map[string]any) (Strategy, error) {
		var c roundRobinConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return RoundRobinAllocator{SliceHours: c.SliceHours}, nil
	})
	mustRegister(AlgGenetic, func(conf map[string]any) (Strategy, error) {
		g := NewGeneticOptimizer()
		var c geneticConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.PopulationSize > 0 {
			g.PopulationSize = c.PopulationSize
		}
		if c.Generations > 0 {
			g.Generations = c.Generations
		}
		if c.CrossoverRate > 0 {
			g.CrossoverRate = c.CrossoverRate
		}
		if c.MutationRate > 0 {
			g.MutationRate = c.MutationRate
		}
		return g, nil
	})
	mustRegister(AlgMonteCarlo, func(conf map[string]any) (Strategy, error) {
		m := NewMonteCarloOptimizer()
		var c monteCarloConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Samples > 0 {
			m.Samples = c.Samples
		}
		return m, nil
	})
}

// New resolves an algorithm name to a strategy instance. conf carries
// strategy-specific settings (slice hours, search budgets) and may be nil.
// Unknown names are a configuration error.
func New(name string, conf map[string]any) (Strategy, error) {
	return registry.Create(name, conf)
}

// Names lists the available algorithm names.
func Names() []string {
	return registry.Names()
}
