package optimizer

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mgallet/horaire/core/model"
)

// Fitness weights. The scheduled-count term dominates by construction: the
// tardiness and spread penalties are normalized so that an ordering placing
// more tasks always outranks one placing fewer.
const (
	scheduledWeight = 1000.0
	tardinessWeight = 10.0
	spreadWeight    = 1.0
)

// fitness scores an allocation outcome for the metaheuristic search. Higher
// is better: more tasks placed, less work past deadlines, flatter day loads.
func fitness(res *Result, p Params) float64 {
	score := scheduledWeight * float64(len(res.Tasks))
	score -= tardinessWeight * totalTardiness(res.Tasks)
	score -= spreadWeight * loadSpread(res.DailyAllocations, p.MaxHoursPerDay)
	return score
}

// sortedKeys fixes the summation order so equal allocations always produce
// bit-identical scores.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// totalTardiness sums hours allocated past each task's deadline. The forward
// allocator rolls those back, so this is zero unless the rollback logic
// regresses; keeping the term makes the fitness robust to that.
func totalTardiness(tasks []*model.Task) float64 {
	var tardy float64
	for _, t := range tasks {
		limit := deadlineDay(t)
		if limit == nil {
			continue
		}
		for _, k := range sortedKeys(t.DailyAllocations) {
			d, err := model.ParseDayKey(k)
			if err != nil {
				continue
			}
			if d.After(*limit) {
				tardy += t.DailyAllocations[k]
			}
		}
	}
	return tardy
}

// loadSpread measures day-load unevenness as the variance of per-day hours,
// normalized by the capacity cap so the penalty stays within one scheduled
// task's worth of score.
func loadSpread(alloc map[string]float64, maxHoursPerDay float64) float64 {
	if len(alloc) < 2 {
		return 0
	}
	loads := make([]float64, 0, len(alloc))
	for _, k := range sortedKeys(alloc) {
		loads = append(loads, alloc[k])
	}
	return stat.Variance(loads, nil) / (maxHoursPerDay * maxHoursPerDay)
}
