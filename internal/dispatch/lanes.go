package dispatch

import "sort"

// Lane is an ordered list of non-overlapping tour runs.
type Lane []TourRun

// Lanes partitions a guide's runs into display lanes so nothing overlaps
// horizontally. Greedy single pass: sort by start time, place each run in the
// first lane whose last run ends at or before this run's start, else open a
// new lane. True overlaps are already forbidden by the drop validator, so
// extra lanes mostly appear during transient states such as optimistic
// updates.
func Lanes(runs []TourRun) []Lane {
	if len(runs) == 0 {
		return nil
	}

	sorted := make([]TourRun, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Key < sorted[j].Key
	})

	var lanes []Lane
	for _, run := range sorted {
		placed := false
		for i, lane := range lanes {
			last := lane[len(lane)-1]
			if last.End <= run.Start {
				lanes[i] = append(lanes[i], run)
				placed = true
				break
			}
		}
		if !placed {
			lanes = append(lanes, Lane{run})
		}
	}
	return lanes
}
