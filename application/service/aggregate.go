package service

import (
	"sort"

	"github.com/plantfeed/plantfeed/domain/batch"
	"github.com/plantfeed/plantfeed/domain/equipment"
)

// Aggregate computes the summary for one batch's equipment rows. Only the
// three tracked statuses get their own bucket; anything else counts toward
// the total only. Numeric aggregates run over rows that carry the reading and
// stay nil when none does.
func Aggregate(batchID int64, items []equipment.Equipment) batch.Summary {
	var active, inactive, maintenance int64
	typeCounts := make(map[string]int64)

	var flowrates, pressures, temperatures []float64
	for _, eq := range items {
		switch eq.Status() {
		case equipment.StatusActive:
			active++
		case equipment.StatusInactive:
			inactive++
		case equipment.StatusMaintenance:
			maintenance++
		}
		typeCounts[eq.Type()]++

		rec := eq.Record()
		if rec.Flowrate != nil {
			flowrates = append(flowrates, *rec.Flowrate)
		}
		if rec.Pressure != nil {
			pressures = append(pressures, *rec.Pressure)
		}
		if rec.Temperature != nil {
			temperatures = append(temperatures, *rec.Temperature)
		}
	}

	avgFlow, maxFlow, minFlow := stats(flowrates)

	return batch.NewSummary(batchID).
		WithCounts(int64(len(items)), active, inactive, maintenance).
		WithTypeDistribution(orderedDistribution(typeCounts)).
		WithFlowrateStats(avgFlow, maxFlow, minFlow).
		WithPressureStats(mean(pressures)).
		WithTemperatureStats(mean(temperatures))
}

// orderedDistribution sorts counts descending, ties alphabetically, so equal
// inputs always summarize identically.
func orderedDistribution(counts map[string]int64) []batch.TypeCount {
	if len(counts) == 0 {
		return nil
	}
	dist := make([]batch.TypeCount, 0, len(counts))
	for name, count := range counts {
		dist = append(dist, batch.TypeCount{Type: name, Count: count})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Type < dist[j].Type
	})
	return dist
}

func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	return &avg
}

func stats(values []float64) (avg, max, min *float64) {
	if len(values) == 0 {
		return nil, nil, nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v > hi {
			hi = v
		}
		if v < lo {
			lo = v
		}
	}
	return mean(values), &hi, &lo
}
