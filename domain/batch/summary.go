package batch

// TypeCount is one entry of a batch's equipment type distribution.
type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// Summary is the aggregate view computed over one batch's equipment rows.
// Numeric aggregates are nil when no row carried the underlying reading.
type Summary struct {
	id      int64
	batchID int64

	totalCount       int64
	activeCount      int64
	inactiveCount    int64
	maintenanceCount int64

	typeDistribution []TypeCount

	avgFlowrate *float64
	maxFlowrate *float64
	minFlowrate *float64

	avgPressure    *float64
	avgTemperature *float64
}

// NewSummary creates a summary for the given batch.
func NewSummary(batchID int64) Summary {
	return Summary{batchID: batchID}
}

// ReconstructSummary rebuilds a summary from persisted state.
func ReconstructSummary(
	id, batchID int64,
	totalCount, activeCount, inactiveCount, maintenanceCount int64,
	typeDistribution []TypeCount,
	avgFlowrate, maxFlowrate, minFlowrate, avgPressure, avgTemperature *float64,
) Summary {
	return Summary{
		id:               id,
		batchID:          batchID,
		totalCount:       totalCount,
		activeCount:      activeCount,
		inactiveCount:    inactiveCount,
		maintenanceCount: maintenanceCount,
		typeDistribution: typeDistribution,
		avgFlowrate:      avgFlowrate,
		maxFlowrate:      maxFlowrate,
		minFlowrate:      minFlowrate,
		avgPressure:      avgPressure,
		avgTemperature:   avgTemperature,
	}
}

// ID returns the summary ID (zero until persisted).
func (s Summary) ID() int64 { return s.id }

// BatchID returns the summarized batch.
func (s Summary) BatchID() int64 { return s.batchID }

// TotalCount returns the number of equipment rows in the batch.
func (s Summary) TotalCount() int64 { return s.totalCount }

// ActiveCount returns the number of rows with status Active.
func (s Summary) ActiveCount() int64 { return s.activeCount }

// InactiveCount returns the number of rows with status Inactive.
func (s Summary) InactiveCount() int64 { return s.inactiveCount }

// MaintenanceCount returns the number of rows with status Maintenance.
func (s Summary) MaintenanceCount() int64 { return s.maintenanceCount }

// TypeDistribution returns the per-type counts, most frequent first. Ties
// break alphabetically so the order is deterministic.
func (s Summary) TypeDistribution() []TypeCount { return s.typeDistribution }

// AvgFlowrate returns the mean flowrate over rows carrying one, or nil.
func (s Summary) AvgFlowrate() *float64 { return s.avgFlowrate }

// MaxFlowrate returns the largest flowrate, or nil.
func (s Summary) MaxFlowrate() *float64 { return s.maxFlowrate }

// MinFlowrate returns the smallest flowrate, or nil.
func (s Summary) MinFlowrate() *float64 { return s.minFlowrate }

// AvgPressure returns the mean pressure over rows carrying one, or nil.
func (s Summary) AvgPressure() *float64 { return s.avgPressure }

// AvgTemperature returns the mean temperature over rows carrying one, or nil.
func (s Summary) AvgTemperature() *float64 { return s.avgTemperature }

// WithCounts sets the status counters.
func (s Summary) WithCounts(total, active, inactive, maintenance int64) Summary {
	s.totalCount = total
	s.activeCount = active
	s.inactiveCount = inactive
	s.maintenanceCount = maintenance
	return s
}

// WithTypeDistribution sets the per-type counts.
func (s Summary) WithTypeDistribution(dist []TypeCount) Summary {
	s.typeDistribution = dist
	return s
}

// WithFlowrateStats sets the flowrate aggregates.
func (s Summary) WithFlowrateStats(avg, max, min *float64) Summary {
	s.avgFlowrate = avg
	s.maxFlowrate = max
	s.minFlowrate = min
	return s
}

// WithPressureStats sets the mean pressure.
func (s Summary) WithPressureStats(avg *float64) Summary {
	s.avgPressure = avg
	return s
}

// WithTemperatureStats sets the mean temperature.
func (s Summary) WithTemperatureStats(avg *float64) Summary {
	s.avgTemperature = avg
	return s
}
