package service

import (
	"context"
	"math"

	"github.com/plantfeed/plantfeed/domain/batch"
	"github.com/plantfeed/plantfeed/domain/equipment"
	"github.com/plantfeed/plantfeed/domain/store"
)

// chartLimit caps the flowrate chart at the top readings.
const chartLimit = 20

// EquipmentFilter narrows equipment queries. Zero values mean "no filter".
type EquipmentFilter struct {
	BatchID *int64
	Type    string
	Status  equipment.Status
	Search  string
	Limit   int
	Offset  int
}

// FlowrateChart is the data behind a flowrate bar chart: the top active
// readings, largest first.
type FlowrateChart struct {
	EquipmentIDs []string
	Flowrates    []float64
}

// TypeDistribution is the data behind a type distribution chart.
type TypeDistribution struct {
	Types       []string
	Counts      []int64
	Percentages []float64
}

// Dashboard is the owner-wide rollup across all retained batches.
type Dashboard struct {
	TotalEquipment       int64
	ActiveEquipment      int64
	InactiveEquipment    int64
	MaintenanceEquipment int64
	AvgFlowrate          *float64
	AvgPressure          *float64
	AvgTemperature       *float64
	TotalTypes           int
}

// EquipmentQuery answers read queries over an owner's equipment. Every query
// is scoped to the batches the owner still retains.
type EquipmentQuery struct {
	stores Stores
}

// NewEquipmentQuery creates the equipment query service.
func NewEquipmentQuery(stores Stores) *EquipmentQuery {
	return &EquipmentQuery{stores: stores}
}

// Find returns the owner's equipment matching the filter, ordered by
// equipment ID.
func (s *EquipmentQuery) Find(ctx context.Context, owner string, filter EquipmentFilter) ([]equipment.Equipment, error) {
	opts, empty, err := s.scope(ctx, owner)
	if err != nil || empty {
		return nil, err
	}

	if filter.BatchID != nil {
		opts = append(opts, equipment.WithBatchID(*filter.BatchID))
	}
	if filter.Type != "" {
		opts = append(opts, equipment.WithType(filter.Type))
	}
	if filter.Status != "" {
		opts = append(opts, equipment.WithStatus(filter.Status))
	}
	if filter.Search != "" {
		opts = append(opts, equipment.WithSearch(filter.Search))
	}
	if filter.Limit > 0 {
		opts = append(opts, store.WithLimit(filter.Limit), store.WithOffset(filter.Offset))
	}
	opts = append(opts, equipment.OrderByEquipmentID())

	return s.stores.Equipment.Find(ctx, opts...)
}

// Types returns the distinct equipment types across the owner's batches.
func (s *EquipmentQuery) Types(ctx context.Context, owner string) ([]string, error) {
	opts, empty, err := s.scope(ctx, owner)
	if err != nil || empty {
		return nil, err
	}
	return s.stores.Equipment.DistinctTypes(ctx, opts...)
}

// Dashboard computes the owner-wide rollup. Averages are rounded to two
// decimals; with no readings they stay nil.
func (s *EquipmentQuery) Dashboard(ctx context.Context, owner string) (Dashboard, error) {
	opts, empty, err := s.scope(ctx, owner)
	if err != nil || empty {
		return Dashboard{}, err
	}

	rows, err := s.stores.Equipment.Find(ctx, opts...)
	if err != nil {
		return Dashboard{}, err
	}

	var dash Dashboard
	types := make(map[string]struct{})
	var flowrates, pressures, temperatures []float64
	for _, eq := range rows {
		dash.TotalEquipment++
		switch eq.Status() {
		case equipment.StatusActive:
			dash.ActiveEquipment++
		case equipment.StatusInactive:
			dash.InactiveEquipment++
		case equipment.StatusMaintenance:
			dash.MaintenanceEquipment++
		}
		types[eq.Type()] = struct{}{}

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
	dash.AvgFlowrate = round2(mean(flowrates))
	dash.AvgPressure = round2(mean(pressures))
	dash.AvgTemperature = round2(mean(temperatures))
	dash.TotalTypes = len(types)
	return dash, nil
}

// FlowrateChart returns the owner's top active flowrate readings, optionally
// narrowed to one batch.
func (s *EquipmentQuery) FlowrateChart(ctx context.Context, owner string, batchID *int64) (FlowrateChart, error) {
	opts, empty, err := s.scope(ctx, owner)
	if err != nil || empty {
		return FlowrateChart{}, err
	}
	if batchID != nil {
		opts = append(opts, equipment.WithBatchID(*batchID))
	}
	opts = append(opts,
		equipment.WithStatus(equipment.StatusActive),
		equipment.WithFlowrate(),
		store.WithOrderDesc("flowrate"),
		store.WithLimit(chartLimit),
	)

	rows, err := s.stores.Equipment.Find(ctx, opts...)
	if err != nil {
		return FlowrateChart{}, err
	}

	chart := FlowrateChart{
		EquipmentIDs: make([]string, 0, len(rows)),
		Flowrates:    make([]float64, 0, len(rows)),
	}
	for _, eq := range rows {
		chart.EquipmentIDs = append(chart.EquipmentIDs, eq.EquipmentID())
		chart.Flowrates = append(chart.Flowrates, *eq.Record().Flowrate)
	}
	return chart, nil
}

// TypeDistribution returns the owner's equipment type distribution with
// percentages, optionally narrowed to one batch.
func (s *EquipmentQuery) TypeDistribution(ctx context.Context, owner string, batchID *int64) (TypeDistribution, error) {
	opts, empty, err := s.scope(ctx, owner)
	if err != nil || empty {
		return TypeDistribution{}, err
	}
	if batchID != nil {
		opts = append(opts, equipment.WithBatchID(*batchID))
	}

	rows, err := s.stores.Equipment.Find(ctx, opts...)
	if err != nil {
		return TypeDistribution{}, err
	}

	counts := make(map[string]int64)
	for _, eq := range rows {
		counts[eq.Type()]++
	}
	dist := orderedDistribution(counts)

	var total int64
	for _, tc := range dist {
		total += tc.Count
	}

	out := TypeDistribution{
		Types:       make([]string, 0, len(dist)),
		Counts:      make([]int64, 0, len(dist)),
		Percentages: make([]float64, 0, len(dist)),
	}
	for _, tc := range dist {
		out.Types = append(out.Types, tc.Type)
		out.Counts = append(out.Counts, tc.Count)
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(tc.Count)/float64(total)*100*100) / 100
		}
		out.Percentages = append(out.Percentages, pct)
	}
	return out, nil
}

// scope restricts a query to the owner's retained batches. empty is true when
// the owner has no batches at all, in which case no query is needed.
func (s *EquipmentQuery) scope(ctx context.Context, owner string) (opts []store.Option, empty bool, err error) {
	batches, err := s.stores.Batches.Find(ctx, batch.WithOwner(owner))
	if err != nil {
		return nil, false, err
	}
	if len(batches) == 0 {
		return nil, true, nil
	}
	ids := make([]int64, len(batches))
	for i, b := range batches {
		ids[i] = b.ID()
	}
	return []store.Option{equipment.WithBatchIDIn(ids)}, false, nil
}

func round2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*100) / 100
	return &r
}
