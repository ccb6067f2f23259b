package persistence

import (
	"github.com/plantfeed/plantfeed/domain/batch"
	"github.com/plantfeed/plantfeed/domain/equipment"
)

type batchMapper struct{}

func (batchMapper) ToDomain(m BatchModel) batch.Batch {
	return batch.Reconstruct(m.ID, m.Owner, m.Filename, m.ArtifactKey,
		m.UploadedAt, m.Processed, m.TotalRecords)
}

func (batchMapper) ToModel(b batch.Batch) BatchModel {
	return BatchModel{
		ID:           b.ID(),
		Owner:        b.Owner(),
		Filename:     b.Filename(),
		ArtifactKey:  b.ArtifactKey(),
		UploadedAt:   b.UploadedAt(),
		Processed:    b.Processed(),
		TotalRecords: b.TotalRecords(),
	}
}

type equipmentMapper struct{}

func (equipmentMapper) ToDomain(m EquipmentModel) equipment.Equipment {
	var batchID int64
	if m.BatchID != nil {
		batchID = *m.BatchID
	}
	rec := equipment.Record{
		EquipmentID:      m.EquipmentID,
		Name:             m.EquipmentName,
		Type:             m.EquipmentType,
		Manufacturer:     m.Manufacturer,
		ModelNumber:      m.ModelNumber,
		SerialNumber:     m.SerialNumber,
		Location:         m.Location,
		Status:           equipment.Status(m.Status),
		Notes:            m.Notes,
		Capacity:         m.Capacity,
		Flowrate:         m.Flowrate,
		Pressure:         m.Pressure,
		Temperature:      m.Temperature,
		InstallationDate: m.InstallationDate,
		LastMaintenance:  m.LastMaintenance,
		Attributes:       equipment.Attributes(m.Attributes),
	}
	return equipment.Reconstruct(m.ID, batchID, rec, m.CreatedAt, m.UpdatedAt)
}

func (equipmentMapper) ToModel(e equipment.Equipment) EquipmentModel {
	rec := e.Record()
	var batchID *int64
	if id := e.BatchID(); id != 0 {
		batchID = &id
	}
	return EquipmentModel{
		ID:               e.ID(),
		BatchID:          batchID,
		EquipmentID:      rec.EquipmentID,
		EquipmentName:    rec.Name,
		EquipmentType:    rec.Type,
		Manufacturer:     rec.Manufacturer,
		ModelNumber:      rec.ModelNumber,
		SerialNumber:     rec.SerialNumber,
		Location:         rec.Location,
		Status:           string(rec.Status),
		Notes:            rec.Notes,
		Capacity:         rec.Capacity,
		Flowrate:         rec.Flowrate,
		Pressure:         rec.Pressure,
		Temperature:      rec.Temperature,
		InstallationDate: rec.InstallationDate,
		LastMaintenance:  rec.LastMaintenance,
		Attributes:       AttributesJSON(rec.Attributes),
		CreatedAt:        e.CreatedAt(),
		UpdatedAt:        e.UpdatedAt(),
	}
}

type summaryMapper struct{}

func (summaryMapper) ToDomain(m SummaryModel) batch.Summary {
	return batch.ReconstructSummary(
		m.ID, m.BatchID,
		m.TotalCount, m.ActiveCount, m.InactiveCount, m.MaintenanceCount,
		m.TypeDistribution,
		m.AvgFlowrate, m.MaxFlowrate, m.MinFlowrate,
		m.AvgPressure, m.AvgTemperature,
	)
}

func (summaryMapper) ToModel(s batch.Summary) SummaryModel {
	return SummaryModel{
		ID:               s.ID(),
		BatchID:          s.BatchID(),
		TotalCount:       s.TotalCount(),
		ActiveCount:      s.ActiveCount(),
		InactiveCount:    s.InactiveCount(),
		MaintenanceCount: s.MaintenanceCount(),
		TypeDistribution: s.TypeDistribution(),
		AvgFlowrate:      s.AvgFlowrate(),
		MaxFlowrate:      s.MaxFlowrate(),
		MinFlowrate:      s.MinFlowrate(),
		AvgPressure:      s.AvgPressure(),
		AvgTemperature:   s.AvgTemperature(),
	}
}
