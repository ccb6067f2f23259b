// Package batch holds the upload batch aggregate and its per-batch summary.
// A batch records one ingested file for one owner; owners keep only their most
// recent batches, older ones are evicted together with their equipment rows,
// summary and stored artifact.
package batch

import "time"

// Batch is one ingested upload for an owner.
type Batch struct {
	id           int64
	owner        string
	filename     string
	artifactKey  string
	uploadedAt   time.Time
	processed    bool
	totalRecords int
}

// New creates an unprocessed batch for the given owner and source filename.
// The artifact key points at the retained copy of the raw file.
func New(owner, filename, artifactKey string) Batch {
	return Batch{owner: owner, filename: filename, artifactKey: artifactKey}
}

// Reconstruct rebuilds a batch from persisted state.
func Reconstruct(id int64, owner, filename, artifactKey string, uploadedAt time.Time, processed bool, totalRecords int) Batch {
	return Batch{
		id:           id,
		owner:        owner,
		filename:     filename,
		artifactKey:  artifactKey,
		uploadedAt:   uploadedAt,
		processed:    processed,
		totalRecords: totalRecords,
	}
}

// ID returns the batch ID (zero until persisted).
func (b Batch) ID() int64 { return b.id }

// Owner returns the owning principal.
func (b Batch) Owner() string { return b.owner }

// Filename returns the original upload filename.
func (b Batch) Filename() string { return b.filename }

// ArtifactKey returns the storage key of the retained raw file.
func (b Batch) ArtifactKey() string { return b.artifactKey }

// UploadedAt returns the ingestion time.
func (b Batch) UploadedAt() time.Time { return b.uploadedAt }

// Processed reports whether ingestion completed for this batch.
func (b Batch) Processed() bool { return b.processed }

// TotalRecords returns the number of rows persisted from this batch.
func (b Batch) TotalRecords() int { return b.totalRecords }

// Complete marks the batch processed with its final record count.
func (b Batch) Complete(totalRecords int) Batch {
	b.processed = true
	b.totalRecords = totalRecords
	return b
}
