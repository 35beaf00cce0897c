package models

// Size limits of the three bulk paths.
const (
	SmallBatchLimit = 100
	MassUpdateLimit = 50000
	BulkWriteLimit  = 25000
)

// DealUpdate is one record of a small batch: the remote record id and the
// tracked fields to change.
type DealUpdate struct {
	RemoteID string         `json:"id" validate:"required"`
	Fields   map[string]any `json:"fields" validate:"required,min=1"`
}

// BatchRecordStatus is the per-record result of a small batch.
type BatchRecordStatus string

const (
	BatchRecordSuccess BatchRecordStatus = "success"
	BatchRecordError   BatchRecordStatus = "error"
)

// BatchRecordResult is the outcome of one record in a small batch.
type BatchRecordResult struct {
	Index    int               `json:"index"`
	RemoteID string            `json:"id,omitempty"`
	Status   BatchRecordStatus `json:"status"`
	Code     string            `json:"code,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// BatchResult is the synchronous answer of a small batch.
type BatchResult struct {
	SessionID string              `json:"session_id"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Results   []BatchRecordResult `json:"results"`
}

// MassUpdateRequest sets the same field values on up to MassUpdateLimit
// remote records.
type MassUpdateRequest struct {
	RemoteIDs []string       `json:"ids" validate:"required,min=1,max=50000,dive,required"`
	Fields    map[string]any `json:"fields" validate:"required,min=1"`
}

// BulkOperation is the verb of one bulk write row.
type BulkOperation string

const (
	BulkInsert BulkOperation = "insert"
	BulkUpdate BulkOperation = "update"
	BulkUpsert BulkOperation = "upsert"
)

// BulkWriteRecord is one heterogeneous bulk write row.
type BulkWriteRecord struct {
	Operation BulkOperation `json:"operation" validate:"required,oneof=insert update upsert"`
	Deal      Deal          `json:"deal"`
}

// BulkWriteRequest holds up to BulkWriteLimit rows.
type BulkWriteRequest struct {
	Records []BulkWriteRecord `json:"records" validate:"required,min=1,max=25000"`
}

// Bulk session metadata keys and values.
const (
	MetadataSource     = "source"
	MetadataMode       = "mode"
	MetadataInsertRows = "insert_rows"
	MetadataRemoteIDs  = "remote_ids"

	SourcePush     = "push"
	ModeSmallBatch = "small_batch"
)

// RemoteJobState is the normalized state of an asynchronous remote job.
type RemoteJobState string

const (
	JobQueued    RemoteJobState = "queued"
	JobRunning   RemoteJobState = "running"
	JobCompleted RemoteJobState = "completed"
	JobFailed    RemoteJobState = "failed"
)

// Done reports whether the job reached a terminal state.
func (s RemoteJobState) Done() bool {
	return s == JobCompleted || s == JobFailed
}

// RemoteJobStatus is one poll result of a remote job.
type RemoteJobStatus struct {
	JobID       string         `json:"job_id"`
	State       RemoteJobState `json:"state"`
	Total       int64          `json:"total"`
	Processed   int64          `json:"processed"`
	Failed      int64          `json:"failed"`
	ResultURL   string         `json:"result_url,omitempty"`
	ErrorDetail string         `json:"error,omitempty"`
}

// BulkRecordResult is one row of a bulk write result artifact.
type BulkRecordResult struct {
	Row      int    `json:"row"`
	RemoteID string `json:"id"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// Succeeded reports whether the row was applied remotely.
func (r BulkRecordResult) Succeeded() bool {
	switch r.Status {
	case "ADDED", "UPDATED", "added", "updated", "success":
		return true
	}
	return false
}

// BulkStatus is the exposed status of a bulk session.
type BulkStatus struct {
	SessionID        string        `json:"session_id"`
	Kind             SyncKind      `json:"kind"`
	Status           SessionStatus `json:"status"`
	RecordsTotal     int64         `json:"records_total"`
	RecordsProcessed int64         `json:"records_processed"`
	Failed           int64         `json:"failed"`
	Error            string        `json:"error,omitempty"`
}
