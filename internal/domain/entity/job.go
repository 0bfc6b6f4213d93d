package entity

import "time"

// Estados de ImportJob / ExportJob.
const (
	JobStatusPending   = "pending"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// Direcciones de job.
const (
	JobDirectionImport = "import"
	JobDirectionExport = "export"
)

// Job tarea de importación o exportación. Se ejecuta de forma síncrona dentro de la petición que la dispara.
type Job struct {
	ID        string
	OrgID     string
	Direction string // import | export
	Kind      string
	Status    string
	Payload   JSONMap
	Result    JSONMap
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Runnable indica si el job puede (re)ejecutarse: solo pending o failed.
func (j *Job) Runnable() bool {
	return j.Status == JobStatusPending || j.Status == JobStatusFailed
}
