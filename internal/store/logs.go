package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CreateWorkflowLog records a workflow milestone in the workflow_logs side
// table. Advisory only; callers treat failures as non-fatal.
func (s *Store) CreateWorkflowLog(ctx context.Context, tenantID uuid.UUID, workflow, step, status string, details interface{}) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return err
	}
	query := `INSERT INTO workflow_logs (tenant_id, workflow, step, status, details, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = s.pool.Exec(ctx, query, tenantID, workflow, step, status, detailsJSON, time.Now())
	return err
}
