package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/crm-deal-sync/internal/validators"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// BulkValidationService rejects malformed bulk requests before a session is
// created for them.
type BulkValidationService struct {
	inner     BulkManager
	validator validators.Validator
}

func NewBulkValidationService() BulkManagerWrapper {
	return &BulkValidationService{
		validator: validators.NewDealValidator(),
	}
}

// SubmitSmallBatch checks the batch envelope only; records are validated one
// by one by the wrapped manager.
func (v *BulkValidationService) SubmitSmallBatch(ctx context.Context, updates []models.DealUpdate) (models.BatchResult, error) {
	if err := v.validator.Validate(ctx, models.SmallBatchRequest{Records: updates}); err != nil {
		return models.BatchResult{}, fmt.Errorf("error during small batch validation: %w", err)
	}
	return v.inner.SubmitSmallBatch(ctx, updates)
}

func (v *BulkValidationService) SubmitMassUpdate(ctx context.Context, req models.MassUpdateRequest) (string, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return "", fmt.Errorf("error during mass update validation: %w", err)
	}
	return v.inner.SubmitMassUpdate(ctx, req)
}

func (v *BulkValidationService) SubmitBulkWrite(ctx context.Context, req models.BulkWriteRequest) (string, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return "", fmt.Errorf("error during bulk write validation: %w", err)
	}
	return v.inner.SubmitBulkWrite(ctx, req)
}

func (v *BulkValidationService) CheckJobStatus(ctx context.Context, sessionID string) (models.BulkStatus, error) {
	return v.inner.CheckJobStatus(ctx, sessionID)
}

func (v *BulkValidationService) GetBulkStatus(ctx context.Context, sessionID string) (models.BulkStatus, error) {
	return v.inner.GetBulkStatus(ctx, sessionID)
}

func (v *BulkValidationService) ResumePolling(ctx context.Context, session models.SyncSession) {
	v.inner.ResumePolling(ctx, session)
}

func (v *BulkValidationService) Shutdown(ctx context.Context) error {
	return v.inner.Shutdown(ctx)
}

func (v *BulkValidationService) Wrap(inner BulkManager) BulkManager {
	v.inner = inner
	return v
}
