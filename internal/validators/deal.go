// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/crm-deal-sync/models"
	"github.com/go-playground/validator/v10"
)

// Field name constants used to restrict validation to a subset of checks.
const (
	// FieldRemoteID targets the remote record id of an update or bulk row.
	FieldRemoteID = "id"

	// FieldFields targets the tracked field values of an update.
	FieldFields = "fields"

	// FieldRecords targets the size of a batch envelope.
	FieldRecords = "records"

	// FieldRecordItems targets every record of a bulk write, one by one.
	FieldRecordItems = "record_items"

	// FieldIDs targets the remote id list of a mass update.
	FieldIDs = "ids"

	// FieldOperation targets the verb of a bulk write row.
	FieldOperation = "operation"

	// FieldDeal targets the struct rules of a deal.
	FieldDeal = "deal"

	// FieldStrategy targets the strategy of a conflict override.
	FieldStrategy = "strategy"
)

// fieldRules are the per-field rules applied to loosely typed field maps.
// They mirror the `validate` tags of [models.Deal].
var fieldRules = map[string]string{
	models.FieldName:        "required,max=255",
	models.FieldStage:       "required,max=120",
	models.FieldAmount:      "gte=0",
	models.FieldCurrency:    "omitempty,len=3,uppercase",
	models.FieldCloseDate:   "omitempty,datetime=2006-01-02",
	models.FieldOwner:       "max=120",
	models.FieldAccountName: "max=255",
	models.FieldProbability: "gte=0,lte=100",
	models.FieldDescription: "max=32000",
}

var numericFields = map[string]bool{
	models.FieldAmount:      true,
	models.FieldProbability: true,
}

// DealValidator validates deal payloads entering the engine: single deals,
// small-batch updates, mass updates, bulk writes and conflict overrides.
type DealValidator struct {
}

func NewDealValidator() Validator {
	return &DealValidator{}
}

func (v *DealValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Deal:
		return v.validateDeal(value)
	case *models.Deal:
		return v.validateDeal(*value)

	case models.DealUpdate:
		return v.validateUpdate(value, fields...)
	case *models.DealUpdate:
		return v.validateUpdate(*value, fields...)

	case models.SmallBatchRequest:
		return v.validateSmallBatch(value)
	case *models.SmallBatchRequest:
		return v.validateSmallBatch(*value)

	case models.MassUpdateRequest:
		return v.validateMassUpdate(value, fields...)
	case *models.MassUpdateRequest:
		return v.validateMassUpdate(*value, fields...)

	case models.BulkWriteRequest:
		return v.validateBulkWrite(ctx, value, fields...)
	case *models.BulkWriteRequest:
		return v.validateBulkWrite(ctx, *value, fields...)

	case models.BulkWriteRecord:
		return v.validateBulkWriteRecord(value, fields...)
	case *models.BulkWriteRecord:
		return v.validateBulkWriteRecord(*value, fields...)

	case models.ConflictOverride:
		return v.validateOverride(value, fields...)
	case *models.ConflictOverride:
		return v.validateOverride(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *DealValidator) validateDeal(deal models.Deal) error {
	if err := engine().Struct(deal); err != nil {
		return structError(err)
	}
	return nil
}

func (v *DealValidator) validateUpdate(update models.DealUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRemoteID, FieldFields}
	}

	for _, f := range fields {
		switch f {
		case FieldRemoteID:
			if update.RemoteID == "" {
				return ErrEmptyRemoteID
			}
		case FieldFields:
			if err := validateFieldMap(update.Fields); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSmallBatch checks the envelope only. Records are validated one by
// one by the caller so that a bad record does not reject its neighbours.
func (v *DealValidator) validateSmallBatch(request models.SmallBatchRequest) error {
	return checkSize(len(request.Records), models.SmallBatchLimit)
}

func (v *DealValidator) validateMassUpdate(request models.MassUpdateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIDs, FieldFields}
	}

	for _, f := range fields {
		switch f {
		case FieldIDs:
			if err := checkSize(len(request.RemoteIDs), models.MassUpdateLimit); err != nil {
				return err
			}
			if err := engine().Var(request.RemoteIDs, "dive,required"); err != nil {
				return ErrEmptyRemoteID
			}
		case FieldFields:
			if err := validateFieldMap(request.Fields); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *DealValidator) validateBulkWrite(ctx context.Context, request models.BulkWriteRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecords, FieldRecordItems}
	}

	for _, f := range fields {
		switch f {
		case FieldRecords:
			if err := checkSize(len(request.Records), models.BulkWriteLimit); err != nil {
				return err
			}
		case FieldRecordItems:
			for i, record := range request.Records {
				if err := v.validateBulkWriteRecord(record); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *DealValidator) validateBulkWriteRecord(record models.BulkWriteRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOperation, FieldRemoteID, FieldDeal}
	}

	for _, f := range fields {
		switch f {
		case FieldOperation:
			switch record.Operation {
			case models.BulkInsert, models.BulkUpdate, models.BulkUpsert:
			default:
				return fmt.Errorf("%w: %q", ErrInvalidOperation, record.Operation)
			}
		case FieldRemoteID:
			if record.Operation == models.BulkUpdate && record.Deal.RemoteID == "" {
				return ErrEmptyRemoteID
			}
			if record.Operation == models.BulkInsert && record.Deal.RemoteID != "" {
				return ErrUnexpectedRemoteID
			}
		case FieldDeal:
			if err := v.validateDeal(record.Deal); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *DealValidator) validateOverride(override models.ConflictOverride, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldStrategy, FieldFields}
	}

	for _, f := range fields {
		switch f {
		case FieldStrategy:
			switch override.Strategy {
			case models.OverrideUseLocal, models.OverrideUseRemote:
			case models.OverrideMerge:
				if len(override.Merge) == 0 {
					return ErrIncompleteMerge
				}
			default:
				return fmt.Errorf("%w: %q", ErrInvalidStrategy, override.Strategy)
			}
		case FieldFields:
			for name, side := range override.Merge {
				if !models.IsTrackedField(name) {
					return fmt.Errorf("%w: %q", ErrUntrackedField, name)
				}
				if side != models.SideLocal && side != models.SideRemote {
					return fmt.Errorf("%w: %q for %q", ErrInvalidStrategy, side, name)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func checkSize(n, limit int) error {
	if n == 0 {
		return ErrEmptyBatch
	}
	if n > limit {
		return fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, n, limit)
	}
	return nil
}

func validateFieldMap(values map[string]any) error {
	if len(values) == 0 {
		return ErrNoFieldsToUpdate
	}
	for name, value := range values {
		if err := validateFieldValue(name, value); err != nil {
			return err
		}
	}
	return nil
}

func validateFieldValue(name string, value any) error {
	rule, ok := fieldRules[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUntrackedField, name)
	}

	var typed any
	if numericFields[name] {
		n, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: %s must be a number", ErrInvalidFieldValue, name)
		}
		typed = n
	} else {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s must be a string", ErrInvalidFieldValue, name)
		}
		typed = s
	}

	if err := engine().Var(typed, rule); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed %s", ErrInvalidFieldValue, name, verrs[0].Tag())
		}
		return fmt.Errorf("%w: %s: %v", ErrInvalidFieldValue, name, err)
	}
	return nil
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}
