package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/crm-deal-sync/internal/adapter"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/service"
	"github.com/MKhiriev/crm-deal-sync/internal/store"
	"github.com/MKhiriev/crm-deal-sync/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:       http.StatusBadRequest,
	ErrInvalidQueryParam: http.StatusBadRequest,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrSyncAlreadyRunning:      http.StatusConflict,
	service.ErrShuttingDown:            http.StatusServiceUnavailable,
	service.ErrSessionNotCancellable:   http.StatusConflict,
	service.ErrNotBulkSession:          http.StatusBadRequest,
	service.ErrRecordNotInConflict:     http.StatusConflict,
	service.ErrNoAccountIdentity:       http.StatusBadRequest,
	service.ErrEmptyAccessToken:        http.StatusBadRequest,

	validators.ErrInvalidDeal:        http.StatusBadRequest,
	validators.ErrUntrackedField:     http.StatusBadRequest,
	validators.ErrInvalidFieldValue:  http.StatusBadRequest,
	validators.ErrNoFieldsToUpdate:   http.StatusBadRequest,
	validators.ErrEmptyRemoteID:      http.StatusBadRequest,
	validators.ErrUnexpectedRemoteID: http.StatusBadRequest,
	validators.ErrEmptyBatch:         http.StatusBadRequest,
	validators.ErrBatchTooLarge:      http.StatusRequestEntityTooLarge,
	validators.ErrInvalidOperation:   http.StatusBadRequest,
	validators.ErrInvalidStrategy:    http.StatusBadRequest,
	validators.ErrIncompleteMerge:    http.StatusBadRequest,

	adapter.ErrValidation:                http.StatusUnprocessableEntity,
	adapter.ErrNotFound:                  http.StatusNotFound,
	adapter.ErrRateLimited:               http.StatusTooManyRequests,
	adapter.ErrRemoteUnavailable:         http.StatusBadGateway,
	adapter.ErrAuthenticationRevoked:     http.StatusBadGateway,
	adapter.ErrAuthenticationUnavailable: http.StatusBadGateway,
	adapter.ErrUnauthorized:              http.StatusBadGateway,
	adapter.ErrForbidden:                 http.StatusBadGateway,

	store.ErrSessionNotFound:         http.StatusNotFound,
	store.ErrSessionAlreadyActive:    http.StatusConflict,
	store.ErrInvalidStatusTransition: http.StatusConflict,
	store.ErrRecordStatusNotFound:    http.StatusNotFound,
	store.ErrDealNotFound:            http.StatusNotFound,
	store.ErrCredentialNotFound:      http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with its mapped status. Server-side
// failures hide the error text behind msg.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Int("status", status).Msg(msg)

	if status == http.StatusInternalServerError {
		http.Error(w, msg, status)
		return
	}
	http.Error(w, err.Error(), status)
}
