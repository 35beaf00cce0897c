package adapter

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/models"
	"github.com/goccy/go-json"
)

const (
	pathDeals      = "/crm/v1/deals"
	pathMassUpdate = "/crm/v1/deals/actions/mass_update"
	pathBulkWrite  = "/crm/bulk/v1/write"
	pathOrg        = "/crm/v1/org"
)

type httpCRMAdapter struct {
	client   *Client
	fields   string
	pageSize int
}

// NewCRMAdapter returns the [CRMAdapter] backed by client. The remote
// requires an explicit field selection on every read; fields falls back to
// [models.TrackedFields] when empty.
func NewCRMAdapter(client *Client, cfg config.Adapter) CRMAdapter {
	fields := cfg.Fields
	if len(fields) == 0 {
		fields = models.TrackedFields
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	return &httpCRMAdapter{
		client:   client,
		fields:   strings.Join(fields, ","),
		pageSize: pageSize,
	}
}

type listInfo struct {
	PerPage       int    `json:"per_page"`
	Count         int    `json:"count"`
	MoreRecords   bool   `json:"more_records"`
	NextPageToken string `json:"next_page_token"`
}

type listEnvelope[T any] struct {
	Data []T      `json:"data"`
	Info listInfo `json:"info"`
}

// Paginate returns a lazy pager over a list endpoint answering with the
// {"data": [...], "info": {...}} envelope.
func Paginate[T any](c *Client, endpoint string, params url.Values, startToken string) *Pager[T] {
	return NewPager(func(ctx context.Context, token string) (Page[T], error) {
		q := url.Values{}
		for k, v := range params {
			q[k] = append([]string(nil), v...)
		}
		if token != "" {
			q.Set("page_token", token)
		}

		var env listEnvelope[T]
		resp, err := c.Call(ctx, Request{Method: http.MethodGet, Path: endpoint, Query: q, Result: &env})
		if err != nil {
			return Page[T]{}, err
		}
		if resp.StatusCode() == http.StatusNoContent {
			return Page[T]{}, nil
		}
		return Page[T]{Items: env.Data, NextToken: env.Info.NextPageToken}, nil
	}, startToken)
}

func (a *httpCRMAdapter) ListDeals(opts ListOptions) *Pager[models.Deal] {
	params := url.Values{}
	params.Set("fields", a.fields)
	params.Set("per_page", strconv.Itoa(a.pageSize))
	if opts.ModifiedSince != nil {
		params.Set("modified_since", opts.ModifiedSince.UTC().Format(time.RFC3339))
	}
	return Paginate[models.Deal](a.client, pathDeals, params, opts.PageToken)
}

func (a *httpCRMAdapter) GetDeal(ctx context.Context, remoteID string) (models.Deal, error) {
	var env listEnvelope[models.Deal]
	resp, err := a.client.Call(ctx, Request{
		Method:   http.MethodGet,
		Path:     pathDeals + "/" + url.PathEscape(remoteID),
		Query:    url.Values{"fields": {a.fields}},
		Result:   &env,
		Endpoint: pathDeals + "/{id}",
	})
	if err != nil {
		return models.Deal{}, fmt.Errorf("get deal %s: %w", remoteID, err)
	}
	if resp.StatusCode() == http.StatusNoContent || len(env.Data) == 0 {
		return models.Deal{}, fmt.Errorf("get deal %s: %w", remoteID, ErrNotFound)
	}
	return env.Data[0], nil
}

type recordResult struct {
	Status  string         `json:"status"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

type recordResults struct {
	Data []recordResult `json:"data"`
}

func (a *httpCRMAdapter) UpsertDeals(ctx context.Context, updates []models.DealUpdate) ([]models.BatchRecordResult, error) {
	if len(updates) == 0 {
		return nil, nil
	}
	if len(updates) > models.SmallBatchLimit {
		return nil, fmt.Errorf("%w: %d records exceed the small batch limit of %d",
			ErrValidation, len(updates), models.SmallBatchLimit)
	}

	data := make([]map[string]any, 0, len(updates))
	for _, u := range updates {
		data = append(data, updatePayload(u))
	}

	resp, err := a.client.Call(ctx, Request{
		Method:   http.MethodPut,
		Path:     pathDeals,
		Body:     map[string]any{"data": data},
		Endpoint: pathDeals + ":upsert",
	})

	// the remote answers 4xx when every record was rejected; the per-record
	// detail is still in the body
	var parsed recordResults
	if resp != nil && len(resp.Body()) > 0 {
		if uerr := json.Unmarshal(resp.Body(), &parsed); uerr != nil && err == nil {
			return nil, fmt.Errorf("decode batch result: %w", uerr)
		}
	}
	if err != nil && (!errors.Is(err, ErrValidation) || len(parsed.Data) != len(updates)) {
		return nil, fmt.Errorf("upsert deals: %w", err)
	}
	if len(parsed.Data) != len(updates) {
		return nil, fmt.Errorf("%w: %d results for %d records", ErrMalformedResult, len(parsed.Data), len(updates))
	}

	results := make([]models.BatchRecordResult, len(updates))
	for i, r := range parsed.Data {
		res := models.BatchRecordResult{
			Index:    i,
			RemoteID: updates[i].RemoteID,
			Status:   models.BatchRecordError,
			Code:     r.Code,
			Message:  r.Message,
		}
		if strings.EqualFold(r.Status, string(models.BatchRecordSuccess)) {
			res.Status = models.BatchRecordSuccess
		}
		if id, ok := r.Details["id"].(string); ok && id != "" {
			res.RemoteID = id
		}
		results[i] = res
	}
	return results, nil
}

func updatePayload(u models.DealUpdate) map[string]any {
	m := make(map[string]any, len(u.Fields)+1)
	for k, v := range u.Fields {
		m[k] = v
	}
	if u.RemoteID != "" {
		m["id"] = u.RemoteID
	}
	return m
}

func (a *httpCRMAdapter) SubmitMassUpdate(ctx context.Context, req models.MassUpdateRequest) (string, error) {
	var out recordResults
	_, err := a.client.Call(ctx, Request{
		Method: http.MethodPost,
		Path:   pathMassUpdate,
		Body: map[string]any{
			"ids":  req.RemoteIDs,
			"data": req.Fields,
		},
		Result: &out,
	})
	if err != nil {
		return "", fmt.Errorf("submit mass update: %w", err)
	}
	if len(out.Data) == 0 {
		return "", ErrEmptyJobID
	}
	if !strings.EqualFold(out.Data[0].Status, "success") {
		return "", &APIError{Code: out.Data[0].Code, Message: out.Data[0].Message, Details: out.Data[0].Details, kind: ErrValidation}
	}
	jobID, _ := out.Data[0].Details["job_id"].(string)
	if jobID == "" {
		return "", ErrEmptyJobID
	}
	return jobID, nil
}

type massUpdateStatus struct {
	Status       string `json:"Status"`
	TotalCount   int64  `json:"Total_Count"`
	UpdatedCount int64  `json:"Updated_Count"`
	FailedCount  int64  `json:"Failed_Count"`
}

func (a *httpCRMAdapter) GetMassUpdateStatus(ctx context.Context, jobID string) (models.RemoteJobStatus, error) {
	var out struct {
		Data []massUpdateStatus `json:"data"`
	}
	_, err := a.client.Call(ctx, Request{
		Method: http.MethodGet,
		Path:   pathMassUpdate,
		Query:  url.Values{"job_id": {jobID}},
		Result: &out,
	})
	if err != nil {
		return models.RemoteJobStatus{}, fmt.Errorf("mass update status %s: %w", jobID, err)
	}
	if len(out.Data) == 0 {
		return models.RemoteJobStatus{}, fmt.Errorf("mass update status %s: %w", jobID, ErrNotFound)
	}

	s := out.Data[0]
	return models.RemoteJobStatus{
		JobID:     jobID,
		State:     jobState(s.Status),
		Total:     s.TotalCount,
		Processed: s.UpdatedCount + s.FailedCount,
		Failed:    s.FailedCount,
	}, nil
}

type bulkWriteRecord struct {
	Row       int            `json:"row"`
	Operation string         `json:"operation"`
	ID        string         `json:"id,omitempty"`
	Data      map[string]any `json:"data"`
}

func (a *httpCRMAdapter) SubmitBulkWrite(ctx context.Context, req models.BulkWriteRequest) (string, error) {
	records := make([]bulkWriteRecord, 0, len(req.Records))
	for i, r := range req.Records {
		records = append(records, bulkWriteRecord{
			Row:       i + 1,
			Operation: string(r.Operation),
			ID:        r.Deal.RemoteID,
			Data:      r.Deal.FieldValues(),
		})
	}

	var out struct {
		Status  string         `json:"status"`
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	}
	_, err := a.client.Call(ctx, Request{
		Method: http.MethodPost,
		Path:   pathBulkWrite,
		Body:   map[string]any{"module": "Deals", "records": records},
		Result: &out,
	})
	if err != nil {
		return "", fmt.Errorf("submit bulk write: %w", err)
	}
	if !strings.EqualFold(out.Status, "success") {
		return "", &APIError{Code: out.Code, Message: out.Message, Details: out.Details, kind: ErrValidation}
	}
	jobID, _ := out.Details["id"].(string)
	if jobID == "" {
		return "", ErrEmptyJobID
	}
	return jobID, nil
}

type bulkWriteStatus struct {
	Status string `json:"status"`
	Result struct {
		DownloadURL string `json:"download_url"`
	} `json:"result"`
	Resource []struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		File    struct {
			TotalCount   int64 `json:"total_count"`
			AddedCount   int64 `json:"added_count"`
			UpdatedCount int64 `json:"updated_count"`
			SkippedCount int64 `json:"skipped_count"`
		} `json:"file"`
	} `json:"resource"`
}

func (a *httpCRMAdapter) GetBulkWriteStatus(ctx context.Context, jobID string) (models.RemoteJobStatus, error) {
	var out bulkWriteStatus
	_, err := a.client.Call(ctx, Request{
		Method:   http.MethodGet,
		Path:     pathBulkWrite + "/" + url.PathEscape(jobID),
		Result:   &out,
		Endpoint: pathBulkWrite + "/{id}",
	})
	if err != nil {
		return models.RemoteJobStatus{}, fmt.Errorf("bulk write status %s: %w", jobID, err)
	}

	status := models.RemoteJobStatus{
		JobID:     jobID,
		State:     jobState(out.Status),
		ResultURL: out.Result.DownloadURL,
	}
	for _, r := range out.Resource {
		status.Total += r.File.TotalCount
		status.Processed += r.File.AddedCount + r.File.UpdatedCount + r.File.SkippedCount
		status.Failed += r.File.SkippedCount
		if r.Message != "" && status.State == models.JobFailed {
			status.ErrorDetail = r.Message
		}
	}
	return status, nil
}

// DownloadBulkResult parses the ROW,ID,STATUS,ERRORS artifact of a bulk-write
// job. An artifact hosted outside the CRM API is fetched without the bearer
// token.
func (a *httpCRMAdapter) DownloadBulkResult(ctx context.Context, resultURL string) ([]models.BulkRecordResult, error) {
	resp, err := a.client.Call(ctx, Request{
		Method:   http.MethodGet,
		Path:     resultURL,
		Endpoint: pathBulkWrite + "/result",
	})
	if err != nil {
		return nil, fmt.Errorf("download bulk result: %w", err)
	}
	return parseBulkResult(bytes.NewReader(resp.Body()))
}

func parseBulkResult(r io.Reader) ([]models.BulkRecordResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResult, err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"ROW", "STATUS"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: missing %s column", ErrMalformedResult, required)
		}
	}

	get := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var results []models.BulkRecordResult
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResult, err)
		}
		row, err := strconv.Atoi(get(rec, "ROW"))
		if err != nil {
			return nil, fmt.Errorf("%w: bad row number %q", ErrMalformedResult, get(rec, "ROW"))
		}
		results = append(results, models.BulkRecordResult{
			Row:      row,
			RemoteID: get(rec, "ID"),
			Status:   get(rec, "STATUS"),
			Error:    get(rec, "ERRORS"),
		})
	}
	return results, nil
}

func (a *httpCRMAdapter) Ping(ctx context.Context) error {
	if _, err := a.client.Call(ctx, Request{Method: http.MethodGet, Path: pathOrg, Auth: AuthStored}); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (a *httpCRMAdapter) RateLimit() models.RateLimitState {
	return a.client.RateLimit()
}

func jobState(remote string) models.RemoteJobState {
	switch strings.ToUpper(strings.TrimSpace(remote)) {
	case "COMPLETED":
		return models.JobCompleted
	case "FAILED":
		return models.JobFailed
	case "RUNNING", "IN PROGRESS", "IN_PROGRESS":
		return models.JobRunning
	default:
		return models.JobQueued
	}
}
