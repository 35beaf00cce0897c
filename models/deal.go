// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"sort"
	"time"
)

// Tracked field names. Only these fields take part in conflict detection,
// field-level merges and mass updates.
const (
	FieldName        = "deal_name"
	FieldStage       = "stage"
	FieldAmount      = "amount"
	FieldCurrency    = "currency"
	FieldCloseDate   = "closing_date"
	FieldOwner       = "owner"
	FieldAccountName = "account_name"
	FieldProbability = "probability"
	FieldDescription = "description"
)

// TrackedFields lists every tracked field in a stable order.
var TrackedFields = []string{
	FieldName,
	FieldStage,
	FieldAmount,
	FieldCurrency,
	FieldCloseDate,
	FieldOwner,
	FieldAccountName,
	FieldProbability,
	FieldDescription,
}

// IsTrackedField reports whether name is one of [TrackedFields].
func IsTrackedField(name string) bool {
	for _, f := range TrackedFields {
		if f == name {
			return true
		}
	}
	return false
}

// Deal is a single deal (opportunity) record as held in the local store and
// as exchanged with the remote CRM.
//
// RemoteID is empty for deals created locally that were never pushed.
// LocalID is zero for deals that only exist remotely.
type Deal struct {
	LocalID  int64  `json:"local_id,omitempty"`
	RemoteID string `json:"id,omitempty"`

	Name        string  `json:"deal_name" validate:"required,max=255"`
	Stage       string  `json:"stage" validate:"required,max=120"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Currency    string  `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
	CloseDate   string  `json:"closing_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Owner       string  `json:"owner,omitempty" validate:"max=120"`
	AccountName string  `json:"account_name,omitempty" validate:"max=255"`
	Probability int     `json:"probability" validate:"gte=0,lte=100"`
	Description string  `json:"description,omitempty" validate:"max=32000"`

	RemoteModifiedAt *time.Time `json:"modified_time,omitempty"`
	LocalModifiedAt  *time.Time `json:"local_modified_at,omitempty"`
}

// FieldValues returns the tracked fields of d keyed by field name.
func (d Deal) FieldValues() map[string]any {
	return map[string]any{
		FieldName:        d.Name,
		FieldStage:       d.Stage,
		FieldAmount:      d.Amount,
		FieldCurrency:    d.Currency,
		FieldCloseDate:   d.CloseDate,
		FieldOwner:       d.Owner,
		FieldAccountName: d.AccountName,
		FieldProbability: d.Probability,
		FieldDescription: d.Description,
	}
}

// WithField returns a copy of d whose tracked field name is set to the value
// held by the same field in src. Unknown names leave d untouched.
func (d Deal) WithField(name string, src Deal) Deal {
	switch name {
	case FieldName:
		d.Name = src.Name
	case FieldStage:
		d.Stage = src.Stage
	case FieldAmount:
		d.Amount = src.Amount
	case FieldCurrency:
		d.Currency = src.Currency
	case FieldCloseDate:
		d.CloseDate = src.CloseDate
	case FieldOwner:
		d.Owner = src.Owner
	case FieldAccountName:
		d.AccountName = src.AccountName
	case FieldProbability:
		d.Probability = src.Probability
	case FieldDescription:
		d.Description = src.Description
	}
	return d
}

// DiffFields returns the sorted names of tracked fields whose values differ
// between a and b.
func DiffFields(a, b Deal) []string {
	av, bv := a.FieldValues(), b.FieldValues()

	diff := make([]string, 0, len(av))
	for name, v := range av {
		if bv[name] != v {
			diff = append(diff, name)
		}
	}
	sort.Strings(diff)
	return diff
}

// DealPage is one page of deals returned by the remote list endpoint.
type DealPage struct {
	Deals         []Deal
	NextPageToken string
	MoreRecords   bool
}
