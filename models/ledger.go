// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// RecordKind distinguishes the two kinds of ledger records.
type RecordKind string

const (
	Expense RecordKind = "expense"
	Income  RecordKind = "income"
)

// LabelField returns the JSON name of the categorical field for the kind:
// "category" for expenses and "source" for income.
func (k RecordKind) LabelField() string {
	if k == Income {
		return "source"
	}
	return "category"
}

// Valid reports whether k is one of the known kinds.
func (k RecordKind) Valid() bool {
	return k == Expense || k == Income
}

// IncomeSource is the closed set of income sources.
type IncomeSource string

const (
	SourceSalary      IncomeSource = "SALARY"
	SourceBusiness    IncomeSource = "BUSINESS"
	SourceSideHustles IncomeSource = "SIDE-HUSTLES"
	SourceOthers      IncomeSource = "OTHERS"
)

// IncomeSources lists every valid income source.
var IncomeSources = []IncomeSource{SourceSalary, SourceBusiness, SourceSideHustles, SourceOthers}

// LedgerRecord is a single expense or income entry owned by one user.
//
// Label holds the categorical field: the expense category or the income
// source. On the wire it is named after [RecordKind.LabelField].
type LedgerRecord struct {
	ID          int64
	OwnerID     int64
	Kind        RecordKind
	Label       string
	Amount      decimal.Decimal
	Description string
	Date        Date
}

// MarshalJSON renders the record the way the API exposes it: the amount
// with exactly two fraction digits and the label under "category" or
// "source" depending on the kind.
func (r LedgerRecord) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id":          r.ID,
		"owner":       r.OwnerID,
		"amount":      r.Amount.StringFixed(2),
		"description": r.Description,
		"date":        r.Date,
	}
	out[r.Kind.LabelField()] = r.Label

	return json.Marshal(out)
}

// RecordPayload is the request body for creating, replacing or patching a
// ledger record. Fields are pointers so a PATCH can tell "absent" from
// "zero". Category is used for expenses, Source for income.
type RecordPayload struct {
	Category    *string          `json:"category,omitempty"`
	Source      *string          `json:"source,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *Date            `json:"date,omitempty"`
}

// Label returns the categorical field matching kind.
func (p RecordPayload) Label(kind RecordKind) *string {
	if kind == Income {
		return p.Source
	}
	return p.Category
}

// RecordPatch is a partial update of a ledger record. Only non-nil fields
// are written.
type RecordPatch struct {
	Label       *string
	Amount      *decimal.Decimal
	Description *string
	Date        *Date
}

// Patch converts the payload into a partial update for kind.
func (p RecordPayload) Patch(kind RecordKind) RecordPatch {
	return RecordPatch{
		Label:       p.Label(kind),
		Amount:      p.Amount,
		Description: p.Description,
		Date:        p.Date,
	}
}

// Record converts the payload into a full record for kind. Missing fields
// stay zero and are rejected later by validation.
func (p RecordPayload) Record(kind RecordKind) LedgerRecord {
	record := LedgerRecord{Kind: kind}
	if label := p.Label(kind); label != nil {
		record.Label = *label
	}
	if p.Amount != nil {
		record.Amount = *p.Amount
	}
	if p.Description != nil {
		record.Description = *p.Description
	}
	if p.Date != nil {
		record.Date = *p.Date
	}
	return record
}

// IsEmpty reports whether the patch changes nothing.
func (p RecordPatch) IsEmpty() bool {
	return p.Label == nil && p.Amount == nil && p.Description == nil && p.Date == nil
}

// Apply returns r with the patch's non-nil fields written over it.
func (p RecordPatch) Apply(r LedgerRecord) LedgerRecord {
	if p.Label != nil {
		r.Label = *p.Label
	}
	if p.Amount != nil {
		r.Amount = *p.Amount
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	return r
}

func (r LedgerRecord) String() string {
	return fmt.Sprintf("%s #%d of user %d", r.Kind, r.ID, r.OwnerID)
}
