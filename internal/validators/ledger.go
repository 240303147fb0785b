package validators

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-ledger/models"
	"github.com/shopspring/decimal"
)

const (
	FieldOwnerID     = "owner"
	FieldKind        = "kind"
	FieldLabel       = "label"
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldDate        = "date"
)

const maxLabelLength = 255

// maxAmount is the first value that no longer fits numeric(10,2).
var maxAmount = decimal.New(1, 8)

// LedgerValidator checks ledger records before they reach the store.
//
// Expense categories are open unless a fixed set was configured; income
// sources are always the closed [models.IncomeSources] set.
type LedgerValidator struct {
	categories map[string]struct{}
}

// NewLedgerValidator builds a LedgerValidator. An empty categories slice
// accepts any non-empty category.
func NewLedgerValidator(categories []string) *LedgerValidator {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			set[c] = struct{}{}
		}
	}
	return &LedgerValidator{categories: set}
}

// Validate dispatches on the type of data. Supported types are
// models.LedgerRecord and models.RecordPatch (and pointers to them).
func (v *LedgerValidator) Validate(ctx context.Context, data any, fields ...string) error {
	switch value := data.(type) {
	case models.LedgerRecord:
		return v.validateRecord(ctx, value, fields...)
	case *models.LedgerRecord:
		return v.validateRecord(ctx, *value, fields...)
	case models.RecordPatch:
		return v.validatePatch(value)
	case *models.RecordPatch:
		return v.validatePatch(*value)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, data)
	}
}

func (v *LedgerValidator) validateRecord(ctx context.Context, record models.LedgerRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOwnerID, FieldKind, FieldLabel, FieldAmount, FieldDescription, FieldDate}
	}

	for _, f := range fields {
		switch f {
		case FieldOwnerID:
			if record.OwnerID <= 0 {
				return newValidationError(FieldOwnerID, ErrInvalidOwnerID, "Invalid owner")
			}
		case FieldKind:
			if !record.Kind.Valid() {
				return newValidationError(FieldKind, ErrInvalidKind, fmt.Sprintf("Unknown record kind %q", record.Kind))
			}
		case FieldLabel:
			if err := v.validateLabel(record.Kind, record.Label); err != nil {
				return err
			}
		case FieldAmount:
			if err := validateAmount(record.Amount); err != nil {
				return err
			}
		case FieldDescription:
			if strings.TrimSpace(record.Description) == "" {
				return newValidationError(FieldDescription, ErrEmptyDescription, "The description field may not be blank")
			}
		case FieldDate:
			if record.Date.IsZero() {
				return newValidationError(FieldDate, ErrMissingDate, "The date field is required")
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LedgerValidator) validatePatch(patch models.RecordPatch) error {
	if patch.IsEmpty() {
		return newValidationError("", ErrNoFieldsToUpdate, "At least one field must be provided")
	}
	return nil
}

func (v *LedgerValidator) validateLabel(kind models.RecordKind, label string) error {
	field := kind.LabelField()

	if kind == models.Income {
		if !slices.Contains(models.IncomeSources, models.IncomeSource(label)) {
			return newValidationError(field, ErrInvalidLabel, fmt.Sprintf("%q is not a valid choice", label))
		}
		return nil
	}

	if strings.TrimSpace(label) == "" {
		return newValidationError(field, ErrInvalidLabel, "The category field may not be blank")
	}
	if len(label) > maxLabelLength {
		return newValidationError(field, ErrInvalidLabel, fmt.Sprintf("Ensure the category field has no more than %d characters", maxLabelLength))
	}
	if len(v.categories) > 0 {
		if _, ok := v.categories[label]; !ok {
			return newValidationError(field, ErrInvalidLabel, fmt.Sprintf("%q is not a valid choice", label))
		}
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	switch {
	case amount.IsNegative():
		return newValidationError(FieldAmount, ErrInvalidAmount, "Ensure the amount is greater than or equal to 0")
	case !amount.Equal(amount.Round(2)):
		return newValidationError(FieldAmount, ErrInvalidAmount, "Ensure that there are no more than 2 decimal places")
	case amount.GreaterThanOrEqual(maxAmount):
		return newValidationError(FieldAmount, ErrInvalidAmount, "Ensure that there are no more than 8 digits before the decimal point")
	}
	return nil
}
