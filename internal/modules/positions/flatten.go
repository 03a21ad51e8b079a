// Package positions turns account API records into per-position rows and
// derives the per-position metrics used by the reports.
package positions

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/stevecalla/Schwabdev/internal/domain"
)

// Flatten emits one FlatRow per position, in account order and then position
// order. Accounts without positions contribute no rows.
//
// Every account must carry a securitiesAccount object and every account with
// positions must carry an accountNumber; anything else that is missing falls
// back to the defaults in the domain field tables.
func Flatten(accounts []domain.AccountRecord) ([]domain.FlatRow, error) {
	rows := make([]domain.FlatRow, 0)

	for i, account := range accounts {
		sa, err := account.SecuritiesAccount()
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", i, err)
		}

		positions := account.Positions()
		if len(positions) == 0 {
			continue
		}

		number, err := accountNumberString(sa["accountNumber"])
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", i, err)
		}

		base := domain.FlatRow{AccountNumber: number}
		accountDoc := map[string]interface{}(account)
		for _, f := range domain.BalanceFields {
			f.Set(&base, lookupNumber(accountDoc, f.Path))
		}

		for _, position := range positions {
			row := base
			positionDoc := map[string]interface{}(position)
			for _, f := range domain.PositionTextFields {
				f.Set(&row, lookupText(positionDoc, f.Path, f.Default))
			}
			for _, f := range domain.PositionNumberFields {
				f.Set(&row, lookupNumber(positionDoc, f.Path))
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// lookup resolves a JSONPath against doc. Absent keys and JSON nulls are
// both reported as missing.
func lookup(doc map[string]interface{}, path string) (interface{}, bool) {
	v, err := jsonpath.Get(path, doc)
	if err != nil || v == nil {
		return nil, false
	}
	return v, true
}

func lookupText(doc map[string]interface{}, path, fallback string) string {
	v, ok := lookup(doc, path)
	if !ok {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func lookupNumber(doc map[string]interface{}, path string) float64 {
	v, ok := lookup(doc, path)
	if !ok {
		return 0
	}
	return toFloat64(v)
}

// toFloat64 coerces a decoded JSON value to a finite number. Anything it
// cannot coerce, NaN and infinities included, is 0.
func toFloat64(val interface{}) float64 {
	f := coerceFloat64(val)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func coerceFloat64(val interface{}) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		return 0
	default:
		return 0
	}
}

// accountNumberString renders an account number without thousands
// separators, decimal points or exponent notation. String account numbers
// are kept as they are, leading zeros included.
func accountNumberString(val interface{}) (string, error) {
	switch v := val.(type) {
	case nil:
		return "", domain.ErrMissingAccountNumber
	case string:
		return v, nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return "", fmt.Errorf("invalid accountNumber %q: %w", v.String(), err)
		}
		return d.Truncate(0).String(), nil
	case float64:
		return decimal.NewFromFloat(v).Truncate(0).String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}
