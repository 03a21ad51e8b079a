package domain

import "errors"

// AccountRecord is one element of the account API response: a decoded JSON
// object holding a "securitiesAccount" (account number, balances, positions)
// and an "aggregatedBalance". Numbers are json.Number or float64 depending on
// how the document was decoded.
type AccountRecord map[string]interface{}

// PositionRecord is one element of securitiesAccount.positions.
type PositionRecord map[string]interface{}

var (
	// ErrMissingSecuritiesAccount is returned when an account record has no
	// securitiesAccount object. The response is unusable and the run stops.
	ErrMissingSecuritiesAccount = errors.New("account record has no securitiesAccount")
	// ErrMissingAccountNumber is returned when securitiesAccount has no accountNumber.
	ErrMissingAccountNumber = errors.New("securitiesAccount has no accountNumber")
)

// SecuritiesAccount returns the securitiesAccount sub-object.
func (a AccountRecord) SecuritiesAccount() (map[string]interface{}, error) {
	sa, ok := a["securitiesAccount"].(map[string]interface{})
	if !ok {
		return nil, ErrMissingSecuritiesAccount
	}
	return sa, nil
}

// Positions returns the ordered positions of the account. A missing or
// malformed positions list yields no positions.
func (a AccountRecord) Positions() []PositionRecord {
	sa, err := a.SecuritiesAccount()
	if err != nil {
		return nil
	}
	raw, ok := sa["positions"].([]interface{})
	if !ok {
		return nil
	}
	positions := make([]PositionRecord, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			positions = append(positions, PositionRecord(m))
		}
	}
	return positions
}
