package entity

import "time"

// Supported currency symbols. Balances track exactly this set.
const (
	CurrencyUSDT = "USDT"
	CurrencyETH  = "ETH"
	CurrencyBTC  = "BTC"
	CurrencyUSDC = "USDC"
	CurrencyDAI  = "DAI"
)

// Currencies lists the supported symbols in display order.
var Currencies = []string{CurrencyUSDT, CurrencyETH, CurrencyBTC, CurrencyUSDC, CurrencyDAI}

// Balances maps currency symbol to a non-negative amount.
type Balances map[string]float64

// NewBalances returns a zeroed balance map covering every supported currency.
func NewBalances() Balances {
	b := make(Balances, len(Currencies))
	for _, c := range Currencies {
		b[c] = 0
	}
	return b
}

// IsSupportedCurrency reports whether symbol is one of the fixed set.
func IsSupportedCurrency(symbol string) bool {
	for _, c := range Currencies {
		if c == symbol {
			return true
		}
	}
	return false
}

// USDValue sums each balance converted through the given rate table.
// Currencies missing from the table convert at rate zero.
func (b Balances) USDValue(rates map[string]float64) float64 {
	var total float64
	for asset, amount := range b {
		total += amount * rates[asset]
	}
	return total
}

// WithdrawRecord is one entry of the append-only withdrawal log. Stored as
// JSONB on the user row; capped at five entries for the account lifetime.
type WithdrawRecord struct {
	Currency string    `json:"currency"`
	Amount   float64   `json:"amount"`
	Address  string    `json:"address"`
	Date     time.Time `json:"date"`
}
