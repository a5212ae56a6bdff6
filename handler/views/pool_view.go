package views

import (
	"gearbox/core"

	"github.com/shopspring/decimal"
)

// Pool pool view with derived rates
type Pool struct {
	core.Pool
	BorrowRatePerYear decimal.Decimal `json:"borrow_rate_per_year"`
	SupplyRatePerYear decimal.Decimal `json:"supply_rate_per_year"`
}

// Account credit account view with valuation
type Account struct {
	core.CreditAccount
	HealthFactor decimal.Decimal `json:"health_factor"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Balances     []*core.Balance `json:"balances"`
}
