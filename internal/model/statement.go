package model

import (
	"time"

	"TickerDash/internal/frame"
)

// PeriodLayout formats fiscal period-end dates used as frame labels.
const PeriodLayout = "2006-01-02"

// Line items used by the ratio table.
const (
	ItemTotalRevenue  = "Total Revenue"
	ItemCostOfRevenue = "Cost Of Revenue"
	ItemFreeCashFlow  = "Free Cash Flow"
	ItemCash          = "Cash And Cash Equivalents"
	ItemTotalDebt     = "Total Debt"
)

// StatementKind names one of the three financial statements.
type StatementKind string

const (
	IncomeStatement StatementKind = "income_statement"
	BalanceSheet    StatementKind = "balance_sheet"
	CashFlow        StatementKind = "cash_flow"
)

// Statement is one financial statement in provider orientation: line items
// are rows and fiscal period-end dates (PeriodLayout) are columns.
type Statement struct {
	Kind  StatementKind
	Frame *frame.Frame
}

// Statements bundles the three statements of a ticker.
type Statements struct {
	Symbol    string
	Income    Statement
	Balance   Statement
	CashFlow  Statement
	FetchedAt time.Time
}
