package model

import "github.com/shopspring/decimal"

// StockMovementData is one day of the stock movement chart.
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats is the overview card data.
type DashboardStats struct {
	TotalProducts   int64           `json:"total_products"`
	LowStockCount   int64           `json:"low_stock_count"`
	OutOfStockCount int64           `json:"out_of_stock_count"`
	TotalValuation  decimal.Decimal `json:"total_valuation"`
	TotalSuppliers  int64           `json:"total_suppliers"`
	ActiveSuppliers int64           `json:"active_suppliers"`
	TotalPurchases  int64           `json:"total_purchases"`
	TotalSales      int64           `json:"total_sales"`
}

// FinancialSummary compares sales revenue with purchase spend over a period.
type FinancialSummary struct {
	Revenue       decimal.Decimal `json:"revenue"`
	PurchaseSpend decimal.Decimal `json:"purchase_spend"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	SalesCount    int64           `json:"sales_count"`
	PurchaseCount int64           `json:"purchase_count"`
}
