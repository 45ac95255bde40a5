package repository

import (
	"time"

	"go-inventory-ledger/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	GetDashboardStats(lowStockThreshold int) (*model.DashboardStats, error)
	GetStockMovement(startDate, endDate time.Time) ([]model.StockMovementData, error)
	GetFinancialSummary(startDate, endDate time.Time) (*model.FinancialSummary, error)
}

type analyticsRepo struct {
	db *gorm.DB
}

func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepo{db}
}

func (r *analyticsRepo) GetDashboardStats(lowStockThreshold int) (*model.DashboardStats, error) {
	var stats model.DashboardStats

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{r.db.Model(&model.Product{}), &stats.TotalProducts},
		{r.db.Model(&model.Product{}).Where("stock < ?", lowStockThreshold), &stats.LowStockCount},
		{r.db.Model(&model.Product{}).Where("stock = 0"), &stats.OutOfStockCount},
		{r.db.Model(&model.Supplier{}), &stats.TotalSuppliers},
		{r.db.Model(&model.Supplier{}).Where("status = ?", model.SupplierActive), &stats.ActiveSuppliers},
		{r.db.Model(&model.Purchase{}), &stats.TotalPurchases},
		{r.db.Model(&model.Sale{}), &stats.TotalSales},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	valuation, err := r.sum(r.db.Model(&model.Product{}), "stock * price")
	if err != nil {
		return nil, err
	}
	stats.TotalValuation = valuation

	return &stats, nil
}

// GetStockMovement buckets purchase (inbound) and sale (outbound) quantities per calendar day,
// including days without movement.
func (r *analyticsRepo) GetStockMovement(startDate, endDate time.Time) ([]model.StockMovementData, error) {
	var inbound []struct {
		PurchaseDate time.Time
		Quantity     int
	}
	var outbound []struct {
		SaleDate time.Time
		Quantity int
	}

	if err := r.db.Model(&model.Purchase{}).
		Select("purchase_date, quantity").
		Where("purchase_date BETWEEN ? AND ?", startDate, endDate).
		Scan(&inbound).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Sale{}).
		Select("sale_date, quantity").
		Where("sale_date BETWEEN ? AND ?", startDate, endDate).
		Scan(&outbound).Error; err != nil {
		return nil, err
	}

	loc := startDate.Location()
	var results []model.StockMovementData
	index := make(map[string]int)
	for day := truncateDay(startDate); !day.After(endDate); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		index[key] = len(results)
		results = append(results, model.StockMovementData{Date: key})
	}

	for _, row := range inbound {
		if i, ok := index[row.PurchaseDate.In(loc).Format("2006-01-02")]; ok {
			results[i].Inbound += row.Quantity
		}
	}
	for _, row := range outbound {
		if i, ok := index[row.SaleDate.In(loc).Format("2006-01-02")]; ok {
			results[i].Outbound += row.Quantity
		}
	}

	return results, nil
}

func (r *analyticsRepo) GetFinancialSummary(startDate, endDate time.Time) (*model.FinancialSummary, error) {
	var summary model.FinancialSummary

	sales := r.db.Model(&model.Sale{}).
		Where("sale_date BETWEEN ? AND ?", startDate, endDate).
		Session(&gorm.Session{})
	purchases := r.db.Model(&model.Purchase{}).
		Where("purchase_date BETWEEN ? AND ?", startDate, endDate).
		Session(&gorm.Session{})

	revenue, err := r.sum(sales, "total_amount")
	if err != nil {
		return nil, err
	}
	spend, err := r.sum(purchases, "total_amount")
	if err != nil {
		return nil, err
	}
	if err := sales.Count(&summary.SalesCount).Error; err != nil {
		return nil, err
	}
	if err := purchases.Count(&summary.PurchaseCount).Error; err != nil {
		return nil, err
	}

	summary.Revenue = revenue
	summary.PurchaseSpend = spend
	summary.GrossProfit = revenue.Sub(spend)
	return &summary, nil
}

func (r *analyticsRepo) sum(q *gorm.DB, expr string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := q.Select("SUM(" + expr + ")").Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal.Round(2), nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
