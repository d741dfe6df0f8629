// controllers/report.go
package controllers

import (
	"net/http"
	"strings"
	"time"

	"motorcycles-backend/config"
	"motorcycles-backend/models"
	"motorcycles-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   decimal.Decimal     `json:"currentMonthRevenue"`
	MonthGrowth           float64             `json:"monthGrowth"`
	CurrentQuarterRevenue decimal.Decimal     `json:"currentQuarterRevenue"`
	QuarterGrowth         float64             `json:"quarterGrowth"`
	CurrentYearRevenue    decimal.Decimal     `json:"currentYearRevenue"`
	YearGrowth            float64             `json:"yearGrowth"`
	TopMotorcycles        []MotorcycleSummary `json:"topMotorcycles"`
	TopCustomers          []CustomerSummary   `json:"topCustomers"`
	TopEmployees          []EmployeeSummary   `json:"topEmployees"`
	PaymentMethods        []PaymentShare      `json:"paymentMethods"`
	QuickStats            QuickStatistics     `json:"quickStats"`
}

type MotorcycleSummary struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Units   int64           `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

type CustomerSummary struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Purchases int64           `json:"purchases"`
	Spent     decimal.Decimal `json:"spent"`
}

type EmployeeSummary struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Sales   int64           `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}

type PaymentShare struct {
	Method  models.PaymentMethod `json:"method"`
	Label   string               `json:"label"`
	Sales   int64                `json:"sales"`
	Revenue decimal.Decimal      `json:"revenue"`
}

type QuickStatistics struct {
	TotalCustomers  int64           `json:"totalCustomers"`
	TotalSales      int64           `json:"totalSales"`
	AvgMonthlySales float64         `json:"avgMonthlySales"`
	AvgOrderValue   decimal.Decimal `json:"avgOrderValue"`
	CancelledSales  int64           `json:"cancelledSales"`
}

// GetReportAnalytics returns the revenue summary for the current month,
// quarter and year with growth against the previous period
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	now := localNow()
	currentYear, currentMonth, _ := now.Date()
	loc := now.Location()

	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, loc)
	firstOfYear := time.Date(currentYear, 1, 1, 0, 0, 0, 0, loc)
	quarterStart := rc.getQuarterStart(now)

	periods := []struct {
		start, end time.Time
		dst        *decimal.Decimal
	}{
		{firstOfMonth, firstOfMonth.AddDate(0, 1, 0), new(decimal.Decimal)},
		{firstOfMonth.AddDate(0, -1, 0), firstOfMonth, new(decimal.Decimal)},
		{quarterStart, quarterStart.AddDate(0, 3, 0), new(decimal.Decimal)},
		{quarterStart.AddDate(0, -3, 0), quarterStart, new(decimal.Decimal)},
		{firstOfYear, firstOfYear.AddDate(1, 0, 0), new(decimal.Decimal)},
		{firstOfYear.AddDate(-1, 0, 0), firstOfYear, new(decimal.Decimal)},
	}
	for _, p := range periods {
		revenue, err := revenueBetween(p.start, p.end)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get revenue")
			return
		}
		*p.dst = revenue
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   *periods[0].dst,
		MonthGrowth:           rc.calculateGrowthPercentage(*periods[0].dst, *periods[1].dst),
		CurrentQuarterRevenue: *periods[2].dst,
		QuarterGrowth:         rc.calculateGrowthPercentage(*periods[2].dst, *periods[3].dst),
		CurrentYearRevenue:    *periods[4].dst,
		YearGrowth:            rc.calculateGrowthPercentage(*periods[4].dst, *periods[5].dst),
	}

	var err error
	if summary.TopMotorcycles, err = rc.getTopMotorcycles(firstOfYear, 5); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top motorcycles")
		return
	}
	if summary.TopCustomers, err = rc.getTopCustomers(firstOfYear, 5); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top customers")
		return
	}
	if summary.TopEmployees, err = rc.getTopEmployees(firstOfYear, 5); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top employees")
		return
	}
	if summary.PaymentMethods, err = rc.getPaymentMethods(firstOfYear); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get payment methods")
		return
	}
	if summary.QuickStats, err = rc.getQuickStatistics(loc); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) calculateGrowthPercentage(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsZero() {
			return 0
		}
		return 100
	}
	growth, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return growth
}

func (rc *ReportController) getTopMotorcycles(since time.Time, limit int) ([]MotorcycleSummary, error) {
	rows, err := config.DB.Table("detail_sales").
		Select("motorcycles.id, motorcycles.brand, motorcycles.model, motorcycles.year, SUM(detail_sales.quantity) AS units, SUM(detail_sales.subtotal) AS revenue").
		Joins("JOIN sales ON sales.id = detail_sales.sale_id").
		Joins("JOIN motorcycles ON motorcycles.id = detail_sales.motorcycle_id").
		Where("sales.sale_date >= ? AND sales.status <> ?", since.UTC(), models.SaleStatusCancelled).
		Group("motorcycles.id, motorcycles.brand, motorcycles.model, motorcycles.year").
		Order("revenue DESC").
		Limit(limit).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MotorcycleSummary{}
	for rows.Next() {
		var m models.Motorcycle
		var s MotorcycleSummary
		if err := rows.Scan(&m.ID, &m.Brand, &m.Model, &m.Year, &s.Units, &s.Revenue); err != nil {
			return nil, err
		}
		s.ID, s.Name = m.ID, m.Label()
		out = append(out, s)
	}
	return out, rows.Err()
}

func (rc *ReportController) getTopCustomers(since time.Time, limit int) ([]CustomerSummary, error) {
	rows, err := config.DB.Table("sales").
		Select("customers.id, customers.first_name, customers.last_name, COUNT(sales.id) AS purchases, SUM(sales.total) AS spent").
		Joins("JOIN customers ON customers.id = sales.customer_id").
		Where("sales.sale_date >= ? AND sales.status <> ?", since.UTC(), models.SaleStatusCancelled).
		Group("customers.id, customers.first_name, customers.last_name").
		Order("spent DESC").
		Limit(limit).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CustomerSummary{}
	for rows.Next() {
		var s CustomerSummary
		var first, last string
		if err := rows.Scan(&s.ID, &first, &last, &s.Purchases, &s.Spent); err != nil {
			return nil, err
		}
		s.Name = strings.TrimSpace(first + " " + last)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (rc *ReportController) getTopEmployees(since time.Time, limit int) ([]EmployeeSummary, error) {
	rows, err := config.DB.Table("sales").
		Select("employees.id, employees.first_name, employees.last_name, COUNT(sales.id) AS sales_count, SUM(sales.total) AS revenue").
		Joins("JOIN employees ON employees.id = sales.employee_id").
		Where("sales.sale_date >= ? AND sales.status <> ?", since.UTC(), models.SaleStatusCancelled).
		Group("employees.id, employees.first_name, employees.last_name").
		Order("revenue DESC").
		Limit(limit).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []EmployeeSummary{}
	for rows.Next() {
		var s EmployeeSummary
		var first, last string
		if err := rows.Scan(&s.ID, &first, &last, &s.Sales, &s.Revenue); err != nil {
			return nil, err
		}
		s.Name = strings.TrimSpace(first + " " + last)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (rc *ReportController) getPaymentMethods(since time.Time) ([]PaymentShare, error) {
	rows, err := config.DB.Table("sales").
		Select("payment_method, COUNT(id) AS sales_count, SUM(total) AS revenue").
		Where("sale_date >= ? AND status <> ?", since.UTC(), models.SaleStatusCancelled).
		Group("payment_method").
		Order("revenue DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PaymentShare{}
	for rows.Next() {
		var s PaymentShare
		var method string
		if err := rows.Scan(&method, &s.Sales, &s.Revenue); err != nil {
			return nil, err
		}
		s.Method = models.PaymentMethod(method)
		s.Label = s.Method.Label()
		out = append(out, s)
	}
	return out, rows.Err()
}

func (rc *ReportController) getQuickStatistics(loc *time.Location) (QuickStatistics, error) {
	var stats QuickStatistics

	if err := config.DB.Model(&models.Customer{}).Count(&stats.TotalCustomers).Error; err != nil {
		return stats, err
	}
	if err := config.DB.Model(&models.Sale{}).Where("status <> ?", models.SaleStatusCancelled).
		Count(&stats.TotalSales).Error; err != nil {
		return stats, err
	}
	if err := config.DB.Model(&models.Sale{}).Where("status = ?", models.SaleStatusCancelled).
		Count(&stats.CancelledSales).Error; err != nil {
		return stats, err
	}

	// Average sales per active month, counted in Go to stay driver neutral
	var dates []time.Time
	if err := config.DB.Model(&models.Sale{}).Where("status <> ?", models.SaleStatusCancelled).
		Pluck("sale_date", &dates).Error; err != nil {
		return stats, err
	}
	months := map[string]struct{}{}
	for _, d := range dates {
		months[d.In(loc).Format("2006-01")] = struct{}{}
	}
	if len(months) > 0 {
		stats.AvgMonthlySales = float64(len(dates)) / float64(len(months))
	}

	var totalRevenue decimal.Decimal
	if err := config.DB.Model(&models.Sale{}).Where("status <> ?", models.SaleStatusCancelled).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&totalRevenue); err != nil {
		return stats, err
	}
	stats.AvgOrderValue = decimal.Zero
	if stats.TotalSales > 0 {
		stats.AvgOrderValue = totalRevenue.Div(decimal.NewFromInt(stats.TotalSales)).Round(2)
	}

	return stats, nil
}
