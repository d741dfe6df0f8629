package controllers

import (
	"fmt"
	"net/http"
	"time"

	"motorcycles-backend/config"
	"motorcycles-backend/models"
	"motorcycles-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type DashboardOverview struct {
	TotalMotorcycles int64           `json:"totalMotorcycles"`
	TotalCustomers   int64           `json:"totalCustomers"`
	TotalEmployees   int64           `json:"totalEmployees"`
	TotalSales       int64           `json:"totalSales"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	MonthlyRevenue   decimal.Decimal `json:"monthlyRevenue"`
	RecentSales      []RecentSale    `json:"recentSales"`
}

type RecentSale struct {
	ID         uint              `json:"id"`
	SaleNumber string            `json:"saleNumber"`
	Customer   string            `json:"customer"`
	Total      decimal.Decimal   `json:"total"`
	Status     models.SaleStatus `json:"status"`
	SaleDate   string            `json:"saleDate"` // e.g. "Today", "Yesterday"
}

func GetDashboardOverview(c *gin.Context) {
	var overview DashboardOverview
	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.Motorcycle{}, &overview.TotalMotorcycles},
		{&models.Customer{}, &overview.TotalCustomers},
		{&models.Employee{}, &overview.TotalEmployees},
		{&models.Sale{}, &overview.TotalSales},
	}
	for _, cnt := range counts {
		if err := config.DB.Model(cnt.model).Count(cnt.dst).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
			return
		}
	}

	// Revenue across all sales, as shown on the home page
	if err := config.DB.Model(&models.Sale{}).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&overview.TotalRevenue); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load revenue")
		return
	}

	// This Month's Revenue
	now := localNow()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthly, err := revenueBetween(firstOfMonth, firstOfMonth.AddDate(0, 1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load revenue")
		return
	}
	overview.MonthlyRevenue = monthly

	// Recent sales (last 5)
	var recent []models.Sale
	if err := config.DB.Preload("Customer").Order("sale_date DESC, id DESC").Limit(5).Find(&recent).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load recent sales")
		return
	}
	overview.RecentSales = make([]RecentSale, 0, len(recent))
	for _, s := range recent {
		name := ""
		if s.Customer != nil {
			name = s.Customer.FullName()
		}
		overview.RecentSales = append(overview.RecentSales, RecentSale{
			ID:         s.ID,
			SaleNumber: s.SaleNumber,
			Customer:   name,
			Total:      s.Total,
			Status:     s.Status,
			SaleDate:   relativeDay(s.SaleDate, now),
		})
	}

	c.JSON(http.StatusOK, overview)
}

// relativeDay renders "Today", "Yesterday", "N days ago" or "in N days".
func relativeDay(t, now time.Time) string {
	days := utils.DaysBetween(t.In(now.Location()), now)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 0:
		return fmt.Sprintf("in %d days", -days)
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

// revenueBetween sums non-cancelled sales dated in [start, end).
func revenueBetween(start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := config.DB.Model(&models.Sale{}).
		Where("sale_date >= ? AND sale_date < ? AND status <> ?", start.UTC(), end.UTC(), models.SaleStatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Row().Scan(&total)
	return total, err
}
