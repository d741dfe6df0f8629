package services

import (
	"context"
	"fmt"

	"motorcycles-backend/models"
	"motorcycles-backend/sales"

	"gorm.io/gorm"
)

// DependencyService answers whether a catalogue or people record is still
// referenced by any sale.
type DependencyService struct {
	db *gorm.DB
}

func NewDependencyService(db *gorm.DB) *DependencyService {
	return &DependencyService{db: db}
}

func (s *DependencyService) Check(ctx context.Context, kind sales.Kind, id uint) (sales.DependencyReport, error) {
	q := s.db.WithContext(ctx).Model(&models.Sale{}).Order("id")
	switch kind {
	case sales.KindCustomer:
		q = q.Where("customer_id = ?", id)
	case sales.KindEmployee:
		q = q.Where("employee_id = ?", id)
	case sales.KindMotorcycle:
		q = q.Preload("Details").
			Where("id IN (?)", s.db.Model(&models.DetailSale{}).Select("sale_id").Where("motorcycle_id = ?", id))
	default:
		return sales.DependencyReport{}, fmt.Errorf("unknown entity kind %q", kind)
	}

	var list []models.Sale
	if err := q.Find(&list).Error; err != nil {
		return sales.DependencyReport{}, fmt.Errorf("check %s %d dependencies: %w", kind, id, err)
	}
	return sales.CheckDependencies(list, kind, id), nil
}
