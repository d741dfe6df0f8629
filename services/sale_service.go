// services/sale_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"motorcycles-backend/models"
	"motorcycles-backend/sales"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReceiptSender is notified once a sale reaches COMPLETED.
type ReceiptSender interface {
	SendSaleReceipt(ctx context.Context, sale *models.Sale) error
}

type SaleService struct {
	db       *gorm.DB
	receipts ReceiptSender
	loc      *time.Location
	now      func() time.Time
}

func NewSaleService(db *gorm.DB, receipts ReceiptSender, loc *time.Location) *SaleService {
	if loc == nil {
		loc = time.UTC
	}
	return &SaleService{db: db, receipts: receipts, loc: loc, now: time.Now}
}

// WithClock replaces the time source used for date validation.
func (s *SaleService) WithClock(now func() time.Time) *SaleService {
	s.now = now
	return s
}

func (s *SaleService) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Employee").
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Details.Motorcycle")
}

func (s *SaleService) List(ctx context.Context) ([]models.Sale, error) {
	list := []models.Sale{}
	if err := s.preloaded(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return list, nil
}

func (s *SaleService) Get(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.preloaded(ctx).First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get sale %d: %w", id, err)
	}
	return &sale, nil
}

// Create validates the payload with the sale engine and stores header and
// lines in one transaction. Subtotals and the total are recomputed.
func (s *SaleService) Create(ctx context.Context, p models.SalePayload) (*models.Sale, error) {
	sale, err := s.prepare(ctx, p, 0)
	if err != nil {
		return nil, err
	}

	// Start transaction
	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	details := sale.Details
	sale.Details = nil
	if err := tx.Omit(clause.Associations).Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create sale: %w", err)
	}
	if err := createDetails(tx, sale.ID, details); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit sale: %w", err)
	}

	created, err := s.Get(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	slog.Info("sale created", "id", created.ID, "saleNumber", created.SaleNumber, "total", created.Total.String())
	if created.Status == models.SaleStatusCompleted {
		s.sendReceipt(ctx, created)
	}
	return created, nil
}

// Update replaces the header and every line of an existing sale.
func (s *SaleService) Update(ctx context.Context, id uint, p models.SalePayload) (*models.Sale, error) {
	var existing models.Sale
	if err := s.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get sale %d: %w", id, err)
	}

	sale, err := s.prepare(ctx, p, id)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Model(&models.Sale{}).Where("id = ?", id).Updates(map[string]interface{}{
		"sale_number":    sale.SaleNumber,
		"customer_id":    sale.CustomerID,
		"employee_id":    sale.EmployeeID,
		"sale_date":      sale.SaleDate,
		"status":         sale.Status,
		"payment_method": sale.PaymentMethod,
		"total":          sale.Total,
	}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("update sale %d: %w", id, err)
	}
	if err := tx.Where("sale_id = ?", id).Delete(&models.DetailSale{}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("clear sale %d details: %w", id, err)
	}
	if err := createDetails(tx, id, sale.Details); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit sale %d: %w", id, err)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated.Status == models.SaleStatusCompleted && existing.Status != models.SaleStatusCompleted {
		s.sendReceipt(ctx, updated)
	}
	return updated, nil
}

func (s *SaleService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&models.DetailSale{}).Error; err != nil {
			return fmt.Errorf("delete sale %d details: %w", id, err)
		}
		res := tx.Delete(&models.Sale{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete sale %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// prepare turns a payload into a sale ready to persist. selfID excludes the
// sale being updated from the sale number uniqueness check.
func (s *SaleService) prepare(ctx context.Context, p models.SalePayload, selfID uint) (models.Sale, error) {
	motorcycles, err := s.loadMotorcycles(ctx, p.Details)
	if err != nil {
		return models.Sale{}, err
	}

	draft, parseViolations := sales.DraftFromPayload(p, motorcycles, s.loc)
	v := draft.Validate(s.now().In(s.loc))
	v.Merge("", parseViolations)
	if p.Status != "" && !p.Status.Valid() {
		v.Add("status", "status is invalid")
	}
	if !v.Empty() {
		return models.Sale{}, &ValidationError{Violations: v}
	}

	if err := s.requireExists(ctx, &models.Customer{}, draft.Customer.ID, "customer"); err != nil {
		return models.Sale{}, err
	}
	if err := s.requireExists(ctx, &models.Employee{}, draft.Employee.ID, "employee"); err != nil {
		return models.Sale{}, err
	}

	sale := draft.ToSale()
	sale.SaleDate = sale.SaleDate.UTC()
	var count int64
	q := s.db.WithContext(ctx).Model(&models.Sale{}).Where("sale_number = ?", sale.SaleNumber)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&count).Error; err != nil {
		return models.Sale{}, fmt.Errorf("check sale number: %w", err)
	}
	if count > 0 {
		return models.Sale{}, fmt.Errorf("%w: %s", ErrDuplicateSaleNumber, sale.SaleNumber)
	}
	return sale, nil
}

func (s *SaleService) loadMotorcycles(ctx context.Context, details []models.DetailPayload) (map[uint]models.Motorcycle, error) {
	ids := make([]uint, 0, len(details))
	for _, d := range details {
		if d.Motorcycle.ID != 0 {
			ids = append(ids, d.Motorcycle.ID)
		}
	}
	found := map[uint]models.Motorcycle{}
	if len(ids) == 0 {
		return found, nil
	}
	var list []models.Motorcycle
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("load motorcycles: %w", err)
	}
	for _, m := range list {
		found[m.ID] = m
	}
	return found, nil
}

func (s *SaleService) requireExists(ctx context.Context, model interface{}, id uint, name string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check %s %d: %w", name, id, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s %d", ErrReferenceNotFound, name, id)
	}
	return nil
}

// ResendReceipt sends the receipt of a stored sale again, whatever its status.
func (s *SaleService) ResendReceipt(ctx context.Context, id uint) error {
	if s.receipts == nil {
		return ErrNotificationsDisabled
	}
	sale, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.receipts.SendSaleReceipt(ctx, sale)
}

func (s *SaleService) sendReceipt(ctx context.Context, sale *models.Sale) {
	if s.receipts == nil {
		return
	}
	if err := s.receipts.SendSaleReceipt(ctx, sale); err != nil {
		slog.Warn("sale receipt not sent", "sale", sale.SaleNumber, "error", err)
	}
}

func createDetails(tx *gorm.DB, saleID uint, details []models.DetailSale) error {
	for i := range details {
		details[i].ID = 0
		details[i].SaleID = saleID
	}
	if len(details) == 0 {
		return nil
	}
	if err := tx.Omit(clause.Associations).Create(&details).Error; err != nil {
		return fmt.Errorf("create sale details: %w", err)
	}
	return nil
}
