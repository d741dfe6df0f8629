package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"motorcycles-backend/config"
	"motorcycles-backend/models"
	"motorcycles-backend/sales"
)

var fixedNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	customer models.Customer
	employee models.Employee
	bikes    []models.Motorcycle
}

func setupTestDB(t *testing.T) *fixture {
	t.Helper()
	db, err := config.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &fixture{db: db}
	f.customer = models.Customer{FirstName: "Laura", LastName: "Ríos", Email: "laura@example.com", Phone: "+573001234567", Status: models.CustomerActive}
	require.NoError(t, db.Create(&f.customer).Error)
	f.employee = models.Employee{FirstName: "Mario", LastName: "Vega", Email: "mario@example.com", JobTitle: "Seller", Status: models.EmployeeActive}
	require.NoError(t, db.Create(&f.employee).Error)
	f.bikes = []models.Motorcycle{
		{Code: "YAM-MT07", Name: "MT-07", Brand: "Yamaha", Model: "MT-07", Year: 2024, EngineCapacity: 689, Price: decimal.NewFromInt(1000)},
		{Code: "HON-CB5", Name: "CB500F", Brand: "Honda", Model: "CB500F", Year: 2023, EngineCapacity: 471, Price: decimal.NewFromInt(500)},
	}
	require.NoError(t, db.Create(&f.bikes).Error)
	return f
}

func (f *fixture) payload(number string) models.SalePayload {
	return models.SalePayload{
		SaleNumber:    number,
		Customer:      &models.Ref{ID: f.customer.ID},
		Employee:      &models.Ref{ID: f.employee.ID},
		SaleDate:      "2025-06-15T00:00:00Z",
		Status:        models.SaleStatusPending,
		PaymentMethod: models.PaymentCash,
		Total:         decimal.NewFromInt(1),
		Details: []models.DetailPayload{
			{Motorcycle: models.Ref{ID: f.bikes[0].ID}, Quantity: 2, UnitPrice: decimal.NewFromInt(1000), Discount: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(5)},
		},
	}
}

type fakeReceipts struct {
	sent []string
	err  error
}

func (r *fakeReceipts) SendSaleReceipt(_ context.Context, sale *models.Sale) error {
	r.sent = append(r.sent, sale.SaleNumber)
	return r.err
}

func newSaleService(f *fixture, r ReceiptSender) *SaleService {
	return NewSaleService(f.db, r, time.UTC).WithClock(func() time.Time { return fixedNow })
}

func TestSaleServiceCreateRecomputesTotals(t *testing.T) {
	f := setupTestDB(t)
	svc := newSaleService(f, nil)

	sale, err := svc.Create(context.Background(), f.payload("SALE-0001"))
	require.NoError(t, err)

	assert.NotZero(t, sale.ID)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(1900)), "total %s", sale.Total)
	require.Len(t, sale.Details, 1)
	assert.True(t, sale.Details[0].Subtotal.Equal(decimal.NewFromInt(1900)))
	require.NotNil(t, sale.Details[0].Motorcycle)
	assert.Equal(t, "YAM-MT07", sale.Details[0].Motorcycle.Code)
	require.NotNil(t, sale.Customer)
	assert.Equal(t, "Laura", sale.Customer.FirstName)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSaleServiceCreateFractionalCents(t *testing.T) {
	f := setupTestDB(t)
	svc := newSaleService(f, nil)

	p := f.payload("SALE-0002")
	p.Details = []models.DetailPayload{
		{Motorcycle: models.Ref{ID: f.bikes[0].ID}, Quantity: 1, UnitPrice: decimal.RequireFromString("10.005")},
		{Motorcycle: models.Ref{ID: f.bikes[1].ID}, Quantity: 1, UnitPrice: decimal.RequireFromString("10.005")},
	}

	sale, err := svc.Create(context.Background(), p)
	require.NoError(t, err)

	require.Len(t, sale.Details, 2)
	sum := decimal.Zero
	for _, det := range sale.Details {
		assert.True(t, det.UnitPrice.Equal(decimal.RequireFromString("10.01")), "unit price %s", det.UnitPrice)
		assert.True(t, det.Subtotal.Equal(det.UnitPrice.Mul(decimal.NewFromInt(int64(det.Quantity))).Sub(det.Discount)))
		sum = sum.Add(det.Subtotal)
	}
	assert.True(t, sale.Total.Equal(sum), "total %s != sum of subtotals %s", sale.Total, sum)
}

func TestSaleServiceCreateValidation(t *testing.T) {
	f := setupTestDB(t)
	svc := newSaleService(f, nil)

	p := f.payload("S1")
	p.Customer = nil
	p.SaleDate = "2025-08-30"
	p.Details = append(p.Details, models.DetailPayload{Motorcycle: models.Ref{ID: 999}, Quantity: 1})

	_, err := svc.Create(context.Background(), p)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"saleNumber", "customer", "saleDate", "details[1].motorcycle"} {
		assert.True(t, verr.Violations.Has(field), field)
	}
}

func TestSaleServiceCreateUnknownReferences(t *testing.T) {
	f := setupTestDB(t)
	svc := newSaleService(f, nil)

	p := f.payload("SALE-0002")
	p.Employee = &models.Ref{ID: 404}

	_, err := svc.Create(context.Background(), p)
	assert.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestSaleServiceDuplicateNumber(t *testing.T) {
	f := setupTestDB(t)
	svc := newSaleService(f, nil)

	_, err := svc.Create(context.Background(), f.payload("SALE-0003"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), f.payload("SALE-0003"))
	assert.ErrorIs(t, err, ErrDuplicateSaleNumber)
}

func TestSaleServiceUpdateReplacesLines(t *testing.T) {
	f := setupTestDB(t)
	receipts := &fakeReceipts{}
	svc := newSaleService(f, receipts)
	ctx := context.Background()

	created, err := svc.Create(ctx, f.payload("SALE-0004"))
	require.NoError(t, err)
	assert.Empty(t, receipts.sent)

	p := f.payload("SALE-0004")
	p.Status = models.SaleStatusCompleted
	p.Details = []models.DetailPayload{
		{Motorcycle: models.Ref{ID: f.bikes[1].ID}, Quantity: 1},
		{Motorcycle: models.Ref{ID: f.bikes[0].ID}, Quantity: 1, UnitPrice: decimal.NewFromInt(950)},
	}

	updated, err := svc.Update(ctx, created.ID, p)
	require.NoError(t, err)

	assert.Equal(t, models.SaleStatusCompleted, updated.Status)
	require.Len(t, updated.Details, 2)
	assert.Equal(t, f.bikes[1].ID, updated.Details[0].MotorcycleID)
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(1450)))
	assert.Equal(t, []string{"SALE-0004"}, receipts.sent)

	var count int64
	require.NoError(t, f.db.Model(&models.DetailSale{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// already completed, no second receipt
	_, err = svc.Update(ctx, created.ID, p)
	require.NoError(t, err)
	assert.Len(t, receipts.sent, 1)
}

func TestSaleServiceReceiptFailureDoesNotFail(t *testing.T) {
	f := setupTestDB(t)
	svc := newSaleService(f, &fakeReceipts{err: errors.New("twilio down")})

	p := f.payload("SALE-0005")
	p.Status = models.SaleStatusCompleted

	_, err := svc.Create(context.Background(), p)
	assert.NoError(t, err)
}

func TestSaleServiceResendReceipt(t *testing.T) {
	f := setupTestDB(t)
	receipts := &fakeReceipts{}
	svc := newSaleService(f, receipts)
	ctx := context.Background()

	sale, err := svc.Create(ctx, f.payload("SALE-0008"))
	require.NoError(t, err)
	assert.Empty(t, receipts.sent, "pending sales send nothing")

	require.NoError(t, svc.ResendReceipt(ctx, sale.ID))
	assert.Equal(t, []string{"SALE-0008"}, receipts.sent)
	assert.ErrorIs(t, svc.ResendReceipt(ctx, 999), ErrNotFound)

	receipts.err = errors.New("twilio down")
	assert.Error(t, svc.ResendReceipt(ctx, sale.ID))

	assert.ErrorIs(t, newSaleService(f, nil).ResendReceipt(ctx, sale.ID), ErrNotificationsDisabled)
}

func TestSaleServiceNotFound(t *testing.T) {
	f := setupTestDB(t)
	svc := newSaleService(f, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Update(ctx, 42, f.payload("SALE-0006"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 42), ErrNotFound)
}

func TestSaleServiceDelete(t *testing.T) {
	f := setupTestDB(t)
	svc := newSaleService(f, nil)
	ctx := context.Background()

	sale, err := svc.Create(ctx, f.payload("SALE-0007"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, sale.ID))

	var count int64
	require.NoError(t, f.db.Model(&models.DetailSale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDependencyService(t *testing.T) {
	f := setupTestDB(t)
	svc := newSaleService(f, nil)
	deps := NewDependencyService(f.db)
	ctx := context.Background()

	_, err := svc.Create(ctx, f.payload("SALE-0010"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, f.payload("SALE-0011"))
	require.NoError(t, err)

	report, err := deps.Check(ctx, sales.KindMotorcycle, f.bikes[0].ID)
	require.NoError(t, err)
	assert.False(t, report.CanDelete)
	assert.Equal(t, []string{"Sale SALE-0010", "Sale SALE-0011"}, report.Dependencies)

	report, err = deps.Check(ctx, sales.KindMotorcycle, f.bikes[1].ID)
	require.NoError(t, err)
	assert.True(t, report.CanDelete)
	assert.Empty(t, report.Dependencies)

	report, err = deps.Check(ctx, sales.KindCustomer, f.customer.ID)
	require.NoError(t, err)
	assert.Len(t, report.Dependencies, 2)

	report, err = deps.Check(ctx, sales.KindEmployee, f.employee.ID+1)
	require.NoError(t, err)
	assert.True(t, report.CanDelete)

	_, err = deps.Check(ctx, sales.Kind("sale"), 1)
	assert.Error(t, err)
}

type fakeMessages struct {
	params []*twilioApi.CreateMessageParams
	err    error
}

func (m *fakeMessages) CreateMessage(p *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	m.params = append(m.params, p)
	if m.err != nil {
		return nil, m.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestNotificationServiceChannels(t *testing.T) {
	f := setupTestDB(t)
	sale, err := newSaleService(f, nil).Create(context.Background(), f.payload("SALE-0020"))
	require.NoError(t, err)

	msgs := &fakeMessages{}
	n := &NotificationService{db: f.db, messages: msgs, from: "+15550001111", whatsApp: "+15550002222"}

	require.NoError(t, n.SendSaleReceipt(context.Background(), sale))
	require.Len(t, msgs.params, 1)
	assert.Equal(t, "whatsapp:+573001234567", *msgs.params[0].To)
	assert.Equal(t, "whatsapp:+15550002222", *msgs.params[0].From)
	assert.Contains(t, *msgs.params[0].Body, "Yamaha MT-07 (2024)")
	assert.Contains(t, *msgs.params[0].Body, "Total: 1900.00")

	smsOnly := &NotificationService{db: f.db, messages: msgs, from: "+15550001111"}
	require.NoError(t, smsOnly.SendSaleReceipt(context.Background(), sale))
	assert.Equal(t, "+573001234567", *msgs.params[1].To)

	var logs []models.NotificationLog
	require.NoError(t, f.db.Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, "whatsapp", logs[0].Channel)
	assert.Equal(t, "sms", logs[1].Channel)
	assert.Equal(t, "sent", logs[1].Status)
}

func TestNotificationServiceFailureIsLogged(t *testing.T) {
	f := setupTestDB(t)
	sale, err := newSaleService(f, nil).Create(context.Background(), f.payload("SALE-0021"))
	require.NoError(t, err)

	n := &NotificationService{db: f.db, messages: &fakeMessages{err: errors.New("boom")}, from: "+15550001111"}
	assert.Error(t, n.SendSaleReceipt(context.Background(), sale))

	var entry models.NotificationLog
	require.NoError(t, f.db.First(&entry).Error)
	assert.Equal(t, "failed", entry.Status)
	assert.Equal(t, "boom", entry.ErrorMessage)
}

func TestNotificationServiceDisabled(t *testing.T) {
	var n *NotificationService = NewNotificationService(nil, config.TwilioSettings{})

	assert.Nil(t, n)
	assert.NoError(t, n.SendSaleReceipt(context.Background(), &models.Sale{}))
}
