// services/notification_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"motorcycles-backend/config"
	"motorcycles-backend/models"
	"motorcycles-backend/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// NotificationService sends sale receipts to customers over SMS or WhatsApp.
type NotificationService struct {
	db       *gorm.DB
	messages messageCreator
	from     string
	whatsApp string
}

// NewNotificationService returns nil when Twilio is not configured.
func NewNotificationService(db *gorm.DB, tw config.TwilioSettings) *NotificationService {
	if !tw.Enabled() {
		slog.Info("twilio not configured, sale receipts disabled")
		return nil
	}
	// Initialize Twilio client
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: tw.AccountSID,
		Password: tw.AuthToken,
	})
	return &NotificationService{db: db, messages: client.Api, from: tw.PhoneNumber, whatsApp: tw.WhatsAppNumber}
}

func ReceiptMessage(sale *models.Sale) string {
	var b strings.Builder
	name := "customer"
	if sale.Customer != nil && sale.Customer.FirstName != "" {
		name = sale.Customer.FirstName
	}
	fmt.Fprintf(&b, "Hi %s, thank you for your purchase! Sale %s", name, sale.SaleNumber)
	var items []string
	for _, d := range sale.Details {
		if d.Motorcycle != nil {
			items = append(items, fmt.Sprintf("%dx %s", d.Quantity, d.Motorcycle.Label()))
		}
	}
	if len(items) > 0 {
		b.WriteString(": " + strings.Join(items, ", "))
	}
	fmt.Fprintf(&b, ". Total: %s", sale.Total.StringFixed(2))
	if sale.PaymentMethod != "" {
		b.WriteString(" (" + sale.PaymentMethod.Label() + ")")
	}
	b.WriteString(".")
	return b.String()
}

// SendSaleReceipt messages the sale's customer and records the attempt.
func (s *NotificationService) SendSaleReceipt(ctx context.Context, sale *models.Sale) error {
	if s == nil {
		return nil
	}
	customer := sale.Customer
	if customer == nil {
		return errors.New("sale customer not loaded")
	}
	if !utils.ValidatePhone(customer.Phone) {
		return fmt.Errorf("customer %d phone %q cannot receive messages", customer.ID, customer.Phone)
	}

	message := ReceiptMessage(sale)

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	phone := utils.CleanPhone(customer.Phone)
	to := phone
	if strings.HasPrefix(phone, "+") && s.whatsApp != "" {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + s.whatsApp)
	} else {
		params.SetFrom(s.from)
	}

	resp, err := s.messages.CreateMessage(params)
	status := "sent"
	errorMsg := ""
	if err != nil {
		status = "failed"
		errorMsg = err.Error()
	} else if resp != nil && resp.Sid != nil {
		slog.Info("receipt sent", "sale", sale.SaleNumber, "channel", channel, "sid", *resp.Sid)
	}

	entry := models.NotificationLog{
		SaleID:       sale.ID,
		CustomerID:   customer.ID,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}
	if logErr := s.db.WithContext(ctx).Create(&entry).Error; logErr != nil {
		slog.Error("failed to log notification", "sale", sale.ID, "error", logErr)
	}
	if err != nil {
		return fmt.Errorf("send receipt for sale %s: %w", sale.SaleNumber, err)
	}
	return nil
}
