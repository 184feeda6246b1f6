package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"festivo/models"
)

// Intent is the client-facing handle for an initiated payment.
type Intent struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
}

// PaymentService creates payment sessions for bookings. Provider integration
// details beyond intent creation (webhooks, refunds) are out of scope; the
// booking records the reported outcome via RecordPayment.
type PaymentService interface {
	CreateIntent(ctx context.Context, b *models.Booking) (*Intent, error)
}

// StripePaymentService implements PaymentService against Stripe.
type StripePaymentService struct {
	Currency string
}

func NewStripePaymentService(currency string) *StripePaymentService {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripePaymentService{Currency: currency}
}

func (s *StripePaymentService) CreateIntent(ctx context.Context, b *models.Booking) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(b.TotalAmount * 100)),
		Currency: stripe.String(s.Currency),
	}
	params.AddMetadata("bookingId", b.ID)
	params.AddMetadata("serviceType", string(b.ServiceType))

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent: %w", err)
	}
	return &Intent{IntentID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
