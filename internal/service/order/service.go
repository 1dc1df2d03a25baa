package order

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"gearph-api/internal/domain"
	orderrepo "gearph-api/internal/repository/order"
)

// ErrMissingFields is returned when customer info, shipping address,
// items, or payment method is absent from a create request.
var ErrMissingFields = domain.ValidationError("missing required fields")

// Service creates orders and applies admin status updates.
type Service struct {
	repo   orderrepo.Repository
	logger *log.Logger
	now    func() time.Time
}

func New(repo orderrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// CreateInput is the checkout submission. Monetary fields arrive
// precomputed; total = subtotal + shipping is enforced here and never
// re-validated afterwards.
type CreateInput struct {
	UserID          *string                 `json:"-"`
	Customer        *domain.CustomerInfo    `json:"customerInfo"`
	ShippingAddress *domain.ShippingAddress `json:"shippingAddress"`
	Items           []domain.OrderItem      `json:"items"`
	PaymentMethod   string                  `json:"paymentMethod"`
	SubtotalCents   int64                   `json:"subtotalCents"`
	ShippingCents   int64                   `json:"shippingCents"`
	TotalCents      int64                   `json:"totalCents"`
}

// CreateResult is what the checkout client needs to render the
// confirmation view.
type CreateResult struct {
	Order        *domain.Order
	Instructions Instructions
}

// Create validates the draft, derives the initial statuses from the
// payment method, persists the order, and returns payment instructions.
// Stock is not decremented here; inventory is managed manually by the
// admin.
func (s *Service) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	if in.Customer == nil || in.ShippingAddress == nil || len(in.Items) == 0 || in.PaymentMethod == "" {
		return nil, ErrMissingFields
	}
	if !domain.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.Validationf("unknown payment method %q", in.PaymentMethod)
	}
	if strings.TrimSpace(in.Customer.Email) == "" || strings.TrimSpace(in.Customer.FirstName) == "" {
		return nil, ErrMissingFields
	}
	if strings.TrimSpace(in.ShippingAddress.Street) == "" || strings.TrimSpace(in.ShippingAddress.City) == "" {
		return nil, ErrMissingFields
	}
	for _, item := range in.Items {
		if item.Name == "" || item.Quantity <= 0 || item.UnitPriceCents < 0 {
			return nil, domain.Validationf("invalid line item %q", item.Name)
		}
	}
	if in.TotalCents != in.SubtotalCents+in.ShippingCents {
		return nil, domain.Validationf("total must equal subtotal plus shipping")
	}

	orderStatus, paymentStatus := initialStatuses(in.PaymentMethod)
	order := domain.Order{
		OrderNumber:     s.orderNumber(),
		UserID:          in.UserID,
		Customer:        *in.Customer,
		ShippingAddress: *in.ShippingAddress,
		Items:           in.Items,
		SubtotalCents:   in.SubtotalCents,
		ShippingCents:   in.ShippingCents,
		TotalCents:      in.TotalCents,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   paymentStatus,
		OrderStatus:     orderStatus,
	}
	if order.ShippingAddress.Country == "" {
		order.ShippingAddress.Country = "PH"
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		// A colliding order number fails the insert; the customer
		// retries. See the unique index on orders.order_number.
		return nil, err
	}
	s.logger.Printf("order service: created number=%s method=%s total=%d", created.OrderNumber, created.PaymentMethod, created.TotalCents)

	return &CreateResult{
		Order:        created,
		Instructions: InstructionsFor(created.PaymentMethod, created.TotalCents, created.OrderNumber),
	}, nil
}

// ListByUser returns the customer's own orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns one order by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAll returns every order for the admin view.
func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

// UpdateStatusInput carries the admin's partial update. Nil fields are
// left unchanged. Any status may be set from any other; no transition
// table is enforced.
type UpdateStatusInput struct {
	OrderStatus   *string `json:"orderStatus"`
	PaymentStatus *string `json:"paymentStatus"`
}

// UpdateStatus validates the supplied statuses and applies them.
func (s *Service) UpdateStatus(ctx context.Context, id string, in UpdateStatusInput) (*domain.Order, error) {
	if in.OrderStatus == nil && in.PaymentStatus == nil {
		return nil, domain.Validationf("orderStatus or paymentStatus required")
	}
	if in.OrderStatus != nil && !domain.ValidOrderStatus(*in.OrderStatus) {
		return nil, domain.Validationf("unknown order status %q", *in.OrderStatus)
	}
	if in.PaymentStatus != nil && !domain.ValidPaymentStatus(*in.PaymentStatus) {
		return nil, domain.Validationf("unknown payment status %q", *in.PaymentStatus)
	}
	return s.repo.UpdateStatus(ctx, id, orderrepo.StatusUpdate{
		OrderStatus:   in.OrderStatus,
		PaymentStatus: in.PaymentStatus,
	})
}

// initialStatuses derives the starting lifecycle state. Cash on
// delivery is confirmed immediately since payment happens at handoff;
// every other method waits for manual proof-of-payment confirmation.
// No method starts out paid.
func initialStatuses(method string) (orderStatus, paymentStatus string) {
	if method == domain.PaymentCOD {
		return domain.OrderStatusConfirmed, domain.PaymentStatusPending
	}
	return domain.OrderStatusProcessing, domain.PaymentStatusPending
}

const orderNumberPrefix = "GPH"

// orderNumber builds prefix + millisecond timestamp + 5 random base36
// characters, upper-cased. Uniqueness is probabilistic; the database
// unique index is the backstop.
func (s *Service) orderNumber() string {
	return strings.ToUpper(fmt.Sprintf("%s-%s-%s",
		orderNumberPrefix,
		strconv.FormatInt(s.now().UnixMilli(), 10),
		randomBase36(5),
	))
}

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// Fall back to the clock; the unique index still guards inserts.
		s := strconv.FormatInt(time.Now().UnixNano(), 36)
		if len(s) > n {
			s = s[len(s)-n:]
		}
		return s
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}
	return string(out)
}
