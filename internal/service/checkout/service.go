// Package checkout drives the three-step checkout wizard. The draft
// accumulates per session and is only submitted from the final step.
package checkout

import (
	"context"
	"io"
	"log"

	"gearph-api/internal/domain"
	"gearph-api/internal/location"
	ordersvc "gearph-api/internal/service/order"
)

// Wizard steps, in order. Advancing skips nothing: a step is only
// reachable once every earlier step has been filled in.
const (
	StepInformation = "information"
	StepShipping    = "shipping"
	StepPayment     = "payment"
)

var stepOrder = map[string]int{
	StepInformation: 0,
	StepShipping:    1,
	StepPayment:     2,
}

// Draft is the accumulated wizard state for one session.
type Draft struct {
	Customer        *domain.CustomerInfo    `json:"customerInfo,omitempty"`
	ShippingAddress *domain.ShippingAddress `json:"shippingAddress,omitempty"`
	ShippingMethod  string                  `json:"shippingMethod,omitempty"`
	PaymentMethod   string                  `json:"paymentMethod,omitempty"`
}

// Reached returns the furthest step the draft has completed inputs for.
func (d Draft) Reached() string {
	switch {
	case d.Customer == nil || d.ShippingAddress == nil:
		return StepInformation
	case d.ShippingMethod == "":
		return StepShipping
	default:
		return StepPayment
	}
}

// DraftStore persists one draft per session token.
type DraftStore interface {
	Get(ctx context.Context, token string) (*Draft, error)
	Save(ctx context.Context, token string, draft Draft) error
	Delete(ctx context.Context, token string) error
}

type cartService interface {
	Get(ctx context.Context, token string) (*domain.Cart, error)
	Clear(ctx context.Context, token string) error
}

type orderService interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (*ordersvc.CreateResult, error)
}

type settingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
}

type Service struct {
	drafts   DraftStore
	carts    cartService
	orders   orderService
	settings settingsService
	logger   *log.Logger
}

func New(drafts DraftStore, carts cartService, orders orderService, settings settingsService, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{drafts: drafts, carts: carts, orders: orders, settings: settings, logger: logger}
}

// AdvanceInput carries the submitted step and its form payload.
type AdvanceInput struct {
	Step            string                  `json:"step"`
	Customer        *domain.CustomerInfo    `json:"customerInfo,omitempty"`
	ShippingAddress *domain.ShippingAddress `json:"shippingAddress,omitempty"`
	ShippingMethod  string                  `json:"shippingMethod,omitempty"`
	PaymentMethod   string                  `json:"paymentMethod,omitempty"`
}

// Get returns the current draft (empty if none) so a revisited step can
// prefill its form.
func (s *Service) Get(ctx context.Context, token string) (*Draft, error) {
	draft, err := s.drafts.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		draft = &Draft{}
	}
	return draft, nil
}

// Advance records one step's payload. Submitting a step ahead of the
// furthest reached one is rejected; resubmitting a visited step (the
// breadcrumb back-navigation) overwrites it.
func (s *Service) Advance(ctx context.Context, token string, in AdvanceInput) (*Draft, error) {
	pos, ok := stepOrder[in.Step]
	if !ok {
		return nil, domain.Validationf("unknown checkout step %q", in.Step)
	}
	cart, err := s.carts.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.Validationf("cart is empty")
	}
	draft, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if pos > stepOrder[draft.Reached()] {
		return nil, domain.Validationf("complete step %q first", draft.Reached())
	}

	switch in.Step {
	case StepInformation:
		if in.Customer == nil || in.ShippingAddress == nil {
			return nil, domain.Validationf("customerInfo and shippingAddress required")
		}
		if in.Customer.Email == "" || in.Customer.FirstName == "" || in.Customer.LastName == "" {
			return nil, domain.Validationf("contact details incomplete")
		}
		addr := *in.ShippingAddress
		if addr.Street == "" || addr.PostalCode == "" {
			return nil, domain.Validationf("shipping address incomplete")
		}
		if !location.Valid(addr.Region, addr.City, addr.Barangay) {
			return nil, domain.Validationf("address does not match a known region/city/barangay")
		}
		draft.Customer = in.Customer
		draft.ShippingAddress = in.ShippingAddress
	case StepShipping:
		if in.ShippingMethod == "" {
			return nil, domain.Validationf("shippingMethod required")
		}
		draft.ShippingMethod = in.ShippingMethod
	case StepPayment:
		if !domain.ValidPaymentMethod(in.PaymentMethod) {
			return nil, domain.Validationf("unknown payment method %q", in.PaymentMethod)
		}
		draft.PaymentMethod = in.PaymentMethod
	}

	if err := s.drafts.Save(ctx, token, *draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Complete submits the draft as an order. Only reachable once the
// payment step is filled in and the cart is non-empty. On success the
// cart and draft are cleared; the caller carries the result to the
// confirmation view.
func (s *Service) Complete(ctx context.Context, token string, userID *string) (*ordersvc.CreateResult, error) {
	draft, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if draft.Reached() != StepPayment || draft.PaymentMethod == "" {
		return nil, domain.Validationf("checkout is not complete")
	}
	cart, err := s.carts.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.Validationf("cart is empty")
	}

	subtotal := cart.TotalCents()
	shipping, err := s.shippingFor(ctx, subtotal)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID:      line.ProductID,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			Color:          line.Color,
			Size:           line.Size,
			Image:          line.Image,
		})
	}

	result, err := s.orders.Create(ctx, ordersvc.CreateInput{
		UserID:          userID,
		Customer:        draft.Customer,
		ShippingAddress: draft.ShippingAddress,
		Items:           items,
		PaymentMethod:   draft.PaymentMethod,
		SubtotalCents:   subtotal,
		ShippingCents:   shipping,
		TotalCents:      subtotal + shipping,
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, token); err != nil {
		s.logger.Printf("checkout: clear cart after order %s: %v", result.Order.OrderNumber, err)
	}
	if err := s.drafts.Delete(ctx, token); err != nil {
		s.logger.Printf("checkout: clear draft after order %s: %v", result.Order.OrderNumber, err)
	}
	return result, nil
}

// shippingFor applies the store's flat fee, waived above the free
// shipping threshold. The defaults keep both at zero.
func (s *Service) shippingFor(ctx context.Context, subtotal int64) (int64, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return 0, err
	}
	if settings.FreeShippingThresholdCents > 0 && subtotal >= settings.FreeShippingThresholdCents {
		return 0, nil
	}
	return settings.FlatShippingCents, nil
}
