package checkout

import (
	"context"
	"errors"
	"testing"

	"gearph-api/internal/domain"
	ordersvc "gearph-api/internal/service/order"
)

type memDrafts struct {
	drafts map[string]Draft
}

func newMemDrafts() *memDrafts {
	return &memDrafts{drafts: map[string]Draft{}}
}

func (m *memDrafts) Get(_ context.Context, token string) (*Draft, error) {
	draft, ok := m.drafts[token]
	if !ok {
		return nil, nil
	}
	return &draft, nil
}

func (m *memDrafts) Save(_ context.Context, token string, draft Draft) error {
	m.drafts[token] = draft
	return nil
}

func (m *memDrafts) Delete(_ context.Context, token string) error {
	delete(m.drafts, token)
	return nil
}

type stubCarts struct {
	cart    domain.Cart
	cleared bool
}

func (s *stubCarts) Get(_ context.Context, _ string) (*domain.Cart, error) {
	cart := s.cart
	return &cart, nil
}

func (s *stubCarts) Clear(_ context.Context, _ string) error {
	s.cleared = true
	return nil
}

type stubOrders struct {
	lastInput ordersvc.CreateInput
	calls     int
	err       error
}

func (s *stubOrders) Create(_ context.Context, in ordersvc.CreateInput) (*ordersvc.CreateResult, error) {
	s.calls++
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return &ordersvc.CreateResult{
		Order: &domain.Order{
			ID:            "o1",
			OrderNumber:   "GPH-1700000000000-AB1CD",
			TotalCents:    in.TotalCents,
			PaymentMethod: in.PaymentMethod,
		},
		Instructions: ordersvc.InstructionsFor(in.PaymentMethod, in.TotalCents, "GPH-1700000000000-AB1CD"),
	}, nil
}

type stubSettings struct {
	settings domain.Settings
}

func (s *stubSettings) Get(_ context.Context) (*domain.Settings, error) {
	settings := s.settings
	return &settings, nil
}

func filledCart() domain.Cart {
	return domain.Cart{Items: []domain.CartItem{
		{ProductID: "p1", Name: "Raptor X1", UnitPriceCents: 100000, Quantity: 1},
	}}
}

func informationInput() AdvanceInput {
	return AdvanceInput{
		Step: StepInformation,
		Customer: &domain.CustomerInfo{
			Email:     "juan@example.com",
			FirstName: "Juan",
			LastName:  "Dela Cruz",
			Phone:     "0917 000 1111",
		},
		ShippingAddress: &domain.ShippingAddress{
			Street:     "123 Mabini St",
			Barangay:   "Diliman",
			City:       "Quezon City",
			Region:     "Metro Manila",
			PostalCode: "1101",
		},
	}
}

func newTestService(carts *stubCarts, orders *stubOrders, settings domain.Settings) (*Service, *memDrafts) {
	drafts := newMemDrafts()
	return New(drafts, carts, orders, &stubSettings{settings: settings}, nil), drafts
}

func TestAdvanceRejectsSkippedStep(t *testing.T) {
	svc, _ := newTestService(&stubCarts{cart: filledCart()}, &stubOrders{}, domain.DefaultSettings())

	_, err := svc.Advance(context.Background(), "tok", AdvanceInput{Step: StepPayment, PaymentMethod: domain.PaymentGCash})
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdvanceRejectsEmptyCart(t *testing.T) {
	svc, _ := newTestService(&stubCarts{}, &stubOrders{}, domain.DefaultSettings())

	_, err := svc.Advance(context.Background(), "tok", informationInput())
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdvanceRejectsUnknownAddress(t *testing.T) {
	svc, _ := newTestService(&stubCarts{cart: filledCart()}, &stubOrders{}, domain.DefaultSettings())
	in := informationInput()
	in.ShippingAddress.City = "Atlantis"

	_, err := svc.Advance(context.Background(), "tok", in)
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdvanceWalksAllSteps(t *testing.T) {
	svc, _ := newTestService(&stubCarts{cart: filledCart()}, &stubOrders{}, domain.DefaultSettings())
	ctx := context.Background()

	draft, err := svc.Advance(ctx, "tok", informationInput())
	if err != nil {
		t.Fatalf("information: %v", err)
	}
	if draft.Reached() != StepShipping {
		t.Fatalf("expected shipping reached, got %s", draft.Reached())
	}

	draft, err = svc.Advance(ctx, "tok", AdvanceInput{Step: StepShipping, ShippingMethod: "standard"})
	if err != nil {
		t.Fatalf("shipping: %v", err)
	}
	if draft.Reached() != StepPayment {
		t.Fatalf("expected payment reached, got %s", draft.Reached())
	}

	draft, err = svc.Advance(ctx, "tok", AdvanceInput{Step: StepPayment, PaymentMethod: domain.PaymentCOD})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if draft.PaymentMethod != domain.PaymentCOD {
		t.Fatalf("expected payment method recorded, got %q", draft.PaymentMethod)
	}
}

func TestAdvanceAllowsRevisitingEarlierStep(t *testing.T) {
	svc, _ := newTestService(&stubCarts{cart: filledCart()}, &stubOrders{}, domain.DefaultSettings())
	ctx := context.Background()

	if _, err := svc.Advance(ctx, "tok", informationInput()); err != nil {
		t.Fatalf("information: %v", err)
	}
	if _, err := svc.Advance(ctx, "tok", AdvanceInput{Step: StepShipping, ShippingMethod: "standard"}); err != nil {
		t.Fatalf("shipping: %v", err)
	}

	in := informationInput()
	in.Customer.Phone = "0917 222 3333"
	draft, err := svc.Advance(ctx, "tok", in)
	if err != nil {
		t.Fatalf("revisit: %v", err)
	}
	if draft.Customer.Phone != "0917 222 3333" {
		t.Fatalf("expected revisited step overwritten, got %q", draft.Customer.Phone)
	}
	if draft.ShippingMethod != "standard" {
		t.Fatal("expected later step data preserved")
	}
}

func TestCompleteRequiresPaymentStep(t *testing.T) {
	orders := &stubOrders{}
	svc, _ := newTestService(&stubCarts{cart: filledCart()}, orders, domain.DefaultSettings())
	ctx := context.Background()

	if _, err := svc.Advance(ctx, "tok", informationInput()); err != nil {
		t.Fatalf("information: %v", err)
	}

	_, err := svc.Complete(ctx, "tok", nil)
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatal("expected no order created")
	}
}

func TestCompleteSubmitsOrderAndClears(t *testing.T) {
	carts := &stubCarts{cart: filledCart()}
	orders := &stubOrders{}
	svc, drafts := newTestService(carts, orders, domain.DefaultSettings())
	ctx := context.Background()

	for _, in := range []AdvanceInput{
		informationInput(),
		{Step: StepShipping, ShippingMethod: "standard"},
		{Step: StepPayment, PaymentMethod: domain.PaymentGCash},
	} {
		if _, err := svc.Advance(ctx, "tok", in); err != nil {
			t.Fatalf("advance %s: %v", in.Step, err)
		}
	}

	result, err := svc.Complete(ctx, "tok", nil)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if orders.calls != 1 {
		t.Fatalf("expected 1 order created, got %d", orders.calls)
	}
	if orders.lastInput.SubtotalCents != 100000 || orders.lastInput.TotalCents != 100000 {
		t.Fatalf("unexpected totals: %+v", orders.lastInput)
	}
	if result.Instructions.Type != ordersvc.InstructionsGCash {
		t.Fatalf("expected gcash instructions, got %s", result.Instructions.Type)
	}
	if !carts.cleared {
		t.Fatal("expected cart cleared after order")
	}
	if len(drafts.drafts) != 0 {
		t.Fatal("expected draft deleted after order")
	}
}

func TestCompleteAppliesFlatShipping(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.FlatShippingCents = 15000
	orders := &stubOrders{}
	svc, _ := newTestService(&stubCarts{cart: filledCart()}, orders, settings)
	ctx := context.Background()

	for _, in := range []AdvanceInput{
		informationInput(),
		{Step: StepShipping, ShippingMethod: "standard"},
		{Step: StepPayment, PaymentMethod: domain.PaymentCOD},
	} {
		if _, err := svc.Advance(ctx, "tok", in); err != nil {
			t.Fatalf("advance %s: %v", in.Step, err)
		}
	}

	if _, err := svc.Complete(ctx, "tok", nil); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if orders.lastInput.ShippingCents != 15000 {
		t.Fatalf("expected flat shipping applied, got %d", orders.lastInput.ShippingCents)
	}
	if orders.lastInput.TotalCents != 115000 {
		t.Fatalf("expected total 115000, got %d", orders.lastInput.TotalCents)
	}
}

func TestCompleteWaivesShippingAboveThreshold(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.FlatShippingCents = 15000
	settings.FreeShippingThresholdCents = 100000
	orders := &stubOrders{}
	svc, _ := newTestService(&stubCarts{cart: filledCart()}, orders, settings)
	ctx := context.Background()

	for _, in := range []AdvanceInput{
		informationInput(),
		{Step: StepShipping, ShippingMethod: "standard"},
		{Step: StepPayment, PaymentMethod: domain.PaymentCOD},
	} {
		if _, err := svc.Advance(ctx, "tok", in); err != nil {
			t.Fatalf("advance %s: %v", in.Step, err)
		}
	}

	if _, err := svc.Complete(ctx, "tok", nil); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if orders.lastInput.ShippingCents != 0 {
		t.Fatalf("expected free shipping, got %d", orders.lastInput.ShippingCents)
	}
}
