package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"tourbooking/internal/domain"
	"tourbooking/internal/modules/booking"
	"tourbooking/internal/pkg/pricing"

	"gorm.io/gorm"
)

type mockUserReader struct {
	user *domain.User
}

func (m *mockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.user, nil
}

type mockTourReader struct {
	tour *domain.Tour
}

func (m *mockTourReader) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	if m.tour == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.tour, nil
}

type mockCartStore struct {
	items        []domain.CartItem
	updateCalls  int
	clearedUsers []int64
}

func (m *mockCartStore) GetForUser(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	return m.items, nil
}

func (m *mockCartStore) Update(ctx context.Context, item *domain.CartItem) error {
	m.updateCalls++
	return nil
}

func (m *mockCartStore) DeleteForUser(ctx context.Context, userID int64) error {
	m.clearedUsers = append(m.clearedUsers, userID)
	m.items = nil
	return nil
}

type mockSessions struct {
	sel domain.BookingSelection
}

func (m *mockSessions) Selection(userID int64) domain.BookingSelection { return m.sel }

type mockOrderRepo struct {
	orders map[string]*domain.PaymentOrder
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: map[string]*domain.PaymentOrder{}}
}

func (m *mockOrderRepo) Create(ctx context.Context, o *domain.PaymentOrder) error {
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*domain.PaymentOrder, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) GetForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.PaymentOrder, error) {
	var out []domain.PaymentOrder
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) Update(ctx context.Context, o *domain.PaymentOrder) error {
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

type mockInvoiceRepo struct {
	invoices    map[string]*domain.Invoice
	createErr   error
	createCalls int
	updateCalls int
}

func newMockInvoiceRepo() *mockInvoiceRepo {
	return &mockInvoiceRepo{invoices: map[string]*domain.Invoice{}}
}

func (m *mockInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	cp := *inv
	m.invoices[inv.ID] = &cp
	return nil
}

func (m *mockInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *mockInvoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	m.updateCalls++
	cp := *inv
	m.invoices[inv.ID] = &cp
	return nil
}

type mockGateway struct {
	lastReq OrderRequest
	fail    bool
}

func (m *mockGateway) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	if m.fail {
		return nil, ErrGateway
	}
	m.lastReq = req
	return &OrderResponse{ID: "bog-123", RedirectURL: "https://pay.example/bog-123"}, nil
}

var checkoutNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func completeUser() *domain.User {
	return &domain.User{ID: 1, Name: "Nino", Email: "nino@example.ge", Phone: "+995 555 123 456"}
}

func checkoutTour() *domain.Tour {
	return &domain.Tour{ID: 42, Title: []string{"", "Kazbegi", ""}, BasePrice: 100, Status: domain.TourActive}
}

func cartWithOneItem() *mockCartStore {
	date := checkoutNow.AddDate(0, 0, 3)
	return &mockCartStore{items: []domain.CartItem{{
		ID:           5,
		UserID:       1,
		TourID:       42,
		TourTitle:    []string{"", "Kazbegi", ""},
		SelectedDate: &date,
		Travelers:    domain.TravelerCounts{Adults: 2},
		TotalPrice:   200,
		Status:       domain.CartItemReady,
		IsComplete:   true,
	}}}
}

func newCheckoutService(users *mockUserReader, carts *mockCartStore, sessions *mockSessions, orders *mockOrderRepo, invoices *mockInvoiceRepo, gw gateway) *Service {
	svc := NewService(users, &mockTourReader{tour: checkoutTour()}, carts, sessions, orders, invoices, gw, pricing.DefaultConfig(), func(string, ...interface{}) {})
	svc.now = func() time.Time { return checkoutNow }
	return svc
}

func validSession() *mockSessions {
	date := checkoutNow.AddDate(0, 0, 3)
	return &mockSessions{sel: domain.BookingSelection{
		SelectedDate: &date,
		Travelers:    domain.TravelerCounts{Adults: 2},
	}}
}

func TestCreateOrder_HappyPath(t *testing.T) {
	carts := cartWithOneItem()
	orders := newMockOrderRepo()
	gw := &mockGateway{}
	svc := newCheckoutService(&mockUserReader{user: completeUser()}, carts, validSession(), orders, newMockInvoiceRepo(), gw)

	res, err := svc.CreateOrder(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OrderID != "bog-123" || res.RedirectURL == "" {
		t.Fatalf("unexpected response: %+v", res)
	}
	if gw.lastReq.TotalAmount != 200 {
		t.Fatalf("expected total 200, got %v", gw.lastReq.TotalAmount)
	}
	if len(gw.lastReq.Basket) != 1 || gw.lastReq.Basket[0].Description != "Kazbegi" {
		t.Fatalf("unexpected basket: %+v", gw.lastReq.Basket)
	}
	if carts.updateCalls != 2 {
		t.Fatalf("expected reprice and booked-lock updates, got %d", carts.updateCalls)
	}
	if carts.items[0].Status != domain.CartItemBooked {
		t.Fatalf("expected item locked as booked, got %s", carts.items[0].Status)
	}

	saved, err := orders.GetByID(context.Background(), "bog-123")
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if saved.Status != domain.OrderPending || saved.CallbackReceived {
		t.Fatalf("unexpected order state: %+v", saved)
	}
}

func TestCreateOrder_RepricesFromCurrentSession(t *testing.T) {
	carts := cartWithOneItem()
	// session moved to 4 adults after the item was persisted at 200
	date := checkoutNow.AddDate(0, 0, 3)
	sessions := &mockSessions{sel: domain.BookingSelection{
		SelectedDate: &date,
		Travelers:    domain.TravelerCounts{Adults: 4},
	}}
	gw := &mockGateway{}
	svc := newCheckoutService(&mockUserReader{user: completeUser()}, carts, sessions, newMockOrderRepo(), newMockInvoiceRepo(), gw)

	if _, err := svc.CreateOrder(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.lastReq.TotalAmount != 400 {
		t.Fatalf("expected recomputed total 400, got %v", gw.lastReq.TotalAmount)
	}
}

func TestCreateOrder_Guards(t *testing.T) {
	// incomplete profile
	svc := newCheckoutService(&mockUserReader{user: &domain.User{ID: 1, Name: "Nino", Email: "n@x.ge"}}, cartWithOneItem(), validSession(), newMockOrderRepo(), newMockInvoiceRepo(), &mockGateway{})
	if _, err := svc.CreateOrder(context.Background(), 1); !errors.Is(err, ErrProfileIncomplete) {
		t.Fatalf("expected ErrProfileIncomplete, got %v", err)
	}

	// empty cart
	svc = newCheckoutService(&mockUserReader{user: completeUser()}, &mockCartStore{}, validSession(), newMockOrderRepo(), newMockInvoiceRepo(), &mockGateway{})
	if _, err := svc.CreateOrder(context.Background(), 1); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	// session without a date makes items incomplete
	svc = newCheckoutService(&mockUserReader{user: completeUser()}, cartWithOneItem(), &mockSessions{sel: domain.BookingSelection{Travelers: domain.TravelerCounts{Adults: 2}}}, newMockOrderRepo(), newMockInvoiceRepo(), &mockGateway{})
	if _, err := svc.CreateOrder(context.Background(), 1); !errors.Is(err, booking.ErrIncompleteBooking) {
		t.Fatalf("expected ErrIncompleteBooking, got %v", err)
	}

	// gateway failure stays generic
	svc = newCheckoutService(&mockUserReader{user: completeUser()}, cartWithOneItem(), validSession(), newMockOrderRepo(), newMockInvoiceRepo(), &mockGateway{fail: true})
	if _, err := svc.CreateOrder(context.Background(), 1); !errors.Is(err, ErrGateway) {
		t.Fatalf("expected ErrGateway, got %v", err)
	}
}

func seededOrder(orders *mockOrderRepo) {
	orders.orders["bog-123"] = &domain.PaymentOrder{
		ID:       "bog-123",
		UserID:   1,
		Status:   domain.OrderPending,
		Amount:   200,
		Currency: "GEL",
	}
}

func TestHandleCallback_UnknownOrder(t *testing.T) {
	svc := newCheckoutService(&mockUserReader{user: completeUser()}, &mockCartStore{}, validSession(), newMockOrderRepo(), newMockInvoiceRepo(), &mockGateway{})

	err := svc.HandleCallback(context.Background(), Callback{OrderID: "missing", Status: "success"})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestHandleCallback_SuccessSettlesAndClearsCart(t *testing.T) {
	carts := cartWithOneItem()
	orders := newMockOrderRepo()
	invoices := newMockInvoiceRepo()
	seededOrder(orders)
	svc := newCheckoutService(&mockUserReader{user: completeUser()}, carts, validSession(), orders, invoices, &mockGateway{})

	err := svc.HandleCallback(context.Background(), Callback{
		OrderID:       "bog-123",
		Status:        "success",
		TransactionID: "txn-1",
		RawPayload:    []byte(`{"ok":true}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, _ := orders.GetByID(context.Background(), "bog-123")
	if order.Status != domain.OrderCompleted || !order.CallbackReceived || order.TransactionID != "txn-1" {
		t.Fatalf("unexpected order state: %+v", order)
	}
	if order.InvoiceID == "" {
		t.Fatal("expected invoice linked to order")
	}
	inv, _ := invoices.GetByID(context.Background(), order.InvoiceID)
	if inv.PaymentStatus != domain.InvoicePaid || len(inv.Lines) != 1 {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
	if len(carts.clearedUsers) != 1 || carts.clearedUsers[0] != 1 {
		t.Fatalf("expected cart cleared for user 1, got %v", carts.clearedUsers)
	}
}

func TestHandleCallback_RedeliveryIsIdempotent(t *testing.T) {
	carts := cartWithOneItem()
	orders := newMockOrderRepo()
	invoices := newMockInvoiceRepo()
	seededOrder(orders)
	svc := newCheckoutService(&mockUserReader{user: completeUser()}, carts, validSession(), orders, invoices, &mockGateway{})

	cb := Callback{OrderID: "bog-123", Status: "success", TransactionID: "txn-1", RawPayload: []byte(`{}`)}
	if err := svc.HandleCallback(context.Background(), cb); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	first, _ := orders.GetByID(context.Background(), "bog-123")

	if err := svc.HandleCallback(context.Background(), cb); err != nil {
		t.Fatalf("second delivery: %v", err)
	}
	second, _ := orders.GetByID(context.Background(), "bog-123")

	if invoices.createCalls != 1 {
		t.Fatalf("expected exactly one invoice, got %d", invoices.createCalls)
	}
	if first.InvoiceID != second.InvoiceID {
		t.Fatalf("invoice link changed across deliveries: %s vs %s", first.InvoiceID, second.InvoiceID)
	}
	if invoices.updateCalls == 0 {
		t.Fatal("expected re-delivery to refresh invoice payment fields")
	}
}

func TestHandleCallback_InvoiceFailureStillSettles(t *testing.T) {
	carts := cartWithOneItem()
	orders := newMockOrderRepo()
	invoices := newMockInvoiceRepo()
	invoices.createErr = errors.New("db write failed")
	seededOrder(orders)
	svc := newCheckoutService(&mockUserReader{user: completeUser()}, carts, validSession(), orders, invoices, &mockGateway{})

	err := svc.HandleCallback(context.Background(), Callback{
		OrderID:       "bog-123",
		Status:        "success",
		TransactionID: "txn-1",
		RawPayload:    []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("completed settlement must not hard-fail on invoice errors: %v", err)
	}

	// The money already moved: the order records the settlement even
	// though the invoice is missing and left to manual reconciliation.
	order, _ := orders.GetByID(context.Background(), "bog-123")
	if order.Status != domain.OrderCompleted || !order.CallbackReceived {
		t.Fatalf("settlement lost: %+v", order)
	}
	if order.InvoiceID != "" {
		t.Fatalf("no invoice should be linked, got %s", order.InvoiceID)
	}
	if len(carts.clearedUsers) != 1 {
		t.Fatalf("cart must still clear for a paid order, cleared=%v", carts.clearedUsers)
	}
}

func TestHandleCallback_FailedUnlocksCart(t *testing.T) {
	carts := cartWithOneItem()
	carts.items[0].Status = domain.CartItemBooked
	orders := newMockOrderRepo()
	seededOrder(orders)
	svc := newCheckoutService(&mockUserReader{user: completeUser()}, carts, validSession(), orders, newMockInvoiceRepo(), &mockGateway{})

	if err := svc.HandleCallback(context.Background(), Callback{OrderID: "bog-123", Status: "failed", RejectReason: "card declined"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if carts.items[0].Status != domain.CartItemReady {
		t.Fatalf("expected booked item unlocked to ready, got %s", carts.items[0].Status)
	}
}

func TestHandleCallback_StatusMapping(t *testing.T) {
	cases := map[string]domain.PaymentOrderStatus{
		"success":          domain.OrderCompleted,
		"failed":           domain.OrderFailed,
		"pending":          domain.OrderProcessing,
		"something_novel":  domain.OrderPending,
		"refund_requested": domain.OrderPending,
	}
	for in, want := range cases {
		if got := mapCallbackStatus(in); got != want {
			t.Errorf("mapCallbackStatus(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestHandleCallback_FailedUpdatesInvoiceAndContinues(t *testing.T) {
	orders := newMockOrderRepo()
	invoices := newMockInvoiceRepo()
	invoices.invoices["inv-1"] = &domain.Invoice{ID: "inv-1", OrderID: "bog-123", PaymentStatus: domain.InvoicePaid}
	orders.orders["bog-123"] = &domain.PaymentOrder{ID: "bog-123", UserID: 1, InvoiceID: "inv-1", Status: domain.OrderProcessing}

	svc := newCheckoutService(&mockUserReader{user: completeUser()}, &mockCartStore{}, validSession(), orders, invoices, &mockGateway{})

	err := svc.HandleCallback(context.Background(), Callback{OrderID: "bog-123", Status: "failed", RejectReason: "insufficient funds"})
	if err != nil {
		t.Fatalf("failed branch must not error: %v", err)
	}

	inv, _ := invoices.GetByID(context.Background(), "inv-1")
	if inv.PaymentStatus != domain.InvoiceFailed || inv.FailureReason != "insufficient funds" {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
	order, _ := orders.GetByID(context.Background(), "bog-123")
	if order.Status != domain.OrderFailed {
		t.Fatalf("unexpected order status: %s", order.Status)
	}
}

func TestListOrders_OnlyOwnSanitized(t *testing.T) {
	orders := newMockOrderRepo()
	seededOrder(orders)
	orders.orders["bog-999"] = &domain.PaymentOrder{ID: "bog-999", UserID: 2, Status: domain.OrderCompleted, CallbackPayload: []byte(`{"raw":true}`)}
	svc := newCheckoutService(&mockUserReader{user: completeUser()}, &mockCartStore{}, validSession(), orders, newMockInvoiceRepo(), &mockGateway{})

	got, err := svc.ListOrders(context.Background(), 1, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].OrderID != "bog-123" {
		t.Fatalf("unexpected orders: %+v", got)
	}
}

func TestCancelOrder(t *testing.T) {
	orders := newMockOrderRepo()
	seededOrder(orders)
	orders.orders["bog-done"] = &domain.PaymentOrder{ID: "bog-done", UserID: 1, Status: domain.OrderCompleted}
	carts := cartWithOneItem()
	carts.items[0].Status = domain.CartItemBooked
	svc := newCheckoutService(&mockUserReader{user: completeUser()}, carts, validSession(), orders, newMockInvoiceRepo(), &mockGateway{})

	if err := svc.CancelOrder(context.Background(), "missing"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if err := svc.CancelOrder(context.Background(), "bog-done"); !errors.Is(err, ErrOrderTerminal) {
		t.Fatalf("expected ErrOrderTerminal for settled order, got %v", err)
	}

	if err := svc.CancelOrder(context.Background(), "bog-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order, _ := orders.GetByID(context.Background(), "bog-123")
	if order.Status != domain.OrderCancelled {
		t.Fatalf("unexpected status: %s", order.Status)
	}
	if carts.items[0].Status != domain.CartItemReady {
		t.Fatalf("expected cancel to unlock booked item, got %s", carts.items[0].Status)
	}

	// cancel is not repeatable once the order is terminal
	if err := svc.CancelOrder(context.Background(), "bog-123"); !errors.Is(err, ErrOrderTerminal) {
		t.Fatalf("expected ErrOrderTerminal on re-cancel, got %v", err)
	}
}

func TestGetOrderStatus_OwnershipAndSanitization(t *testing.T) {
	orders := newMockOrderRepo()
	orders.orders["bog-123"] = &domain.PaymentOrder{
		ID:              "bog-123",
		UserID:          1,
		Status:          domain.OrderCompleted,
		Amount:          200,
		Currency:        "GEL",
		CallbackPayload: []byte(`{"secret":"raw"}`),
	}
	svc := newCheckoutService(&mockUserReader{user: completeUser()}, &mockCartStore{}, validSession(), orders, newMockInvoiceRepo(), &mockGateway{})

	if _, err := svc.GetOrderStatus(context.Background(), 1, "missing"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if _, err := svc.GetOrderStatus(context.Background(), 2, "bog-123"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign order, got %v", err)
	}

	res, err := svc.GetOrderStatus(context.Background(), 1, "bog-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != string(domain.OrderCompleted) || res.Amount != 200 {
		t.Fatalf("unexpected status response: %+v", res)
	}
}
