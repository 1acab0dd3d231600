package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tourbooking/internal/domain"
	"tourbooking/internal/modules/booking"
	"tourbooking/internal/pkg/pricing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	users    userReader
	tours    tourReader
	carts    cartStore
	sessions sessionReader
	orders   orderRepo
	invoices invoiceRepo
	gw       gateway
	loggerf  func(format string, args ...interface{})
	cfg      pricing.Config
	currency string
	now      func() time.Time
}

func NewService(users userReader, tours tourReader, carts cartStore, sessions sessionReader, orders orderRepo, invoices invoiceRepo, gw gateway, cfg pricing.Config, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		users:    users,
		tours:    tours,
		carts:    carts,
		sessions: sessions,
		orders:   orders,
		invoices: invoices,
		gw:       gw,
		loggerf:  loggerf,
		cfg:      cfg,
		currency: envOrDefault("BOG_CURRENCY", "GEL"),
		now:      time.Now,
	}
}

// CreateOrder turns the user's cart into a payment order. The shared
// session is the source of truth for date and travelers at this moment:
// every item is repriced against it and the result persisted, so the
// amount sent to the gateway can never disagree with the stored cart.
func (s *Service) CreateOrder(ctx context.Context, userID int64) (*CheckoutResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.ProfileComplete() {
		return nil, ErrProfileIncomplete
	}

	items, err := s.carts.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	sel := s.sessions.Selection(userID)

	basket := make([]BasketItem, 0, len(items))
	var total float64
	for i := range items {
		item := &items[i]

		item.SelectedDate = sel.SelectedDate
		item.Travelers = sel.Travelers

		tour, err := s.tours.GetByID(ctx, item.TourID)
		if err != nil {
			return nil, fmt.Errorf("load tour %d: %w", item.TourID, err)
		}
		quote := pricing.Compute(tour, item.Travelers, item.SelectedActivities, s.cfg)
		item.TotalPrice = quote.TotalPrice
		item.ActivityPriceIncrement = quote.ActivityCost
		item.CarCost = quote.CarCost

		res := booking.Evaluate(domain.BookingSelection{
			SelectedDate:       item.SelectedDate,
			Travelers:          item.Travelers,
			SelectedActivities: item.SelectedActivities,
		}, s.now())
		item.IsComplete = res.IsComplete
		if !res.IsComplete {
			return nil, fmt.Errorf("%w: Incomplete booking details", booking.ErrIncompleteBooking)
		}
		item.Status = domain.CartItemReady

		if err := s.carts.Update(ctx, item); err != nil {
			return nil, err
		}

		basket = append(basket, BasketItem{
			ProductID:   strconv.FormatInt(item.TourID, 10),
			Description: firstOr(item.TourTitle, "tour"),
			Quantity:    1,
			UnitPrice:   item.TotalPrice,
		})
		total += item.TotalPrice
	}

	externalID := uuid.NewString()
	gwOrder, err := s.gw.CreateOrder(ctx, OrderRequest{
		ExternalOrderID: externalID,
		BuyerName:       user.Name,
		BuyerEmail:      user.Email,
		BuyerPhone:      user.Phone,
		Basket:          basket,
		TotalAmount:     total,
		Currency:        s.currency,
	})
	if err != nil {
		return nil, err
	}

	order := &domain.PaymentOrder{
		ID:              gwOrder.ID,
		ExternalOrderID: externalID,
		UserID:          userID,
		Status:          domain.OrderPending,
		Amount:          total,
		Currency:        s.currency,
		RedirectURL:     gwOrder.RedirectURL,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("save payment order: %w", err)
	}

	// Lock the paid-for items: booked rows refuse edits until the
	// gateway settles one way or the other.
	for i := range items {
		items[i].Status = domain.CartItemBooked
		if err := s.carts.Update(ctx, &items[i]); err != nil {
			s.loggerf("level=error msg=failed to mark cart item booked item_id=%d order_id=%s err=%v", items[i].ID, order.ID, err)
		}
	}

	return &CheckoutResponse{OrderID: order.ID, RedirectURL: order.RedirectURL}, nil
}

func mapCallbackStatus(status string) domain.PaymentOrderStatus {
	switch status {
	case "success":
		return domain.OrderCompleted
	case "failed":
		return domain.OrderFailed
	case "pending":
		return domain.OrderProcessing
	default:
		return domain.OrderPending
	}
}

// HandleCallback applies a gateway webhook. Unknown orders are rejected,
// never created. The callback can be re-delivered: a completed order
// keeps its single invoice, and only the invoice payment fields are
// refreshed on later deliveries.
func (s *Service) HandleCallback(ctx context.Context, cb Callback) error {
	order, err := s.orders.GetByID(ctx, cb.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	order.Status = mapCallbackStatus(cb.Status)
	order.CallbackReceived = true
	order.CallbackPayload = datatypes.JSON(cb.RawPayload)
	if cb.TransactionID != "" {
		order.TransactionID = cb.TransactionID
	}

	// Both settlement branches log-and-continue: the gateway has already
	// moved the money, so the callback must be recorded even when invoice
	// or cart bookkeeping goes wrong.
	switch order.Status {
	case domain.OrderCompleted:
		s.settleCompleted(ctx, order, cb)
	case domain.OrderFailed:
		s.settleFailed(ctx, order, cb)
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return err
	}

	s.loggerf("level=info msg=payment callback applied order_id=%s status=%s transaction_id=%s", order.ID, order.Status, order.TransactionID)
	return nil
}

// settleCompleted links or refreshes the invoice and clears the cart.
// The payment is irreversible by the time this runs: every failure here
// is logged for manual reconciliation, and the order is persisted as
// completed regardless. A missing invoice is recoverable; a lost
// settlement is not.
func (s *Service) settleCompleted(ctx context.Context, order *domain.PaymentOrder, cb Callback) {
	paidAt := s.now()

	if order.InvoiceID == "" {
		lines := s.invoiceLines(ctx, order.UserID)
		inv := &domain.Invoice{
			ID:            uuid.NewString(),
			OrderID:       order.ID,
			UserID:        order.UserID,
			Amount:        order.Amount,
			Currency:      order.Currency,
			PaymentStatus: domain.InvoicePaid,
			TransactionID: cb.TransactionID,
			Lines:         lines,
			PaidAt:        &paidAt,
		}
		if err := s.invoices.Create(ctx, inv); err != nil {
			s.loggerf("level=error msg=failed to create invoice for completed payment order_id=%s err=%v", order.ID, err)
		} else {
			order.InvoiceID = inv.ID
		}
	} else {
		inv, err := s.invoices.GetByID(ctx, order.InvoiceID)
		if err != nil {
			s.loggerf("level=error msg=failed to load invoice for completed payment order_id=%s invoice_id=%s err=%v", order.ID, order.InvoiceID, err)
		} else {
			inv.PaymentStatus = domain.InvoicePaid
			inv.TransactionID = cb.TransactionID
			inv.FailureReason = ""
			if inv.PaidAt == nil {
				inv.PaidAt = &paidAt
			}
			if err := s.invoices.Update(ctx, inv); err != nil {
				s.loggerf("level=error msg=failed to refresh invoice for completed payment order_id=%s invoice_id=%s err=%v", order.ID, inv.ID, err)
			}
		}
	}

	if err := s.carts.DeleteForUser(ctx, order.UserID); err != nil {
		s.loggerf("level=error msg=failed to clear cart after payment user_id=%d order_id=%s err=%v", order.UserID, order.ID, err)
	}
}

func (s *Service) settleFailed(ctx context.Context, order *domain.PaymentOrder, cb Callback) {
	s.unlockCart(ctx, order.UserID)

	if order.InvoiceID == "" {
		return
	}
	inv, err := s.invoices.GetByID(ctx, order.InvoiceID)
	if err != nil {
		s.loggerf("level=error msg=failed to load invoice for failed payment order_id=%s invoice_id=%s err=%v", order.ID, order.InvoiceID, err)
		return
	}
	inv.PaymentStatus = domain.InvoiceFailed
	inv.FailureReason = cb.RejectReason
	if err := s.invoices.Update(ctx, inv); err != nil {
		s.loggerf("level=error msg=failed to mark invoice failed order_id=%s invoice_id=%s err=%v", order.ID, inv.ID, err)
	}
}

// unlockCart returns booked items to ready after a failed or cancelled
// payment so the user can edit them and retry.
func (s *Service) unlockCart(ctx context.Context, userID int64) {
	items, err := s.carts.GetForUser(ctx, userID)
	if err != nil {
		s.loggerf("level=error msg=failed to load cart for unlock user_id=%d err=%v", userID, err)
		return
	}
	for i := range items {
		if items[i].Status != domain.CartItemBooked {
			continue
		}
		items[i].Status = domain.CartItemReady
		if err := s.carts.Update(ctx, &items[i]); err != nil {
			s.loggerf("level=error msg=failed to unlock cart item item_id=%d err=%v", items[i].ID, err)
		}
	}
}

// invoiceLines snapshots the cart at settlement time. A read failure
// yields an invoice without lines rather than a lost payment record.
func (s *Service) invoiceLines(ctx context.Context, userID int64) []domain.InvoiceLine {
	items, err := s.carts.GetForUser(ctx, userID)
	if err != nil {
		s.loggerf("level=error msg=failed to snapshot cart for invoice user_id=%d err=%v", userID, err)
		return nil
	}
	lines := make([]domain.InvoiceLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.InvoiceLine{
			TourID:      item.TourID,
			Description: firstOr(item.TourTitle, "tour"),
			Quantity:    1,
			UnitPrice:   item.TotalPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return lines
}

// ListOrders returns the caller's payment history, newest first, in the
// same sanitized projection as the single-order lookup.
func (s *Service) ListOrders(ctx context.Context, userID int64, limit, offset int) ([]OrderStatusResponse, error) {
	orders, err := s.orders.GetForUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]OrderStatusResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, OrderStatusResponse{
			OrderID:          order.ID,
			Status:           string(order.Status),
			Amount:           order.Amount,
			Currency:         order.Currency,
			CallbackReceived: order.CallbackReceived,
			TransactionID:    order.TransactionID,
			InvoiceID:        order.InvoiceID,
			CreatedAt:        order.CreatedAt,
			UpdatedAt:        order.UpdatedAt,
		})
	}
	return out, nil
}

// CancelOrder is the admin escape hatch for orders stuck in pending or
// processing. Settled orders stay settled.
func (s *Service) CancelOrder(ctx context.Context, orderID string) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if order.Status.Terminal() {
		return ErrOrderTerminal
	}

	order.Status = domain.OrderCancelled
	if err := s.orders.Update(ctx, order); err != nil {
		return err
	}
	s.unlockCart(ctx, order.UserID)

	s.loggerf("level=info msg=payment order cancelled order_id=%s user_id=%d", order.ID, order.UserID)
	return nil
}

// GetOrderStatus returns a sanitized view of the caller's own order.
func (s *Service) GetOrderStatus(ctx context.Context, userID int64, orderID string) (*OrderStatusResponse, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}

	return &OrderStatusResponse{
		OrderID:          order.ID,
		Status:           string(order.Status),
		Amount:           order.Amount,
		Currency:         order.Currency,
		CallbackReceived: order.CallbackReceived,
		TransactionID:    order.TransactionID,
		InvoiceID:        order.InvoiceID,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}, nil
}

func firstOr(values []string, def string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return def
}
