package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sajilokart/kicks-order-service/internal/domain"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/metrics"
	orderdto "github.com/sajilokart/kicks-order-service/internal/usecase/dto/order"
	"github.com/shopspring/decimal"
)

var testMetrics = metrics.NewReconciliationMetrics()

//
// ---------- STUBS & FAKES ----------
//

type fakeStore struct {
	mu       sync.Mutex
	seq      int
	payments map[string]*domain.Payment
	orders   map[string]*domain.Order
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		payments: make(map[string]*domain.Payment),
		orders:   make(map[string]*domain.Order),
	}
}

func (s *fakeStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *fakeStore) CreatePayment(_ context.Context, p *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = s.nextID("pay")
	}
	cp := *p
	s.payments[p.ID] = &cp
	return nil
}

func (s *fakeStore) GetPaymentByID(_ context.Context, id string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) GetPaymentByCorrelationID(_ context.Context, pidx string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.CorrelationID == pidx {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (s *fakeStore) SetCorrelationID(_ context.Context, id, pidx string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	p.CorrelationID = pidx
	return nil
}

func (s *fakeStore) DeletePayment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[id]; !ok {
		return domain.ErrPaymentNotFound
	}
	delete(s.payments, id)
	return nil
}

func (s *fakeStore) CreateOrder(_ context.Context, o *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = s.nextID("ord")
	}
	cp := *o
	cp.Payment = nil
	s.orders[o.ID] = &cp
	return nil
}

func (s *fakeStore) GetOrderByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	if p, ok := s.payments[o.PaymentID]; ok {
		pc := *p
		cp.Payment = &pc
	}
	return &cp, nil
}

func (s *fakeStore) GetOrderByPaymentID(_ context.Context, paymentID string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.PaymentID == paymentID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (s *fakeStore) GetOrders(_ context.Context, filters domain.OrderFilters, _, _ int) ([]*domain.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Order
	for _, o := range s.orders {
		if filters.UserID != "" && o.UserID != filters.UserID {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (s *fakeStore) UpdateOrderStatus(_ context.Context, id string, expected, newStatus domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != expected {
		return domain.ErrStatusConflict
	}
	o.Status = newStatus
	return nil
}

func (s *fakeStore) DeleteOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(s.orders, id)
	return nil
}

type recordNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordNotifier) Emit(event string, _ any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type fakeGateway struct {
	initiateErr error
	calls       int
}

func (g *fakeGateway) Initiate(_ context.Context, _ int64, _, _ string) (*domain.GatewaySession, error) {
	g.calls++
	if g.initiateErr != nil {
		return nil, g.initiateErr
	}
	return &domain.GatewaySession{CorrelationID: "pidx-new", PaymentURL: "https://gateway.test/pay/pidx-new"}, nil
}

func (g *fakeGateway) Lookup(_ context.Context, _ string) (*domain.GatewayLookup, error) {
	return &domain.GatewayLookup{Status: domain.GatewayPending}, nil
}

// fakeReconciler lets place-order tests control the immediate verify
// result without pulling the real coordinator in.
type fakeReconciler struct {
	verifyResult *domain.ReconciliationResult
	verifyErr    error
	verified     []string
}

func (r *fakeReconciler) ReconcileByCorrelationID(_ context.Context, _ string, _ domain.GatewayStatus, _ string) (*domain.ReconciliationResult, error) {
	return nil, errors.New("unexpected call")
}

func (r *fakeReconciler) VerifyPayment(_ context.Context, correlationID string) (*domain.ReconciliationResult, error) {
	r.verified = append(r.verified, correlationID)
	if r.verifyErr != nil {
		return nil, r.verifyErr
	}
	if r.verifyResult != nil {
		return r.verifyResult, nil
	}
	return &domain.ReconciliationResult{}, nil
}

func (r *fakeReconciler) ChangePaymentStatus(_ context.Context, _ string, _ domain.PaymentStatus, _ string) (*domain.ReconciliationResult, error) {
	return nil, errors.New("unexpected call")
}

func newTestUsecase(store *fakeStore, gateway domain.PaymentGateway, reconciler domain.Reconciler, notifier *recordNotifier) *DefaultOrderUsecase {
	return NewDefaultOrderUsecase(store, store, gateway, reconciler, notifier, nil, "order-events", testMetrics)
}

func seedOrder(store *fakeStore, userID string, method domain.PaymentMethod, paymentStatus domain.PaymentStatus, orderStatus domain.OrderStatus) string {
	payment := &domain.Payment{ID: store.nextID("pay"), Method: method, Status: paymentStatus}
	store.payments[payment.ID] = payment
	order := &domain.Order{
		ID: store.nextID("ord"), UserID: userID, Status: orderStatus,
		PaymentID: payment.ID, TotalPrice: decimal.NewFromInt(2500),
	}
	store.orders[order.ID] = order
	return order.ID
}

//
// ---------- STATUS CHANGE TESTS ----------
//

func TestChangeOrderStatusHappyPath(t *testing.T) {
	store := newFakeStore()
	notifier := &recordNotifier{}
	orderID := seedOrder(store, "user-1", domain.MethodKhalti, domain.PaymentPaid, domain.StatusPreparation)
	uc := newTestUsecase(store, &fakeGateway{}, &fakeReconciler{}, notifier)

	change, err := uc.ChangeOrderStatus(context.Background(), &orderdto.ChangeOrderStatusInput{
		OrderID: orderID, RequestedStatus: domain.StatusOnTheWay, Actor: "admin-1",
	})
	if err != nil {
		t.Fatalf("change status: %v", err)
	}
	if change.Urgent {
		t.Error("regular edge must not be flagged urgent")
	}
	if store.orders[orderID].Status != domain.StatusOnTheWay {
		t.Errorf("order status = %s, want ON_THE_WAY", store.orders[orderID].Status)
	}
	if len(notifier.events) != 1 || notifier.events[0] != domain.EventOrderStatusUpdated {
		t.Errorf("expected a single orderStatusUpdated event, got %v", notifier.events)
	}
}

func TestChangeOrderStatusUrgentBypass(t *testing.T) {
	store := newFakeStore()
	orderID := seedOrder(store, "user-1", domain.MethodKhalti, domain.PaymentPaid, domain.StatusPending)
	uc := newTestUsecase(store, &fakeGateway{}, &fakeReconciler{}, &recordNotifier{})

	change, err := uc.ChangeOrderStatus(context.Background(), &orderdto.ChangeOrderStatusInput{
		OrderID: orderID, RequestedStatus: domain.StatusDelivered, Actor: "admin-1",
	})
	if err != nil {
		t.Fatalf("urgent delivery: %v", err)
	}
	if !change.Urgent {
		t.Error("pending -> delivered on a paid order must be flagged urgent")
	}
	if store.orders[orderID].Status != domain.StatusDelivered {
		t.Error("urgent delivery not persisted")
	}
}

func TestChangeOrderStatusDeliveredRequiresPaid(t *testing.T) {
	store := newFakeStore()
	orderID := seedOrder(store, "user-1", domain.MethodCOD, domain.PaymentUnpaid, domain.StatusOnTheWay)
	uc := newTestUsecase(store, &fakeGateway{}, &fakeReconciler{}, &recordNotifier{})

	_, err := uc.ChangeOrderStatus(context.Background(), &orderdto.ChangeOrderStatusInput{
		OrderID: orderID, RequestedStatus: domain.StatusDelivered, Actor: "admin-1",
	})
	var te *domain.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if store.orders[orderID].Status != domain.StatusOnTheWay {
		t.Error("rejected transition must not mutate the order")
	}
}

func TestChangeOrderStatusCODPreparationAllowedUnpaid(t *testing.T) {
	store := newFakeStore()
	orderID := seedOrder(store, "user-1", domain.MethodCOD, domain.PaymentUnpaid, domain.StatusPending)
	uc := newTestUsecase(store, &fakeGateway{}, &fakeReconciler{}, &recordNotifier{})

	if _, err := uc.ChangeOrderStatus(context.Background(), &orderdto.ChangeOrderStatusInput{
		OrderID: orderID, RequestedStatus: domain.StatusPreparation, Actor: "admin-1",
	}); err != nil {
		t.Fatalf("cod preparation while unpaid should pass: %v", err)
	}
}

func TestChangeOrderStatusUnknownOrder(t *testing.T) {
	uc := newTestUsecase(newFakeStore(), &fakeGateway{}, &fakeReconciler{}, &recordNotifier{})
	_, err := uc.ChangeOrderStatus(context.Background(), &orderdto.ChangeOrderStatusInput{
		OrderID: "ord-missing", RequestedStatus: domain.StatusPreparation, Actor: "admin-1",
	})
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

//
// ---------- CANCEL TESTS ----------
//

func TestCancelOrderPending(t *testing.T) {
	store := newFakeStore()
	notifier := &recordNotifier{}
	orderID := seedOrder(store, "user-1", domain.MethodKhalti, domain.PaymentUnpaid, domain.StatusPending)
	uc := newTestUsecase(store, &fakeGateway{}, &fakeReconciler{}, notifier)

	if err := uc.CancelOrder(context.Background(), "user-1", orderID); err != nil {
		t.Fatalf("cancel pending: %v", err)
	}
	if store.orders[orderID].Status != domain.StatusCancelled {
		t.Error("cancellation not persisted")
	}
}

func TestCancelOrderDeniedAfterPreparation(t *testing.T) {
	for _, status := range []domain.OrderStatus{domain.StatusPreparation, domain.StatusOnTheWay} {
		store := newFakeStore()
		orderID := seedOrder(store, "user-1", domain.MethodKhalti, domain.PaymentPaid, status)
		uc := newTestUsecase(store, &fakeGateway{}, &fakeReconciler{}, &recordNotifier{})

		err := uc.CancelOrder(context.Background(), "user-1", orderID)
		if !errors.Is(err, domain.ErrCancelNotAllowed) {
			t.Errorf("%s: expected ErrCancelNotAllowed, got %v", status, err)
		}
		if store.orders[orderID].Status != status {
			t.Errorf("%s: denied cancel must not mutate", status)
		}
	}
}

func TestCancelOrderWrongOwner(t *testing.T) {
	store := newFakeStore()
	orderID := seedOrder(store, "user-1", domain.MethodKhalti, domain.PaymentUnpaid, domain.StatusPending)
	uc := newTestUsecase(store, &fakeGateway{}, &fakeReconciler{}, &recordNotifier{})

	// Another customer must not learn the order exists.
	err := uc.CancelOrder(context.Background(), "user-2", orderID)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign order, got %v", err)
	}
}

//
// ---------- PLACE ORDER TESTS ----------
//

func placeInput(method domain.PaymentMethod) *orderdto.PlaceOrderInput {
	return &orderdto.PlaceOrderInput{
		UserID: "user-1",
		Customer: domain.CustomerInfo{
			FirstName: "Asha", LastName: "Shrestha",
			Email: "asha@example.com", PhoneNumber: "9801234567",
			City: "Kathmandu", Street: "Thamel Marg",
		},
		TotalPrice:    decimal.NewFromInt(4500),
		PaymentMethod: method,
	}
}

func TestPlaceOrderCOD(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{}
	uc := newTestUsecase(store, gateway, &fakeReconciler{}, &recordNotifier{})

	out, err := uc.PlaceOrder(context.Background(), placeInput(domain.MethodCOD))
	if err != nil {
		t.Fatalf("place cod order: %v", err)
	}
	if out.Order.Status != domain.StatusPending || out.Order.Payment.Status != domain.PaymentUnpaid {
		t.Errorf("new order must start PENDING/UNPAID, got %s/%s", out.Order.Status, out.Order.Payment.Status)
	}
	if out.PaymentURL != "" {
		t.Error("cod order must not get a gateway redirect")
	}
	if gateway.calls != 0 {
		t.Error("cod order must not touch the gateway")
	}
}

func TestPlaceOrderKhaltiOpensSessionAndVerifies(t *testing.T) {
	store := newFakeStore()
	reconciler := &fakeReconciler{}
	uc := newTestUsecase(store, &fakeGateway{}, reconciler, &recordNotifier{})

	out, err := uc.PlaceOrder(context.Background(), placeInput(domain.MethodKhalti))
	if err != nil {
		t.Fatalf("place khalti order: %v", err)
	}
	if out.PaymentURL == "" {
		t.Error("khalti order must return the gateway redirect")
	}
	if store.payments[out.Order.PaymentID].CorrelationID != "pidx-new" {
		t.Error("pidx must be persisted on the payment")
	}
	if len(reconciler.verified) != 1 || reconciler.verified[0] != "pidx-new" {
		t.Errorf("expected one immediate verify for pidx-new, got %v", reconciler.verified)
	}
}

func TestPlaceOrderKhaltiInconclusiveVerifyLeavesPending(t *testing.T) {
	store := newFakeStore()
	reconciler := &fakeReconciler{verifyErr: domain.ErrGatewayInconclusive}
	uc := newTestUsecase(store, &fakeGateway{}, reconciler, &recordNotifier{})

	out, err := uc.PlaceOrder(context.Background(), placeInput(domain.MethodKhalti))
	if err != nil {
		t.Fatalf("inconclusive verify must not fail the order: %v", err)
	}
	if out.Order.Status != domain.StatusPending {
		t.Errorf("order must stay PENDING for the webhook to finish, got %s", out.Order.Status)
	}
}

func TestPlaceOrderGatewayFailureCleansUpNothingOrphaned(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{initiateErr: errors.New("gateway down")}
	uc := newTestUsecase(store, gateway, &fakeReconciler{}, &recordNotifier{})

	_, err := uc.PlaceOrder(context.Background(), placeInput(domain.MethodKhalti))
	if err == nil {
		t.Fatal("expected initiate failure to surface")
	}
	// Order and payment stay as a retriable pending pair, not orphans.
	for id, p := range store.payments {
		if _, err := store.GetOrderByPaymentID(context.Background(), id); err != nil {
			t.Errorf("payment %s left orphaned: %v, status %s", id, err, p.Status)
		}
	}
}

func TestPlaceOrderRejectsBadInput(t *testing.T) {
	uc := newTestUsecase(newFakeStore(), &fakeGateway{}, &fakeReconciler{}, &recordNotifier{})

	if _, err := uc.PlaceOrder(context.Background(), &orderdto.PlaceOrderInput{
		UserID: "user-1", TotalPrice: decimal.NewFromInt(100), PaymentMethod: "PAYPAL",
	}); err == nil {
		t.Error("unknown payment method must be rejected")
	}

	if _, err := uc.PlaceOrder(context.Background(), &orderdto.PlaceOrderInput{
		UserID: "user-1", TotalPrice: decimal.Zero, PaymentMethod: domain.MethodCOD,
	}); err == nil {
		t.Error("non-positive total must be rejected")
	}
}

//
// ---------- DELETE TESTS ----------
//

func TestDeleteOrderRemovesPaymentToo(t *testing.T) {
	store := newFakeStore()
	notifier := &recordNotifier{}
	orderID := seedOrder(store, "user-1", domain.MethodCOD, domain.PaymentUnpaid, domain.StatusCancelled)
	paymentID := store.orders[orderID].PaymentID
	uc := newTestUsecase(store, &fakeGateway{}, &fakeReconciler{}, notifier)

	if err := uc.DeleteOrder(context.Background(), orderID, "admin-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.orders[orderID]; ok {
		t.Error("order row should be gone")
	}
	if _, ok := store.payments[paymentID]; ok {
		t.Error("payment row should be gone with its order")
	}
	if len(notifier.events) != 1 || notifier.events[0] != domain.EventOrderDeleted {
		t.Errorf("expected orderDeleted event, got %v", notifier.events)
	}
}

func TestDeleteOrderKeepsDelivered(t *testing.T) {
	store := newFakeStore()
	orderID := seedOrder(store, "user-1", domain.MethodKhalti, domain.PaymentPaid, domain.StatusDelivered)
	uc := newTestUsecase(store, &fakeGateway{}, &fakeReconciler{}, &recordNotifier{})

	err := uc.DeleteOrder(context.Background(), orderID, "admin-1")
	if !errors.Is(err, domain.ErrDeleteDelivered) {
		t.Fatalf("expected ErrDeleteDelivered, got %v", err)
	}
	if _, ok := store.orders[orderID]; !ok {
		t.Error("delivered order must stay")
	}
}
