package stripewebhook

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/masstransitco/mtc-toys/pkg/errors"
	"github.com/masstransitco/mtc-toys/pkg/logger"
)

type stubTransitioner struct {
	paid       []uuid.UUID
	cancelled  []uuid.UUID
	sessionIDs []string
	changed    bool
	err        error
}

func (s *stubTransitioner) MarkPaid(_ context.Context, orderID uuid.UUID, sessionID string) (bool, error) {
	s.paid = append(s.paid, orderID)
	s.sessionIDs = append(s.sessionIDs, sessionID)
	return s.changed, s.err
}

func (s *stubTransitioner) MarkCancelled(_ context.Context, orderID uuid.UUID) (bool, error) {
	s.cancelled = append(s.cancelled, orderID)
	return s.changed, s.err
}

func newWebhookService(t *testing.T, orders *stubTransitioner) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Orders: orders,
		Logger: logger.New(logger.Options{ServiceName: "webhook-test", Level: zerolog.ErrorLevel}),
	})
	require.NoError(t, err)
	return svc
}

func sessionEvent(t *testing.T, eventType stripe.EventType, metadata map[string]string) *stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"id":       "cs_test_123",
		"metadata": metadata,
	})
	require.NoError(t, err)
	return &stripe.Event{
		Type: eventType,
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestHandleEventCompletedMarksPaid(t *testing.T) {
	orders := &stubTransitioner{changed: true}
	svc := newWebhookService(t, orders)
	orderID := uuid.New()

	event := sessionEvent(t, stripe.EventTypeCheckoutSessionCompleted, map[string]string{"order_id": orderID.String()})
	require.NoError(t, svc.HandleEvent(context.Background(), event))
	require.Len(t, orders.paid, 1)
	assert.Equal(t, orderID, orders.paid[0])
	assert.Equal(t, []string{"cs_test_123"}, orders.sessionIDs)
	assert.Empty(t, orders.cancelled)
}

func TestHandleEventExpiredMarksCancelled(t *testing.T) {
	orders := &stubTransitioner{changed: true}
	svc := newWebhookService(t, orders)
	orderID := uuid.New()

	event := sessionEvent(t, stripe.EventTypeCheckoutSessionExpired, map[string]string{"order_id": orderID.String()})
	require.NoError(t, svc.HandleEvent(context.Background(), event))
	require.Len(t, orders.cancelled, 1)
	assert.Equal(t, orderID, orders.cancelled[0])
}

func TestHandleEventIgnoresOtherTypes(t *testing.T) {
	orders := &stubTransitioner{}
	svc := newWebhookService(t, orders)

	event := sessionEvent(t, stripe.EventTypeInvoicePaid, map[string]string{"order_id": uuid.NewString()})
	require.NoError(t, svc.HandleEvent(context.Background(), event))
	assert.Empty(t, orders.paid)
	assert.Empty(t, orders.cancelled)
}

func TestHandleEventMissingOrderID(t *testing.T) {
	svc := newWebhookService(t, &stubTransitioner{})

	event := sessionEvent(t, stripe.EventTypeCheckoutSessionCompleted, map[string]string{})
	err := svc.HandleEvent(context.Background(), event)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestHandleEventAlreadySettledIsNoError(t *testing.T) {
	orders := &stubTransitioner{changed: false}
	svc := newWebhookService(t, orders)

	event := sessionEvent(t, stripe.EventTypeCheckoutSessionCompleted, map[string]string{"order_id": uuid.NewString()})
	require.NoError(t, svc.HandleEvent(context.Background(), event))
}

func TestHandleEventPropagatesTransitionError(t *testing.T) {
	orders := &stubTransitioner{err: errors.New("db down")}
	svc := newWebhookService(t, orders)

	event := sessionEvent(t, stripe.EventTypeCheckoutSessionCompleted, map[string]string{"order_id": uuid.NewString()})
	require.Error(t, svc.HandleEvent(context.Background(), event))
}

func TestHandleEventNilEvent(t *testing.T) {
	svc := newWebhookService(t, &stubTransitioner{})
	require.Error(t, svc.HandleEvent(context.Background(), nil))
}
