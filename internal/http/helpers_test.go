package httpapi

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"schoolform-data/internal/domain"
	"schoolform-data/internal/service"
)

// envelope mirrors Result[T] for decoding responses in tests.
type envelope struct {
	Code    int             `json:"code"`
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not a Result envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return env
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Result, out); err != nil {
		t.Fatalf("failed to decode result payload: %v\nresult: %s", err, env.Result)
	}
	return env
}

// memOutbox is an in-memory repository.OutboxRepo.
type memOutbox struct {
	items  []domain.OutboxItem
	appErr error
}

func (m *memOutbox) Append(ctx context.Context, item domain.OutboxItem) error {
	if m.appErr != nil {
		return m.appErr
	}
	m.items = append(m.items, item)
	return nil
}

func (m *memOutbox) List(ctx context.Context) ([]domain.OutboxItem, error) {
	out := make([]domain.OutboxItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memOutbox) Delete(ctx context.Context, id string) error {
	for i, item := range m.items {
		if item.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// stubDeliverer returns a fixed result for every delivery attempt.
type stubDeliverer struct {
	result service.DeliveryResult
	items  []domain.OutboxItem
}

func (s *stubDeliverer) Deliver(ctx context.Context, item domain.OutboxItem) service.DeliveryResult {
	s.items = append(s.items, item)
	return s.result
}

type stubConnectivity bool

func (s stubConnectivity) Online(ctx context.Context) bool { return bool(s) }
