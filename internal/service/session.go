package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"course-upgrade-service/internal/upgrade"
	"course-upgrade-service/internal/ws"
)

const msgReverifyPayment = "reverify_payment"

// UpgradeSession mirrors the client app's purchase pipeline on the server
// side: it keeps the last reported state, purchase mode and sku, and
// implements upgrade.PurchaseHandler for the helper. Reverification cannot
// run here (the receipt lives on the device), so ReverifyPayment pushes a
// command back to the client.
type UpgradeSession struct {
	mu    sync.Mutex
	state upgrade.State
	mode  upgrade.Mode
	sku   string

	hub *ws.Hub
	log zerolog.Logger
}

func NewUpgradeSession(hub *ws.Hub, log zerolog.Logger) *UpgradeSession {
	return &UpgradeSession{
		state: upgrade.Initial(),
		mode:  upgrade.ModeUserInitiated,
		hub:   hub,
		log:   log,
	}
}

// Apply records one reported pipeline transition before it is dispatched to
// the helper. An empty sku leaves the previous one in place so the basket
// state written early in the pipeline stays visible to the record update.
func (s *UpgradeSession) Apply(state upgrade.State, mode upgrade.Mode, sku string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
	if mode != "" {
		s.mode = mode
	}
	if sku != "" {
		s.sku = sku
	}
}

func (s *UpgradeSession) State() upgrade.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *UpgradeSession) Mode() upgrade.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *UpgradeSession) SKU() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sku
}

func (s *UpgradeSession) ReverifyPayment(ctx context.Context) error {
	s.log.Info().Msg("asking client to reverify payment receipt")
	s.hub.Broadcast(ws.Message{Type: msgReverifyPayment})
	return nil
}
