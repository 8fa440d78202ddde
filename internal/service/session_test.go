package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"course-upgrade-service/internal/upgrade"
	"course-upgrade-service/internal/ws"
)

func newTestSession() *UpgradeSession {
	return NewUpgradeSession(ws.NewHub(zerolog.Nop()), zerolog.Nop())
}

func TestUpgradeSession_Defaults(t *testing.T) {
	s := newTestSession()

	assert.Equal(t, upgrade.StateInitial, s.State().Kind)
	assert.Equal(t, upgrade.ModeUserInitiated, s.Mode())
	assert.Empty(t, s.SKU())
}

func TestUpgradeSession_ApplyKeepsStickyFields(t *testing.T) {
	s := newTestSession()

	s.Apply(upgrade.Basket(), upgrade.ModeSilent, "sku1")
	assert.Equal(t, upgrade.StateBasket, s.State().Kind)
	assert.Equal(t, upgrade.ModeSilent, s.Mode())
	assert.Equal(t, "sku1", s.SKU())

	// later transitions without mode or sku keep the earlier values
	s.Apply(upgrade.Payment(), "", "")
	assert.Equal(t, upgrade.StatePayment, s.State().Kind)
	assert.Equal(t, upgrade.ModeSilent, s.Mode())
	assert.Equal(t, "sku1", s.SKU())
}

func TestUpgradeSession_ReverifyPayment(t *testing.T) {
	s := newTestSession()
	assert.NoError(t, s.ReverifyPayment(context.Background()))
}
