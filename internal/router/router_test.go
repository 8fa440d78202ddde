package router

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-upgrade-service/internal/upgrade"
	"course-upgrade-service/internal/ws"
)

func newTestRouter() *WSRouter {
	// the hub loop is not running: Broadcast queues into its buffer, which
	// is all these tests need
	return NewWSRouter(ws.NewHub(zerolog.Nop()), zerolog.Nop())
}

func TestWSRouter_AlertActionDispatch(t *testing.T) {
	r := newTestRouter()

	var picked string
	r.PresentAlert("title", "message", []upgrade.AlertAction{
		{Title: "Close", Handler: func() { picked = "Close" }},
		{Title: "Get help", Handler: func() { picked = "Get help" }},
	})

	r.mu.Lock()
	id := r.alertID
	r.mu.Unlock()
	require.NotEmpty(t, id)

	require.NoError(t, r.HandleAlertAction(id, "Get help"))
	assert.Equal(t, "Get help", picked)

	// the alert is consumed by the first answer
	err := r.HandleAlertAction(id, "Close")
	assert.Error(t, err)
	assert.Equal(t, "Get help", picked)
}

func TestWSRouter_AlertUnknownIDOrAction(t *testing.T) {
	r := newTestRouter()

	assert.Error(t, r.HandleAlertAction("missing", "Close"))

	r.PresentAlert("title", "message", []upgrade.AlertAction{
		{Title: "Close", Handler: func() {}},
	})
	r.mu.Lock()
	id := r.alertID
	r.mu.Unlock()

	assert.Error(t, r.HandleAlertAction(id, "Not a button"))
}

func TestWSRouter_NewAlertReplacesPrevious(t *testing.T) {
	r := newTestRouter()

	r.PresentAlert("first", "message", []upgrade.AlertAction{{Title: "Close", Handler: func() {}}})
	r.mu.Lock()
	first := r.alertID
	r.mu.Unlock()

	r.PresentAlert("second", "message", []upgrade.AlertAction{{Title: "Close", Handler: func() {}}})

	assert.Error(t, r.HandleAlertAction(first, "Close"), "only the latest alert is answerable")
}

func TestWSRouter_EmailComposerRequiresMailCapability(t *testing.T) {
	r := newTestRouter()

	// no connected client reported a mail capability
	assert.False(t, r.PresentEmailComposer("support@example.com", "subject", "body"))
}

func TestWSRouter_PresentationCommandsDoNotError(t *testing.T) {
	r := newTestRouter()
	ctx := context.Background()

	assert.NoError(t, r.ShowUpgradeLoader(ctx, true))
	assert.NoError(t, r.HideUpgradeLoader(ctx, true))
	assert.NoError(t, r.HideUpgradeInfo(ctx, false))
	r.NavigateToRoot(true)
	r.PostUpgradeSuccess(true)
}
