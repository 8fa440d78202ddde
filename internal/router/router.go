package router

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"course-upgrade-service/internal/upgrade"
	"course-upgrade-service/internal/ws"
)

// command and notification frame types pushed to clients
const (
	msgShowLoader      = "show_loader"
	msgHideLoader      = "hide_loader"
	msgHideUpgradeInfo = "hide_upgrade_info"
	msgPresentAlert    = "present_alert"
	msgNavigateRoot    = "navigate_root"
	msgComposeEmail    = "compose_email"
	msgUpgradeSuccess  = "course_upgrade_success"
)

type alertPayload struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Actions []string `json:"actions"`
}

type composePayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// WSRouter implements upgrade.Router and upgrade.Notifier by pushing
// presentation commands over the websocket hub. Only one alert is pending
// at a time; presenting a new one replaces the previous, and the chosen
// action comes back through HandleAlertAction.
type WSRouter struct {
	hub *ws.Hub
	log zerolog.Logger

	mu      sync.Mutex
	alertID string
	actions map[string]func()
}

func NewWSRouter(hub *ws.Hub, log zerolog.Logger) *WSRouter {
	return &WSRouter{
		hub: hub,
		log: log,
	}
}

func (r *WSRouter) ShowUpgradeLoader(ctx context.Context, animated bool) error {
	r.hub.Broadcast(ws.Message{Type: msgShowLoader, Data: map[string]bool{"animated": animated}})
	return nil
}

func (r *WSRouter) HideUpgradeLoader(ctx context.Context, animated bool) error {
	r.hub.Broadcast(ws.Message{Type: msgHideLoader, Data: map[string]bool{"animated": animated}})
	return nil
}

func (r *WSRouter) HideUpgradeInfo(ctx context.Context, animated bool) error {
	r.hub.Broadcast(ws.Message{Type: msgHideUpgradeInfo, Data: map[string]bool{"animated": animated}})
	return nil
}

func (r *WSRouter) PresentAlert(title, message string, actions []upgrade.AlertAction) {
	id := uuid.NewString()
	titles := make([]string, len(actions))
	handlers := make(map[string]func(), len(actions))
	for i, action := range actions {
		titles[i] = action.Title
		handlers[action.Title] = action.Handler
	}

	r.mu.Lock()
	r.alertID = id
	r.actions = handlers
	r.mu.Unlock()

	r.hub.Broadcast(ws.Message{Type: msgPresentAlert, Data: alertPayload{
		ID:      id,
		Title:   title,
		Message: message,
		Actions: titles,
	}})
}

// HandleAlertAction resolves the user's choice for a previously presented
// alert. The whole alert is consumed on the first answer.
func (r *WSRouter) HandleAlertAction(alertID, action string) error {
	r.mu.Lock()
	if alertID != r.alertID {
		r.mu.Unlock()
		return fmt.Errorf("no pending alert with id %s", alertID)
	}
	handler, ok := r.actions[action]
	r.alertID = ""
	r.actions = nil
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("unknown alert action %q", action)
	}

	r.log.Info().Str("alert_id", alertID).Str("action", action).Msg("alert action selected")
	handler()
	return nil
}

func (r *WSRouter) NavigateToRoot(animated bool) {
	r.hub.Broadcast(ws.Message{Type: msgNavigateRoot, Data: map[string]bool{"animated": animated}})
}

func (r *WSRouter) PresentEmailComposer(to, subject, body string) bool {
	if !r.hub.MailAvailable() {
		return false
	}
	r.hub.Broadcast(ws.Message{Type: msgComposeEmail, Data: composePayload{
		To:      to,
		Subject: subject,
		Body:    body,
	}})
	return true
}

// PostUpgradeSuccess broadcasts the upgrade success notification consumed
// by listening screens. The payload says whether the destination screen
// should show a loader while it refreshes.
func (r *WSRouter) PostUpgradeSuccess(showLoader bool) {
	r.hub.Broadcast(ws.Message{Type: msgUpgradeSuccess, Data: map[string]bool{"show_loader": showLoader}})
}
