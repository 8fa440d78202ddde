package upgrade

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// HelperModel captures the outcome of a successful upgrade for the screen
// that consumes it.
type HelperModel struct {
	CourseID string
	BlockID  string
	Screen   Screen
}

// alert copy
const (
	failureAlertTitle   = "Course upgrade failed"
	silentAlertTitle    = "Course upgraded"
	silentAlertMessage  = "Your course has been upgraded. Refresh now to see the updated experience."
	refreshRetryTitle   = "Refresh to retry"
	silentRefreshTitle  = "Refresh now"
	silentContinueTitle = "Continue without updating"
	getHelpTitle        = "Get help"
	closeTitle          = "Close"

	emailNotSetupTitle   = "Cannot send email"
	emailNotSetupMessage = "It looks like this device cannot send email. Please contact support directly."
	supportEmailSubject  = "Payment failure"
)

// Helper is the single authoritative reactor to purchase pipeline state. It
// coordinates loader and alert presentation through the router, keeps the
// in-progress purchase record current, and emits analytics. It never drives
// the pipeline itself; retries are always user triggered.
//
// All mutation is serialized by an internal mutex. Pipeline states for one
// attempt are assumed to arrive in order.
type Helper struct {
	mu sync.Mutex

	router       Router
	analytics    Analytics
	store        RecordStore
	notifier     Notifier
	supportEmail string
	log          zerolog.Logger

	// purchase context, set by SetData before an attempt starts
	courseID string
	blockID  string
	pacing   Pacing
	price    string
	screen   Screen

	// per-attempt references, cleared on reset
	handler   PurchaseHandler
	delegate  Delegate
	lastError *UpgradeError
	model     *HelperModel

	// deferred one-shot resume callback; taken (read and cleared) on use
	completion func()
}

func NewHelper(
	router Router,
	analytics Analytics,
	store RecordStore,
	notifier Notifier,
	supportEmail string,
	log zerolog.Logger,
) *Helper {
	return &Helper{
		router:       router,
		analytics:    analytics,
		store:        store,
		notifier:     notifier,
		supportEmail: supportEmail,
		log:          log,
		screen:       ScreenUnknown,
	}
}

// SetData stores the context for the next purchase attempt. Stale context
// from a prior attempt is overwritten without validation.
func (h *Helper) SetData(courseID string, pacing Pacing, blockID, price string, screen Screen) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.courseID = courseID
	h.pacing = pacing
	h.blockID = blockID
	h.price = price
	h.screen = screen
}

// Model returns the captured result of the last successful upgrade, or nil.
func (h *Helper) Model() *HelperModel {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.model
}

// HandleUpgrade is the single entry point invoked by the purchase handler on
// every pipeline transition. Unmodeled states are a no-op beyond the record
// update.
func (h *Helper) HandleUpgrade(ctx context.Context, handler PurchaseHandler, state State, delegate Delegate) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.handler = handler
	h.delegate = delegate

	h.updateRecord(ctx, handler, state)

	switch state.Kind {
	case StateFulfillment:
		if state.ShowLoader {
			h.showLoaderLocked(ctx, false)
		}

	case StateSuccess:
		h.model = &HelperModel{CourseID: state.CourseID, BlockID: state.ComponentID, Screen: h.screen}
		if handler.Mode() == ModeUserInitiated {
			h.removeLoaderLocked(ctx, true, true, nil)
			h.notifier.PostUpgradeSuccess(false)
		} else {
			h.showSilentRefreshAlertLocked()
		}

	case StateError:
		err := state.Err
		if err == nil {
			return
		}
		h.lastError = err
		props := h.eventPropsLocked()
		props.Error = err.AnalyticsString()
		if err.Kind == ErrPayment {
			h.analytics.TrackPaymentError(err.IsCancelled(), props)
		} else {
			props.Flow = handler.Mode()
			h.analytics.TrackUpgradeError(props)
		}

		// keep the loader up on receipt verification failures: the money may
		// already be captured and fulfillment can still be retried
		removeView := err.Kind != ErrVerifyReceipt
		h.removeLoaderLocked(ctx, false, removeView, nil)

	default:
		// initial, basket, payment, complete: record update only
	}
}

// updateRecord applies the in-progress record lifecycle for the incoming
// state. Writes are best effort; the record is advisory and a failed write
// never blocks the flow.
func (h *Helper) updateRecord(ctx context.Context, handler PurchaseHandler, state State) {
	switch state.Kind {
	case StateBasket:
		sku := handler.SKU()
		if sku == "" {
			return
		}
		rec := Record{CourseID: h.courseID, SKU: sku, Pacing: h.pacing}
		if err := h.store.Save(ctx, rec); err != nil {
			h.log.Warn().Err(err).Str("course_id", h.courseID).Msg("failed to save in-progress purchase")
		}

	case StateComplete:
		h.clearRecord(ctx)

	case StateError:
		err := state.Err
		if err == nil {
			return
		}
		if err.Kind == ErrVerifyReceipt {
			// 409: already fulfilled on the backend, nothing left to recover
			if err.Cause != nil && err.Cause.Code == 409 {
				h.clearRecord(ctx)
			}
			return
		}
		// a cancelled payment leaves the record pending for a later retry
		if err.IsCancelled() {
			return
		}
		if handler.Mode() == ModeUserInitiated {
			h.clearRecord(ctx)
		}
	}
}

func (h *Helper) clearRecord(ctx context.Context) {
	if err := h.store.Clear(ctx); err != nil {
		h.log.Warn().Err(err).Msg("failed to clear in-progress purchase")
	}
}

// ShowLoader presents the blocking loader overlay, hiding any upgrade info
// panel first so only one exclusive view is up.
func (h *Helper) ShowLoader(ctx context.Context, animated bool, completion func()) {
	h.mu.Lock()
	h.showLoaderLocked(ctx, animated)
	h.mu.Unlock()

	if completion != nil {
		completion()
	}
}

func (h *Helper) showLoaderLocked(ctx context.Context, animated bool) {
	if err := h.router.HideUpgradeInfo(ctx, false); err != nil {
		h.log.Warn().Err(err).Msg("failed to hide upgrade info panel")
	}
	if err := h.router.ShowUpgradeLoader(ctx, animated); err != nil {
		h.log.Warn().Err(err).Msg("failed to show upgrade loader")
	}
}

// RemoveLoader dismisses the overlay and routes to the success or error
// presentation. A non-nil completion is stored as the deferred resume
// callback offered on the failure alert; it fires at most once.
func (h *Helper) RemoveLoader(ctx context.Context, success, removeView bool, completion func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLoaderLocked(ctx, success, removeView, completion)
}

func (h *Helper) removeLoaderLocked(ctx context.Context, success, removeView bool, completion func()) {
	h.completion = completion
	if success {
		h.model = nil
	}

	if removeView {
		if err := h.router.HideUpgradeLoader(ctx, true); err != nil {
			h.log.Warn().Err(err).Msg("failed to hide upgrade loader")
		}
		h.model = nil
		if success {
			h.showSuccessLocked()
		} else {
			h.showErrorLocked()
		}
	} else if !success {
		h.showErrorLocked()
	}
}

// ResetUpgradeModel clears the captured result model and the dismissal
// delegate without touching the in-progress record. Safe to call repeatedly.
func (h *Helper) ResetUpgradeModel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resetUpgradeModelLocked()
}

func (h *Helper) resetUpgradeModelLocked() {
	h.model = nil
	h.delegate = nil
}

func (h *Helper) resetLocked() {
	h.courseID = ""
	h.blockID = ""
	h.pacing = ""
	h.price = ""
	h.screen = ScreenUnknown
	h.handler = nil
	h.lastError = nil
	h.resetUpgradeModelLocked()
}

func (h *Helper) showSuccessLocked() {
	props := h.eventPropsLocked()
	if h.handler != nil {
		props.Flow = h.handler.Mode()
	}
	h.analytics.TrackUpgradeSuccess(props)
	h.resetLocked()
}

// showErrorLocked builds and presents the failure alert. Cancelled payments
// produce no visible error UI at all.
func (h *Helper) showErrorLocked() {
	var handlerState State
	if h.handler != nil {
		handlerState = h.handler.State()
	}

	err := handlerState.Err
	if err == nil {
		err = h.lastError
	}
	if err == nil || err.IsCancelled() {
		return
	}

	var actions []AlertAction

	if err.Kind == ErrVerifyReceipt && (err.Cause == nil || err.Cause.Code != 409) {
		actions = append(actions, AlertAction{
			Title:   refreshRetryTitle,
			Handler: func() { h.onRefreshRetry(err) },
		})
	}

	if handlerState.Kind == StateComplete && h.completion != nil {
		actions = append(actions, AlertAction{
			Title:   refreshRetryTitle,
			Handler: func() { h.onResumePipeline(err) },
		})
	}

	actions = append(actions,
		AlertAction{Title: getHelpTitle, Handler: func() { h.onGetHelp(err) }},
		AlertAction{Title: closeTitle, Handler: func() { h.onClose(err) }},
	)

	h.router.PresentAlert(failureAlertTitle, err.DisplayMessage(), actions)
}

func (h *Helper) onRefreshRetry(err *UpgradeError) {
	h.mu.Lock()
	h.trackErrorActionLocked(ErrorActionRefresh, err)
	handler := h.handler
	h.mu.Unlock()

	if handler == nil {
		return
	}
	if rerr := handler.ReverifyPayment(context.Background()); rerr != nil {
		h.log.Warn().Err(rerr).Msg("receipt reverification failed")
	}
}

func (h *Helper) onResumePipeline(err *UpgradeError) {
	h.mu.Lock()
	h.trackErrorActionLocked(ErrorActionRefresh, err)
	h.showLoaderLocked(context.Background(), false)
	completion := h.completion
	h.completion = nil
	h.mu.Unlock()

	if completion != nil {
		completion()
	}
}

func (h *Helper) onGetHelp(err *UpgradeError) {
	h.mu.Lock()
	h.trackErrorActionLocked(ErrorActionEmailSupport, err)
	delegate := h.delegate
	h.resetLocked()
	if herr := h.router.HideUpgradeLoader(context.Background(), true); herr != nil {
		h.log.Warn().Err(herr).Msg("failed to hide upgrade loader")
	}
	h.mu.Unlock()

	if delegate != nil {
		delegate.HideAlertAction()
	}
	h.launchEmailComposer(err)
}

func (h *Helper) onClose(err *UpgradeError) {
	h.mu.Lock()
	if herr := h.router.HideUpgradeLoader(context.Background(), true); herr != nil {
		h.log.Warn().Err(herr).Msg("failed to hide upgrade loader")
	}
	h.trackErrorActionLocked(ErrorActionClose, err)
	delegate := h.delegate
	h.resetLocked()
	h.mu.Unlock()

	if delegate != nil {
		delegate.HideAlertAction()
	}
}

func (h *Helper) showSilentRefreshAlertLocked() {
	actions := []AlertAction{
		{
			Title: silentRefreshTitle,
			Handler: func() {
				h.router.NavigateToRoot(false)
				h.notifier.PostUpgradeSuccess(true)
				h.Reset()
			},
		},
		{
			Title:   silentContinueTitle,
			Handler: func() { h.Reset() },
		},
	}

	h.router.PresentAlert(silentAlertTitle, silentAlertMessage, actions)
}

// Reset clears the purchase context and all per-attempt references. The
// in-progress record is untouched.
func (h *Helper) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resetLocked()
}

func (h *Helper) launchEmailComposer(err *UpgradeError) {
	body := "Error: " + err.AnalyticsString()
	if h.router.PresentEmailComposer(h.supportEmail, supportEmailSubject, body) {
		return
	}
	h.router.PresentAlert(emailNotSetupTitle, emailNotSetupMessage, []AlertAction{
		{Title: "OK", Handler: func() {}},
	})
}

func (h *Helper) trackErrorActionLocked(action ErrorAction, err *UpgradeError) {
	props := h.eventPropsLocked()
	props.Action = action
	props.Error = err.AnalyticsString()
	if h.handler != nil {
		props.Flow = h.handler.Mode()
	}
	h.analytics.TrackErrorAction(props)
}

func (h *Helper) eventPropsLocked() EventProps {
	return EventProps{
		CourseID: h.courseID,
		BlockID:  h.blockID,
		Pacing:   h.pacing,
		Price:    h.price,
		Screen:   h.screen,
	}
}
