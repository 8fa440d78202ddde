package upgrade

import "context"

// AlertAction is one button on a presented alert. The handler runs when the
// user picks the action.
type AlertAction struct {
	Title   string
	Handler func()
}

// Router presents UI on the client: the blocking loader overlay, native
// alerts, navigation and the support email composer. Implementations must
// tolerate being called from the helper while it holds its own lock, i.e.
// they must not call back into the helper synchronously.
type Router interface {
	ShowUpgradeLoader(ctx context.Context, animated bool) error
	HideUpgradeLoader(ctx context.Context, animated bool) error
	HideUpgradeInfo(ctx context.Context, animated bool) error
	PresentAlert(title, message string, actions []AlertAction)
	NavigateToRoot(animated bool)
	// PresentEmailComposer opens a pre-filled support email on the client
	// and reports whether a mail capability was available at all.
	PresentEmailComposer(to, subject, body string) bool
}

// EventProps carries the purchase context attached to every analytics event.
type EventProps struct {
	CourseID string
	BlockID  string
	Pacing   Pacing
	Price    string
	Screen   Screen
	Error    string
	Flow     Mode
	Action   ErrorAction
}

// Analytics is a fire and forget event sink.
type Analytics interface {
	TrackUpgradeSuccess(p EventProps)
	TrackUpgradeError(p EventProps)
	TrackPaymentError(cancelled bool, p EventProps)
	TrackErrorAction(p EventProps)
}

// Record is the persisted in-progress purchase: the most recent unfulfilled
// attempt pending recovery across restarts. At most one exists at a time.
type Record struct {
	CourseID string
	SKU      string
	Pacing   Pacing
}

// RecordStore persists the single in-progress purchase slot. Save overwrites
// unconditionally; Load returns nil when no record is pending.
type RecordStore interface {
	Save(ctx context.Context, rec Record) error
	Load(ctx context.Context) (*Record, error)
	Clear(ctx context.Context) error
}

// PurchaseHandler is the externally owned purchase pipeline. It drives
// basket, checkout, payment and fulfillment on its own and reports each
// transition to the helper; the helper only reads its current state.
type PurchaseHandler interface {
	State() State
	Mode() Mode
	SKU() string
	ReverifyPayment(ctx context.Context) error
}

// Notifier broadcasts the upgrade success signal consumed by unrelated
// screens. The payload says whether the destination should show a loader
// while it refreshes.
type Notifier interface {
	PostUpgradeSuccess(showLoader bool)
}

// Delegate is the owning screen's dismissal hook, held only for the
// duration of one attempt.
type Delegate interface {
	HideAlertAction()
}
