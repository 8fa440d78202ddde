package upgrade

// Pacing describes how a course is scheduled.
type Pacing string

const (
	PacingSelf       Pacing = "self"
	PacingInstructor Pacing = "instructor"
)

// Screen names the UI entry point a purchase attempt started from.
// Used only for analytics, never for dispatch.
type Screen string

const (
	ScreenDashboard        Screen = "dashboard"
	ScreenCourseEnrollment Screen = "course_enrollment"
	ScreenCourseComponent  Screen = "course_component"
	ScreenUnknown          Screen = "unknown"
)

// Mode says whether the purchase was started by the user or is a silent
// background retry of an unfulfilled purchase.
type Mode string

const (
	ModeUserInitiated Mode = "user_initiated"
	ModeSilent        Mode = "silent"
)

// ErrorAction tags the action a user picked on the failure alert.
// The raw values are sent to analytics.
type ErrorAction string

const (
	ErrorActionRefresh      ErrorAction = "refresh"
	ErrorActionEmailSupport ErrorAction = "get_help"
	ErrorActionClose        ErrorAction = "close"
)

// StateKind enumerates the purchase pipeline states.
type StateKind string

const (
	StateInitial     StateKind = "initial"
	StateBasket      StateKind = "basket"
	StatePayment     StateKind = "payment"
	StateFulfillment StateKind = "fulfillment"
	StateComplete    StateKind = "complete"
	StateSuccess     StateKind = "success"
	StateError       StateKind = "error"
)

// State is one discrete pipeline state reported by the purchase handler.
// Exactly one state is active at a time; payload fields are only set for
// the kinds that carry them.
type State struct {
	Kind StateKind

	// fulfillment
	ShowLoader bool

	// success
	CourseID    string
	ComponentID string

	// error
	Err *UpgradeError
}

func Initial() State {
	return State{Kind: StateInitial}
}

func Basket() State {
	return State{Kind: StateBasket}
}

func Payment() State {
	return State{Kind: StatePayment}
}

func Fulfillment(showLoader bool) State {
	return State{Kind: StateFulfillment, ShowLoader: showLoader}
}

func Complete() State {
	return State{Kind: StateComplete}
}

func Success(courseID, componentID string) State {
	return State{Kind: StateSuccess, CourseID: courseID, ComponentID: componentID}
}

func Failed(err *UpgradeError) State {
	return State{Kind: StateError, Err: err}
}
