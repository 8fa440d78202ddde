package upgrade

import "fmt"

// ErrorKind classifies a purchase failure by the pipeline step that raised
// it. The pipeline, not this package, decides which kind wraps a cause.
type ErrorKind string

const (
	ErrPaymentsNotAvailable ErrorKind = "payments_not_available" // device not allowed to make payments
	ErrPayment              ErrorKind = "payment_error"          // unable to purchase the product
	ErrReceiptNotAvailable  ErrorKind = "receipt_not_available"  // unable to fetch the purchase receipt
	ErrBasket               ErrorKind = "basket_error"           // basket API returned an error
	ErrCheckout             ErrorKind = "checkout_error"         // checkout API returned an error
	ErrVerifyReceipt        ErrorKind = "verify_receipt_error"   // verify receipt API returned an error
	ErrProductNotExist      ErrorKind = "product_not_exist"      // product not listed on the store
	ErrGeneral              ErrorKind = "general_error"
)

// Cause is the opaque underlying failure reported by the pipeline step:
// an HTTP-like status code, a message, and whether the platform reported
// a user cancellation.
type Cause struct {
	Code      int
	Message   string
	Cancelled bool
}

// UpgradeError is a classified purchase failure. Two errors are considered
// equal when their categories match, regardless of the nested cause.
type UpgradeError struct {
	Kind  ErrorKind
	Cause *Cause
}

func NewError(kind ErrorKind, cause *Cause) *UpgradeError {
	return &UpgradeError{Kind: kind, Cause: cause}
}

const unhandledError = "unhandledError"

// user facing messages
const (
	msgPaymentNotProcessed = "Your payment could not be processed. Please try again."
	msgCourseNotFound      = "The course could not be found."
	msgAuthError           = "You are not authorized to complete this purchase. Please sign in again."
	msgAlreadyPaid         = "You have already paid for this course."
	msgNotFulfilled        = "Your purchase could not be completed. Please try again or contact support."
)

// Category returns the analytics category for the failing pipeline step.
func (e *UpgradeError) Category() string {
	switch e.Kind {
	case ErrBasket:
		return "basket"
	case ErrCheckout:
		return "checkout"
	case ErrPayment:
		return "payment"
	case ErrVerifyReceipt:
		return "execute"
	default:
		return "unhandled"
	}
}

// Equal compares by category only. Two errors of the same category are the
// same failure for dispatch purposes even if their causes differ.
func (e *UpgradeError) Equal(other *UpgradeError) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Category() == other.Category()
}

// DisplayMessage resolves the user facing message for the error, refined by
// the embedded status code for basket, checkout and receipt failures.
func (e *UpgradeError) DisplayMessage() string {
	switch e.Kind {
	case ErrBasket:
		switch e.code() {
		case 400:
			return msgCourseNotFound
		case 403:
			return msgAuthError
		case 406:
			return msgAlreadyPaid
		}
	case ErrCheckout:
		if e.code() == 403 {
			return msgAuthError
		}
	case ErrVerifyReceipt:
		if e.code() == 409 {
			return msgAlreadyPaid
		}
		return msgNotFulfilled
	}
	return msgPaymentNotProcessed
}

// AnalyticsString formats the error for analytics payloads as
// "<category>-<code>-<message>", or "unhandledError" when no cause is
// attached.
func (e *UpgradeError) AnalyticsString() string {
	if e.Cause == nil {
		return unhandledError
	}
	return fmt.Sprintf("%s-%d-%s", e.Category(), e.Cause.Code, e.Cause.Message)
}

// IsCancelled reports whether the platform told us the user cancelled the
// payment. True only for payment errors.
func (e *UpgradeError) IsCancelled() bool {
	return e.Kind == ErrPayment && e.Cause != nil && e.Cause.Cancelled
}

func (e *UpgradeError) Error() string {
	return e.AnalyticsString()
}

func (e *UpgradeError) code() int {
	if e.Cause == nil {
		return 0
	}
	return e.Cause.Code
}
