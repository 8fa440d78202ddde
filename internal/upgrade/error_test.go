package upgrade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpgradeError_AnalyticsString(t *testing.T) {
	kinds := []ErrorKind{
		ErrPaymentsNotAvailable,
		ErrPayment,
		ErrReceiptNotAvailable,
		ErrBasket,
		ErrCheckout,
		ErrVerifyReceipt,
		ErrProductNotExist,
		ErrGeneral,
	}

	for _, kind := range kinds {
		withoutCause := NewError(kind, nil)
		assert.Equal(t, "unhandledError", withoutCause.AnalyticsString(), "kind %s", kind)

		withCause := NewError(kind, &Cause{Code: 500, Message: "boom"})
		assert.NotEqual(t, "unhandledError", withCause.AnalyticsString(), "kind %s", kind)
	}

	err := NewError(ErrBasket, &Cause{Code: 400, Message: "not found"})
	assert.Equal(t, "basket-400-not found", err.AnalyticsString())

	err = NewError(ErrVerifyReceipt, &Cause{Code: 409, Message: "conflict"})
	assert.Equal(t, "execute-409-conflict", err.AnalyticsString())
}

func TestUpgradeError_Category(t *testing.T) {
	assert.Equal(t, "basket", NewError(ErrBasket, nil).Category())
	assert.Equal(t, "checkout", NewError(ErrCheckout, nil).Category())
	assert.Equal(t, "payment", NewError(ErrPayment, nil).Category())
	assert.Equal(t, "execute", NewError(ErrVerifyReceipt, nil).Category())
	assert.Equal(t, "unhandled", NewError(ErrGeneral, nil).Category())
	assert.Equal(t, "unhandled", NewError(ErrProductNotExist, nil).Category())
	assert.Equal(t, "unhandled", NewError(ErrPaymentsNotAvailable, nil).Category())
	assert.Equal(t, "unhandled", NewError(ErrReceiptNotAvailable, nil).Category())
}

func TestUpgradeError_EqualByCategory(t *testing.T) {
	a := NewError(ErrBasket, &Cause{Code: 400, Message: "a"})
	b := NewError(ErrBasket, &Cause{Code: 500, Message: "b"})
	assert.True(t, a.Equal(b), "same category, different causes")

	c := NewError(ErrCheckout, &Cause{Code: 400, Message: "a"})
	assert.False(t, a.Equal(c), "different categories")

	// the unhandled bucket collapses the remaining kinds
	d := NewError(ErrGeneral, nil)
	e := NewError(ErrProductNotExist, nil)
	assert.True(t, d.Equal(e))
}

func TestUpgradeError_DisplayMessage_Basket(t *testing.T) {
	cases := map[int]string{
		400: msgCourseNotFound,
		403: msgAuthError,
		406: msgAlreadyPaid,
		500: msgPaymentNotProcessed,
		0:   msgPaymentNotProcessed,
	}
	for code, want := range cases {
		err := NewError(ErrBasket, &Cause{Code: code})
		assert.Equal(t, want, err.DisplayMessage(), "code %d", code)
	}
}

func TestUpgradeError_DisplayMessage_Checkout(t *testing.T) {
	assert.Equal(t, msgAuthError, NewError(ErrCheckout, &Cause{Code: 403}).DisplayMessage())
	assert.Equal(t, msgPaymentNotProcessed, NewError(ErrCheckout, &Cause{Code: 500}).DisplayMessage())
}

func TestUpgradeError_DisplayMessage_VerifyReceipt(t *testing.T) {
	assert.Equal(t, msgAlreadyPaid, NewError(ErrVerifyReceipt, &Cause{Code: 409}).DisplayMessage())
	assert.Equal(t, msgNotFulfilled, NewError(ErrVerifyReceipt, &Cause{Code: 500}).DisplayMessage())
	assert.Equal(t, msgNotFulfilled, NewError(ErrVerifyReceipt, nil).DisplayMessage())
}

func TestUpgradeError_DisplayMessage_Defaults(t *testing.T) {
	assert.Equal(t, msgPaymentNotProcessed, NewError(ErrPayment, &Cause{Code: 1}).DisplayMessage())
	assert.Equal(t, msgPaymentNotProcessed, NewError(ErrGeneral, nil).DisplayMessage())
	assert.Equal(t, msgPaymentNotProcessed, NewError(ErrPaymentsNotAvailable, nil).DisplayMessage())
}

func TestUpgradeError_IsCancelled(t *testing.T) {
	cancelled := NewError(ErrPayment, &Cause{Code: 2, Cancelled: true})
	assert.True(t, cancelled.IsCancelled())

	assert.False(t, NewError(ErrPayment, &Cause{Code: 2}).IsCancelled())
	assert.False(t, NewError(ErrPayment, nil).IsCancelled())

	// cancellation only exists for payment errors
	assert.False(t, NewError(ErrGeneral, &Cause{Cancelled: true}).IsCancelled())
	assert.False(t, NewError(ErrVerifyReceipt, &Cause{Cancelled: true}).IsCancelled())
}
