package checkout

import "errors"

var (
	// ErrEmptyCart rejects a checkout with nothing in the snapshot.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")
	// ErrOrderCreation is returned when the initial order insert failed;
	// nothing else was attempted.
	ErrOrderCreation = errors.New("order creation failed")
	// ErrOrderItems is returned when the item insert failed after the
	// order row existed; the compensating delete has already run.
	ErrOrderItems = errors.New("order items creation failed")
	// ErrPaymentSession is returned when the bridge could not create a
	// session; the order stays pending and checkout may be retried.
	ErrPaymentSession = errors.New("payment session creation failed")
	// ErrInvalidSession rejects a reconciliation callback missing its
	// session or order identifier.
	ErrInvalidSession = errors.New("invalid payment session")
	// ErrReconciliation is returned when the paid transition could not
	// be written; the order status is unchanged and the call is safe to
	// repeat.
	ErrReconciliation = errors.New("payment reconciliation failed")
)
