package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderPending, OrderPreparing, true},
		{OrderPending, OrderCancelled, true},
		{OrderPreparing, OrderReady, true},
		{OrderPreparing, OrderCancelled, true},
		{OrderReady, OrderServed, true},
		{OrderReady, OrderCancelled, true},
		{OrderPending, OrderReady, false},
		{OrderPending, OrderServed, false},
		{OrderServed, OrderPending, false},
		{OrderServed, OrderCancelled, false},
		{OrderCancelled, OrderPreparing, false},
		{OrderPreparing, OrderPreparing, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderServed.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderPending.Terminal())
	assert.False(t, OrderPreparing.Terminal())
	assert.False(t, OrderReady.Terminal())
}

func TestParseOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus("preparing")
	assert.NoError(t, err)
	assert.Equal(t, OrderPreparing, st)

	_, err = ParseOrderStatus("on_fire")
	assert.Error(t, err)
}

func TestInvalidTransitionError(t *testing.T) {
	err := &InvalidTransitionError{From: OrderServed, To: OrderPending}
	assert.Equal(t, "invalid order transition served -> pending", err.Error())
}
