package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/replydesk/internal/domain"
)

func TestOrderServiceList(t *testing.T) {
	svc := NewOrderService()

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, len(orderStatuses))

	all[0].Customer = "mutated"
	again, err := svc.List("")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0].Customer)

	shipped, err := svc.List(" Shipped ")
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	assert.Equal(t, "10234", shipped[0].OrderID)
	assert.Equal(t, domain.OrderShipped, shipped[0].Status)

	_, err = svc.List("lost")
	assert.ErrorIs(t, err, ErrInvalidOrderState)
}

func TestOrderServiceGet(t *testing.T) {
	svc := NewOrderService()

	o, err := svc.Get("#10234")
	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", o.Customer)

	_, err = svc.Get("99999")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
