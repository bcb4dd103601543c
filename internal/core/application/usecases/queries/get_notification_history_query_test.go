package queries_test

import (
	"testing"
	"time"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetNotificationHistoryQuery_Valid(t *testing.T) {
	query, err := queries.NewGetNotificationHistoryQuery(2, 50, queries.HistoryFilter{
		Status:      "failed",
		MessageType: "status_change",
		Phone:       "+919876543210",
	})
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, 2, query.Page())
	assert.Equal(t, 50, query.PageSize())
}

func TestNewGetNotificationHistoryQuery_NormalizesPaging(t *testing.T) {
	query, err := queries.NewGetNotificationHistoryQuery(0, 0, queries.HistoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, query.Page())
	assert.Equal(t, 20, query.PageSize())

	query, err = queries.NewGetNotificationHistoryQuery(1, 1000, queries.HistoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 100, query.PageSize())
}

func TestNewGetNotificationHistoryQuery_RejectsUnknownStatus(t *testing.T) {
	_, err := queries.NewGetNotificationHistoryQuery(1, 20, queries.HistoryFilter{Status: "delivered"})
	require.Error(t, err)
}

func TestNewGetNotificationHistoryQuery_RejectsUnknownType(t *testing.T) {
	_, err := queries.NewGetNotificationHistoryQuery(1, 20, queries.HistoryFilter{MessageType: "newsletter"})
	require.Error(t, err)
}

func TestNewGetNotificationHistoryQuery_RejectsEmptyCustomerID(t *testing.T) {
	customerID := kernel.UUID{}
	_, err := queries.NewGetNotificationHistoryQuery(1, 20, queries.HistoryFilter{CustomerID: &customerID})
	require.Error(t, err)
}

func TestNewGetNotificationHistoryQuery_RejectsInvertedDateRange(t *testing.T) {
	from := time.Now()
	to := from.Add(-time.Hour)
	_, err := queries.NewGetNotificationHistoryQuery(1, 20, queries.HistoryFilter{From: &from, To: &to})
	require.Error(t, err)
}

func TestGetNotificationHistoryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetNotificationHistoryQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetNotificationHistoryQueryIsNotConstructed)
}
