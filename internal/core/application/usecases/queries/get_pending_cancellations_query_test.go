package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPendingCancellationsQuery_Valid(t *testing.T) {
	query := queries.NewGetPendingCancellationsQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetPendingCancellationsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPendingCancellationsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPendingCancellationsQueryIsNotConstructed)
}
