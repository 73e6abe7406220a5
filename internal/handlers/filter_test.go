package handlers

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-api/internal/models"
)

func TestParseProductFilter(t *testing.T) {
	f, err := ParseProductFilter(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, models.ProductFilter{}, f)

	f, err = ParseProductFilter(url.Values{"status": {" Inactive "}, "startDate": {"2025-01-15"}})
	require.NoError(t, err)
	require.NotNil(t, f.Status)
	assert.Equal(t, models.StatusInactive, *f.Status)
	require.NotNil(t, f.DateFrom)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), *f.DateFrom)
	assert.Nil(t, f.DateTo)

	f, err = ParseProductFilter(url.Values{"endDate": {"2025-02-01T10:00:00Z"}})
	require.NoError(t, err)
	require.NotNil(t, f.DateTo)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), *f.DateTo)
}

func TestParseProductFilter_Rejects(t *testing.T) {
	tests := map[string]url.Values{
		"startDate": {"startDate": {"15/01/2025"}},
		"endDate":   {"endDate": {"tomorrow"}},
		"status":    {"status": {"archived"}},
	}

	for field, query := range tests {
		_, err := ParseProductFilter(query)
		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr, field)
		assert.Equal(t, field, vErr.Field)
	}

	_, err := ParseProductFilter(url.Values{"startDate": {"2025-02-01"}, "endDate": {"2025-01-01"}})
	assert.Error(t, err)
}
