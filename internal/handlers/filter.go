package handlers

import (
	"net/url"
	"strings"

	"catalog-api/internal/models"
)

// ParseProductFilter builds the list filter from the optional status,
// startDate and endDate query parameters.
func ParseProductFilter(query url.Values) (models.ProductFilter, error) {
	var filter models.ProductFilter

	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status := models.NormalizeStatus(raw)
		filter.Status = &status
	}

	if raw := strings.TrimSpace(query.Get("startDate")); raw != "" {
		from, err := models.ParseDate(raw)
		if err != nil {
			return models.ProductFilter{}, &models.ValidationError{Field: "startDate", Message: "startDate: " + err.Error()}
		}
		filter.DateFrom = &from
	}

	if raw := strings.TrimSpace(query.Get("endDate")); raw != "" {
		to, err := models.ParseDate(raw)
		if err != nil {
			return models.ProductFilter{}, &models.ValidationError{Field: "endDate", Message: "endDate: " + err.Error()}
		}
		filter.DateTo = &to
	}

	if err := filter.Validate(); err != nil {
		return models.ProductFilter{}, err
	}
	return filter, nil
}
