// Package service holds the use cases behind the HTTP API. Services validate
// input, then hand off to the pure planning packages and the repos; they
// depend on interfaces so tests can substitute doubles.
package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/schedule"
)

func validateDates(start, end time.Time) error {
	if start.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if end.IsZero() {
		return fmt.Errorf("%w: end_date is required", domain.ErrValidation)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}

func validatePool(field string, acts []domain.Activity) error {
	if len(acts) > domain.MaxActivitiesPerRequest {
		return fmt.Errorf("%w: %s must hold at most %d items", domain.ErrValidation, field, domain.MaxActivitiesPerRequest)
	}
	for i, a := range acts {
		if err := domain.ValidateActivity(fmt.Sprintf("%s[%d]", field, i), a); err != nil {
			return err
		}
	}
	return nil
}

func validateItinerary(it domain.Itinerary) error {
	if len(it.Days) > schedule.MaxDays {
		return fmt.Errorf("%w: itinerary.days must hold at most %d days", domain.ErrValidation, schedule.MaxDays)
	}
	if n := len(it.Activities()); n > domain.MaxActivitiesPerRequest {
		return fmt.Errorf("%w: itinerary holds %d activities, at most %d allowed", domain.ErrValidation, n, domain.MaxActivitiesPerRequest)
	}
	if it.TotalEmissionKg < 0 || math.IsNaN(it.TotalEmissionKg) {
		return fmt.Errorf("%w: itinerary.total_emission_kg must not be negative", domain.ErrValidation)
	}
	for d, day := range it.Days {
		field := fmt.Sprintf("itinerary.days[%d]", d)
		if err := domain.ValidateHotel(field+".hotel", day.Hotel); err != nil {
			return err
		}
		for i, a := range day.Activities {
			if err := domain.ValidateActivity(fmt.Sprintf("%s.activities[%d]", field, i), a); err != nil {
				return err
			}
		}
		for i, s := range day.Transport {
			if err := domain.ValidateTransport(fmt.Sprintf("%s.transport[%d]", field, i), s); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateCarbonResult(r domain.CarbonResult) error {
	for i, item := range r.Items {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("%w: carbon_result.items[%d].id is required", domain.ErrValidation, i)
		}
		switch item.Type {
		case domain.ItemTransport, domain.ItemActivity, domain.ItemHotel:
		default:
			return fmt.Errorf("%w: carbon_result.items[%d].type %q is not transport, activity or hotel", domain.ErrValidation, i, item.Type)
		}
		if item.EmissionKg < 0 || math.IsNaN(item.EmissionKg) {
			return fmt.Errorf("%w: carbon_result.items[%d].emission_kg must not be negative", domain.ErrValidation, i)
		}
	}
	if r.TotalKg < 0 || math.IsNaN(r.TotalKg) {
		return fmt.Errorf("%w: carbon_result.total_kg must not be negative", domain.ErrValidation)
	}
	return nil
}
