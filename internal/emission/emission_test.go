package emission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/emission"
)

func TestTransport_Factors(t *testing.T) {
	cases := []struct {
		mode domain.Mode
		km   float64
		want float64
	}{
		{domain.ModeTrain, 100, 4},
		{domain.ModeBus, 10, 0.8},
		{domain.ModeCar, 10, 2},
		{domain.ModeFerry, 10, 1.2},
		{domain.ModeWalk, 10, 0},
		{domain.ModeFlightShort, 500, 142.5}, // 500 * 0.15 * 1.9
		{domain.Mode("hovercraft"), 10, 2},    // unknown modes cost as car
		{domain.Mode("TRAIN"), 100, 4},
	}
	for _, tc := range cases {
		t.Run(string(tc.mode), func(t *testing.T) {
			assert.InDelta(t, tc.want, emission.Transport(tc.mode, tc.km), 1e-9)
		})
	}
}

func TestTransport_LongHaulSelectedByDistance(t *testing.T) {
	// A leg declared short but 1600 km long still uses the long-haul factor.
	want := 1600 * 0.11 * 1.9
	assert.InDelta(t, want, emission.Transport(domain.ModeFlightShort, 1600), 1e-9)
	assert.InDelta(t, want, emission.Transport(domain.ModeFlightLong, 1600), 1e-9)
	assert.InDelta(t, 1499*0.15*1.9, emission.Transport(domain.ModeFlightLong, 1499), 1e-9)
}

func TestTransport_MonotonicWithinFlightClass(t *testing.T) {
	prev := 0.0
	for km := 0.0; km < 1500; km += 37.5 {
		got := emission.Transport(domain.ModeFlightShort, km)
		assert.GreaterOrEqual(t, got, prev, "short-haul at %v km", km)
		prev = got
	}
	prev = 0
	for km := 1500.0; km < 12000; km += 250 {
		got := emission.Transport(domain.ModeFlightLong, km)
		assert.GreaterOrEqual(t, got, prev, "long-haul at %v km", km)
		prev = got
	}
}

func TestTransport_NonPositiveDistance(t *testing.T) {
	assert.Equal(t, 0.0, emission.Transport(domain.ModeCar, 0))
	assert.Equal(t, 0.0, emission.Transport(domain.ModeCar, -5))
}

func TestActivity(t *testing.T) {
	assert.Equal(t, 2.5, emission.Activity("museum"))
	assert.Equal(t, 18.0, emission.Activity("  SKI "))
	assert.Equal(t, 0.8, emission.Activity("Beach"))
	assert.Equal(t, emission.DefaultActivityKg, emission.Activity("opera"))
}

func TestHotelNightForStars(t *testing.T) {
	assert.Equal(t, 15.0, emission.HotelNightForStars(5))
	assert.Equal(t, 13.0, emission.HotelNightForStars(4))
	assert.Equal(t, 11.0, emission.HotelNightForStars(3))
	assert.Equal(t, 9.0, emission.HotelNightForStars(2))
	assert.Equal(t, 8.0, emission.HotelNightForStars(1))
	assert.Equal(t, 15.0, emission.HotelNightForStars(0))
	assert.Equal(t, 15.0, emission.HotelNight())
}

func TestEstimate(t *testing.T) {
	km := 1600.0
	assert.InDelta(t, 334.4, emission.Estimate("flight_short", &km), 1e-9)
	assert.Equal(t, 4.0, emission.Estimate("restaurant", nil))
	assert.Equal(t, 3.0, emission.Estimate("unknown", nil))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.235, emission.Round(1.23456, 3))
	assert.Equal(t, 0.17, emission.Round(0.1666, 2))
	assert.Equal(t, 2.0, emission.Clamp(5, 0, 2))
	assert.Equal(t, 0.0, emission.Clamp(-1, 0, 2))
}
