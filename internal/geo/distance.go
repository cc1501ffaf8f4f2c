// Package geo holds the distance utility and the small amount of geometry the
// planner needs. Points are converted to orb types at the edges so bounds and
// GeoJSON come from paulmach/orb.
package geo

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/pkordes/greenroute/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by every distance in the planner.
// orb/geo uses the equatorial radius, so Distance does not delegate to it.
const EarthRadiusKm = 6371.0

// Distance returns the haversine great-circle distance between a and b in km.
// Invalid coordinates (out of range, NaN) yield 0.
func Distance(a, b domain.GeoPoint) float64 {
	if !a.Valid() || !b.Valid() {
		return 0
	}
	return haversine(Point(a), Point(b))
}

func haversine(a, b orb.Point) float64 {
	lat1 := deg2rad(a.Lat())
	lat2 := deg2rad(b.Lat())
	dLat := lat2 - lat1
	dLng := deg2rad(b.Lon() - a.Lon())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}

// Point converts a GeoPoint to an orb.Point (lng, lat order).
func Point(p domain.GeoPoint) orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// Bound returns the bounding box of the valid points, or an empty bound at the
// origin when none are valid.
func Bound(points ...domain.GeoPoint) orb.Bound {
	var mp orb.MultiPoint
	for _, p := range points {
		if p.Valid() {
			mp = append(mp, Point(p))
		}
	}
	if len(mp) == 0 {
		return orb.Bound{}
	}
	return mp.Bound()
}
