package geo

import "math"

// Coordinate is an immutable latitude/longitude pair in decimal degrees.
// Range validation happens at the request boundary, not here.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Site is the reference office location with its allowed check-in radius.
// Injected from configuration at startup, read-only afterwards.
type Site struct {
	Center       Coordinate
	RadiusMeters float64
}

// DistanceMeters menghitung jarak antara dua titik koordinat dalam Meter.
func DistanceMeters(a, b Coordinate) float64 {
	const earthRadius = 6371000 // Jari-jari bumi dalam Meter

	// Konversi ke Radian
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	// Rumus Haversine
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadius * c
}

// WithinRadius reports whether an already-measured distance falls inside
// the site's allowed radius.
func (s Site) WithinRadius(distanceMeters float64) bool {
	return distanceMeters <= s.RadiusMeters
}

// Contains reports whether p falls inside the site's allowed radius.
func (s Site) Contains(p Coordinate) bool {
	return s.WithinRadius(DistanceMeters(p, s.Center))
}
