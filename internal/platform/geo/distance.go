package geo

import "math"

// EarthRadiusKm es el radio medio usado por la fórmula de haversine.
const EarthRadiusKm = 6371.0

// Point es una coordenada en grados decimales.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKm devuelve la distancia de gran círculo entre dos puntos, en km.
// No valida entradas: el caller debe pasar números finitos.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	// el redondeo puede dejar a apenas fuera de [0,1] en puntos casi antípodas
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Between es un atajo sobre DistanceKm para dos Point.
func Between(a, b Point) float64 {
	return DistanceKm(a.Lat, a.Lng, b.Lat, b.Lng)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
