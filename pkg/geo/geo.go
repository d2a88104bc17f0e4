package geo

import (
	"math"

	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

// earthRadiusKm - средний радиус Земли в километрах
const earthRadiusKm = 6371.0

// DistanceKm вычисляет расстояние по дуге большого круга (формула гаверсинусов)
// между двумя координатами. Для совпадающих точек возвращает 0.
func DistanceKm(a, b models.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	// Ограничиваем аргумент, чтобы Sqrt не получил значение чуть больше 1
	// из-за ошибок округления на антиподальных точках
	if h > 1 {
		h = 1
	}

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
