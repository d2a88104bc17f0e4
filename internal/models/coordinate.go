package models

// Coordinate - неизменяемая пара географических координат
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
