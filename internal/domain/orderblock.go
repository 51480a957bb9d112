package domain

import "time"

// Bias es el sesgo direccional resuelto de un order block, o el voto de uno de
// los métodos de resolución.
type Bias string

const (
	BiasBullish Bias = "bullish"
	BiasBearish Bias = "bearish"
	// BiasNone es la abstención de un método de votación sin señal.
	BiasNone Bias = ""
)

// OrderBlock es la vela que origina un patrón de desequilibrio de tres velas
// adyacente a un fractal, tratada como zona de interés direccional.
// Invariante: Candle es la primera vela de Imbalance.
type OrderBlock struct {
	Symbol    string
	Candle    Bar     // vela que forma el bloque
	Fractal   Fractal // fractal al que está asociado
	Imbalance [3]Bar  // triple de desequilibrio que la vela encabeza
	Bias      Bias
	Upper     float64 // límite superior: high de la vela
	Lower     float64 // límite inferior: low de la vela
	FormedAt  time.Time
}

// Size devuelve la amplitud del bloque.
func (ob OrderBlock) Size() float64 {
	return ob.Upper - ob.Lower
}

// Center devuelve el precio central del bloque.
func (ob OrderBlock) Center() float64 {
	return (ob.Upper + ob.Lower) / 2.0
}

// Volume devuelve el volumen de la vela que forma el bloque.
func (ob OrderBlock) Volume() float64 {
	return ob.Candle.Volume
}

// Contains informa si un precio cae dentro de los límites del bloque.
func (ob OrderBlock) Contains(price float64) bool {
	return price >= ob.Lower && price <= ob.Upper
}

// DistanceTo devuelve la distancia de un precio al borde más cercano del
// bloque; 0 si el precio está dentro.
func (ob OrderBlock) DistanceTo(price float64) float64 {
	switch {
	case price > ob.Upper:
		return price - ob.Upper
	case price < ob.Lower:
		return ob.Lower - price
	default:
		return 0
	}
}
