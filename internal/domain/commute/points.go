package commute

import "github.com/shopspring/decimal"

// Métodos de transporte válidos para un trayecto.
const (
	MethodDroveAlone      = "drove_alone"
	MethodPublicTransport = "public_transport"
	MethodCarpool         = "carpool"
	MethodWorkFromHome    = "work_from_home"
)

// multipliers tabla fija de multiplicadores por método de transporte.
var multipliers = map[string]decimal.Decimal{
	MethodDroveAlone:      decimal.Zero,
	MethodPublicTransport: decimal.NewFromInt(1),
	MethodCarpool:         decimal.RequireFromString("1.5"),
	MethodWorkFromHome:    decimal.NewFromInt(2),
}

// ValidMethod indica si method es uno de los métodos de transporte conocidos.
func ValidMethod(method string) bool {
	_, ok := multipliers[method]
	return ok
}

// Points calcula los puntos de un trayecto ida y vuelta (servicio de dominio).
// Puntos = DistanciaIda * 2 * Multiplicador(método)
// El método debe validarse antes con ValidMethod; uno desconocido devuelve cero.
func Points(oneWayDistance decimal.Decimal, method string) decimal.Decimal {
	mult, ok := multipliers[method]
	if !ok {
		return decimal.Zero
	}
	return oneWayDistance.Mul(decimal.NewFromInt(2)).Mul(mult)
}
