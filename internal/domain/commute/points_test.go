package commute_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecovia/carbon-market-api/internal/domain/commute"
)

// Tabla de la regla: puntos = distancia * 2 * multiplicador(método).
func TestPoints_TablaDeMultiplicadores(t *testing.T) {
	cases := []struct {
		name     string
		distance string
		method   string
		want     string
	}{
		{"manejar solo no genera puntos", "10", commute.MethodDroveAlone, "0"},
		{"transporte público x1", "10", commute.MethodPublicTransport, "20"},
		{"carpool x1.5", "10", commute.MethodCarpool, "30"},
		{"teletrabajo x2", "10", commute.MethodWorkFromHome, "40"},
		{"distancia fraccionaria", "7.25", commute.MethodPublicTransport, "14.5"},
		{"distancia cero", "0", commute.MethodCarpool, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := decimal.RequireFromString(tc.distance)
			got := commute.Points(d, tc.method)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"esperado %s, obtenido %s", tc.want, got)
		})
	}
}

// drove_alone siempre vale cero, sin importar la distancia.
func TestPoints_ManejarSoloSiempreCero(t *testing.T) {
	for _, d := range []string{"0.5", "1", "42", "999.99"} {
		got := commute.Points(decimal.RequireFromString(d), commute.MethodDroveAlone)
		require.True(t, got.IsZero(), "distancia %s debe dar cero puntos", d)
	}
}

func TestPoints_MetodoDesconocidoDevuelveCero(t *testing.T) {
	got := commute.Points(decimal.NewFromInt(10), "teleport")
	assert.True(t, got.IsZero())
}

func TestValidMethod(t *testing.T) {
	assert.True(t, commute.ValidMethod(commute.MethodCarpool))
	assert.True(t, commute.ValidMethod(commute.MethodWorkFromHome))
	assert.False(t, commute.ValidMethod(""))
	assert.False(t, commute.ValidMethod("bicycle"))
}
