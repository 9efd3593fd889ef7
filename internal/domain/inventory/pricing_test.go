package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSalePrice(t *testing.T) {
	cases := []struct {
		name   string
		costo  string
		margen string
		want   string
	}{
		{"margen entero", "5.00", "30", "6.50"},
		{"sin margen", "12.34", "0", "12.34"},
		{"redondeo half-up", "3.33", "15", "3.83"}, // 3.8295
		{"margen decimal", "1000", "12.5", "1125.00"},
		{"tercio", "0.10", "33.333", "0.13"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.SalePrice(d(tc.costo), d(tc.margen))
			assert.True(t, d(tc.want).Equal(got), "esperado %s, obtenido %s", tc.want, got)
		})
	}
}

func TestValidEntry(t *testing.T) {
	assert.True(t, inventory.ValidEntry(10, d("5.0")))
	assert.False(t, inventory.ValidEntry(0, d("5.0")))
	assert.False(t, inventory.ValidEntry(3, decimal.Zero))
	assert.False(t, inventory.ValidEntry(-1, d("1")))
}

func TestLineTotal_NoRedondea(t *testing.T) {
	got := inventory.LineTotal(d("0.335"), 3)
	assert.True(t, d("1.005").Equal(got))
}
