package orders_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildlink/marketplace-api/internal/application/orders"
	"github.com/buildlink/marketplace-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// ParseCart — formato de wire del carrito
// ──────────────────────────────────────────────────────────────────────────────

func TestParseCart_FormatoLegado(t *testing.T) {
	items, err := orders.ParseCart(`[{"id":"m-1","qty":2,"price":50},{"id":"m-2","qty":3,"price":50}]`)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "m-1", items[0].MaterialID)
	assert.True(t, items[0].Qty.Equal(decimal.NewFromInt(2)))
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(50)))
}

func TestParseCart_PreciosDecimales(t *testing.T) {
	items, err := orders.ParseCart(`[{"id":"m-1","qty":"2.5","price":"10.40"}]`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("10.40")))
}

func TestParseCart_VacioOSoloEspacios_EsFormatoInvalido(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		_, err := orders.ParseCart(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidCartFormat, "payload %q", raw)
	}
}

func TestParseCart_JSONInvalido(t *testing.T) {
	for _, raw := range []string{"{", "no-es-json", `{"id":"m-1"}`, `[{"id":`} {
		_, err := orders.ParseCart(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidCartFormat, "payload %q", raw)
	}
}

// Un carrito parseable pero sin líneas es un caso distinto al malformado.
func TestParseCart_ListaVacia_EsCarritoVacio(t *testing.T) {
	_, err := orders.ParseCart(`[]`)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestParseCart_LineasInvalidas(t *testing.T) {
	cases := map[string]string{
		"sin material":    `[{"id":"","qty":1,"price":10}]`,
		"qty cero":        `[{"id":"m-1","qty":0,"price":10}]`,
		"qty negativa":    `[{"id":"m-1","qty":-2,"price":10}]`,
		"precio negativo": `[{"id":"m-1","qty":1,"price":-10}]`,
	}
	for name, raw := range cases {
		_, err := orders.ParseCart(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidCartFormat, name)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CartTotal — el total siempre lo calcula el servidor
// ──────────────────────────────────────────────────────────────────────────────

func TestCartTotal_SumaQtyPorPrecio(t *testing.T) {
	items, err := orders.ParseCart(`[{"id":"m-1","qty":2,"price":50},{"id":"m-2","qty":3,"price":50}]`)
	require.NoError(t, err)

	total := orders.CartTotal(items)
	assert.True(t, total.Equal(decimal.NewFromInt(250)), "2×50 + 3×50 = 250, obtenido %s", total)
}

func TestCartTotal_SinPerdidaDecimal(t *testing.T) {
	items, err := orders.ParseCart(`[{"id":"m-1","qty":"3","price":"0.10"}]`)
	require.NoError(t, err)

	total := orders.CartTotal(items)
	assert.True(t, total.Equal(decimal.RequireFromString("0.30")), "obtenido %s", total)
}
