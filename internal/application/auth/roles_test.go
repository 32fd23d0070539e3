package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildlink/marketplace-api/internal/application/auth"
	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// ResolveRoleLabel — mapa cerrado y bilingüe de etiquetas de rol
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveRoleLabel_MapaCompleto(t *testing.T) {
	cases := []struct {
		label       string
		wantKind    entity.PrincipalKind
		wantPartner string
	}{
		{"員工", entity.KindEmployee, ""},
		{"employee", entity.KindEmployee, ""},
		{"Contractor", entity.KindPartner, entity.PartnerRoleContractor},
		{"Supplier", entity.KindPartner, entity.PartnerRoleSupplier},
		{"承包商", entity.KindContractor, ""},
		{"contractor", entity.KindContractor, ""},
	}
	for _, tc := range cases {
		kind, partnerRole, err := auth.ResolveRoleLabel(tc.label)
		require.NoError(t, err, "etiqueta %q", tc.label)
		assert.Equal(t, tc.wantKind, kind, "etiqueta %q", tc.label)
		assert.Equal(t, tc.wantPartner, partnerRole, "etiqueta %q", tc.label)
	}
}

// "Contractor" con mayúscula es el rol del partner legado; "contractor" en
// minúscula es la cuenta nueva del marketplace. La distinción importa.
func TestResolveRoleLabel_MayusculaDistingueLegadoDeMarketplace(t *testing.T) {
	kind, partnerRole, err := auth.ResolveRoleLabel("Contractor")
	require.NoError(t, err)
	assert.Equal(t, entity.KindPartner, kind)
	assert.Equal(t, entity.PartnerRoleContractor, partnerRole)

	kind, partnerRole, err = auth.ResolveRoleLabel("contractor")
	require.NoError(t, err)
	assert.Equal(t, entity.KindContractor, kind)
	assert.Empty(t, partnerRole)
}

// Espacios y formas de compatibilidad Unicode se normalizan antes de mapear.
func TestResolveRoleLabel_NormalizaEspaciosYCompatibilidad(t *testing.T) {
	kind, _, err := auth.ResolveRoleLabel("  員工  ")
	require.NoError(t, err)
	assert.Equal(t, entity.KindEmployee, kind)

	// "Ｓｕｐｐｌｉｅｒ" en fullwidth se pliega a "Supplier" por NFKC.
	kind, partnerRole, err := auth.ResolveRoleLabel("Ｓｕｐｐｌｉｅｒ")
	require.NoError(t, err)
	assert.Equal(t, entity.KindPartner, kind)
	assert.Equal(t, entity.PartnerRoleSupplier, partnerRole)
}

// Cualquier etiqueta fuera del mapa es ErrInvalidRole, sin default.
func TestResolveRoleLabel_EtiquetaDesconocida(t *testing.T) {
	for _, label := range []string{"", "admin", "SUPPLIER", "員", "supplier"} {
		_, _, err := auth.ResolveRoleLabel(label)
		assert.ErrorIs(t, err, domain.ErrInvalidRole, "etiqueta %q", label)
	}
}
