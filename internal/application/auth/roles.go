package auth

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
)

// ResolveRoleLabel traduce la etiqueta de rol del formulario de login a una
// variante de principal. El mapa es cerrado y total: las formas bilingües que
// aceptaba el sistema histórico están enumeradas y cualquier otra etiqueta es
// ErrInvalidRole, nunca un default silencioso. Las formas "Contractor" y
// "Supplier" (con mayúscula) son los roles del esquema legado de partners;
// "contractor" en minúscula es la cuenta del marketplace nuevo.
func ResolveRoleLabel(label string) (kind entity.PrincipalKind, partnerRole string, err error) {
	normalized := strings.TrimSpace(norm.NFKC.String(label))
	switch normalized {
	case "員工", "employee":
		return entity.KindEmployee, "", nil
	case entity.PartnerRoleContractor:
		return entity.KindPartner, entity.PartnerRoleContractor, nil
	case entity.PartnerRoleSupplier:
		return entity.KindPartner, entity.PartnerRoleSupplier, nil
	case "承包商", "contractor":
		return entity.KindContractor, "", nil
	default:
		return "", "", domain.ErrInvalidRole
	}
}
