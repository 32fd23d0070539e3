package entity

// PrincipalKind identifica la variante de identidad autenticada. Una sesión
// lleva exactamente una variante a la vez (exclusividad de identidad).
type PrincipalKind string

const (
	KindEmployee   PrincipalKind = "employee"
	KindPartner    PrincipalKind = "partner"
	KindContractor PrincipalKind = "contractor"
)

// Valid reporta si la variante es una de las tres reconocidas.
func (k PrincipalKind) Valid() bool {
	switch k {
	case KindEmployee, KindPartner, KindContractor:
		return true
	}
	return false
}

// HomePath devuelve la superficie de aterrizaje propia de cada variante.
// Acceder a la superficie de otra variante con un token válido redirige
// aquí, nunca falla.
func (k PrincipalKind) HomePath() string {
	switch k {
	case KindEmployee:
		return "/"
	case KindPartner:
		return "/partner/home"
	case KindContractor:
		return "/contractor/dashboard"
	}
	return "/login"
}

// Principal es la unión etiquetada del registro completo de la identidad.
// Exactamente uno de los punteros es no-nulo según Kind. Se resuelve con una
// consulta fresca por request; el token guarda solo la clave natural.
type Principal struct {
	Kind       PrincipalKind
	Employee   *Employee
	Partner    *Partner
	Contractor *Contractor
}

// Key devuelve la clave natural de la variante activa.
func (p *Principal) Key() string {
	switch p.Kind {
	case KindEmployee:
		if p.Employee != nil {
			return p.Employee.EmpID
		}
	case KindPartner:
		if p.Partner != nil {
			return p.Partner.Username
		}
	case KindContractor:
		if p.Contractor != nil {
			return p.Contractor.Email
		}
	}
	return ""
}

// DisplayName devuelve el nombre para la superficie de la variante activa.
func (p *Principal) DisplayName() string {
	switch p.Kind {
	case KindEmployee:
		if p.Employee != nil {
			return p.Employee.Name
		}
	case KindPartner:
		if p.Partner != nil {
			return p.Partner.CompanyName
		}
	case KindContractor:
		if p.Contractor != nil {
			return p.Contractor.Name
		}
	}
	return ""
}
