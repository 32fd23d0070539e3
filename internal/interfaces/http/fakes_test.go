package http_test

import (
	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests del paquete http
// ──────────────────────────────────────────────────────────────────────────────

type fakeEmployeeRepo struct {
	byEmpID map[string]*entity.Employee
}

func (r *fakeEmployeeRepo) Create(emp *entity.Employee) error {
	if r.byEmpID == nil {
		r.byEmpID = map[string]*entity.Employee{}
	}
	r.byEmpID[emp.EmpID] = emp
	return nil
}

func (r *fakeEmployeeRepo) GetByEmpID(empID string) (*entity.Employee, error) {
	return r.byEmpID[empID], nil
}

func (r *fakeEmployeeRepo) UpdatePassword(empID, passwordHash string) error {
	if emp, ok := r.byEmpID[empID]; ok {
		emp.PasswordHash = passwordHash
	}
	return nil
}

type fakePartnerRepo struct {
	byUsername map[string]*entity.Partner
}

func (r *fakePartnerRepo) Create(p *entity.Partner) error {
	if r.byUsername == nil {
		r.byUsername = map[string]*entity.Partner{}
	}
	if _, ok := r.byUsername[p.Username]; ok {
		return domain.ErrDuplicateIdentity
	}
	r.byUsername[p.Username] = p
	return nil
}

func (r *fakePartnerRepo) GetByUsername(username string) (*entity.Partner, error) {
	return r.byUsername[username], nil
}

func (r *fakePartnerRepo) GetActiveByUsernameAndRole(username, role string) (*entity.Partner, error) {
	p := r.byUsername[username]
	if p == nil || p.Status != entity.PartnerStatusActive || p.Role != role {
		return nil, nil
	}
	return p, nil
}

func (r *fakePartnerRepo) UpdatePassword(username, passwordHash string) error {
	if p, ok := r.byUsername[username]; ok {
		p.PasswordHash = passwordHash
	}
	return nil
}

type fakeContractorRepo struct {
	byEmail map[string]*entity.Contractor
}

func (r *fakeContractorRepo) Create(c *entity.Contractor) error {
	if r.byEmail == nil {
		r.byEmail = map[string]*entity.Contractor{}
	}
	if _, ok := r.byEmail[c.Email]; ok {
		return domain.ErrDuplicateIdentity
	}
	r.byEmail[c.Email] = c
	return nil
}

func (r *fakeContractorRepo) GetByID(id string) (*entity.Contractor, error) {
	for _, c := range r.byEmail {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeContractorRepo) GetByEmail(email string) (*entity.Contractor, error) {
	return r.byEmail[email], nil
}

func (r *fakeContractorRepo) UpdatePassword(email, passwordHash string) error {
	if c, ok := r.byEmail[email]; ok {
		c.PasswordHash = passwordHash
	}
	return nil
}
