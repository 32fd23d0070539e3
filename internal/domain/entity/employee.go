package entity

import "time"

// Employee representa al personal interno (rol legado). Se autentica por
// emp_id; no pertenece a ninguna empresa externa.
type Employee struct {
	EmpID        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
