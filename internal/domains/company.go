package domains

import "github.com/google/uuid"

type CompanyStatus string

const (
	CompanyActive    CompanyStatus = "ACTIVE"
	CompanySuspended CompanyStatus = "SUSPENDED"
)

type Company struct {
	ID     uuid.UUID
	Name   string
	Status CompanyStatus
}
