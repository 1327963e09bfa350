package domains

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category decides which staffing rules apply to a team.
type Category string

const (
	CategoryStandard Category = "STANDARD"
	// CategoryRegulated teams must keep at least one qualified individual
	// among the owner and members at all times.
	CategoryRegulated Category = "REGULATED"
)

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryStandard, CategoryRegulated:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown team category %q", s)
	}
}

type Team struct {
	ID        uuid.UUID
	CompanyID uuid.UUID // immutable once set
	Name      string    // unique within the company
	OwnerID   uuid.UUID
	Category  Category
	Active    bool
	CreatedAt time.Time
}

// Membership joins a team with a user who is not that team's owner.
type Membership struct {
	TeamID  uuid.UUID
	UserID  uuid.UUID
	AddedBy uuid.UUID
	AddedAt time.Time
}
