package auth

import "brand-portal/internal/models"

// Identity is the resolved caller: user id, role and brand affiliation.
// It is derived from a verified token plus a fresh user row lookup, so a
// deactivated user cannot keep acting on a still-valid token.
type Identity struct {
	UserID  uint
	Role    string
	BrandID *uint
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// BrandMatches reports whether the given brand reference matches the
// caller's affiliation. Two absent brands count as a match.
func (i Identity) BrandMatches(brandID *uint) bool {
	if i.BrandID == nil || brandID == nil {
		return i.BrandID == nil && brandID == nil
	}
	return *i.BrandID == *brandID
}

func IdentityOf(u *models.User) Identity {
	return Identity{UserID: u.ID, Role: u.Role, BrandID: u.BrandID}
}
