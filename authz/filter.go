package authz

import (
	"errors"
	"fmt"

	"menuva/models"
)

// ErrForbidden means the principal is authenticated but out of scope or
// missing a permission. Out-of-scope entities always surface as 403, never
// 404, uniformly across endpoints.
var ErrForbidden = errors.New("forbidden")

// Principal is the authenticated caller, built from JWT claims at the API
// boundary and passed explicitly into every check.
type Principal struct {
	UserID       uint
	Role         models.Role
	RestaurantID *uint                // set only for RESTAURATOR
	Permissions  models.PermissionSet // relevant only for RESTAURATOR
}

// HasPermission reports whether the principal holds a permission token.
// Admins implicitly hold every permission; customers hold none.
func (p Principal) HasPermission(token string) bool {
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleRestaurator:
		return p.Permissions.Has(token)
	default:
		return false
	}
}

// Scoped is any restaurant-owned entity subject to visibility rules.
type Scoped interface {
	ScopeRestaurantID() uint
}

// CanAccess decides read/write eligibility for a single entity.
func CanAccess(p Principal, e Scoped) error {
	switch p.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleRestaurator:
		if p.RestaurantID != nil && *p.RestaurantID == e.ScopeRestaurantID() {
			return nil
		}
		return fmt.Errorf("%w: entity belongs to another restaurant", ErrForbidden)
	default:
		return fmt.Errorf("%w: role %s has no privileged access", ErrForbidden, p.Role)
	}
}

// CanMutateOrders combines the scope check with the orders permission token.
func CanMutateOrders(p Principal, e Scoped) error {
	if err := CanAccess(p, e); err != nil {
		return err
	}
	if !p.HasPermission(models.PermOrders) {
		return fmt.Errorf("%w: missing %q permission", ErrForbidden, models.PermOrders)
	}
	return nil
}

// Filter returns the subset of entities the principal may see. Pure: admins
// get the input back, restaurators get exactly their restaurant's entities,
// everyone else gets the empty set.
func Filter[T Scoped](p Principal, entities []T) []T {
	if p.Role == models.RoleAdmin {
		return entities
	}
	out := []T{}
	if p.Role != models.RoleRestaurator || p.RestaurantID == nil {
		return out
	}
	for _, e := range entities {
		if e.ScopeRestaurantID() == *p.RestaurantID {
			out = append(out, e)
		}
	}
	return out
}
