package operator

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role controls access to the administrative fulfillment endpoints.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

func NewRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleOperator, RoleViewer:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}
