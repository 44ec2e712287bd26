// Package policy is the single access-policy component: every mutating
// operation consults these capability predicates instead of branching on
// roles ad hoc per endpoint.
package policy

import "github.com/Dashulik10/Hostel-Organization/internal/model"

// Principal is the authenticated caller as seen by the access policy.
type Principal struct {
	UserID uint
	Role   string
}

// IsWorker reports whether the principal holds the worker capability.
func IsWorker(p *Principal) bool {
	return p != nil && p.Role == model.RoleWorker
}

// IsStudent reports whether the principal holds the student capability.
func IsStudent(p *Principal) bool {
	return p != nil && p.Role == model.RoleStudent
}
