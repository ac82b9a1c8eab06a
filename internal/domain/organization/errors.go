package organization

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNoPrioritySource     = errors.New("no applicability attribute carries an active shift")
)
