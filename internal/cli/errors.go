package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type adminOnlyError struct {
	memberID string
	action   string
}

func (e adminOnlyError) Error() string {
	return fmt.Sprintf("permission denied: member %s is not an admin (required for %s)", e.memberID, e.action)
}

func errAdminOnly(memberID, action string) error {
	return adminOnlyError{memberID: memberID, action: action}
}
