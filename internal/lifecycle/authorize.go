package lifecycle

import (
	"github.com/YusovID/bughunt-service/internal/apperrors"
	"github.com/YusovID/bughunt-service/internal/domain"
)

// AuthorizeTriage permits approve, reject and resolve for the project's maintainer and for admins.
func AuthorizeTriage(actor domain.Actor, project *domain.Project) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleMaintainer:
		if project.MaintainerID == actor.UserID {
			return nil
		}
	}

	return &apperrors.RoleMismatchError{UserID: actor.UserID, Role: string(actor.Role), Required: "maintainer of project " + project.ID}
}

// AuthorizeComment permits comments from the reporting tester, the project's maintainer and admins.
func AuthorizeComment(actor domain.Actor, bug *domain.BugReport, project *domain.Project) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleMaintainer:
		if project.MaintainerID == actor.UserID {
			return nil
		}
	case domain.RoleTester:
		if bug.TesterID == actor.UserID {
			return nil
		}
	}

	return &apperrors.RoleMismatchError{UserID: actor.UserID, Role: string(actor.Role), Required: "reporter or project maintainer"}
}

// RequireRole fails unless the actor holds one of roles.
func RequireRole(actor domain.Actor, roles ...domain.Role) error {
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}

	required := ""
	for i, r := range roles {
		if i > 0 {
			required += " or "
		}

		required += string(r)
	}

	return &apperrors.RoleMismatchError{UserID: actor.UserID, Role: string(actor.Role), Required: required}
}
