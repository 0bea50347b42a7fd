package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/taskdesk/taskdesk/pkg/constants"
)

var ErrNoActor = errors.New("no actor found in context")

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

func ParseRole(v string) (Role, bool) {
	switch Role(v) {
	case RoleAdmin, RoleWorker:
		return Role(v), true
	default:
		return "", false
	}
}

// Actor is the caller identity extracted from the externally verified claim.
// Issuance and verification belong to the auth collaborator; by the time a
// request reaches this service the claim is a plain {id, role} pair.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, constants.ActorKey, actor)
}

func UseActor(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(constants.ActorKey).(Actor)
	if !ok {
		return Actor{}, ErrNoActor
	}
	return actor, nil
}
