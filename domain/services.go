package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

// Service contracts the dispatcher binds tool handlers to. Method names match
// the <method> half of the tool names in the contract catalog. Every mutating
// call carries the acting user for authorship attribution.

type MissionService interface {
	Create(ctx context.Context, actor string, in MissionInput) (*Mission, error)
	FindByUuid(ctx context.Context, uuid string) (*Mission, error)
	ListBy(ctx context.Context, field, value string) ([]*Mission, error)
	Update(ctx context.Context, actor string, uuid string, in MissionInput) (*Mission, error)
	Delete(ctx context.Context, actor string, uuid string) error
	Count(ctx context.Context) (int, error)
}

type TeamService interface {
	Create(ctx context.Context, actor string, in TeamInput) (*Team, error)
	FindByUuid(ctx context.Context, uuid string) (*Team, error)
	ListBy(ctx context.Context, field, value string) ([]*Team, error)
	Delete(ctx context.Context, actor string, uuid string) error
}

type MemberService interface {
	Create(ctx context.Context, actor string, in MemberInput) (*Member, error)
	ListBy(ctx context.Context, field, value string) ([]*Member, error)
	Delete(ctx context.Context, actor string, uuid string) error
}

type BadgeService interface {
	Create(ctx context.Context, actor string, in BadgeInput) (*Badge, error)
	ListBy(ctx context.Context, field, value string) ([]*Badge, error)
}

type ActivityService interface {
	Create(ctx context.Context, actor string, in ActivityInput) (*Activity, error)
	ListBy(ctx context.Context, field, value string) ([]*Activity, error)
}

type PostService interface {
	Create(ctx context.Context, actor string, in PostInput) (*Post, error)
	ListBy(ctx context.Context, field, value string) ([]*Post, error)
	Delete(ctx context.Context, actor string, uuid string) error
}

// Registry groups the live services the dispatcher invokes against.
type Registry struct {
	Missions   MissionService
	Teams      TeamService
	Members    MemberService
	Badges     BadgeService
	Activities ActivityService
	Posts      PostService
}

// NewInMemoryRegistry wires a registry backed entirely by in-process state.
func NewInMemoryRegistry() *Registry {
	return &Registry{
		Missions:   NewInMemoryMissions(),
		Teams:      NewInMemoryTeams(),
		Members:    NewInMemoryMembers(),
		Badges:     NewInMemoryBadges(),
		Activities: NewInMemoryActivities(),
		Posts:      NewInMemoryPosts(),
	}
}
