package dispatch

import (
	"context"
	"strings"

	domainx "github.com/questline/questline-agent/domain"
)

// NewGamificationHandlers binds every tool contract in the default catalog to
// its typed domain-service method. Arguments arrive schema-validated, so the
// extractors here only deal with presence and JSON number widening.
func NewGamificationHandlers(reg *domainx.Registry) map[string]Handler {
	return map[string]Handler{
		"missionService_create": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Missions.Create(ctx, actor, domainx.MissionInput{
				Name:        stringArg(args, "name"),
				Description: stringArg(args, "description"),
				TeamCount:   intArg(args, "team_count"),
			})
		},
		"missionService_findByUuid": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Missions.FindByUuid(ctx, stringArg(args, "uuid"))
		},
		"missionService_listBy": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Missions.ListBy(ctx, stringArg(args, "field"), stringArg(args, "value"))
		},
		"missionService_update": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Missions.Update(ctx, actor, stringArg(args, "uuid"), domainx.MissionInput{
				Name:        stringArg(args, "name"),
				Description: stringArg(args, "description"),
				TeamCount:   intArg(args, "team_count"),
			})
		},
		"missionService_delete": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return deleted(reg.Missions.Delete(ctx, actor, stringArg(args, "uuid")))
		},
		"missionService_count": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Missions.Count(ctx)
		},

		"teamService_create": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Teams.Create(ctx, actor, domainx.TeamInput{
				Name:        stringArg(args, "name"),
				Color:       stringArg(args, "color"),
				MissionUUID: stringArg(args, "mission_uuid"),
			})
		},
		"teamService_findByUuid": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Teams.FindByUuid(ctx, stringArg(args, "uuid"))
		},
		"teamService_listBy": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Teams.ListBy(ctx, stringArg(args, "field"), stringArg(args, "value"))
		},
		"teamService_delete": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return deleted(reg.Teams.Delete(ctx, actor, stringArg(args, "uuid")))
		},

		"memberService_create": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Members.Create(ctx, actor, domainx.MemberInput{
				DisplayName: stringArg(args, "display_name"),
				TeamUUID:    stringArg(args, "team_uuid"),
			})
		},
		"memberService_listBy": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Members.ListBy(ctx, stringArg(args, "field"), stringArg(args, "value"))
		},
		"memberService_delete": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return deleted(reg.Members.Delete(ctx, actor, stringArg(args, "uuid")))
		},

		"badgeService_create": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Badges.Create(ctx, actor, domainx.BadgeInput{
				Name:     stringArg(args, "name"),
				Criteria: stringArg(args, "criteria"),
			})
		},
		"badgeService_listBy": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Badges.ListBy(ctx, stringArg(args, "field"), stringArg(args, "value"))
		},

		"activityService_create": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Activities.Create(ctx, actor, domainx.ActivityInput{
				MissionUUID: stringArg(args, "mission_uuid"),
				MemberUUID:  stringArg(args, "member_uuid"),
				Kind:        stringArg(args, "kind"),
				Points:      intArg(args, "points"),
			})
		},
		"activityService_listBy": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Activities.ListBy(ctx, stringArg(args, "field"), stringArg(args, "value"))
		},

		"postService_create": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Posts.Create(ctx, actor, domainx.PostInput{
				Body: stringArg(args, "body"),
			})
		},
		"postService_listBy": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return reg.Posts.ListBy(ctx, stringArg(args, "field"), stringArg(args, "value"))
		},
		"postService_delete": func(ctx context.Context, actor string, args map[string]any) (any, error) {
			return deleted(reg.Posts.Delete(ctx, actor, stringArg(args, "uuid")))
		},
	}
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return strings.TrimSpace(v)
}

func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

type deleteResult struct {
	Deleted bool `json:"deleted"`
}

func deleted(err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return deleteResult{Deleted: true}, nil
}
