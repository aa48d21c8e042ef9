package catalog

// Default contract lists for the gamification domain services. The catalog is
// the union of these per-domain lists; names follow <service>_<method> where
// the method half matches the Go method on the registered service.

func strProp(desc string) *ParameterSchema {
	return &ParameterSchema{Type: TypeString, Description: desc}
}

func intProp(desc string) *ParameterSchema {
	return &ParameterSchema{Type: TypeInteger, Description: desc}
}

func objectOf(props map[string]*ParameterSchema, required ...string) *ParameterSchema {
	return &ParameterSchema{
		Type:       TypeObject,
		Properties: props,
		Required:   required,
	}
}

// listByParams is shared by every listBy operation: an optional field/value
// pair narrowing the listing, empty meaning "list everything".
func listByParams() *ParameterSchema {
	return objectOf(map[string]*ParameterSchema{
		"field": strProp("Field to filter on, e.g. name. Omit to list all."),
		"value": strProp("Value the field must contain."),
	})
}

func uuidParams() *ParameterSchema {
	return objectOf(map[string]*ParameterSchema{
		"uuid": strProp("UUID of the target record."),
	}, "uuid")
}

func MissionContracts() []ToolContract {
	return []ToolContract{
		{
			Name:        "missionService_create",
			Description: "Create a new mission with a name, an optional description, and the number of competing teams.",
			Parameters: objectOf(map[string]*ParameterSchema{
				"name":        strProp("Mission name."),
				"description": strProp("What the mission is about."),
				"team_count":  intProp("Number of teams competing in the mission."),
			}, "name"),
		},
		{
			Name:        "missionService_findByUuid",
			Description: "Fetch a single mission by UUID.",
			Parameters:  uuidParams(),
		},
		{
			Name:        "missionService_listBy",
			Description: "List missions, optionally filtered by a field/value pair. Use this to resolve a mission name to its UUID.",
			Parameters:  listByParams(),
		},
		{
			Name:        "missionService_update",
			Description: "Update a mission's name, description, or team count by UUID.",
			Parameters: objectOf(map[string]*ParameterSchema{
				"uuid":        strProp("UUID of the mission to update."),
				"name":        strProp("New mission name."),
				"description": strProp("New description."),
				"team_count":  intProp("New number of teams."),
			}, "uuid"),
		},
		{
			Name:        "missionService_delete",
			Description: "Delete a mission by UUID. This is a hard remove.",
			Parameters:  uuidParams(),
		},
		{
			Name:        "missionService_count",
			Description: "Count all missions.",
			Parameters:  objectOf(map[string]*ParameterSchema{}),
		},
	}
}

func TeamContracts() []ToolContract {
	return []ToolContract{
		{
			Name:        "teamService_create",
			Description: "Create a team, optionally attached to a mission.",
			Parameters: objectOf(map[string]*ParameterSchema{
				"name":         strProp("Team name."),
				"color":        strProp("Team color label."),
				"mission_uuid": strProp("UUID of the mission the team competes in."),
			}, "name"),
		},
		{
			Name:        "teamService_findByUuid",
			Description: "Fetch a single team by UUID.",
			Parameters:  uuidParams(),
		},
		{
			Name:        "teamService_listBy",
			Description: "List teams, optionally filtered by a field/value pair. Use this to resolve a team name or color to its UUID.",
			Parameters:  listByParams(),
		},
		{
			Name:        "teamService_delete",
			Description: "Delete a team by UUID. This is a hard remove.",
			Parameters:  uuidParams(),
		},
	}
}

func MemberContracts() []ToolContract {
	return []ToolContract{
		{
			Name:        "memberService_create",
			Description: "Register a member, optionally assigned to a team.",
			Parameters: objectOf(map[string]*ParameterSchema{
				"display_name": strProp("Member display name."),
				"team_uuid":    strProp("UUID of the team the member joins."),
			}, "display_name"),
		},
		{
			Name:        "memberService_listBy",
			Description: "List members, optionally filtered by a field/value pair.",
			Parameters:  listByParams(),
		},
		{
			Name:        "memberService_delete",
			Description: "Remove a member by UUID. This is a hard remove.",
			Parameters:  uuidParams(),
		},
	}
}

func BadgeContracts() []ToolContract {
	return []ToolContract{
		{
			Name:        "badgeService_create",
			Description: "Create a badge with an award criteria description.",
			Parameters: objectOf(map[string]*ParameterSchema{
				"name":     strProp("Badge name."),
				"criteria": strProp("What earns the badge."),
			}, "name"),
		},
		{
			Name:        "badgeService_listBy",
			Description: "List badges, optionally filtered by a field/value pair.",
			Parameters:  listByParams(),
		},
	}
}

func ActivityContracts() []ToolContract {
	return []ToolContract{
		{
			Name:        "activityService_create",
			Description: "Record an activity performed by a member within a mission, worth a number of points.",
			Parameters: objectOf(map[string]*ParameterSchema{
				"mission_uuid": strProp("UUID of the mission."),
				"member_uuid":  strProp("UUID of the member who performed the activity."),
				"kind":         strProp("Kind of activity, e.g. checkin, challenge."),
				"points":       intProp("Points awarded."),
			}, "mission_uuid", "member_uuid", "kind"),
		},
		{
			Name:        "activityService_listBy",
			Description: "List activities, optionally filtered by a field/value pair.",
			Parameters:  listByParams(),
		},
	}
}

func PostContracts() []ToolContract {
	return []ToolContract{
		{
			Name:        "postService_create",
			Description: "Publish a post on the team feed.",
			Parameters: objectOf(map[string]*ParameterSchema{
				"body": strProp("Post body."),
			}, "body"),
		},
		{
			Name:        "postService_listBy",
			Description: "List posts, optionally filtered by a field/value pair.",
			Parameters:  listByParams(),
		},
		{
			Name:        "postService_delete",
			Description: "Delete a post by UUID. This is a hard remove.",
			Parameters:  uuidParams(),
		},
	}
}

// Default assembles the full gamification catalog.
func Default() (*Catalog, error) {
	return New(
		MissionContracts(),
		TeamContracts(),
		MemberContracts(),
		BadgeContracts(),
		ActivityContracts(),
		PostContracts(),
	)
}
