package domain

import "time"

type Mission struct {
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TeamCount   int       `json:"team_count"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Team struct {
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Color       string    `json:"color,omitempty"`
	MissionUUID string    `json:"mission_uuid,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Member struct {
	UUID        string    `json:"uuid"`
	DisplayName string    `json:"display_name"`
	TeamUUID    string    `json:"team_uuid,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Badge struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Criteria  string    `json:"criteria,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type Activity struct {
	UUID        string    `json:"uuid"`
	MissionUUID string    `json:"mission_uuid"`
	MemberUUID  string    `json:"member_uuid"`
	Kind        string    `json:"kind"`
	Points      int       `json:"points"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Post struct {
	UUID      string    `json:"uuid"`
	Body      string    `json:"body"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type MissionInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TeamCount   int    `json:"team_count,omitempty"`
}

type TeamInput struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	MissionUUID string `json:"mission_uuid,omitempty"`
}

type MemberInput struct {
	DisplayName string `json:"display_name"`
	TeamUUID    string `json:"team_uuid,omitempty"`
}

type BadgeInput struct {
	Name     string `json:"name"`
	Criteria string `json:"criteria,omitempty"`
}

type ActivityInput struct {
	MissionUUID string `json:"mission_uuid"`
	MemberUUID  string `json:"member_uuid"`
	Kind        string `json:"kind"`
	Points      int    `json:"points,omitempty"`
}

type PostInput struct {
	Body string `json:"body"`
}
