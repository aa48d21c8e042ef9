package domain

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// In-memory reference implementations. Safe for concurrent conversations;
// each service guards its own map.

var (
	_ MissionService  = (*InMemoryMissions)(nil)
	_ TeamService     = (*InMemoryTeams)(nil)
	_ MemberService   = (*InMemoryMembers)(nil)
	_ BadgeService    = (*InMemoryBadges)(nil)
	_ ActivityService = (*InMemoryActivities)(nil)
	_ PostService     = (*InMemoryPosts)(nil)
)

func fieldMatch(field, value string, fields map[string]string) bool {
	if strings.TrimSpace(field) == "" {
		return true
	}
	candidate, ok := fields[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(candidate), strings.ToLower(strings.TrimSpace(value)))
}

/* -------------------------------- missions ------------------------------- */

type InMemoryMissions struct {
	mu    sync.RWMutex
	items map[string]*Mission
}

func NewInMemoryMissions() *InMemoryMissions {
	return &InMemoryMissions{items: make(map[string]*Mission)}
}

func (s *InMemoryMissions) Create(ctx context.Context, actor string, in MissionInput) (*Mission, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("mission name is required")
	}

	m := &Mission{
		UUID:        uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		TeamCount:   in.TeamCount,
		CreatedBy:   actor,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[m.UUID] = m
	return cloneMission(m), nil
}

func (s *InMemoryMissions) FindByUuid(ctx context.Context, id string) (*Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: mission %s", ErrNotFound, id)
	}
	return cloneMission(m), nil
}

func (s *InMemoryMissions) ListBy(ctx context.Context, field, value string) ([]*Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Mission, 0, len(s.items))
	for _, m := range s.items {
		if fieldMatch(field, value, map[string]string{
			"name":        m.Name,
			"description": m.Description,
			"team_count":  strconv.Itoa(m.TeamCount),
		}) {
			out = append(out, cloneMission(m))
		}
	}
	sortByCreated(out, func(m *Mission) time.Time { return m.CreatedAt })
	return out, nil
}

func (s *InMemoryMissions) Update(ctx context.Context, actor string, id string, in MissionInput) (*Mission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: mission %s", ErrNotFound, id)
	}
	if strings.TrimSpace(in.Name) != "" {
		m.Name = strings.TrimSpace(in.Name)
	}
	if strings.TrimSpace(in.Description) != "" {
		m.Description = strings.TrimSpace(in.Description)
	}
	if in.TeamCount > 0 {
		m.TeamCount = in.TeamCount
	}
	return cloneMission(m), nil
}

func (s *InMemoryMissions) Delete(ctx context.Context, actor string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: mission %s", ErrNotFound, id)
	}
	delete(s.items, id)
	return nil
}

func (s *InMemoryMissions) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

/* --------------------------------- teams --------------------------------- */

type InMemoryTeams struct {
	mu    sync.RWMutex
	items map[string]*Team
}

func NewInMemoryTeams() *InMemoryTeams {
	return &InMemoryTeams{items: make(map[string]*Team)}
}

func (s *InMemoryTeams) Create(ctx context.Context, actor string, in TeamInput) (*Team, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("team name is required")
	}

	t := &Team{
		UUID:        uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Color:       strings.TrimSpace(in.Color),
		MissionUUID: strings.TrimSpace(in.MissionUUID),
		CreatedBy:   actor,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[t.UUID] = t
	out := *t
	return &out, nil
}

func (s *InMemoryTeams) FindByUuid(ctx context.Context, id string) (*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: team %s", ErrNotFound, id)
	}
	out := *t
	return &out, nil
}

func (s *InMemoryTeams) ListBy(ctx context.Context, field, value string) ([]*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Team, 0, len(s.items))
	for _, t := range s.items {
		if fieldMatch(field, value, map[string]string{
			"name":         t.Name,
			"color":        t.Color,
			"mission_uuid": t.MissionUUID,
		}) {
			copied := *t
			out = append(out, &copied)
		}
	}
	sortByCreated(out, func(t *Team) time.Time { return t.CreatedAt })
	return out, nil
}

func (s *InMemoryTeams) Delete(ctx context.Context, actor string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: team %s", ErrNotFound, id)
	}
	delete(s.items, id)
	return nil
}

/* -------------------------------- members -------------------------------- */

type InMemoryMembers struct {
	mu    sync.RWMutex
	items map[string]*Member
}

func NewInMemoryMembers() *InMemoryMembers {
	return &InMemoryMembers{items: make(map[string]*Member)}
}

func (s *InMemoryMembers) Create(ctx context.Context, actor string, in MemberInput) (*Member, error) {
	if strings.TrimSpace(in.DisplayName) == "" {
		return nil, fmt.Errorf("member display name is required")
	}

	m := &Member{
		UUID:        uuid.NewString(),
		DisplayName: strings.TrimSpace(in.DisplayName),
		TeamUUID:    strings.TrimSpace(in.TeamUUID),
		CreatedBy:   actor,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[m.UUID] = m
	out := *m
	return &out, nil
}

func (s *InMemoryMembers) ListBy(ctx context.Context, field, value string) ([]*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Member, 0, len(s.items))
	for _, m := range s.items {
		if fieldMatch(field, value, map[string]string{
			"display_name": m.DisplayName,
			"team_uuid":    m.TeamUUID,
		}) {
			copied := *m
			out = append(out, &copied)
		}
	}
	sortByCreated(out, func(m *Member) time.Time { return m.CreatedAt })
	return out, nil
}

func (s *InMemoryMembers) Delete(ctx context.Context, actor string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: member %s", ErrNotFound, id)
	}
	delete(s.items, id)
	return nil
}

/* --------------------------------- badges -------------------------------- */

type InMemoryBadges struct {
	mu    sync.RWMutex
	items map[string]*Badge
}

func NewInMemoryBadges() *InMemoryBadges {
	return &InMemoryBadges{items: make(map[string]*Badge)}
}

func (s *InMemoryBadges) Create(ctx context.Context, actor string, in BadgeInput) (*Badge, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("badge name is required")
	}

	b := &Badge{
		UUID:      uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Criteria:  strings.TrimSpace(in.Criteria),
		CreatedBy: actor,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[b.UUID] = b
	out := *b
	return &out, nil
}

func (s *InMemoryBadges) ListBy(ctx context.Context, field, value string) ([]*Badge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Badge, 0, len(s.items))
	for _, b := range s.items {
		if fieldMatch(field, value, map[string]string{
			"name":     b.Name,
			"criteria": b.Criteria,
		}) {
			copied := *b
			out = append(out, &copied)
		}
	}
	sortByCreated(out, func(b *Badge) time.Time { return b.CreatedAt })
	return out, nil
}

/* ------------------------------- activities ------------------------------ */

type InMemoryActivities struct {
	mu    sync.RWMutex
	items map[string]*Activity
}

func NewInMemoryActivities() *InMemoryActivities {
	return &InMemoryActivities{items: make(map[string]*Activity)}
}

func (s *InMemoryActivities) Create(ctx context.Context, actor string, in ActivityInput) (*Activity, error) {
	if strings.TrimSpace(in.MissionUUID) == "" || strings.TrimSpace(in.MemberUUID) == "" {
		return nil, fmt.Errorf("activity requires mission_uuid and member_uuid")
	}
	if strings.TrimSpace(in.Kind) == "" {
		return nil, fmt.Errorf("activity kind is required")
	}

	a := &Activity{
		UUID:        uuid.NewString(),
		MissionUUID: strings.TrimSpace(in.MissionUUID),
		MemberUUID:  strings.TrimSpace(in.MemberUUID),
		Kind:        strings.TrimSpace(in.Kind),
		Points:      in.Points,
		CreatedBy:   actor,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[a.UUID] = a
	out := *a
	return &out, nil
}

func (s *InMemoryActivities) ListBy(ctx context.Context, field, value string) ([]*Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Activity, 0, len(s.items))
	for _, a := range s.items {
		if fieldMatch(field, value, map[string]string{
			"mission_uuid": a.MissionUUID,
			"member_uuid":  a.MemberUUID,
			"kind":         a.Kind,
		}) {
			copied := *a
			out = append(out, &copied)
		}
	}
	sortByCreated(out, func(a *Activity) time.Time { return a.CreatedAt })
	return out, nil
}

/* ---------------------------------- posts -------------------------------- */

type InMemoryPosts struct {
	mu    sync.RWMutex
	items map[string]*Post
}

func NewInMemoryPosts() *InMemoryPosts {
	return &InMemoryPosts{items: make(map[string]*Post)}
}

func (s *InMemoryPosts) Create(ctx context.Context, actor string, in PostInput) (*Post, error) {
	if strings.TrimSpace(in.Body) == "" {
		return nil, fmt.Errorf("post body is required")
	}

	p := &Post{
		UUID:      uuid.NewString(),
		Body:      strings.TrimSpace(in.Body),
		CreatedBy: actor,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[p.UUID] = p
	out := *p
	return &out, nil
}

func (s *InMemoryPosts) ListBy(ctx context.Context, field, value string) ([]*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Post, 0, len(s.items))
	for _, p := range s.items {
		if fieldMatch(field, value, map[string]string{
			"body":       p.Body,
			"created_by": p.CreatedBy,
		}) {
			copied := *p
			out = append(out, &copied)
		}
	}
	sortByCreated(out, func(p *Post) time.Time { return p.CreatedAt })
	return out, nil
}

func (s *InMemoryPosts) Delete(ctx context.Context, actor string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: post %s", ErrNotFound, id)
	}
	delete(s.items, id)
	return nil
}

/* --------------------------------- helpers ------------------------------- */

func cloneMission(m *Mission) *Mission {
	out := *m
	return &out
}

func sortByCreated[T any](items []*T, createdAt func(*T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).Before(createdAt(items[j]))
	})
}
