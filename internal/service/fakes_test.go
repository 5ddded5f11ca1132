package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhive/projecthub/internal/config"
	"taskhive/projecthub/internal/model"
	"taskhive/projecthub/internal/repository"
)

// memDB is a shared in-memory backing store for the fake repositories. It
// mirrors the store-level behaviors the services depend on: record-not-found
// and duplicated-key errors, the (project,user) uniqueness rule, and the
// guarded use-count increment inside Redeem.
type memDB struct {
	mu sync.Mutex

	projects      map[uint]*model.Project
	nextProjectID uint

	memberships      map[uint]*model.ProjectMembership
	nextMembershipID uint

	invites      map[string]*model.Invite
	nextInviteID uint

	tasks      map[uint]*model.Task
	nextTaskID uint
	assignees  map[uint]map[uuid.UUID]bool

	stages      map[uint]*model.TaskStage
	nextStageID uint

	notes      map[uint]*model.Note
	nextNoteID uint
}

func newMemDB() *memDB {
	return &memDB{
		projects:    make(map[uint]*model.Project),
		memberships: make(map[uint]*model.ProjectMembership),
		invites:     make(map[string]*model.Invite),
		tasks:       make(map[uint]*model.Task),
		assignees:   make(map[uint]map[uuid.UUID]bool),
		stages:      make(map[uint]*model.TaskStage),
		notes:       make(map[uint]*model.Note),
	}
}

func (db *memDB) membershipByProjectAndUser(projectID uint, userID uuid.UUID) *model.ProjectMembership {
	for _, m := range db.memberships {
		if m.ProjectID == projectID && m.UserID == userID {
			return m
		}
	}
	return nil
}

func (db *memDB) insertMembership(m *model.ProjectMembership) error {
	if db.membershipByProjectAndUser(m.ProjectID, m.UserID) != nil {
		return gorm.ErrDuplicatedKey
	}
	db.nextMembershipID++
	m.ID = db.nextMembershipID
	db.memberships[m.ID] = m
	return nil
}

type fakeProjectRepo struct{ db *memDB }

func (r *fakeProjectRepo) CreateWithOwner(_ context.Context, project *model.Project) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.nextProjectID++
	project.ID = r.db.nextProjectID
	r.db.projects[project.ID] = project
	return r.db.insertMembership(&model.ProjectMembership{
		ProjectID: project.ID,
		UserID:    project.OwnerID,
		Role:      model.RoleOwner,
	})
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id uint) (*model.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProjectRepo) GetByIDWithMembers(ctx context.Context, id uint) (*model.Project, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p.Members = nil
	for _, m := range r.db.memberships {
		if m.ProjectID == id {
			p.Members = append(p.Members, *m)
		}
	}
	return p, nil
}

func (r *fakeProjectRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Project
	for _, m := range r.db.memberships {
		if m.UserID == userID {
			if p, ok := r.db.projects[m.ProjectID]; ok {
				out = append(out, *p)
			}
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *model.Project) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) DeleteCascade(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for mid, m := range r.db.memberships {
		if m.ProjectID == id {
			delete(r.db.memberships, mid)
		}
	}
	for linkID, inv := range r.db.invites {
		if inv.ProjectID == id {
			delete(r.db.invites, linkID)
		}
	}
	for tid, t := range r.db.tasks {
		if t.ProjectID == id {
			delete(r.db.assignees, tid)
			delete(r.db.tasks, tid)
		}
	}
	for nid, n := range r.db.notes {
		if n.ProjectID == id {
			delete(r.db.notes, nid)
		}
	}
	delete(r.db.projects, id)
	return nil
}

type fakeMembershipRepo struct{ db *memDB }

func (r *fakeMembershipRepo) Create(_ context.Context, membership *model.ProjectMembership) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.insertMembership(membership)
}

func (r *fakeMembershipRepo) GetByID(_ context.Context, id uint) (*model.ProjectMembership, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.memberships[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *fakeMembershipRepo) GetByProjectAndUser(_ context.Context, projectID uint, userID uuid.UUID) (*model.ProjectMembership, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if m := r.db.membershipByProjectAndUser(projectID, userID); m != nil {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMembershipRepo) ListByProject(_ context.Context, projectID uint) ([]model.ProjectMembership, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.ProjectMembership
	for _, m := range r.db.memberships {
		if m.ProjectID == projectID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) CountByProject(_ context.Context, projectID uint) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, m := range r.db.memberships {
		if m.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMembershipRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, m := range r.db.memberships {
		if m.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMembershipRepo) UpdateRole(_ context.Context, id uint, role model.MemberRole) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.memberships[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Role = role
	return nil
}

func (r *fakeMembershipRepo) RemoveWithUnassign(_ context.Context, membership *model.ProjectMembership) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for taskID, t := range r.db.tasks {
		if t.ProjectID == membership.ProjectID {
			delete(r.db.assignees[taskID], membership.UserID)
		}
	}
	delete(r.db.memberships, membership.ID)
	return nil
}

type fakeInviteRepo struct{ db *memDB }

func (r *fakeInviteRepo) Create(_ context.Context, invite *model.Invite) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, exists := r.db.invites[invite.LinkID]; exists {
		return gorm.ErrDuplicatedKey
	}
	r.db.nextInviteID++
	invite.ID = r.db.nextInviteID
	r.db.invites[invite.LinkID] = invite
	return nil
}

func (r *fakeInviteRepo) GetByLinkID(_ context.Context, linkID string) (*model.Invite, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	inv, ok := r.db.invites[linkID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInviteRepo) GetByLinkIDWithProject(ctx context.Context, linkID string) (*model.Invite, error) {
	inv, err := r.GetByLinkID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	inv.Project = r.db.projects[inv.ProjectID]
	return inv, nil
}

func (r *fakeInviteRepo) ListByProject(_ context.Context, projectID uint) ([]model.Invite, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Invite
	for _, inv := range r.db.invites {
		if inv.ProjectID == projectID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInviteRepo) Update(_ context.Context, invite *model.Invite) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.invites[invite.LinkID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *invite
	r.db.invites[invite.LinkID] = &cp
	return nil
}

func (r *fakeInviteRepo) Delete(_ context.Context, linkID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.invites, linkID)
	return nil
}

func (r *fakeInviteRepo) Redeem(_ context.Context, linkID string, membership *model.ProjectMembership) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	inv, ok := r.db.invites[linkID]
	if !ok {
		return repository.ErrInviteUnavailable
	}
	if inv.MaxUses != nil && inv.Uses >= *inv.MaxUses {
		return repository.ErrInviteUnavailable
	}
	if err := r.db.insertMembership(membership); err != nil {
		return err
	}
	inv.Uses++
	return nil
}

type fakeTaskRepo struct{ db *memDB }

func (r *fakeTaskRepo) Create(_ context.Context, task *model.Task) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.nextTaskID++
	task.ID = r.db.nextTaskID
	r.db.tasks[task.ID] = task
	r.db.assignees[task.ID] = make(map[uuid.UUID]bool)
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id uint) (*model.Task, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	cp.Assignees = nil
	for userID := range r.db.assignees[id] {
		cp.Assignees = append(cp.Assignees, model.User{ID: userID})
	}
	return &cp, nil
}

func (r *fakeTaskRepo) ListByProject(_ context.Context, projectID uint) ([]model.Task, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Task
	for _, t := range r.db.tasks {
		if t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *model.Task) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *task
	cp.Assignees = nil
	r.db.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.assignees, id)
	delete(r.db.tasks, id)
	return nil
}

func (r *fakeTaskRepo) AddAssignee(_ context.Context, taskID uint, userID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.assignees[taskID][userID] {
		return gorm.ErrDuplicatedKey
	}
	r.db.assignees[taskID][userID] = true
	return nil
}

func (r *fakeTaskRepo) RemoveAssignee(_ context.Context, taskID uint, userID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.assignees[taskID], userID)
	return nil
}

func (r *fakeTaskRepo) CreateStage(_ context.Context, stage *model.TaskStage) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.nextStageID++
	stage.ID = r.db.nextStageID
	r.db.stages[stage.ID] = stage
	return nil
}

func (r *fakeTaskRepo) GetStage(_ context.Context, stageID uint) (*model.TaskStage, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.stages[stageID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeTaskRepo) UpdateStage(_ context.Context, stage *model.TaskStage) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.stages[stage.ID] = stage
	return nil
}

func (r *fakeTaskRepo) DeleteStage(_ context.Context, stageID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.stages, stageID)
	return nil
}

type fakeNoteRepo struct{ db *memDB }

func (r *fakeNoteRepo) Create(_ context.Context, note *model.Note) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.nextNoteID++
	note.ID = r.db.nextNoteID
	r.db.notes[note.ID] = note
	return nil
}

func (r *fakeNoteRepo) GetByID(_ context.Context, id uint) (*model.Note, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n, ok := r.db.notes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (r *fakeNoteRepo) ListByProject(_ context.Context, projectID uint) ([]model.Note, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Note
	for _, n := range r.db.notes {
		if n.ProjectID == projectID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.notes, id)
	return nil
}

// fixture wires the services over one shared memDB.
type fixture struct {
	db          *memDB
	projects    ProjectService
	memberships MembershipService
	invites     InviteService
	tasks       TaskService
	notes       NoteService
}

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{
		MaxMembersPerProject: 5,
		MaxProjectsPerUser:   3,
	}
}

func newFixture() *fixture {
	db := newMemDB()
	projectRepo := &fakeProjectRepo{db: db}
	membershipRepo := &fakeMembershipRepo{db: db}
	inviteRepo := &fakeInviteRepo{db: db}
	taskRepo := &fakeTaskRepo{db: db}
	noteRepo := &fakeNoteRepo{db: db}
	stateStore := repository.NewMemoryStateStore()
	authz := NewAuthorizer(membershipRepo)
	limits := testLimits()

	return &fixture{
		db:          db,
		projects:    NewProjectService(projectRepo, membershipRepo, authz, limits),
		memberships: NewMembershipService(membershipRepo, projectRepo, authz),
		invites:     NewInviteService(inviteRepo, membershipRepo, projectRepo, stateStore, authz, limits, time.Minute),
		tasks:       NewTaskService(taskRepo, authz),
		notes:       NewNoteService(noteRepo, authz),
	}
}

// seedProject creates a project owned by owner and returns it.
func (f *fixture) seedProject(owner uuid.UUID) *model.Project {
	project := &model.Project{Name: "Apollo", OwnerID: owner}
	if err := (&fakeProjectRepo{db: f.db}).CreateWithOwner(context.Background(), project); err != nil {
		panic(err)
	}
	return project
}

// seedMember adds a membership with the given role.
func (f *fixture) seedMember(projectID uint, userID uuid.UUID, role model.MemberRole) *model.ProjectMembership {
	m := &model.ProjectMembership{ProjectID: projectID, UserID: userID, Role: role}
	if err := (&fakeMembershipRepo{db: f.db}).Create(context.Background(), m); err != nil {
		panic(err)
	}
	return m
}
