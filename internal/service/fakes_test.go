package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"task-manager/internal/apperr"
	"task-manager/internal/model"
)

// In-memory stores backing the service tests. They mirror the repository
// contracts, including the not-found sentinels.

type grantKey struct {
	taskID uint
	userID uint
}

type fakeGrantStore struct {
	mu    sync.Mutex
	read  map[grantKey]bool
	write map[grantKey]bool
}

func newFakeGrantStore() *fakeGrantStore {
	return &fakeGrantStore{read: map[grantKey]bool{}, write: map[grantKey]bool{}}
}

func (f *fakeGrantStore) GrantRead(_ context.Context, taskID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.read[grantKey{taskID, userID}] = true
	return nil
}

func (f *fakeGrantStore) GrantWrite(_ context.Context, taskID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.write[grantKey{taskID, userID}] = true
	return nil
}

func (f *fakeGrantStore) RevokeRead(_ context.Context, taskID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.read, grantKey{taskID, userID})
	return nil
}

func (f *fakeGrantStore) RevokeWrite(_ context.Context, taskID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.write, grantKey{taskID, userID})
	return nil
}

func (f *fakeGrantStore) RevokeAllRead(_ context.Context, taskID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.read {
		if key.taskID == taskID {
			delete(f.read, key)
		}
	}
	return nil
}

func (f *fakeGrantStore) RevokeAllWrite(_ context.Context, taskID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.write {
		if key.taskID == taskID {
			delete(f.write, key)
		}
	}
	return nil
}

func (f *fakeGrantStore) HasRead(_ context.Context, taskID, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read[grantKey{taskID, userID}], nil
}

func (f *fakeGrantStore) HasWrite(_ context.Context, taskID, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write[grantKey{taskID, userID}], nil
}

func (f *fakeGrantStore) Readers(_ context.Context, taskID uint) ([]uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return collectUsers(f.read, taskID), nil
}

func (f *fakeGrantStore) Writers(_ context.Context, taskID uint) ([]uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return collectUsers(f.write, taskID), nil
}

func collectUsers(grants map[grantKey]bool, taskID uint) []uint {
	var out []uint
	for key := range grants {
		if key.taskID == taskID {
			out = append(out, key.userID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type fakeTaskStore struct {
	mu     sync.Mutex
	nextID uint
	tasks  map[uint]model.Task
	grants *fakeGrantStore
}

func newFakeTaskStore(grants *fakeGrantStore) *fakeTaskStore {
	return &fakeTaskStore{tasks: map[uint]model.Task{}, grants: grants}
}

func (f *fakeTaskStore) Create(_ context.Context, task *model.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task.ID == 0 {
		f.nextID++
		task.ID = f.nextID
	} else if task.ID > f.nextID {
		f.nextID = task.ID
	}
	f.tasks[task.ID] = task.Clone()
	return nil
}

func (f *fakeTaskStore) Update(_ context.Context, task *model.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[task.ID]; !ok {
		return apperr.ErrTaskNotFound
	}
	f.tasks[task.ID] = task.Clone()
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskStore) GetByID(_ context.Context, id uint) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok {
		return nil, apperr.ErrTaskNotFound
	}
	out := task.Clone()
	return &out, nil
}

func (f *fakeTaskStore) ByOwner(_ context.Context, userID uint) ([]model.Task, error) {
	return f.collect(func(t model.Task) bool { return t.UserID == userID }), nil
}

func (f *fakeTaskStore) ByStatus(_ context.Context, userID uint, status model.Status) ([]model.Task, error) {
	return f.collect(func(t model.Task) bool { return t.UserID == userID && t.Status == status }), nil
}

func (f *fakeTaskStore) Assigned(_ context.Context, userID uint) ([]model.Task, error) {
	return f.collect(func(t model.Task) bool {
		return t.AssignedUserID != nil && *t.AssignedUserID == userID
	}), nil
}

func (f *fakeTaskStore) Children(_ context.Context, parentID uint) ([]model.Task, error) {
	return f.collect(func(t model.Task) bool {
		return t.ParentTaskID != nil && *t.ParentTaskID == parentID
	}), nil
}

func (f *fakeTaskStore) ByPlan(_ context.Context, userID, planID uint) ([]model.Task, error) {
	return f.collect(func(t model.Task) bool {
		return t.UserID == userID && t.PlanID != nil && *t.PlanID == planID
	}), nil
}

func (f *fakeTaskStore) ReadableBy(ctx context.Context, userID uint) ([]model.Task, error) {
	return f.collect(func(t model.Task) bool {
		ok, _ := f.grants.HasRead(ctx, t.ID, userID)
		return ok
	}), nil
}

func (f *fakeTaskStore) WritableBy(ctx context.Context, userID uint) ([]model.Task, error) {
	return f.collect(func(t model.Task) bool {
		ok, _ := f.grants.HasWrite(ctx, t.ID, userID)
		return ok
	}), nil
}

func (f *fakeTaskStore) Filter(_ context.Context, userID uint, filter TaskFilter) ([]model.Task, error) {
	return f.collect(func(t model.Task) bool {
		if t.UserID != userID {
			return false
		}
		if filter.Status != nil && t.Status != *filter.Status {
			return false
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			return false
		}
		if filter.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *filter.CategoryID) {
			return false
		}
		if filter.TitleContains != "" &&
			!strings.Contains(strings.ToLower(t.Title), strings.ToLower(filter.TitleContains)) {
			return false
		}
		return true
	}), nil
}

func (f *fakeTaskStore) collect(match func(model.Task) bool) []model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Task
	for _, task := range f.tasks {
		if match(task) {
			out = append(out, task.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakePlanStore struct {
	mu     sync.Mutex
	nextID uint
	plans  map[uint]model.TaskPlan
}

func newFakePlanStore() *fakePlanStore {
	return &fakePlanStore{plans: map[uint]model.TaskPlan{}}
}

func (f *fakePlanStore) Create(_ context.Context, plan *model.TaskPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if plan.ID == 0 {
		f.nextID++
		plan.ID = f.nextID
	}
	f.plans[plan.ID] = *plan
	return nil
}

func (f *fakePlanStore) Update(_ context.Context, plan *model.TaskPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.plans[plan.ID]; !ok {
		return apperr.ErrPlanNotFound
	}
	f.plans[plan.ID] = *plan
	return nil
}

func (f *fakePlanStore) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.plans, id)
	return nil
}

func (f *fakePlanStore) DeleteByTask(_ context.Context, taskID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, plan := range f.plans {
		if plan.TaskID == taskID {
			delete(f.plans, id)
		}
	}
	return nil
}

func (f *fakePlanStore) GetByID(_ context.Context, id uint) (*model.TaskPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	plan, ok := f.plans[id]
	if !ok {
		return nil, apperr.ErrPlanNotFound
	}
	out := plan
	return &out, nil
}

func (f *fakePlanStore) ByOwner(_ context.Context, userID uint) ([]model.TaskPlan, error) {
	return f.collect(func(p model.TaskPlan) bool { return p.UserID == userID }), nil
}

func (f *fakePlanStore) All(_ context.Context) ([]model.TaskPlan, error) {
	return f.collect(func(model.TaskPlan) bool { return true }), nil
}

func (f *fakePlanStore) collect(match func(model.TaskPlan) bool) []model.TaskPlan {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.TaskPlan
	for _, plan := range f.plans {
		if match(plan) {
			out = append(out, plan)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeNotificationStore struct {
	mu            sync.Mutex
	nextID        uint
	notifications map[uint]model.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{notifications: map[uint]model.Notification{}}
}

func (f *fakeNotificationStore) Create(_ context.Context, n *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n.ID == 0 {
		f.nextID++
		n.ID = f.nextID
	}
	f.notifications[n.ID] = *n
	return nil
}

func (f *fakeNotificationStore) Update(_ context.Context, n *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.notifications[n.ID]; !ok {
		return apperr.ErrNotificationNotFound
	}
	f.notifications[n.ID] = *n
	return nil
}

func (f *fakeNotificationStore) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.notifications, id)
	return nil
}

func (f *fakeNotificationStore) GetByID(_ context.Context, id uint) (*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notifications[id]
	if !ok {
		return nil, apperr.ErrNotificationNotFound
	}
	out := n
	return &out, nil
}

func (f *fakeNotificationStore) ByOwner(_ context.Context, userID uint) ([]model.Notification, error) {
	return f.collect(func(n model.Notification) bool { return n.UserID == userID }), nil
}

func (f *fakeNotificationStore) ByStatus(_ context.Context, userID uint, status model.NotificationStatus) ([]model.Notification, error) {
	return f.collect(func(n model.Notification) bool {
		return n.UserID == userID && n.Status == status
	}), nil
}

func (f *fakeNotificationStore) AllByStatus(_ context.Context, status model.NotificationStatus) ([]model.Notification, error) {
	return f.collect(func(n model.Notification) bool { return n.Status == status }), nil
}

func (f *fakeNotificationStore) collect(match func(model.Notification) bool) []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Notification
	for _, n := range f.notifications {
		if match(n) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeCategoryStore struct {
	mu         sync.Mutex
	nextID     uint
	categories map[uint]model.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: map[uint]model.Category{}}
}

func (f *fakeCategoryStore) Create(_ context.Context, category *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if category.ID == 0 {
		f.nextID++
		category.ID = f.nextID
	}
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeCategoryStore) Update(_ context.Context, category *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[category.ID]; !ok {
		return apperr.ErrCategoryNotFound
	}
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryStore) GetByID(_ context.Context, id uint) (*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	category, ok := f.categories[id]
	if !ok {
		return nil, apperr.ErrCategoryNotFound
	}
	out := category
	return &out, nil
}

func (f *fakeCategoryStore) ByOwner(_ context.Context, userID uint) ([]model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Category
	for _, category := range f.categories {
		if category.UserID == userID {
			out = append(out, category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeLevelStore struct {
	mu     sync.Mutex
	nextID uint
	levels map[uint]model.Level // keyed by user id
}

func newFakeLevelStore() *fakeLevelStore {
	return &fakeLevelStore{levels: map[uint]model.Level{}}
}

func (f *fakeLevelStore) GetOrCreateByUser(_ context.Context, userID uint) (*model.Level, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	level, ok := f.levels[userID]
	if !ok {
		f.nextID++
		level = model.Level{ID: f.nextID, UserID: userID, Experience: 1}
		f.levels[userID] = level
	}
	out := level
	return &out, nil
}

func (f *fakeLevelStore) Update(_ context.Context, level *model.Level) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.levels[level.UserID] = *level
	return nil
}

// fixture wires every service over the fake stores with a controllable clock.
type fixture struct {
	tasks         *fakeTaskStore
	grants        *fakeGrantStore
	plans         *fakePlanStore
	notifications *fakeNotificationStore
	categories    *fakeCategoryStore
	levels        *fakeLevelStore

	guard    *AccessGuard
	taskSvc  *TaskService
	planSvc  *PlanService
	notifSvc *NotificationService
	catSvc   *CategoryService
	levelSvc *LevelService
	agenda   *AgendaService

	now time.Time
}

func newFixture() *fixture {
	f := &fixture{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	f.grants = newFakeGrantStore()
	f.tasks = newFakeTaskStore(f.grants)
	f.plans = newFakePlanStore()
	f.notifications = newFakeNotificationStore()
	f.categories = newFakeCategoryStore()
	f.levels = newFakeLevelStore()

	clock := func() time.Time { return f.now }
	f.guard = NewAccessGuard(f.tasks, f.grants)
	f.levelSvc = NewLevelService(f.levels)
	f.taskSvc = NewTaskService(f.tasks, f.plans, f.grants, f.guard, f.levelSvc, clock)
	f.planSvc = NewPlanService(f.plans, f.tasks, clock)
	f.notifSvc = NewNotificationService(f.notifications, f.tasks, f.guard, clock)
	f.catSvc = NewCategoryService(f.categories, clock)
	f.agenda = NewAgendaService(f.tasks, f.categories, f.notifications)
	return f
}

func (f *fixture) mustCreateTask(t *testing.T, userID uint, task model.Task) model.Task {
	t.Helper()
	if err := f.taskSvc.Create(context.Background(), userID, &task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func timePtr(t time.Time) *time.Time { return &t }

func uintPtr(u uint) *uint { return &u }
