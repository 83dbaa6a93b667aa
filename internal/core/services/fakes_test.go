package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/google/uuid"
)

// In-memory repositories backing the service tests.

type fakeGroupRepo struct {
	mu      sync.Mutex
	groups  map[uuid.UUID]domain.Group
	listErr error
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[uuid.UUID]domain.Group)}
}

func (r *fakeGroupRepo) List(ctx context.Context) ([]domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Group, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *fakeGroupRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *fakeGroupRepo) Create(ctx context.Context, group *domain.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[group.ID] = *group
	return nil
}

func (r *fakeGroupRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.groups), nil
}

func (r *fakeGroupRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.groups[id]; ok {
		g.Name = name
		r.groups[id] = g
	}
	return nil
}

func (r *fakeGroupRepo) UpdateOrder(ctx context.Context, id uuid.UUID, order int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.groups[id]; ok {
		g.DisplayOrder = order
		r.groups[id] = g
	}
	return nil
}

func (r *fakeGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.groups, id)
	return nil
}

type fakeVoteRepo struct {
	mu        sync.Mutex
	votes     []domain.Vote
	listErr   error
	insertErr error
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{}
}

func (r *fakeVoteRepo) ExistsFor(ctx context.Context, deviceID string, groupID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.votes {
		if v.DeviceID == deviceID && v.GroupID == groupID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeVoteRepo) ExistsForGroup(ctx context.Context, groupID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.votes {
		if v.GroupID == groupID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeVoteRepo) Insert(ctx context.Context, vote *domain.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	for _, v := range r.votes {
		if v.DeviceID == vote.DeviceID && v.GroupID == vote.GroupID {
			return domain.ErrAlreadyVoted
		}
	}
	r.votes = append(r.votes, *vote)
	return nil
}

func (r *fakeVoteRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []domain.Vote{}
	for _, v := range r.votes {
		if v.GroupID == groupID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVoteRepo) ListByDevice(ctx context.Context, deviceID string) ([]domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Vote{}
	for _, v := range r.votes {
		if v.DeviceID == deviceID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVoteRepo) ListAll(ctx context.Context) ([]domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Vote, len(r.votes))
	copy(out, r.votes)
	return out, nil
}

func (r *fakeVoteRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Vote{}
	for _, v := range r.votes {
		if !v.CreatedAt.Before(start) && !v.CreatedAt.After(end) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.votes[:0]
	for _, v := range r.votes {
		if v.ID != id {
			out = append(out, v)
		}
	}
	r.votes = out
	return nil
}

func (r *fakeVoteRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.votes = nil
	return nil
}

type fakeResultRepo struct {
	mu        sync.Mutex
	results   map[uuid.UUID]domain.Result
	upsertErr error
	upserts   int
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: make(map[uuid.UUID]domain.Result)}
}

func (r *fakeResultRepo) List(ctx context.Context) ([]domain.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Result, 0, len(r.results))
	for _, res := range r.results {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (r *fakeResultRepo) Get(ctx context.Context, groupID uuid.UUID) (*domain.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.results[groupID]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (r *fakeResultRepo) Upsert(ctx context.Context, result *domain.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserts++
	r.results[result.GroupID] = *result
	return nil
}

func (r *fakeResultRepo) LatestUpdateTime(ctx context.Context) (*time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *time.Time
	for _, res := range r.results {
		t := res.UpdatedAt
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	return latest, nil
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings *domain.Settings
	getErr   error
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{}
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.settings == nil {
		defaults := domain.DefaultSettings()
		defaults.UpdatedAt = time.Now()
		r.settings = &defaults
	}
	s := *r.settings
	return &s, nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, patch ports.SettingsPatch) error {
	if _, err := r.Get(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if patch.VotingEnabled != nil {
		r.settings.VotingEnabled = *patch.VotingEnabled
	}
	if patch.ResultsVisible != nil {
		r.settings.ResultsVisible = *patch.ResultsVisible
	}
	if patch.UpdateInterval != nil {
		r.settings.UpdateInterval = *patch.UpdateInterval
	}
	if patch.AggregationEnabled != nil {
		r.settings.AggregationEnabled = *patch.AggregationEnabled
	}
	if patch.CurrentGroup != nil {
		id := *patch.CurrentGroup
		r.settings.CurrentGroup = &id
	}
	r.settings.UpdatedAt = time.Now()
	return nil
}

// fakeAggregator lets batch tests control duration and outcome of a run.
type fakeAggregator struct {
	mu        sync.Mutex
	calls     int
	delay     time.Duration
	err       error
	processed int
}

func (a *fakeAggregator) BatchAggregate(ctx context.Context) (int, error) {
	a.mu.Lock()
	a.calls++
	delay, err, processed := a.delay, a.err, a.processed
	a.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return processed, err
}

func (a *fakeAggregator) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// fakeBatchRunner records scheduler-driven invocations.
type fakeBatchRunner struct {
	mu     sync.Mutex
	calls  int
	result ports.BatchProcessResult
}

func (b *fakeBatchRunner) ProcessBatchAggregation(ctx context.Context) ports.BatchProcessResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	return b.result
}

func (b *fakeBatchRunner) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}
