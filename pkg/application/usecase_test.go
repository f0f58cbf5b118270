package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/candidate"
	"github.com/artem13815/jobportal/pkg/chat"
	"github.com/artem13815/jobportal/pkg/job"
	"github.com/artem13815/jobportal/pkg/schedule"
)

// --- in-memory fakes ---

type memAppRepo struct {
	items map[uuid.UUID]Application
}

func newMemAppRepo() *memAppRepo { return &memAppRepo{items: make(map[uuid.UUID]Application)} }

func (r *memAppRepo) Create(_ context.Context, a Application) error {
	for _, ex := range r.items {
		if ex.JobID == a.JobID && ex.CandidateID == a.CandidateID {
			return ErrDuplicate
		}
	}
	r.items[a.ID] = a
	return nil
}

func (r *memAppRepo) GetByID(_ context.Context, id uuid.UUID) (Application, error) {
	a, ok := r.items[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return a, nil
}

func (r *memAppRepo) ListByJob(_ context.Context, jobID uuid.UUID, _, _ int) ([]Application, error) {
	var out []Application
	for _, a := range r.items {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAppRepo) ListByCandidate(_ context.Context, cid uuid.UUID, _, _ int) ([]Application, error) {
	var out []Application
	for _, a := range r.items {
		if a.CandidateID == cid {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAppRepo) UpdateStatus(_ context.Context, id uuid.UUID, st Status) error {
	a, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = st
	r.items[id] = a
	return nil
}

func (r *memAppRepo) UpdateStatusIf(_ context.Context, id uuid.UUID, to Status, from []Status) (bool, error) {
	a, ok := r.items[id]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if a.Status == f {
			a.Status = to
			r.items[id] = a
			return true, nil
		}
	}
	return false, nil
}

func (r *memAppRepo) SetInterview(_ context.Context, id uuid.UUID, st Status, iv InterviewDetails) error {
	a, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = st
	a.Interview = &iv
	r.items[id] = a
	return nil
}

func (r *memAppRepo) SaveScan(_ context.Context, id uuid.UUID, score int, an Analysis) error {
	a, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	a.MatchScore = &score
	a.Analysis = &an
	r.items[id] = a
	return nil
}

func (r *memAppRepo) MarkViewed(_ context.Context, jobID uuid.UUID) error {
	for id, a := range r.items {
		if a.JobID == jobID && a.Status == StatusApplied {
			a.Status = StatusViewed
			r.items[id] = a
		}
	}
	return nil
}

func (r *memAppRepo) ListUnscoredByEmployer(_ context.Context, _ uuid.UUID, _ int) ([]Application, error) {
	return nil, nil
}

func (r *memAppRepo) ScheduledIntervals(_ context.Context, _ uuid.UUID) ([]schedule.Interval, error) {
	return nil, nil
}

type memJobRepo struct {
	items map[uuid.UUID]job.Job
}

func (r *memJobRepo) Create(_ context.Context, j job.Job) error { r.items[j.ID] = j; return nil }

func (r *memJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := r.items[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (r *memJobRepo) GetByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (job.Job, error) {
	j, ok := r.items[id]
	if !ok || j.OwnerID != ownerID {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (r *memJobRepo) ListActive(_ context.Context, _, _ int) ([]job.Job, error) { return nil, nil }
func (r *memJobRepo) ListByOwner(_ context.Context, _ uuid.UUID, _, _ int) ([]job.Job, error) {
	return nil, nil
}
func (r *memJobRepo) UpdateForOwner(_ context.Context, _ uuid.UUID, _ job.Job) error { return nil }
func (r *memJobRepo) SetStatusForOwner(_ context.Context, _, _ uuid.UUID, _ job.Status) error {
	return nil
}
func (r *memJobRepo) DeleteForOwner(_ context.Context, _, _ uuid.UUID) error { return nil }

type memProfileRepo struct {
	items map[uuid.UUID]candidate.Profile
}

func (r *memProfileRepo) Upsert(_ context.Context, p candidate.Profile) error {
	r.items[p.OwnerID] = p
	return nil
}

func (r *memProfileRepo) GetByOwner(_ context.Context, ownerID uuid.UUID) (candidate.Profile, error) {
	p, ok := r.items[ownerID]
	if !ok {
		return candidate.Profile{}, candidate.ErrNotFound
	}
	return p, nil
}

func (r *memProfileRepo) SaveResume(_ context.Context, _ uuid.UUID, _, _ string) error { return nil }

type memUserRepo struct {
	items map[uuid.UUID]auth.User
}

func (r *memUserRepo) Create(_ context.Context, u auth.User) error { r.items[u.ID] = u; return nil }
func (r *memUserRepo) GetByEmail(_ context.Context, _ string) (auth.User, error) {
	return auth.User{}, auth.ErrNotFound
}
func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	u, ok := r.items[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

type fakeSlots struct {
	slot *schedule.Slot
}

func (f fakeSlots) NextForEmployer(_ context.Context, _ uuid.UUID) (*schedule.Slot, error) {
	return f.slot, nil
}

// --- fixture ---

type fixture struct {
	uc          UseCase
	apps        *memAppRepo
	recruiterID uuid.UUID
	seekerID    uuid.UUID
	jobID       uuid.UUID
}

func newFixture(t *testing.T, slot *schedule.Slot) fixture {
	t.Helper()
	recruiterID := uuid.New()
	seekerID := uuid.New()
	jobID := uuid.New()

	jobs := &memJobRepo{items: map[uuid.UUID]job.Job{
		jobID: {ID: jobID, OwnerID: recruiterID, Title: "Go Developer", Status: job.StatusActive},
	}}
	profiles := &memProfileRepo{items: map[uuid.UUID]candidate.Profile{
		seekerID: {OwnerID: seekerID, FullName: "Иван Иванов"},
	}}
	users := &memUserRepo{items: map[uuid.UUID]auth.User{
		recruiterID: {ID: recruiterID, Email: "Recruiter@hr.com"},
		seekerID:    {ID: seekerID, Email: "ivan@mail.com"},
	}}
	apps := newMemAppRepo()
	uc := NewService(apps, jobs, profiles, users, fakeSlots{slot: slot}, nil)
	return fixture{uc: uc, apps: apps, recruiterID: recruiterID, seekerID: seekerID, jobID: jobID}
}

// --- tests ---

func TestApplyAndDuplicate(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	a, err := f.uc.Apply(ctx, f.seekerID, f.jobID)
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, a.Status)
	assert.Nil(t, a.MatchScore)

	_, err = f.uc.Apply(ctx, f.seekerID, f.jobID)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestApplyClosedJob(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	closed := uuid.New()
	jobs := &memJobRepo{items: map[uuid.UUID]job.Job{
		closed: {ID: closed, OwnerID: f.recruiterID, Title: "Old", Status: job.StatusClosed},
	}}
	profiles := &memProfileRepo{items: map[uuid.UUID]candidate.Profile{
		f.seekerID: {OwnerID: f.seekerID},
	}}
	uc := NewService(newMemAppRepo(), jobs, profiles, &memUserRepo{items: map[uuid.UUID]auth.User{}}, fakeSlots{}, nil)

	_, err := uc.Apply(ctx, f.seekerID, closed)
	var ve ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestApplyRequiresProfile(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.uc.Apply(context.Background(), uuid.New(), f.jobID)
	var ve ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestListForJobMarksViewed(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a, err := f.uc.Apply(ctx, f.seekerID, f.jobID)
	require.NoError(t, err)

	items, err := f.uc.ListForJob(ctx, f.recruiterID, f.jobID, 50, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, StatusViewed, items[0].Status)
	assert.Equal(t, a.ID, items[0].ID)

	// Чужой рекрутёр вакансию не видит.
	_, err = f.uc.ListForJob(ctx, uuid.New(), f.jobID, 50, 0)
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestActShortlistAndReject(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a, err := f.uc.Apply(ctx, f.seekerID, f.jobID)
	require.NoError(t, err)

	out, err := f.uc.Act(ctx, f.recruiterID, a.ID, Shortlist{})
	require.NoError(t, err)
	assert.Equal(t, StatusShortlisted, out.Application.Status)

	out, err = f.uc.Act(ctx, f.recruiterID, a.ID, Reject{})
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, out.Application.Status)

	// Терминальный статус: дальнейшие shortlist/reject запрещены.
	_, err = f.uc.Act(ctx, f.recruiterID, a.ID, Shortlist{})
	var ve ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestActScheduleRejectedGuard(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a, err := f.uc.Apply(ctx, f.seekerID, f.jobID)
	require.NoError(t, err)
	_, err = f.uc.Act(ctx, f.recruiterID, a.ID, Reject{})
	require.NoError(t, err)

	_, err = f.uc.Act(ctx, f.recruiterID, a.ID, ScheduleInterview{Date: "2024-06-01", Time: "10:00"})
	var ve ErrValidation
	require.ErrorAs(t, err, &ve)

	// Поля собеседования не появились.
	stored, err := f.apps.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Interview)
	assert.Equal(t, StatusRejected, stored.Status)
}

func TestActScheduleManual(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a, err := f.uc.Apply(ctx, f.seekerID, f.jobID)
	require.NoError(t, err)

	out, err := f.uc.Act(ctx, f.recruiterID, a.ID, ScheduleInterview{
		Date: "2024-06-01", Time: "10:00", MeetingLink: "https://meet.example.com/x",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusInterviewScheduled, out.Application.Status)
	require.NotNil(t, out.Application.Interview)
	assert.Equal(t, "2024-06-01", out.Application.Interview.Date)
	assert.Equal(t, "10:00", out.Application.Interview.Time)

	// Невалидные форматы отклоняются.
	_, err = f.uc.Act(ctx, f.recruiterID, a.ID, ScheduleInterview{Date: "01.06.2024", Time: "10:00"})
	var ve ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestActScheduleAuto(t *testing.T) {
	f := newFixture(t, &schedule.Slot{Date: "2024-06-03", Time: "09:45"})
	ctx := context.Background()
	a, err := f.uc.Apply(ctx, f.seekerID, f.jobID)
	require.NoError(t, err)

	out, err := f.uc.Act(ctx, f.recruiterID, a.ID, ScheduleInterview{Auto: true})
	require.NoError(t, err)
	require.NotNil(t, out.Application.Interview)
	assert.Equal(t, "2024-06-03", out.Application.Interview.Date)
	assert.Equal(t, "09:45", out.Application.Interview.Time)
}

func TestActScheduleAutoNoSlot(t *testing.T) {
	f := newFixture(t, nil) // аллокатор не нашёл окно
	ctx := context.Background()
	a, err := f.uc.Apply(ctx, f.seekerID, f.jobID)
	require.NoError(t, err)

	_, err = f.uc.Act(ctx, f.recruiterID, a.ID, ScheduleInterview{Auto: true})
	var ve ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestActMessageReturnsRoom(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a, err := f.uc.Apply(ctx, f.seekerID, f.jobID)
	require.NoError(t, err)

	out, err := f.uc.Act(ctx, f.recruiterID, a.ID, Message{})
	require.NoError(t, err)
	assert.Equal(t, chat.RoomID("recruiter@hr.com", "ivan@mail.com"), out.ChatRoomID)
	// Статус сообщением не меняется.
	assert.Equal(t, StatusApplied, out.Application.Status)
}

func TestActFullPipeline(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a, err := f.uc.Apply(ctx, f.seekerID, f.jobID)
	require.NoError(t, err)

	steps := []struct {
		act  Action
		want Status
	}{
		{ScheduleInterview{Date: "2024-06-01", Time: "10:00"}, StatusInterviewScheduled},
		{MarkInterviewed{}, StatusInterviewed},
		{Select{}, StatusSelected},
		{Hire{}, StatusHired},
	}
	for _, s := range steps {
		out, err := f.uc.Act(ctx, f.recruiterID, a.ID, s.act)
		require.NoError(t, err, "%T", s.act)
		assert.Equal(t, s.want, out.Application.Status)
	}

	// hired — терминальный: повторный hire невозможен.
	_, err = f.uc.Act(ctx, f.recruiterID, a.ID, Hire{})
	var ve ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestActForeignRecruiter(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a, err := f.uc.Apply(ctx, f.seekerID, f.jobID)
	require.NoError(t, err)

	_, err = f.uc.Act(ctx, uuid.New(), a.ID, Shortlist{})
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestApplyTimestamps(t *testing.T) {
	f := newFixture(t, nil)
	before := time.Now().UTC().Add(-time.Second)
	a, err := f.uc.Apply(context.Background(), f.seekerID, f.jobID)
	require.NoError(t, err)
	assert.True(t, a.CreatedAt.After(before))
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
}
