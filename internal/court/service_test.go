package court

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportspot/booking-backend/internal/auth"
	"github.com/sportspot/booking-backend/internal/sport"
)

type fakeRepo struct {
	courts    map[int]*Court
	subCourts map[int]*SubCourt
	nextID    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		courts:    make(map[int]*Court),
		subCourts: make(map[int]*SubCourt),
		nextID:    1,
	}
}

func (r *fakeRepo) Create(_ context.Context, c *Court) error {
	c.ID = r.nextID
	r.nextID++
	r.courts[c.ID] = c
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int) (*Court, error) {
	c, ok := r.courts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Court, int, error) {
	var out []*Court
	for _, c := range r.courts {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, c *Court) error {
	if _, ok := r.courts[c.ID]; !ok {
		return ErrNotFound
	}
	r.courts[c.ID] = c
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.courts[id]; !ok {
		return ErrNotFound
	}
	delete(r.courts, id)
	return nil
}

func (r *fakeRepo) CreateSubCourt(_ context.Context, sc *SubCourt) error {
	sc.ID = r.nextID
	r.nextID++
	r.subCourts[sc.ID] = sc
	return nil
}

func (r *fakeRepo) GetSubCourtByID(_ context.Context, id int) (*SubCourt, error) {
	sc, ok := r.subCourts[id]
	if !ok {
		return nil, ErrSubCourtNotFound
	}
	return sc, nil
}

func (r *fakeRepo) ListSubCourts(_ context.Context, courtID int) ([]*SubCourt, error) {
	var out []*SubCourt
	for _, sc := range r.subCourts {
		if sc.CourtID == courtID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateSubCourt(_ context.Context, sc *SubCourt) error {
	if _, ok := r.subCourts[sc.ID]; !ok {
		return ErrSubCourtNotFound
	}
	r.subCourts[sc.ID] = sc
	return nil
}

func (r *fakeRepo) DeleteSubCourt(_ context.Context, id int) error {
	if _, ok := r.subCourts[id]; !ok {
		return ErrSubCourtNotFound
	}
	delete(r.subCourts, id)
	return nil
}

type fakeSportService struct {
	sport.Service
	sports map[int]*sport.Sport
}

func (f *fakeSportService) GetByID(_ context.Context, id int) (*sport.Sport, error) {
	sp, ok := f.sports[id]
	if !ok {
		return nil, sport.ErrNotFound
	}
	return sp, nil
}

const testOwnerID = "22222222-2222-2222-2222-222222222222"

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	sports := &fakeSportService{
		sports: map[int]*sport.Sport{
			1: {ID: 1, Name: "Badminton"},
		},
	}
	return NewService(repo, sports), repo
}

func validCreate() CreateRequest {
	return CreateRequest{
		OwnerID:   testOwnerID,
		SportID:   1,
		Name:      "Facility X",
		Address:   "12 Nguyen Hue, Q1",
		OpenTime:  "06:00:00",
		CloseTime: "22:00:00",
	}
}

func TestCreateCourt(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "Badminton", c.SportName)

	req := validCreate()
	req.Name = "   "
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrEmptyName)

	req = validCreate()
	req.SportID = 99
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidSport)

	req = validCreate()
	req.OpenTime = "22:00:00"
	req.CloseTime = "06:00:00"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestUpdateCourtPermissions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.Update(ctx, c.ID, UpdateRequest{Name: &name}, "someone-else", auth.RoleOwner)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(ctx, c.ID, UpdateRequest{Name: &name}, testOwnerID, auth.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	name = "Admin rename"
	_, err = svc.Update(ctx, c.ID, UpdateRequest{Name: &name}, "any-admin", auth.RoleAdmin)
	assert.NoError(t, err, "admins manage any court")
}

func TestSubCourtLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	_, err = svc.CreateSubCourt(ctx, c.ID, CreateSubCourtRequest{Name: "A1", BaseRate: 100_000}, "stranger", auth.RoleOwner)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.CreateSubCourt(ctx, c.ID, CreateSubCourtRequest{Name: "A1", BaseRate: -1}, testOwnerID, auth.RoleOwner)
	assert.ErrorIs(t, err, ErrInvalidRate)

	sc, err := svc.CreateSubCourt(ctx, c.ID, CreateSubCourtRequest{Name: "A1", BaseRate: 100_000}, testOwnerID, auth.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, SubCourtActive, sc.Status)

	status := string(SubCourtMaintenance)
	updated, err := svc.UpdateSubCourt(ctx, sc.ID, UpdateSubCourtRequest{Status: &status}, testOwnerID, auth.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, SubCourtMaintenance, updated.Status)

	isOwner, err := svc.IsOwner(ctx, sc.ID, testOwnerID)
	require.NoError(t, err)
	assert.True(t, isOwner)

	isOwner, err = svc.IsOwner(ctx, sc.ID, "stranger")
	require.NoError(t, err)
	assert.False(t, isOwner)

	require.NoError(t, svc.DeleteSubCourt(ctx, sc.ID, testOwnerID, auth.RoleOwner))
	_, err = svc.GetSubCourtByID(ctx, sc.ID)
	assert.ErrorIs(t, err, ErrSubCourtNotFound)
}
