package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/core/apperror"
	"medstock/internal/core/entity"
	"medstock/internal/core/id"
	"medstock/internal/domain"
)

type widget struct {
	entity.Catalog
	invalid bool
}

func (w *widget) Validate(ctx context.Context) error {
	if w.invalid {
		return apperror.NewFieldValidation("name", "bad widget")
	}
	return w.Catalog.Validate(ctx)
}

type fakeRepo struct {
	byID    map[id.ID]*widget
	created []*widget
	updated []*widget
	deleted []id.ID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[id.ID]*widget)}
}

func (r *fakeRepo) Create(_ context.Context, w *widget) error {
	r.created = append(r.created, w)
	r.byID[w.ID] = w
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, ownerID, entityID id.ID) (*widget, error) {
	w, ok := r.byID[entityID]
	if !ok || w.OwnerID != ownerID {
		return nil, apperror.NewNotFound("widgets_table", entityID.String())
	}
	return w, nil
}

func (r *fakeRepo) Update(_ context.Context, w *widget) error {
	r.updated = append(r.updated, w)
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, ownerID, entityID id.ID) error {
	r.deleted = append(r.deleted, entityID)
	delete(r.byID, entityID)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ id.ID, _ domain.ListFilter) (domain.ListResult[*widget], error) {
	return domain.ListResult[*widget]{}, nil
}

func (r *fakeRepo) Exists(_ context.Context, _, entityID id.ID) (bool, error) {
	_, ok := r.byID[entityID]
	return ok, nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *fakeRepo) *domain.CatalogService[*widget] {
	return domain.NewCatalogService(domain.CatalogServiceConfig[*widget]{
		Repo:       repo,
		TxManager:  fakeTxManager{},
		EntityName: "widget",
	})
}

func newWidget(ownerID id.ID) *widget {
	return &widget{Catalog: entity.NewCatalog(ownerID, "Widget")}
}

func TestCatalogService_CreateRunsHooks(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	var events []string
	svc.Hooks().OnBeforeCreate(func(_ context.Context, _ *widget) error {
		events = append(events, "before")
		return nil
	})
	svc.Hooks().OnAfterCreate(func(_ context.Context, _ *widget) error {
		events = append(events, "after")
		return nil
	})

	require.NoError(t, svc.Create(ctx, newWidget(id.New())))
	assert.Equal(t, []string{"before", "after"}, events)
	assert.Len(t, repo.created, 1)
}

func TestCatalogService_BeforeHookAbortsCreate(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	svc.Hooks().OnBeforeCreate(func(_ context.Context, _ *widget) error {
		return errors.New("rejected")
	})

	err := svc.Create(context.Background(), newWidget(id.New()))
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestCatalogService_AfterHookFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	svc.Hooks().OnAfterCreate(func(_ context.Context, _ *widget) error {
		return errors.New("audit down")
	})

	assert.NoError(t, svc.Create(context.Background(), newWidget(id.New())))
	assert.Len(t, repo.created, 1)
}

func TestCatalogService_CreateValidates(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	w := newWidget(id.New())
	w.invalid = true

	err := svc.Create(context.Background(), w)
	require.Error(t, err)
	assert.True(t, apperror.IsAppError(err))
	assert.Empty(t, repo.created)
}

func TestCatalogService_GetByIDRemapsEntityName(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), id.New(), id.New())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	assert.Equal(t, "widget", appErr.Details["entity"])
}

func TestCatalogService_GetByIDScopedToOwner(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	owner := id.New()
	w := newWidget(owner)
	require.NoError(t, svc.Create(ctx, w))

	got, err := svc.GetByID(ctx, owner, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)

	// Another owner sees not-found, never someone else's record.
	_, err = svc.GetByID(ctx, id.New(), w.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCatalogService_DeleteRunsHooksWithEntity(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	owner := id.New()
	w := newWidget(owner)
	require.NoError(t, svc.Create(ctx, w))

	var seen *widget
	svc.Hooks().OnAfterDelete(func(_ context.Context, ent *widget) error {
		seen = ent
		return nil
	})

	require.NoError(t, svc.Delete(ctx, owner, w.ID))
	assert.Equal(t, []id.ID{w.ID}, repo.deleted)
	require.NotNil(t, seen)
	assert.Equal(t, w.ID, seen.ID)
}

func TestCatalogService_DeleteUnknownIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), id.New(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}
