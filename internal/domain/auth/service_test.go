package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
)

type fakeTxManager struct {
	err error
}

func (f fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeUserRepo struct {
	byEmail map[string]*User
	byID    map[id.ID]*User
	created []*User
	updated []*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*User),
		byID:    make(map[id.ID]*User),
	}
}

func (r *fakeUserRepo) add(u *User) {
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
}

func (r *fakeUserRepo) Create(_ context.Context, user *User) error {
	r.created = append(r.created, user)
	r.add(user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	u, ok := r.byID[userID]
	if !ok {
		return nil, apperror.NewNotFound("user", userID.String())
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *User) error {
	r.updated = append(r.updated, user)
	r.add(user)
	return nil
}

func (r *fakeUserRepo) ExistsEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[NormalizeEmail(email)]
	return ok, nil
}

type fakeProfileRepo struct {
	byUserID map[id.ID]*Profile
	created  []*Profile
	updated  []*Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUserID: make(map[id.ID]*Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *Profile) error {
	r.created = append(r.created, profile)
	r.byUserID[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID id.ID) (*Profile, error) {
	p, ok := r.byUserID[userID]
	if !ok {
		return nil, apperror.NewNotFound("profile", userID.String())
	}
	return p, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *Profile) error {
	r.updated = append(r.updated, profile)
	r.byUserID[profile.UserID] = profile
	return nil
}

type fakeDocumentStore struct {
	saved   []string
	removed []string
}

func (s *fakeDocumentStore) Save(_ context.Context, userID id.ID, kind string, _ *Upload) (string, error) {
	path := userID.String() + "/" + kind + ".pdf"
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *fakeDocumentStore) Remove(_ context.Context, path string) error {
	s.removed = append(s.removed, path)
	return nil
}

func pdfUpload() *Upload {
	return &Upload{Filename: "license.pdf", Size: 1024, Data: []byte("%PDF-")}
}

func newTestService(users *fakeUserRepo, profiles *fakeProfileRepo, docs *fakeDocumentStore) *Service {
	return NewService(users, profiles, docs, fakeTxManager{},
		NewJWTService(DefaultJWTConfig("test-secret")), DefaultServiceConfig())
}

func validRegister() RegisterRequest {
	return RegisterRequest{
		FullName:    "Asha Pharmacist",
		Email:       "Asha@Pharmacy.example",
		Password:    "s3cret-password",
		Phone:       "+1-555-0100",
		Address:     "12 High Street",
		DrugLicense: pdfUpload(),
	}
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name    string
		upload  *Upload
		wantErr bool
	}{
		{"nil", nil, true},
		{"pdf", &Upload{Filename: "doc.pdf", Size: 100}, false},
		{"jpg", &Upload{Filename: "scan.jpg", Size: 100}, false},
		{"uppercase ext", &Upload{Filename: "scan.JPEG", Size: 100}, false},
		{"png", &Upload{Filename: "scan.png", Size: 100}, false},
		{"exe", &Upload{Filename: "virus.exe", Size: 100}, true},
		{"no extension", &Upload{Filename: "document", Size: 100}, true},
		{"at size limit", &Upload{Filename: "doc.pdf", Size: MaxUploadSize}, false},
		{"over size limit", &Upload{Filename: "doc.pdf", Size: MaxUploadSize + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload("drug_license_file", tt.upload)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	docs := &fakeDocumentStore{}
	svc := newTestService(users, profiles, docs)

	user, profile, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	assert.Equal(t, "asha@pharmacy.example", user.Email)
	assert.True(t, user.IsActive)
	assert.Equal(t, "Asha Pharmacist", profile.FullName)
	assert.Equal(t, user.ID, profile.UserID)
	assert.NotEmpty(t, profile.DrugLicenseFile)

	require.Len(t, users.created, 1)
	require.Len(t, profiles.created, 1)
	require.Len(t, docs.saved, 1)

	// Password is stored hashed
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-password")))
}

func TestRegister_ValidationFailures(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), newFakeProfileRepo(), &fakeDocumentStore{})

	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
	}{
		{"blank full name", func(r *RegisterRequest) { r.FullName = "   " }},
		{"empty email", func(r *RegisterRequest) { r.Email = "" }},
		{"malformed email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }},
		{"missing license", func(r *RegisterRequest) { r.DrugLicense = nil }},
		{"bad license type", func(r *RegisterRequest) { r.DrugLicense = &Upload{Filename: "x.exe", Size: 10} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(&req)
			_, _, err := svc.Register(context.Background(), req)
			assert.Error(t, err)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	users.add(NewUser("asha@pharmacy.example", "hash"))
	svc := newTestService(users, newFakeProfileRepo(), &fakeDocumentStore{})

	_, _, err := svc.Register(context.Background(), validRegister())
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicate(err))
}

func TestRegister_RollbackRemovesDocument(t *testing.T) {
	docs := &fakeDocumentStore{}
	svc := NewService(newFakeUserRepo(), newFakeProfileRepo(), docs,
		fakeTxManager{err: errors.New("db down")},
		NewJWTService(DefaultJWTConfig("test-secret")), DefaultServiceConfig())

	_, _, err := svc.Register(context.Background(), validRegister())
	require.Error(t, err)

	require.Len(t, docs.saved, 1)
	assert.Equal(t, docs.saved, docs.removed)
}

func registeredUser(t *testing.T, users *fakeUserRepo, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := NewUser("asha@pharmacy.example", string(hash))
	users.add(u)
	return u
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepo()
	user := registeredUser(t, users, "s3cret-password")
	svc := newTestService(users, newFakeProfileRepo(), &fakeDocumentStore{})

	token, got, err := svc.Login(context.Background(), Credentials{
		Email:    "  ASHA@pharmacy.example ",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.NotEmpty(t, token.Token)

	// The token round-trips through validation.
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	uc, err := jwtSvc.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
}

func TestLogin_GenericFailureMessage(t *testing.T) {
	users := newFakeUserRepo()
	registeredUser(t, users, "s3cret-password")
	svc := newTestService(users, newFakeProfileRepo(), &fakeDocumentStore{})

	tests := []struct {
		name  string
		creds Credentials
	}{
		{"unknown email", Credentials{Email: "nobody@pharmacy.example", Password: "s3cret-password"}},
		{"wrong password", Credentials{Email: "asha@pharmacy.example", Password: "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tt.creds)
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
			assert.Equal(t, "invalid credentials", appErr.Message)
		})
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	users := newFakeUserRepo()
	user := registeredUser(t, users, "s3cret-password")
	user.IsActive = false
	svc := newTestService(users, newFakeProfileRepo(), &fakeDocumentStore{})

	_, _, err := svc.Login(context.Background(), Credentials{
		Email:    "asha@pharmacy.example",
		Password: "s3cret-password",
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestChangePassword(t *testing.T) {
	users := newFakeUserRepo()
	user := registeredUser(t, users, "old-password-1")
	svc := newTestService(users, newFakeProfileRepo(), &fakeDocumentStore{})
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		OldPassword: "old-password-1",
		NewPassword: "new-password-2",
	})
	require.NoError(t, err)
	require.Len(t, users.updated, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password-2")))

	err = svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "another-password",
	})
	assert.Error(t, err)

	err = svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		OldPassword: "new-password-2",
		NewPassword: "short",
	})
	assert.Error(t, err)
}

func TestUpdateProfile_ReplacesDocuments(t *testing.T) {
	users := newFakeUserRepo()
	user := registeredUser(t, users, "s3cret-password")
	profiles := newFakeProfileRepo()
	profile := NewProfile(user.ID, "Asha Pharmacist")
	profile.DrugLicenseFile = "old/license.pdf"
	require.NoError(t, profiles.Create(context.Background(), profile))

	docs := &fakeDocumentStore{}
	svc := newTestService(users, profiles, docs)

	upd := ProfileUpdate{
		FullName:    "Asha P.",
		Phone:       "+1-555-0200",
		GovIDType:   "passport",
		GovID:       &Upload{Filename: "passport.jpg", Size: 100},
		DrugLicense: pdfUpload(),
	}

	got, err := svc.UpdateProfile(context.Background(), user.ID, upd)
	require.NoError(t, err)

	assert.Equal(t, "Asha P.", got.FullName)
	assert.Equal(t, "passport", got.GovIDType)
	assert.NotEmpty(t, got.GovIDFile)
	assert.NotEqual(t, "old/license.pdf", got.DrugLicenseFile)

	// The replaced license is cleaned up, the new files stay.
	assert.Equal(t, []string{"old/license.pdf"}, docs.removed)
	assert.Len(t, docs.saved, 2)
}
