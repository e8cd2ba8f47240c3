package services

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"

	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/models"
	"github.com/amirhodzic/snapvision-backend/pkg/helpers"
)

type stubIdentityClient struct {
	calls    int
	email    string
	password string
	session  dto.Session
	err      error
}

func (s *stubIdentityClient) SignInWithPassword(_ context.Context, email, password string) (dto.Session, error) {
	s.calls++
	s.email = email
	s.password = password
	return s.session, s.err
}

type stubFirebaseClient struct {
	token     *auth.Token
	verifyErr error

	created   *auth.UserToCreate
	createUID string
	createErr error
}

func (s *stubFirebaseClient) VerifyIDToken(_ context.Context, _ string) (*auth.Token, error) {
	return s.token, s.verifyErr
}

func (s *stubFirebaseClient) CreateUser(_ context.Context, user *auth.UserToCreate) (*auth.UserRecord, error) {
	s.created = user
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: s.createUID}}, nil
}

type stubRegistryStore struct {
	created  *models.User
	upserted *models.User
	existing *models.User
}

func (s *stubRegistryStore) CreateUser(_ context.Context, user *models.User) error {
	s.created = user
	return nil
}

func (s *stubRegistryStore) UpsertUser(_ context.Context, user *models.User) error {
	s.upserted = user
	return nil
}

func (s *stubRegistryStore) GetUser(_ context.Context, uid string) (*models.User, error) {
	if s.existing != nil && s.existing.UID == uid {
		return s.existing, nil
	}
	return nil, errs.NewNotFoundError("user not found")
}

func TestAuthServiceLoginValidation(t *testing.T) {
	identity := &stubIdentityClient{}
	svc := NewAuthService(identity, &stubFirebaseClient{}, &stubRegistryStore{})

	_, err := svc.Login(helpers.TestCtx(), "", "secret")

	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if identity.calls != 0 {
		t.Fatalf("provider must not be called with empty credentials")
	}
}

func TestAuthServiceLogin(t *testing.T) {
	identity := &stubIdentityClient{session: dto.Session{IDToken: "tok", UID: "uid-1"}}
	svc := NewAuthService(identity, &stubFirebaseClient{}, &stubRegistryStore{})

	session, err := svc.Login(helpers.TestCtx(), "jane@example.com", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.IDToken != "tok" || session.UID != "uid-1" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if identity.email != "jane@example.com" {
		t.Fatalf("provider received wrong email: %s", identity.email)
	}
}

func TestAuthServiceLoginProviderRejection(t *testing.T) {
	identity := &stubIdentityClient{err: errs.NewUpstreamError("identity provider", 400, "INVALID_PASSWORD")}
	svc := NewAuthService(identity, &stubFirebaseClient{}, &stubRegistryStore{})

	_, err := svc.Login(helpers.TestCtx(), "jane@example.com", "wrong")

	var uerr *errs.UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if uerr.Status != 400 {
		t.Fatalf("provider status not preserved: %d", uerr.Status)
	}
}

func TestAuthServiceRegisterDefaults(t *testing.T) {
	identity := &stubIdentityClient{session: dto.Session{IDToken: "tok"}}
	store := &stubRegistryStore{}
	svc := NewAuthService(identity, &stubFirebaseClient{}, store)

	user, session, err := svc.Register(helpers.TestCtx(), dto.RegisterRequest{
		UID:      "uid-7",
		Email:    "jane@example.com",
		FullName: "Jane Doe",
		Username: "jane",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if user.Role != models.RoleUser {
		t.Fatalf("role should default to USER, got %s", user.Role)
	}
	if user.Disabled {
		t.Fatalf("disabled should default to false")
	}
	if store.created == nil || store.created.UID != "uid-7" {
		t.Fatalf("directory row not created: %+v", store.created)
	}
	if session.IDToken != "tok" {
		t.Fatalf("registration did not sign the user in")
	}
}

func TestAuthServiceRegisterCreatesProviderAccount(t *testing.T) {
	identity := &stubIdentityClient{session: dto.Session{IDToken: "tok"}}
	firebase := &stubFirebaseClient{createUID: "generated-uid"}
	store := &stubRegistryStore{}
	svc := NewAuthService(identity, firebase, store)

	user, _, err := svc.Register(helpers.TestCtx(), dto.RegisterRequest{
		Email:    "jane@example.com",
		FullName: "Jane Doe",
		Username: "jane",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if firebase.created == nil {
		t.Fatalf("provider account should be created when no uid supplied")
	}
	if user.UID != "generated-uid" {
		t.Fatalf("uid should come from the provider, got %s", user.UID)
	}
}

func TestAuthServiceRegisterInvalidRole(t *testing.T) {
	svc := NewAuthService(&stubIdentityClient{}, &stubFirebaseClient{}, &stubRegistryStore{})

	_, _, err := svc.Register(helpers.TestCtx(), dto.RegisterRequest{
		UID:      "uid-7",
		Email:    "jane@example.com",
		FullName: "Jane Doe",
		Username: "jane",
		Password: "secret",
		Role:     "ROOT",
	})

	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for bad role, got %v", err)
	}
}

func TestAuthServiceGoogleLoginFirstSight(t *testing.T) {
	firebase := &stubFirebaseClient{token: &auth.Token{
		UID: "uid-g",
		Claims: map[string]any{
			"email": "greta@example.com",
			"name":  "Greta G",
		},
	}}
	store := &stubRegistryStore{}
	svc := NewAuthService(&stubIdentityClient{}, firebase, store)

	user, err := svc.GoogleLogin(helpers.TestCtx(), "google-token")
	if err != nil {
		t.Fatalf("GoogleLogin returned error: %v", err)
	}

	if store.upserted == nil {
		t.Fatalf("first federated login should upsert the directory row")
	}
	if user.Username != "greta" {
		t.Fatalf("username should be the email local part, got %s", user.Username)
	}
	if user.Role != models.RoleUser || user.Disabled {
		t.Fatalf("unexpected defaults: %+v", user)
	}
}

func TestAuthServiceGoogleLoginExistingUser(t *testing.T) {
	existing := &models.User{UID: "uid-g", Username: "greta", Role: models.RoleUser}
	firebase := &stubFirebaseClient{token: &auth.Token{UID: "uid-g", Claims: map[string]any{}}}
	store := &stubRegistryStore{existing: existing}
	svc := NewAuthService(&stubIdentityClient{}, firebase, store)

	user, err := svc.GoogleLogin(helpers.TestCtx(), "google-token")
	if err != nil {
		t.Fatalf("GoogleLogin returned error: %v", err)
	}
	if store.upserted != nil {
		t.Fatalf("existing user must not be overwritten")
	}
	if user.UID != "uid-g" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthServiceGoogleLoginInvalidToken(t *testing.T) {
	firebase := &stubFirebaseClient{verifyErr: errors.New("bad signature")}
	svc := NewAuthService(&stubIdentityClient{}, firebase, &stubRegistryStore{})

	_, err := svc.GoogleLogin(helpers.TestCtx(), "garbage")

	var aerr *errs.AuthenticationError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
	if aerr.Code != errs.CodeInvalidToken {
		t.Fatalf("unexpected code: %s", aerr.Code)
	}
}
