package services

import (
	"context"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/models"
	"github.com/amirhodzic/snapvision-backend/pkg/logger"
)

// identityASClient is the password-grant surface of the identity provider.
type identityASClient interface {
	SignInWithPassword(ctx context.Context, email, password string) (dto.Session, error)
}

// firebaseASClient is the Admin SDK surface the auth service needs.
type firebaseASClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
}

type userASStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpsertUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type authService struct {
	identity identityASClient
	firebase firebaseASClient
	users    userASStore
}

func NewAuthService(identity identityASClient, firebase firebaseASClient, users userASStore) *authService {
	return &authService{
		identity: identity,
		firebase: firebase,
		users:    users,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (dto.Session, error) {
	if email == "" || password == "" {
		return dto.Session{}, errs.NewValidationError("email and password are required")
	}

	session, err := s.identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		return dto.Session{}, err
	}

	log := logger.FromContext(ctx)
	log.Info("user logged in", "uid", session.UID)
	return session, nil
}

// Register writes the directory row and, when no uid was supplied, creates the
// provider account first. It ends with a password sign-in so the caller gets a
// session in the same round trip.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, dto.Session, error) {
	if req.Email == "" || req.Password == "" || req.Username == "" || req.FullName == "" {
		return nil, dto.Session{}, errs.NewValidationError("email, password, fullName and username are required")
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, dto.Session{}, errs.NewValidationError("role must be USER or ADMIN")
	}

	uid := req.UID
	if uid == "" {
		record, err := s.firebase.CreateUser(ctx, (&auth.UserToCreate{}).
			Email(req.Email).
			Password(req.Password).
			DisplayName(req.FullName).
			Disabled(req.Disabled))
		if err != nil {
			return nil, dto.Session{}, errs.NewUpstreamError("identity provider", 0, err.Error())
		}
		uid = record.UID
	}

	user := &models.User{
		UID:      uid,
		Email:    req.Email,
		FullName: req.FullName,
		Username: req.Username,
		Role:     role,
		Disabled: req.Disabled,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, dto.Session{}, err
	}

	session, err := s.identity.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		return nil, dto.Session{}, err
	}

	log := logger.FromContext(ctx)
	log.Info("user registered", "uid", uid, "username", req.Username)
	return user, session, nil
}

// GoogleLogin verifies a federated id token and upserts the directory row on
// first sight.
func (s *authService) GoogleLogin(ctx context.Context, idToken string) (*models.User, error) {
	if idToken == "" {
		return nil, errs.NewValidationError("idToken is required")
	}

	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return nil, errs.NewAuthenticationError(errs.CodeExpiredToken, "token has expired")
		}
		return nil, errs.NewAuthenticationError(errs.CodeInvalidToken, "invalid token")
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	user, err := s.users.GetUser(ctx, token.UID)
	switch err.(type) {
	case nil:
		return user, nil
	case *errs.NotFoundError:
		// first federated login
	default:
		return nil, err
	}

	user = &models.User{
		UID:      token.UID,
		Email:    email,
		FullName: name,
		Username: usernameFromEmail(email),
		Role:     models.RoleUser,
		Disabled: false,
	}
	if err := s.users.UpsertUser(ctx, user); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("federated user created", "uid", token.UID)
	return user, nil
}

func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
