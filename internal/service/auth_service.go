package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/ws"
	"go-inventory-ledger/pkg/jwt"
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ResetPassword(req *ResetPasswordRequest) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	Authenticate(tokenString string) (*model.User, *jwt.Claims, error)
	Heartbeat(userID uuid.UUID) error
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type TokenValidationResponse struct {
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type AuthOptions struct {
	// IdleTimeout ends a session when no heartbeat arrived for this long. Zero disables the check.
	IdleTimeout time.Duration
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	wsHub    *ws.Hub
	log      *zap.Logger
	opts     AuthOptions
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, hub *ws.Hub, log *zap.Logger, opts AuthOptions) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		wsHub:    hub,
		log:      log.Named("auth"),
		opts:     opts,
		now:      time.Now,
	}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// A new token version invalidates every token issued before this login.
	now := s.now()
	user.TokenVersion = uuid.New().String()
	user.LastSeenAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.FullName, user.RoleCode(), user.PrivilegeCodes(), user.TokenVersion)
	if err != nil {
		return nil, err
	}
	s.log.Info("user logged in", zap.String("user_id", user.ID.String()))

	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.PrivilegeCodes(),
	}, nil
}

func (s *authService) ResetPassword(req *ResetPasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}
	if !user.CheckPassword(req.OldPassword) {
		return ErrWrongPassword
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	// Existing sessions end with the old password.
	user.TokenVersion = uuid.New().String()
	return s.userRepo.Update(user)
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	user, _, err := s.Authenticate(tokenString)
	if err != nil {
		return nil, err
	}
	if s.opts.IdleTimeout > 0 {
		if user.LastSeenAt == nil || s.now().Sub(*user.LastSeenAt) > s.opts.IdleTimeout {
			return nil, ErrSessionTimeout
		}
	}
	return &TokenValidationResponse{
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.PrivilegeCodes(),
	}, nil
}

// Authenticate checks the token and the single-session version. The idle timeout is
// enforced by ValidateToken, which clients call when they resume.
func (s *authService) Authenticate(tokenString string) (*model.User, *jwt.Claims, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.userRepo.FindByID(claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrUserNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, ErrUserInactive
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, nil, ErrSessionReplaced
	}
	return user, claims, nil
}

func (s *authService) Heartbeat(userID uuid.UUID) error {
	now := s.now()
	if err := s.userRepo.UpdateLastSeen(userID, now); err != nil {
		return notFound(err, ErrUserNotFound)
	}

	s.wsHub.Publish(ws.UserStatusEvent{
		Type:       ws.TypeUserStatusUpdate,
		UserID:     userID.String(),
		Status:     "online",
		LastSeenAt: now,
	})
	return nil
}
