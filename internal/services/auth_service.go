package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/bettermespace/backend/internal/config"
	"github.com/bettermespace/backend/internal/dto"
	"github.com/bettermespace/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidFormat   = errors.New("account must be a valid phone number or email")
	ErrWeakPassword    = errors.New("password must be at least 8 characters and contain a letter and a digit")
	ErrAccountTaken    = errors.New("account already registered")
	ErrAccountNotFound = errors.New("account not found")
	ErrBadPassword     = errors.New("incorrect password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid or expired token")
)

// HandleKind classifies an account handle by format. Phone and email are
// mutually exclusive; a handle matching neither pattern is rejected.
type HandleKind int

const (
	HandleInvalid HandleKind = iota
	HandlePhone
	HandleEmail
)

var (
	phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	letterRe     = regexp.MustCompile(`[a-zA-Z]`)
	digitRe      = regexp.MustCompile(`\d`)
)

func ClassifyAccount(account string) HandleKind {
	if phonePattern.MatchString(account) {
		return HandlePhone
	}
	if emailPattern.MatchString(account) {
		return HandleEmail
	}
	return HandleInvalid
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	if !letterRe.MatchString(password) || !digitRe.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	kind := ClassifyAccount(req.Account)
	if kind == HandleInvalid {
		return nil, ErrInvalidFormat
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	var existing models.User
	err := s.db.Where(handleColumn(kind)+" = ?", req.Account).First(&existing).Error
	if err == nil {
		return nil, ErrAccountTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		PasswordHash: string(hash),
		Role:         "user",
	}
	if kind == HandlePhone {
		user.Phone = &req.Account
	} else {
		user.Email = &req.Account
	}

	if err := s.db.Create(&user).Error; err != nil {
		// Two concurrent registrations can both pass the probe; the unique
		// index decides the winner.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAccountTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: UserView(&user), Token: token}, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	kind := ClassifyAccount(req.Account)
	if kind == HandleInvalid {
		return nil, ErrAccountNotFound
	}

	var user models.User
	if err := s.db.Where(handleColumn(kind)+" = ?", req.Account).First(&user).Error; err != nil {
		return nil, ErrAccountNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrBadPassword
	}

	// Fresh token with its own expiry window; earlier tokens stay valid.
	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: UserView(&user), Token: token}, nil
}

func (s *AuthService) GetByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Nickname != nil {
		updates["nickname"] = *req.Nickname
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
	return user, nil
}

// IssueToken signs a 30-day bearer token carrying the account id. Tokens are
// stateless and never revoked.
func (s *AuthService) IssueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.JWTExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseUserID verifies an HS256 bearer token and extracts the account id.
// Malformed, expired and tampered tokens all come back as ErrInvalidToken.
func ParseUserID(secret, tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

func UserView(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Account:   u.Account(),
		Nickname:  u.Nickname,
		Avatar:    u.Avatar,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func handleColumn(kind HandleKind) string {
	if kind == HandlePhone {
		return "phone"
	}
	return "email"
}
