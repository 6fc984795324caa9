package user

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/placemarkhq/placemark/cmd/config"
	"github.com/placemarkhq/placemark/constant"
	"github.com/placemarkhq/placemark/model"
	redisrepo "github.com/placemarkhq/placemark/repository/redis"
	txrepo "github.com/placemarkhq/placemark/repository/tx"
	userrepo "github.com/placemarkhq/placemark/repository/user"
	"github.com/placemarkhq/placemark/utils/errors"
	"github.com/placemarkhq/placemark/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserApp is the auth service plus user CRUD. Validation re-resolves the
// user by id on every call: only the id embedded in a token is trusted, so
// revocations and role changes take effect immediately.
type UserApp interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.UserDTO, error)
	Authenticate(ctx context.Context, req *model.AuthRequest) (*model.AuthResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*model.Principal, error)
	Logout(ctx context.Context, tokenString string) error
	GetUser(ctx context.Context, id uint64) (*model.UserDTO, error)
	ListUsers(ctx context.Context, req model.ListRequest) (*model.PaginatedResponse[model.UserDTO], error)
	DeleteUser(ctx context.Context, id uint64) error
}

// Claims carries {id, email, admin} plus the registered claims. Subject is
// the user id, ID the revocable session jti.
type Claims struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

type UserAppImpl struct {
	config    *config.Config
	txRepo    txrepo.TxRepository
	userRepo  userrepo.UserRepository
	redisRepo redisrepo.Repository
}

func NewUserApp(config *config.Config, txRepo txrepo.TxRepository, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository) UserApp {
	return &UserAppImpl{
		config:    config,
		txRepo:    txRepo,
		userRepo:  userRepo,
		redisRepo: redisRepo,
	}
}

func (s *UserAppImpl) Signup(ctx context.Context, req *model.SignupRequest) (*model.UserDTO, error) {
	email := strings.ToLower(req.Email)

	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Email: email})
	if err != nil {
		logger.Error("[Signup] err userRepo.Get email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrEmailExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Signup] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	userEntity := &model.UserEntity{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	userEntity, err = s.userRepo.Create(ctx, userEntity)
	if err != nil {
		logger.Error("[Signup] err userRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.UserDTO{
		ID:        userEntity.ID,
		FirstName: userEntity.FirstName,
		LastName:  userEntity.LastName,
		Email:     userEntity.Email,
		Admin:     userEntity.Admin,
		CreatedAt: userEntity.CreatedAt,
	}, nil
}

// Authenticate checks credentials against the stored bcrypt hash. Wrong
// email and wrong password are indistinguishable in the result.
func (s *UserAppImpl) Authenticate(ctx context.Context, req *model.AuthRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: strings.ToLower(req.Email)})
	if err != nil {
		logger.Error("[Authenticate] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return &model.AuthResponse{Success: false}, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return &model.AuthResponse{Success: false}, nil
	}

	token, jti, err := s.generateJWT(user)
	if err != nil {
		logger.Error("[Authenticate] err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.SetSession(ctx, jti, user.ID, s.config.Auth.SessionExpTime); err != nil {
		logger.Error("[Authenticate] err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.AuthResponse{
		Success: true,
		User:    &model.Principal{ID: user.ID, Email: user.Email, Admin: user.Admin},
		Token:   token,
	}, nil
}

// ValidateToken parses a bearer or cookie token, checks the session is
// still registered, then re-resolves the user by id. Email and admin in
// the returned principal come from the store, not from the token.
func (s *UserAppImpl) ValidateToken(ctx context.Context, tokenString string) (*model.Principal, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token")
	}

	jti := claims.ID
	if jti == "" {
		return nil, fmt.Errorf("token missing jti")
	}

	redisUserID, err := s.redisRepo.GetSession(ctx, jti)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired session")
	}
	if redisUserID != userID {
		return nil, fmt.Errorf("token does not match user session")
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[ValidateToken] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, fmt.Errorf("user no longer exists")
	}

	return &model.Principal{ID: user.ID, Email: user.Email, Admin: user.Admin}, nil
}

// Logout drops the session of the presented token.
func (s *UserAppImpl) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil
	}
	if claims.ID == "" {
		return nil
	}
	return s.redisRepo.DeleteSession(ctx, claims.ID)
}

func (s *UserAppImpl) GetUser(ctx context.Context, id uint64) (*model.UserDTO, error) {
	dto, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetUser] err userRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return dto, nil
}

func (s *UserAppImpl) ListUsers(ctx context.Context, req model.ListRequest) (*model.PaginatedResponse[model.UserDTO], error) {
	res, err := s.userRepo.List(ctx, req)
	if err != nil {
		logger.Error("[ListUsers] err userRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return res, nil
}

// DeleteUser refuses to remove a user who still owns categories or
// placemarks; it never cascades. Deleting a missing id is a no-op. All of
// the user's sessions are revoked on success.
func (s *UserAppImpl) DeleteUser(ctx context.Context, id uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[DeleteUser] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	categories, placemarks, err := s.userRepo.CountOwnedTx(ctx, tx, id)
	if err != nil {
		logger.Error("[DeleteUser] count owned", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if categories > 0 {
		return errors.SetBusinessError(constant.ErrEntityInUse, constant.EntityCategory)
	}
	if placemarks > 0 {
		return errors.SetBusinessError(constant.ErrEntityInUse, constant.EntityPlaceMark)
	}

	if err := s.userRepo.DeleteTx(ctx, tx, id); err != nil {
		logger.Error("[DeleteUser] delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[DeleteUser] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if err := s.redisRepo.DeleteUserSessions(ctx, id); err != nil {
		logger.Error("[DeleteUser] revoke sessions", zap.String("error", err.Error()))
	}
	return nil
}

func (s *UserAppImpl) parseClaims(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

// generateJWT creates an HS256 token with {id, email, admin} and a jti.
func (s *UserAppImpl) generateJWT(user *model.UserEntity) (string, string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := Claims{
		Email: user.Email,
		Admin: user.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        newUUID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}
