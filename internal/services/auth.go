package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/bus"
	"github.com/focusgrove/focusgrove-backend/internal/events"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/repos"
	"github.com/focusgrove/focusgrove-backend/internal/requestdata"
	"github.com/focusgrove/focusgrove-backend/internal/types"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, email, password, displayName string) (*types.User, error)
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString, refreshToken string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	profileRepo   repos.ProfileRepo
	globalStats   repos.GlobalStatisticsRepo
	workspaceRepo repos.WorkspaceRepo
	factBus       bus.Bus
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	profileRepo repos.ProfileRepo,
	globalStats repos.GlobalStatisticsRepo,
	workspaceRepo repos.WorkspaceRepo,
	factBus bus.Bus,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           baseLog.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		profileRepo:   profileRepo,
		globalStats:   globalStats,
		workspaceRepo: workspaceRepo,
		factBus:       factBus,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// RegisterUser provisions the whole account in one transaction: the user
// row, the starting gamification profile, global statistics and a personal
// workspace. Half-provisioned accounts cannot exist.
func (as *authService) RegisterUser(ctx context.Context, email, password, displayName string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apierr.InvalidArgument(fmt.Errorf("invalid email address"))
	}
	if len(password) < 8 {
		return nil, apierr.InvalidArgument(fmt.Errorf("password must be at least 8 characters"))
	}
	if displayName == "" {
		return nil, apierr.InvalidArgument(fmt.Errorf("display name is required"))
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.PreconditionFailed(fmt.Errorf("email already registered"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("hash password: %w", err))
	}

	now := time.Now().UTC()
	user := &types.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    string(hashed),
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}
		if _, err := as.profileRepo.Create(ctx, tx, types.NewGamificationProfile(user.ID, now)); err != nil {
			return err
		}
		if _, err := as.globalStats.Create(ctx, tx, &types.GlobalStatistics{
			UserID:     user.ID,
			LastActive: now,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		_, err := as.workspaceRepo.Create(ctx, tx, &types.Workspace{
			ID:         uuid.New(),
			Name:       "Personal",
			OwnerUID:   user.ID,
			IsPersonal: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	env, err := events.NewEnvelope(events.TypeUserCreated, events.UserCreatedData{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, now)
	if err == nil {
		err = as.factBus.Publish(ctx, events.TopicUserEvents, env)
	}
	if err != nil {
		// The account exists either way; the fact is informational.
		as.log.Warn("failed to publish user-created fact", "user_id", user.ID, "error", err)
	}

	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", apierr.Unauthorized(fmt.Errorf("invalid email or password"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", apierr.Unauthorized(fmt.Errorf("invalid email or password"))
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// One active refresh token per user; a new login replaces it.
		if err := as.userTokenRepo.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return err
		}
		tok, err := as.generateAccessToken(user)
		if err != nil {
			return err
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		_, err = as.userTokenRepo.Create(ctx, tx, &types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		})
		return err
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", apierr.Unauthorized(fmt.Errorf("missing refresh token"))
	}

	var accessToken, newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userTokenRepo.GetByRefreshToken(ctx, tx, rd.RefreshToken)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.Unauthorized(fmt.Errorf("unknown refresh token"))
		}
		if existing.ExpiresAt.Before(time.Now()) {
			_ = as.userTokenRepo.DeleteByUserID(ctx, tx, existing.UserID)
			return apierr.Unauthorized(fmt.Errorf("refresh token expired"))
		}
		user, err := as.userRepo.GetByID(ctx, tx, existing.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return apierr.Unauthorized(fmt.Errorf("user for refresh token no longer exists"))
		}
		tok, err := as.generateAccessToken(user)
		if err != nil {
			return err
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()
		if err := as.userTokenRepo.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return err
		}
		_, err = as.userTokenRepo.Create(ctx, tx, &types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		})
		return err
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apierr.Unauthorized(fmt.Errorf("not authenticated"))
	}
	return as.userTokenRepo.DeleteByUserID(ctx, nil, rd.UserID)
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString, refreshToken string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthorized(fmt.Errorf("missing access token"))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid or expired token"))
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid token claims"))
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid user id in token"))
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshToken,
		UserID:       userID,
	}), nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
