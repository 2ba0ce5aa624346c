package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecovia/carbon-market-api/internal/application/dto"
	"github.com/ecovia/carbon-market-api/internal/domain"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
	"github.com/ecovia/carbon-market-api/internal/domain/repository"
	"github.com/ecovia/carbon-market-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// maxCommuteDistance límite de sanidad para la distancia de ida (millas).
var maxCommuteDistance = decimal.NewFromInt(1000)

// AuthUseCase casos de uso de autenticación: registro, login y seed del admin.
type AuthUseCase struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, orgRepo: orgRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario org_admin o employee en estado pending.
// Hashea el password con bcrypt. Devuelve ErrUsernameAlreadyExists si el
// username ya existe y ErrInvalidOrganization si la organización indicada no existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Username == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	if in.Role != entity.RoleOrgAdmin && in.Role != entity.RoleEmployee {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameAlreadyExists
	}
	if in.OrganizationID != "" {
		org, err := uc.orgRepo.GetByID(ctx, in.OrganizationID)
		if err != nil {
			return nil, err
		}
		if org == nil {
			return nil, domain.ErrInvalidOrganization
		}
	}
	var distance *decimal.Decimal
	if in.CommuteDistance != "" {
		d, err := parseDistance(in.CommuteDistance)
		if err != nil {
			return nil, err
		}
		distance = d
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Username
	}
	user := &entity.User{
		ID:              uuid.New().String(),
		Username:        in.Username,
		PasswordHash:    string(hash),
		Name:            name,
		Role:            in.Role,
		OrganizationID:  in.OrganizationID,
		CommuteDistance: distance,
		Status:          entity.UserStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.OrganizationID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// SetCommuteDistance fija la distancia de ida del usuario, una sola vez.
// Devuelve ErrDistanceAlreadySet si ya estaba configurada.
func (uc *AuthUseCase) SetCommuteDistance(ctx context.Context, userID, distanceStr string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.CommuteDistance != nil {
		return nil, domain.ErrDistanceAlreadySet
	}
	distance, err := parseDistance(distanceStr)
	if err != nil {
		return nil, err
	}
	user.CommuteDistance = distance
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// EnsureSystemAdmin crea el system_admin inicial si el username no existe todavía.
// Se invoca al arrancar la aplicación con las credenciales de configuración.
func (uc *AuthUseCase) EnsureSystemAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         "System Admin",
		Role:         entity.RoleSystemAdmin,
		Status:       entity.UserStatusApproved,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return uc.userRepo.Create(ctx, admin)
}

// parseDistance valida y parsea la distancia de ida: positiva y dentro del límite.
func parseDistance(s string) (*decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if d.LessThanOrEqual(decimal.Zero) || d.GreaterThan(maxCommuteDistance) {
		return nil, domain.ErrInvalidInput
	}
	return &d, nil
}

// ToUserResponse mapea la entidad al DTO público (sin password hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	resp := &dto.UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
		Status:         u.Status,
		CreatedAt:      u.CreatedAt,
	}
	if u.CommuteDistance != nil {
		resp.CommuteDistance = u.CommuteDistance.String()
	}
	return resp
}
