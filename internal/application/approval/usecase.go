package approval

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecovia/carbon-market-api/internal/application/dto"
	"github.com/ecovia/carbon-market-api/internal/domain"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
	"github.com/ecovia/carbon-market-api/internal/domain/repository"
)

// TxRunner ejecuta el callback dentro de una transacción con repos de
// organizaciones y usuarios atados a la misma transacción.
type TxRunner interface {
	RunApproval(ctx context.Context, fn func(
		orgRepo repository.OrganizationRepository,
		userRepo repository.UserRepository,
	) error) error
}

// UseCase flujo de alta y aprobación de organizaciones.
// pending -> approved | rejected, exactamente una vez; solo system_admin decide.
type UseCase struct {
	txRunner TxRunner
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{txRunner: txRunner, orgRepo: orgRepo, userRepo: userRepo}
}

// RegisterOrganization crea una organización en estado pending con el saldo
// virtual inicial y cero créditos.
func (uc *UseCase) RegisterOrganization(ctx context.Context, in dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if in.Name == "" || in.Address == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	org := &entity.Organization{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Description:    in.Description,
		Address:        in.Address,
		VirtualBalance: entity.InitialVirtualBalance,
		TotalCredits:   decimal.Zero,
		Status:         entity.OrgStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	return ToOrganizationResponse(org), nil
}

// List devuelve todas las organizaciones (panel del system_admin).
func (uc *UseCase) List(ctx context.Context) ([]*dto.OrganizationResponse, error) {
	orgs, err := uc.orgRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrganizationResponse, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, ToOrganizationResponse(o))
	}
	return out, nil
}

// GetByID devuelve una organización por su ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OrganizationResponse, error) {
	org, err := uc.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return ToOrganizationResponse(org), nil
}

// Approve transiciona pending -> approved y, en la misma transacción, aprueba
// a los org_admin pendientes de esa organización (su alta está atada 1:1 al
// registro de la organización). Una organización ya decidida devuelve
// ErrAlreadyDecided.
func (uc *UseCase) Approve(ctx context.Context, orgID string) (*dto.OrganizationResponse, error) {
	var approved *entity.Organization
	err := uc.txRunner.RunApproval(ctx, func(
		orgRepo repository.OrganizationRepository,
		userRepo repository.UserRepository,
	) error {
		org, err := orgRepo.GetForUpdate(ctx, orgID)
		if err != nil {
			return err
		}
		if org == nil {
			return domain.ErrNotFound
		}
		if org.Status != entity.OrgStatusPending {
			return domain.ErrAlreadyDecided
		}
		if err := orgRepo.UpdateStatus(ctx, org.ID, entity.OrgStatusApproved, ""); err != nil {
			return err
		}
		users, err := userRepo.ListByOrganization(ctx, org.ID)
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Role == entity.RoleOrgAdmin && u.Status == entity.UserStatusPending {
				u.Status = entity.UserStatusApproved
				u.UpdatedAt = time.Now()
				if err := userRepo.Update(ctx, u); err != nil {
					return err
				}
			}
		}
		org.Status = entity.OrgStatusApproved
		approved = org
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToOrganizationResponse(approved), nil
}

// Reject transiciona pending -> rejected con razón obligatoria. No cambia el
// estado de los usuarios de la organización.
func (uc *UseCase) Reject(ctx context.Context, orgID, reason string) (*dto.OrganizationResponse, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var rejected *entity.Organization
	err := uc.txRunner.RunApproval(ctx, func(
		orgRepo repository.OrganizationRepository,
		_ repository.UserRepository,
	) error {
		org, err := orgRepo.GetForUpdate(ctx, orgID)
		if err != nil {
			return err
		}
		if org == nil {
			return domain.ErrNotFound
		}
		if org.Status != entity.OrgStatusPending {
			return domain.ErrAlreadyDecided
		}
		if err := orgRepo.UpdateStatus(ctx, org.ID, entity.OrgStatusRejected, reason); err != nil {
			return err
		}
		org.Status = entity.OrgStatusRejected
		org.RejectionReason = reason
		rejected = org
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToOrganizationResponse(rejected), nil
}

// ApproveEmployee aprueba a un usuario de la organización del actor (org_admin).
func (uc *UseCase) ApproveEmployee(ctx context.Context, actorOrgID, targetUserID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if actorOrgID == "" || user.OrganizationID != actorOrgID {
		return nil, domain.ErrForbidden
	}
	if user.Status != entity.UserStatusApproved {
		user.Status = entity.UserStatusApproved
		user.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return toUserResponse(user), nil
}

// ToOrganizationResponse mapea la entidad al DTO público con montos como string decimal.
func ToOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	if o == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:              o.ID,
		Name:            o.Name,
		Description:     o.Description,
		Address:         o.Address,
		VirtualBalance:  o.VirtualBalance.String(),
		TotalCredits:    o.TotalCredits.String(),
		Status:          o.Status,
		RejectionReason: o.RejectionReason,
		CreatedAt:       o.CreatedAt,
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
