package report

import (
	"context"

	"github.com/ecovia/carbon-market-api/internal/domain"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
	"github.com/ecovia/carbon-market-api/internal/domain/repository"
)

// CertificateGenerator genera el certificado PDF de créditos de carbono.
// Implementado por infrastructure/pdf (Maroto v2).
type CertificateGenerator interface {
	GenerateCreditCertificate(ctx context.Context, org *entity.Organization) ([]byte, error)
}

// UseCase certificado de créditos de una organización.
type UseCase struct {
	orgRepo   repository.OrganizationRepository
	generator CertificateGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(orgRepo repository.OrganizationRepository, generator CertificateGenerator) *UseCase {
	return &UseCase{orgRepo: orgRepo, generator: generator}
}

// CreditCertificate genera el PDF del certificado. Solo el system_admin o un
// org_admin de la misma organización pueden solicitarlo.
func (uc *UseCase) CreditCertificate(ctx context.Context, actorRole, actorOrgID, orgID string) ([]byte, error) {
	if actorRole != entity.RoleSystemAdmin && actorOrgID != orgID {
		return nil, domain.ErrForbidden
	}
	org, err := uc.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	if org.Status != entity.OrgStatusApproved {
		return nil, domain.ErrInvalidOrganization
	}
	return uc.generator.GenerateCreditCertificate(ctx, org)
}
