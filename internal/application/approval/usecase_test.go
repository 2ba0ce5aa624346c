package approval_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecovia/carbon-market-api/internal/application/approval"
	"github.com/ecovia/carbon-market-api/internal/application/dto"
	"github.com/ecovia/carbon-market-api/internal/domain"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
	"github.com/ecovia/carbon-market-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type approvalFixture struct {
	store *memory.Store
	uc    *approval.UseCase
}

func newApprovalFixture(t *testing.T) *approvalFixture {
	t.Helper()
	store := memory.NewStore()
	return &approvalFixture{
		store: store,
		uc: approval.NewUseCase(
			memory.NewTxRunner(store),
			memory.NewOrganizationRepository(store),
			memory.NewUserRepository(store),
		),
	}
}

func (f *approvalFixture) registerOrg(t *testing.T) *dto.OrganizationResponse {
	t.Helper()
	org, err := f.uc.RegisterOrganization(context.Background(), dto.CreateOrganizationRequest{
		Name:    "EcoCorp " + uuid.New().String()[:8],
		Address: "Carrera 7 # 71-21",
	})
	require.NoError(t, err)
	return org
}

func (f *approvalFixture) seedUser(t *testing.T, orgID, role, status string) string {
	t.Helper()
	now := time.Now()
	u := &entity.User{
		ID:             uuid.New().String(),
		Username:       "user-" + uuid.New().String()[:8],
		PasswordHash:   "x",
		Name:           "Test User",
		Role:           role,
		OrganizationID: orgID,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, memory.NewUserRepository(f.store).Create(context.Background(), u))
	return u.ID
}

func (f *approvalFixture) getUser(t *testing.T, id string) *entity.User {
	t.Helper()
	u, err := memory.NewUserRepository(f.store).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterOrganization
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterOrganization_QuedaPendingConSaldoInicial(t *testing.T) {
	f := newApprovalFixture(t)
	org := f.registerOrg(t)

	assert.Equal(t, entity.OrgStatusPending, org.Status)
	assert.Equal(t, entity.InitialVirtualBalance.String(), org.VirtualBalance)
	assert.Equal(t, decimal.Zero.String(), org.TotalCredits)
}

func TestRegisterOrganization_NombreYDireccionRequeridos(t *testing.T) {
	f := newApprovalFixture(t)
	_, err := f.uc.RegisterOrganization(context.Background(), dto.CreateOrganizationRequest{Name: "Sin dirección"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve / Reject — decisión única
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_TransicionaYApruebaOrgAdmins(t *testing.T) {
	f := newApprovalFixture(t)
	org := f.registerOrg(t)
	adminID := f.seedUser(t, org.ID, entity.RoleOrgAdmin, entity.UserStatusPending)
	employeeID := f.seedUser(t, org.ID, entity.RoleEmployee, entity.UserStatusPending)

	out, err := f.uc.Approve(context.Background(), org.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrgStatusApproved, out.Status)

	// El org_admin pendiente se aprueba junto con la organización;
	// los empleados siguen pendientes (los aprueba el org_admin).
	assert.Equal(t, entity.UserStatusApproved, f.getUser(t, adminID).Status)
	assert.Equal(t, entity.UserStatusPending, f.getUser(t, employeeID).Status)
}

func TestApprove_SegundaDecisionRechazada(t *testing.T) {
	f := newApprovalFixture(t)
	org := f.registerOrg(t)

	_, err := f.uc.Approve(context.Background(), org.ID)
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), org.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)

	_, err = f.uc.Reject(context.Background(), org.ID, "tarde")
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
}

func TestApprove_OrganizacionInexistente(t *testing.T) {
	f := newApprovalFixture(t)
	_, err := f.uc.Approve(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReject_RequiereRazonYLaPersiste(t *testing.T) {
	f := newApprovalFixture(t)
	org := f.registerOrg(t)

	_, err := f.uc.Reject(context.Background(), org.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.uc.Reject(context.Background(), org.ID, "documentación incompleta")
	require.NoError(t, err)
	assert.Equal(t, entity.OrgStatusRejected, out.Status)
	assert.Equal(t, "documentación incompleta", out.RejectionReason)
}

func TestReject_NoCambiaUsuarios(t *testing.T) {
	f := newApprovalFixture(t)
	org := f.registerOrg(t)
	adminID := f.seedUser(t, org.ID, entity.RoleOrgAdmin, entity.UserStatusPending)

	_, err := f.uc.Reject(context.Background(), org.ID, "no aplica")
	require.NoError(t, err)

	assert.Equal(t, entity.UserStatusPending, f.getUser(t, adminID).Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// ApproveEmployee
// ──────────────────────────────────────────────────────────────────────────────

func TestApproveEmployee_DeLaPropiaOrganizacion(t *testing.T) {
	f := newApprovalFixture(t)
	org := f.registerOrg(t)
	employeeID := f.seedUser(t, org.ID, entity.RoleEmployee, entity.UserStatusPending)

	out, err := f.uc.ApproveEmployee(context.Background(), org.ID, employeeID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusApproved, out.Status)
}

func TestApproveEmployee_DeOtraOrganizacion_Forbidden(t *testing.T) {
	f := newApprovalFixture(t)
	orgA := f.registerOrg(t)
	orgB := f.registerOrg(t)
	employeeID := f.seedUser(t, orgB.ID, entity.RoleEmployee, entity.UserStatusPending)

	_, err := f.uc.ApproveEmployee(context.Background(), orgA.ID, employeeID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestApproveEmployee_UsuarioInexistente(t *testing.T) {
	f := newApprovalFixture(t)
	org := f.registerOrg(t)
	_, err := f.uc.ApproveEmployee(context.Background(), org.ID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
