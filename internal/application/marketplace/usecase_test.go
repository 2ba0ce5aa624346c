package marketplace_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecovia/carbon-market-api/internal/application/dto"
	"github.com/ecovia/carbon-market-api/internal/application/marketplace"
	"github.com/ecovia/carbon-market-api/internal/domain"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
	"github.com/ecovia/carbon-market-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type marketFixture struct {
	store *memory.Store
	uc    *marketplace.UseCase
}

func newMarketFixture(t *testing.T) *marketFixture {
	t.Helper()
	store := memory.NewStore()
	return &marketFixture{
		store: store,
		uc:    marketplace.NewUseCase(memory.NewTxRunner(store), memory.NewListingRepository(store)),
	}
}

// seedOrg crea una organización aprobada con el saldo y créditos indicados.
func (f *marketFixture) seedOrg(t *testing.T, balance, credits string) string {
	t.Helper()
	now := time.Now()
	org := &entity.Organization{
		ID:             uuid.New().String(),
		Name:           "Org " + uuid.New().String()[:8],
		Address:        "Calle 123",
		VirtualBalance: decimal.RequireFromString(balance),
		TotalCredits:   decimal.RequireFromString(credits),
		Status:         entity.OrgStatusApproved,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, memory.NewOrganizationRepository(f.store).Create(context.Background(), org))
	return org.ID
}

func (f *marketFixture) getOrg(t *testing.T, id string) *entity.Organization {
	t.Helper()
	org, err := memory.NewOrganizationRepository(f.store).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, org)
	return org
}

func (f *marketFixture) createListing(t *testing.T, sellerID, credits, price string) *dto.ListingResponse {
	t.Helper()
	listing, err := f.uc.CreateListing(context.Background(), sellerID, dto.CreateListingRequest{
		CreditsAmount:  credits,
		PricePerCredit: price,
	})
	require.NoError(t, err)
	return listing
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateListing — reserva de créditos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateListing_PublicaDentroDelSaldo(t *testing.T) {
	f := newMarketFixture(t)
	seller := f.seedOrg(t, "1000", "50")

	listing := f.createListing(t, seller, "30", "2")

	assert.Equal(t, seller, listing.OrganizationID)
	assert.Equal(t, entity.ListingStatusActive, listing.Status)
	assert.Equal(t, "30", listing.CreditsAmount)
}

func TestCreateListing_RechazaMontosNoPositivos(t *testing.T) {
	f := newMarketFixture(t)
	seller := f.seedOrg(t, "1000", "50")

	for _, in := range []dto.CreateListingRequest{
		{CreditsAmount: "0", PricePerCredit: "2"},
		{CreditsAmount: "-5", PricePerCredit: "2"},
		{CreditsAmount: "10", PricePerCredit: "0"},
		{CreditsAmount: "abc", PricePerCredit: "2"},
	} {
		_, err := f.uc.CreateListing(context.Background(), seller, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// Las publicaciones activas reservan créditos: la suma comprometida no puede
// superar TotalCredits del vendedor.
func TestCreateListing_ReservaCreditosDePublicacionesActivas(t *testing.T) {
	f := newMarketFixture(t)
	seller := f.seedOrg(t, "1000", "50")

	f.createListing(t, seller, "30", "2")

	// 30 ya comprometidos: quedan 20 disponibles
	_, err := f.uc.CreateListing(context.Background(), seller, dto.CreateListingRequest{
		CreditsAmount:  "25",
		PricePerCredit: "1",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientCredits)

	// 20 exactos sí caben
	f.createListing(t, seller, "20", "1")
}

func TestCreateListing_SinOrganizacion_Rechazado(t *testing.T) {
	f := newMarketFixture(t)
	_, err := f.uc.CreateListing(context.Background(), "", dto.CreateListingRequest{
		CreditsAmount:  "10",
		PricePerCredit: "1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOrganization)
}

// ──────────────────────────────────────────────────────────────────────────────
// SettleTrade — liquidación atómica
// ──────────────────────────────────────────────────────────────────────────────

func TestSettleTrade_MueveCreditosYMoneda(t *testing.T) {
	f := newMarketFixture(t)
	seller := f.seedOrg(t, "1000", "50")
	buyer := f.seedOrg(t, "1000", "0")
	listing := f.createListing(t, seller, "20", "3") // costo total 60

	out, err := f.uc.SettleTrade(context.Background(), buyer, listing.ID)
	require.NoError(t, err)

	assert.Equal(t, listing.ID, out.ListingID)
	assert.Equal(t, seller, out.SellerOrgID)
	assert.Equal(t, buyer, out.BuyerOrgID)
	assert.Equal(t, "60", out.TotalCost)

	buyerOrg := f.getOrg(t, buyer)
	sellerOrg := f.getOrg(t, seller)

	assert.True(t, buyerOrg.VirtualBalance.Equal(decimal.NewFromInt(940)), "comprador: 1000 - 60")
	assert.True(t, buyerOrg.TotalCredits.Equal(decimal.NewFromInt(20)), "comprador recibe 20 créditos")
	assert.True(t, sellerOrg.VirtualBalance.Equal(decimal.NewFromInt(1060)), "vendedor: 1000 + 60")
	assert.True(t, sellerOrg.TotalCredits.Equal(decimal.NewFromInt(30)), "vendedor: 50 - 20")

	// Conservación: moneda y créditos totales no cambian
	assert.True(t, buyerOrg.VirtualBalance.Add(sellerOrg.VirtualBalance).Equal(decimal.NewFromInt(2000)))
	assert.True(t, buyerOrg.TotalCredits.Add(sellerOrg.TotalCredits).Equal(decimal.NewFromInt(50)))

	// La publicación queda vendida
	sold, err := memory.NewListingRepository(f.store).GetByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusSold, sold.Status)
}

func TestSettleTrade_PublicacionInexistente(t *testing.T) {
	f := newMarketFixture(t)
	buyer := f.seedOrg(t, "1000", "0")

	_, err := f.uc.SettleTrade(context.Background(), buyer, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettleTrade_SegundaCompraRechazada(t *testing.T) {
	f := newMarketFixture(t)
	seller := f.seedOrg(t, "1000", "50")
	buyer1 := f.seedOrg(t, "1000", "0")
	buyer2 := f.seedOrg(t, "1000", "0")
	listing := f.createListing(t, seller, "10", "1")

	_, err := f.uc.SettleTrade(context.Background(), buyer1, listing.ID)
	require.NoError(t, err)

	_, err = f.uc.SettleTrade(context.Background(), buyer2, listing.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadySold)

	// El segundo comprador queda intacto
	b2 := f.getOrg(t, buyer2)
	assert.True(t, b2.VirtualBalance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, b2.TotalCredits.IsZero())
}

func TestSettleTrade_AutoCompraRechazada(t *testing.T) {
	f := newMarketFixture(t)
	seller := f.seedOrg(t, "1000", "50")
	listing := f.createListing(t, seller, "10", "1")

	_, err := f.uc.SettleTrade(context.Background(), seller, listing.ID)
	assert.ErrorIs(t, err, domain.ErrSelfTrade)

	// Sin efectos: la publicación sigue activa y los saldos no cambian
	org := f.getOrg(t, seller)
	assert.True(t, org.VirtualBalance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, org.TotalCredits.Equal(decimal.NewFromInt(50)))
}

func TestSettleTrade_SaldoInsuficiente_SinEfectos(t *testing.T) {
	f := newMarketFixture(t)
	seller := f.seedOrg(t, "1000", "50")
	buyer := f.seedOrg(t, "5", "0") // no alcanza para costo 60
	listing := f.createListing(t, seller, "20", "3")

	_, err := f.uc.SettleTrade(context.Background(), buyer, listing.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Rollback completo: publicación activa, saldos intactos
	l, err := memory.NewListingRepository(f.store).GetByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusActive, l.Status)

	b := f.getOrg(t, buyer)
	s := f.getOrg(t, seller)
	assert.True(t, b.VirtualBalance.Equal(decimal.NewFromInt(5)))
	assert.True(t, s.TotalCredits.Equal(decimal.NewFromInt(50)))
}

func TestSettleTrade_CompradorInexistente(t *testing.T) {
	f := newMarketFixture(t)
	seller := f.seedOrg(t, "1000", "50")
	listing := f.createListing(t, seller, "10", "1")

	_, err := f.uc.SettleTrade(context.Background(), uuid.New().String(), listing.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidOrganization)
}

// Dos liquidaciones concurrentes sobre la misma publicación: exactamente una gana.
func TestSettleTrade_CompradoresConcurrentes_UnSoloGanador(t *testing.T) {
	f := newMarketFixture(t)
	seller := f.seedOrg(t, "1000", "50")
	listing := f.createListing(t, seller, "10", "2") // costo total 20

	const buyers = 8
	buyerIDs := make([]string, buyers)
	for i := range buyerIDs {
		buyerIDs[i] = f.seedOrg(t, "1000", "0")
	}

	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.SettleTrade(context.Background(), buyerIDs[i], listing.ID)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, domain.ErrAlreadySold)
		}
	}
	assert.Equal(t, 1, wins, "exactamente una compra debe liquidarse")

	// El vendedor cobró una sola vez
	s := f.getOrg(t, seller)
	assert.True(t, s.VirtualBalance.Equal(decimal.NewFromInt(1020)))
	assert.True(t, s.TotalCredits.Equal(decimal.NewFromInt(40)))
}

// ──────────────────────────────────────────────────────────────────────────────
// ListActive
// ──────────────────────────────────────────────────────────────────────────────

func TestListActive_ExcluyeVendidas(t *testing.T) {
	f := newMarketFixture(t)
	seller := f.seedOrg(t, "1000", "50")
	buyer := f.seedOrg(t, "1000", "0")

	l1 := f.createListing(t, seller, "10", "1")
	f.createListing(t, seller, "15", "1")

	_, err := f.uc.SettleTrade(context.Background(), buyer, l1.ID)
	require.NoError(t, err)

	active, err := f.uc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "15", active[0].CreditsAmount)
}
