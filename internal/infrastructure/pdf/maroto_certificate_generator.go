// Package pdf implementa la generación del Certificado de Créditos de Carbono
// de una organización.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Certificado de Créditos de Carbono                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORGANIZACIÓN: Nombre + Dirección                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Créditos acumulados / Saldo virtual                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Fecha de emisión + ID de organización               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ecovia/carbon-market-api/internal/application/report"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 110, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.CertificateGenerator = (*MarotoCertificateGenerator)(nil)

// MarotoCertificateGenerator implementa report.CertificateGenerator usando Maroto v2.
type MarotoCertificateGenerator struct{}

// NewMarotoCertificateGenerator construye el generador.
func NewMarotoCertificateGenerator() *MarotoCertificateGenerator { return &MarotoCertificateGenerator{} }

// GenerateCreditCertificate genera el PDF y devuelve sus bytes.
func (g *MarotoCertificateGenerator) GenerateCreditCertificate(_ context.Context, org *entity.Organization) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Certificado de Créditos de Carbono", true).
		WithAuthor(org.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orgRow(org))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(org)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(org))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow() core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("Certificado de Créditos de Carbono", props.Text{
				Style: fontstyle.Bold, Size: 15, Color: colorPrimary, Align: align.Center, Top: 3,
			}),
		),
	)
}

func orgRow(org *entity.Organization) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New(org.Name, props.Text{Style: fontstyle.Bold, Size: 12, Top: 2}),
			text.New(org.Address, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
	)
}

func totalsRows(org *entity.Organization) []core.Row {
	return []core.Row{
		row.New(10).Add(
			col.New(6).Add(text.New("Créditos de carbono acumulados", props.Text{Size: 10, Top: 2})),
			col.New(6).Add(text.New(org.TotalCredits.String(), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1, Color: colorPrimary,
			})),
		),
		row.New(10).Add(
			col.New(6).Add(text.New("Saldo virtual", props.Text{Size: 10, Top: 2})),
			col.New(6).Add(text.New(org.VirtualBalance.String(), props.Text{
				Size: 11, Align: align.Right, Top: 1,
			})),
		),
	}
}

func footerRow(org *entity.Organization) core.Row {
	emitted := time.Now().Format("02/01/2006")
	return row.New(12).Add(
		col.New(8).Add(
			text.New("Emitido: "+emitted, props.Text{Size: 8, Color: colorGray, Top: 2}),
		),
		col.New(4).Add(
			text.New("Org: "+org.ID, props.Text{Size: 7, Color: colorGray, Align: align.Right, Top: 2}),
		),
	)
}
