// Package pdf renderiza el informe de inventario con Maroto v2.
//
// Layout (A4 vertical, helvetica):
//
//	┌──────────────────────────────────────────────┐
//	│  Inventory Report                 (bold 14)  │
//	│  Company: … | Product: … | Quantity: … | …   │
//	│  …una fila por registro; Maroto agrega        │
//	│  páginas nuevas cuando se agota el espacio    │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/multitenant-inventory/internal/application/report"
)

var _ report.Renderer = (*ReportGenerator)(nil)

const (
	titleRowHeight = 14
	lineRowHeight  = 7
)

// ReportGenerator implementa report.Renderer.
type ReportGenerator struct {
	author   string
	compress bool
}

// NewReportGenerator construye el generador. author se guarda en los metadatos del PDF.
func NewReportGenerator(author string, compress bool) *ReportGenerator {
	return &ReportGenerator{author: author, compress: compress}
}

// Render genera el PDF con el título y una fila por línea.
func (g *ReportGenerator) Render(ctx context.Context, title string, lines []string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(title, true).
		WithAuthor(g.author, true).
		WithCompression(g.compress).
		Build()

	m := maroto.New(cfg)
	m.AddRows(row.New(titleRowHeight).Add(
		col.New(12).Add(text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Top: 2})),
	))
	for i, line := range lines {
		if i%200 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		m.AddRows(row.New(lineRowHeight).Add(
			col.New(12).Add(text.New(line, props.Text{Size: 10, Top: 1})),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}
