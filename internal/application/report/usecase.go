// Package report genera el informe de inventario en PDF y lo entrega por descarga o correo.
package report

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/multitenant-inventory/internal/application/dto"
	"github.com/jhoicas/multitenant-inventory/internal/application/validation"
	"github.com/jhoicas/multitenant-inventory/internal/domain"
	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
	"github.com/jhoicas/multitenant-inventory/internal/domain/repository"
)

const (
	Title          = "Inventory Report"
	AttachmentName = "inventory.pdf"
	dateLayout     = "2006-01-02 15:04"
	mailBody       = "Adjunto encontrará el informe de inventario solicitado."
)

// UseCase orquesta consulta → render → (correo) con limpieza del archivo temporal.
type UseCase struct {
	repo     repository.InventoryRepository
	renderer Renderer
	mailer   Mailer
	tempDir  string
}

// NewUseCase tempDir vacío usa el directorio temporal del sistema.
func NewUseCase(repo repository.InventoryRepository, renderer Renderer, mailer Mailer, tempDir string) *UseCase {
	return &UseCase{repo: repo, renderer: renderer, mailer: mailer, tempDir: tempDir}
}

// FormatLine texto de una fila del informe.
func FormatLine(row *entity.InventoryReportRow) string {
	return fmt.Sprintf("Company: %s | Product: %s | Quantity: %d | Date: %s",
		row.CompanyName, row.ProductName, row.Quantity, row.CreatedAt.Format(dateLayout))
}

// Download devuelve el PDF en memoria. Sin filas → ErrNoRecords.
func (uc *UseCase) Download(ctx context.Context, filter repository.InventoryFilter) ([]byte, error) {
	return uc.render(ctx, filter)
}

// SendEmail valida la petición, genera el PDF en un archivo temporal y lo envía como adjunto.
// El archivo se elimina en todos los caminos de salida.
func (uc *UseCase) SendEmail(ctx context.Context, in dto.SendReportRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	pdf, err := uc.render(ctx, repository.InventoryFilter{CompanyID: in.CompanyID})
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(uc.tempDir, "inventory-*.pdf")
	if err != nil {
		return fmt.Errorf("report: crear archivo temporal: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(pdf); err != nil {
		f.Close()
		return fmt.Errorf("report: escribir archivo temporal: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: cerrar archivo temporal: %w", err)
	}

	err = uc.mailer.Send(ctx, Mail{
		To:             in.Email,
		Subject:        Title,
		Body:           mailBody,
		AttachmentPath: f.Name(),
		AttachmentName: AttachmentName,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}
	return nil
}

func (uc *UseCase) render(ctx context.Context, filter repository.InventoryFilter) ([]byte, error) {
	rows, err := uc.repo.ReportRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNoRecords
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, FormatLine(r))
	}
	pdf, err := uc.renderer.Render(ctx, Title, lines)
	if err != nil {
		return nil, fmt.Errorf("report: render: %w", err)
	}
	return pdf, nil
}
