package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
)

// StatementPDFGenerator puerto hacia el generador del documento imprimible
// del estado de resultados.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, companyName string, statement *dto.PeriodStatementDTO) ([]byte, error)
}

// StatementPDFUseCase genera el estado de resultados del período como PDF
// descargable.
type StatementPDFUseCase struct {
	statements *StatementUseCase
	generator  StatementPDFGenerator
}

// NewStatementPDFUseCase construye el caso de uso.
func NewStatementPDFUseCase(statements *StatementUseCase, generator StatementPDFGenerator) *StatementPDFUseCase {
	return &StatementPDFUseCase{statements: statements, generator: generator}
}

// DownloadStatementPDF arma el estado de resultados del rango y lo renderiza.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrInvalidRange     envuelto, si el rango es inválido (lo propaga
//     BuildStatement aguas arriba).
func (uc *StatementPDFUseCase) DownloadStatementPDF(
	ctx context.Context,
	companyID, companyName string,
	start, end time.Time,
) (pdfBytes []byte, filename string, err error) {
	statement, err := uc.statements.BuildStatement(ctx, companyID, start, end)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: armar estado de resultados: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateStatementPDF(ctx, companyName, statement)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("estado_resultados_%s_%s.pdf",
		statement.Period.StartDate, statement.Period.EndDate)
	return pdfBytes, filename, nil
}
