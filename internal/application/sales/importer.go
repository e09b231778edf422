package sales

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/pkg/textenc"
)

// Columnas del CSV de clientes: nome;telefone;email;cidade;estado.
const (
	colName = iota
	colPhone
	colEmail
	colCity
	colState
)

// ImportResult resumen de una importación de clientes.
type ImportResult struct {
	Created    int
	Duplicates int
	Failed     []ImportFailure
}

// ImportFailure fila rechazada (número de línea del archivo, 1-based).
type ImportFailure struct {
	Line   int
	Reason string
}

// ImportCustomers carga clientes desde un CSV separado por ';'. La primera fila se omite si es el
// encabezado. Teléfonos ya registrados se cuentan como duplicados y no detienen la importación.
func (uc *CustomerUseCase) ImportCustomers(ctx context.Context, r io.Reader) (*ImportResult, error) {
	utf8r, err := textenc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detectar codificación: %w", err)
	}
	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	res := &ImportResult{}
	line := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return res, fmt.Errorf("leer csv (línea %d): %w", line, err)
		}
		if line == 1 && isHeader(row) {
			continue
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		in := dto.CreateCustomerRequest{
			Name:  field(row, colName),
			Phone: field(row, colPhone),
			Email: field(row, colEmail),
			City:  field(row, colCity),
			State: field(row, colState),
		}
		_, err = uc.Create(ctx, in)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, domain.ErrDuplicate):
			res.Duplicates++
		case errors.Is(err, domain.ErrInvalidInput):
			res.Failed = append(res.Failed, ImportFailure{Line: line, Reason: err.Error()})
		default:
			return res, fmt.Errorf("línea %d: %w", line, err)
		}
	}
	return res, nil
}

func isHeader(row []string) bool {
	return strings.EqualFold(field(row, colName), "nome")
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
