// Package export genera archivos XLSX con las notas terminadas, para los
// reportes diarios que el área administrativa baja desde la aplicación.
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hanbit-parts/warehouse-api/internal/application/dto"
	"github.com/hanbit-parts/warehouse-api/internal/domain"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
	"github.com/hanbit-parts/warehouse-api/internal/domain/repository"
	"github.com/hanbit-parts/warehouse-api/internal/domain/timewindow"
)

// Hasta dónde pagina el export; suficiente para un día de operación.
const maxExportRows = 10000

var doneNoteHeaders = []string{
	"Nota", "Contraparte", "Sucursal", "Bodega", "Ítems", "Cantidad total", "Estado", "Solicitada", "Terminada",
}

// UseCase exporta notas terminadas a XLSX.
type UseCase struct {
	receiving repository.ReceivingNoteRepository
	shipping  repository.ShippingNoteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(receiving repository.ReceivingNoteRepository, shipping repository.ShippingNoteRepository) *UseCase {
	return &UseCase{receiving: receiving, shipping: shipping}
}

// DoneNotesXLSX arma el XLSX de notas terminadas del tipo dado (IN o OUT)
// dentro de la ventana de fechas KST. Devuelve el archivo y un nombre
// sugerido.
func (uc *UseCase) DoneNotesXLSX(ctx context.Context, noteType entity.NoteType, filter dto.DateFilter) (data []byte, filename string, err error) {
	if !noteType.Valid() {
		return nil, "", fmt.Errorf("%w: tipo de nota %q desconocido", domain.ErrInvalidInput, noteType)
	}
	w, err := timewindow.Normalize(filter.Date, filter.DateFrom, filter.DateTo)
	if err != nil {
		return nil, "", err
	}

	var summaries []*entity.NoteSummary
	var sheet string
	switch noteType {
	case entity.NoteTypeIn:
		summaries, err = uc.receiving.ListDone(ctx, w, maxExportRows, 0)
		sheet = "Recepciones"
	case entity.NoteTypeOut:
		summaries, err = uc.shipping.ListDone(ctx, w, maxExportRows, 0)
		sheet = "Despachos"
	}
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range doneNoteHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, s := range summaries {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.NoteNo)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), s.CounterpartyName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), s.BranchName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), s.WarehouseCode)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), s.ItemKinds)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), s.TotalQty.IntPart())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), s.Status)
		// Instantes en hora local KST, que es como los lee la operación
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), s.RequestedAt.In(timewindow.KST).Format("2006-01-02 15:04:05"))
		if s.CompletedAt != nil {
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), s.CompletedAt.In(timewindow.KST).Format("2006-01-02 15:04:05"))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("excel: escritura fallida: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("notas_%s_terminadas.xlsx", noteType), nil
}
