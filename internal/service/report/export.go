package report

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"prodlog/internal/storage"
)

const (
	SheetProduction   = "Production"
	SheetInstructions = "Instructions"

	timeLayout = "2006-01-02 15:04:05"
)

var (
	productionHeaders  = []string{"Entry ID", "Created At", "Operator ID", "Process", "Station", "Time", "Model", "Quantity"}
	instructionHeaders = []string{"ID", "Created At", "Sender ID", "Type", "Target Process", "Target Station", "Details"}
)

// Export строит xlsx: выпуск по фильтру (строка на позицию) и все инструкции, новые сверху
func (s *Service) Export(ctx context.Context, f storage.EntryFilter) ([]byte, error) {
	const op = "service.report.Export"

	var (
		entries      []storage.ProductionEntryWithDetails
		instructions []storage.Instruction
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.store.GetProductionEntries(gCtx, f)
		if err != nil {
			return fmt.Errorf("entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		instructions, err = s.store.GetInstructions(gCtx, storage.InstructionFilter{})
		if err != nil {
			return fmt.Errorf("instructions: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", SheetProduction); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := file.NewSheet(SheetInstructions); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: header style: %w", op, err)
	}

	if err := writeHeader(file, SheetProduction, productionHeaders, headerStyle); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := writeHeader(file, SheetInstructions, instructionHeaders, headerStyle); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := 2
	for _, e := range entries {
		for _, d := range e.Details {
			values := []any{e.ID, e.CreatedAt.UTC().Format(timeLayout), e.OperatorID, e.Process, e.Station, e.Time, d.Model, d.Quantity}
			if err := file.SetSheetRow(SheetProduction, cellName(1, row), &values); err != nil {
				return nil, fmt.Errorf("%s: production row %d: %w", op, row, err)
			}
			row++
		}
	}

	for i, in := range instructions {
		details := ""
		if in.Details != nil {
			details = *in.Details
		}
		values := []any{in.ID, in.CreatedAt.UTC().Format(timeLayout), in.UserID, in.Type, in.TargetProcess, in.TargetStation, details}
		if err := file.SetSheetRow(SheetInstructions, cellName(1, i+2), &values); err != nil {
			return nil, fmt.Errorf("%s: instruction row %d: %w", op, i+2, err)
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write workbook: %w", op, err)
	}

	return buf.Bytes(), nil
}

// FileName имя файла выгрузки на момент now
func FileName(now time.Time) string {
	return fmt.Sprintf("Production_Report_%s.xlsx", now.Format("2006-01-02_150405"))
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, name := range headers {
		if err := f.SetCellValue(sheet, cellName(i+1, 1), name); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), style); err != nil {
		return err
	}

	// Закрепляем шапку
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	lastCol, _, err := excelize.SplitCellName(cellName(len(headers), 1))
	if err != nil {
		return err
	}

	return f.SetColWidth(sheet, "A", lastCol, 16)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
