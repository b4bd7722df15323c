package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"shipyard/internal/repository"

	"github.com/xuri/excelize/v2"
)

// ExportService renders tracking data to xlsx workbooks for the planning
// office. Exports always cover the full filtered set, never a page.
type ExportService interface {
	ExportSections(ctx context.Context, projectID uint) (*bytes.Buffer, string, error)
	ExportPallets(ctx context.Context, projectID, sectionID uint) (*bytes.Buffer, string, error)
}

type exportService struct {
	sectionRepo repository.SectionRepository
	palletRepo  repository.PalletRepository
}

func NewExportService(sectionRepo repository.SectionRepository, palletRepo repository.PalletRepository) ExportService {
	return &exportService{sectionRepo: sectionRepo, palletRepo: palletRepo}
}

func (s *exportService) ExportSections(ctx context.Context, projectID uint) (*bytes.Buffer, string, error) {
	sections, _, err := s.sectionRepo.List(ctx, projectID, "", 1, exportRowLimit)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch sections for export: %w", err)
	}

	headers := []string{
		"Section Number", "Project", "Typical Section",
		"Planned Start", "On Block", "Off Block", "End",
		"Cycle Days", "Model Received", "BOM Received", "Start Conditions Met",
	}

	rows := make([][]interface{}, 0, len(sections))
	for _, sec := range sections {
		rows = append(rows, []interface{}{
			sec.SectionNumber,
			sec.Project.ProjectName,
			sec.TypicalSection.SectionName,
			exportDate(sec.PlannedStartDate),
			exportDate(sec.OnBlockDate),
			exportDate(sec.OffBlockDate),
			exportDate(sec.EndDate),
			sec.OnBlockCycleDays(),
			exportBool(sec.ModelReceived),
			exportBool(sec.BOMReceived),
			exportBool(sec.StartConditionsMet),
		})
	}

	buf, err := buildWorkbook("Sections", headers, rows)
	if err != nil {
		return nil, "", err
	}
	return buf, exportFilename("sections"), nil
}

func (s *exportService) ExportPallets(ctx context.Context, projectID, sectionID uint) (*bytes.Buffer, string, error) {
	pallets, _, err := s.palletRepo.List(ctx, projectID, sectionID, "", 1, exportRowLimit)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch pallets for export: %w", err)
	}

	headers := []string{"Pallet Code", "Project", "Section", "Required Date", "Received", "Description"}

	rows := make([][]interface{}, 0, len(pallets))
	for _, p := range pallets {
		rows = append(rows, []interface{}{
			p.PalletCode,
			p.Project.ProjectName,
			p.Section.SectionNumber,
			exportDate(p.RequiredDate),
			exportBool(p.IsReceived),
			p.Description,
		})
	}

	buf, err := buildWorkbook("Pallets", headers, rows)
	if err != nil {
		return nil, "", err
	}
	return buf, exportFilename("pallets"), nil
}

const exportRowLimit = 100000

func buildWorkbook(sheet string, headers []string, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to place header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for rowIdx, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to place data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write data cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

func exportDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func exportBool(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

func exportFilename(prefix string) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102"))
}
