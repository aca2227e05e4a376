package util

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/brandon-wee/jobdash/internal/dto"
	"github.com/fumiama/go-docx"
	"github.com/xuri/excelize/v2"
)

// exportColumns fixes the column order for table downloads, matching the
// dashboard table layout.
var exportColumns = []string{"position", "company", "technical_requirements", "experience", "url", "job_id"}

func rowValues(row dto.JobRow) []string {
	return []string{row.Position, row.Company, row.TechnicalRequirements, row.Experience, row.URL, row.JobID}
}

// JobsCSV renders the listing table as CSV with captioned headers.
func JobsCSV(rows []dto.JobRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(exportColumns))
	for _, col := range exportColumns {
		header = append(header, dto.TableCaptions[col])
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(rowValues(row)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// JobsXLSX renders the listing table as a spreadsheet.
func JobsXLSX(rows []dto.JobRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	header := make([]any, 0, len(exportColumns))
	for _, col := range exportColumns {
		header = append(header, dto.TableCaptions[col])
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write xlsx header: %w", err)
	}
	for i, row := range rows {
		values := []any{}
		for _, v := range rowValues(row) {
			values = append(values, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write xlsx row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// CoverLetterDOCX wraps the generated letter text into a Word document, one
// paragraph per text block.
func CoverLetterDOCX(letter string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()
	for _, block := range strings.Split(letter, "\n") {
		para := doc.AddParagraph()
		para.AddText(strings.TrimRight(block, "\r"))
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}
