package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"careercrafter/career-crafter-api/internal/models"
)

const (
	reportSummarySheet  = "Summary"
	reportSkillsSheet   = "Skills"
	reportFeedbackSheet = "Feedback"
)

type ReportService interface {
	// BuildAnalysisReport renders an analysis as an XLSX workbook.
	BuildAnalysisReport(analysis *models.Analysis) (*bytes.Buffer, error)
}

type reportService struct{}

func NewReportService() ReportService {
	return &reportService{}
}

func (r *reportService) BuildAnalysisReport(analysis *models.Analysis) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSummarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{reportSkillsSheet, reportFeedbackSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create %s sheet: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSummarySheet(f, analysis, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if err := writeSkillsSheet(f, analysis, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to write skills sheet: %w", err)
	}
	if err := writeFeedbackSheet(f, analysis, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to write feedback sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func writeSummarySheet(f *excelize.File, analysis *models.Analysis, headerStyle int) error {
	sheet := reportSummarySheet
	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 60); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Career Crafter Resume Report", ""},
		{"Analysis ID", analysis.ID.String()},
		{"Status", string(analysis.Status)},
		{"Created", analysis.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Overall Score", analysis.OverallScore},
		{"Skills Score", analysis.SkillsScore},
		{"Experience Score", analysis.ExperienceScore},
		{"Education Score", analysis.EducationScore},
		{"Years of Experience", analysis.YearsExperience},
		{"Education Level", string(analysis.EducationLevel)},
	}
	if analysis.MatchPercentage != nil {
		rows = append(rows, []interface{}{"Job Match", *analysis.MatchPercentage})
	}
	if analysis.CoachSummary != nil {
		rows = append(rows, []interface{}{"Coach Summary", *analysis.CoachSummary})
	}
	for _, career := range analysis.RelatedCareers {
		rows = append(rows, []interface{}{"Related Career", career})
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheet, "A1", "B1", headerStyle)
}

func writeSkillsSheet(f *excelize.File, analysis *models.Analysis, headerStyle int) error {
	sheet := reportSkillsSheet
	if err := f.SetColWidth(sheet, "A", "B", 28); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Skill", "Status"}); err != nil {
		return err
	}

	row := 2
	write := func(skills []string, status string) error {
		for _, skill := range skills {
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &[]interface{}{skill, status}); err != nil {
				return err
			}
			row++
		}
		return nil
	}
	if err := write(analysis.MatchedSkills, "matched"); err != nil {
		return err
	}
	if err := write(analysis.MissingSkills, "missing"); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", "B1", headerStyle)
}

func writeFeedbackSheet(f *excelize.File, analysis *models.Analysis, headerStyle int) error {
	sheet := reportFeedbackSheet
	if err := f.SetColWidth(sheet, "A", "A", 100); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A1", "Feedback"); err != nil {
		return err
	}
	for i, line := range analysis.Feedback {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), line); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheet, "A1", "A1", headerStyle)
}
