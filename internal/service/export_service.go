package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Dashulik10/Hostel-Organization/internal/policy"
	"github.com/Dashulik10/Hostel-Organization/internal/repository"
)

// ── export module errors ──

var (
	ErrExportNoStudents   = errors.New("no students to export")
	ErrExportGenerateFail = errors.New("failed to generate excel file")
)

// ExportService renders hostel data as downloadable artifacts.
//
// The excel report is returned as a bytes.Buffer; the handler sets the
// HTTP headers and streams it. The calendar feed is plain text/calendar.
type ExportService interface {
	// SuwReport exports every student's SUW balance to .xlsx.
	SuwReport(ctx context.Context, actor *policy.Principal) (*bytes.Buffer, string, error)
	// CalendarFeed serializes the event catalog as an iCalendar feed.
	CalendarFeed(ctx context.Context) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── SuwReport ──────────────────────

func (s *exportService) SuwReport(ctx context.Context, actor *policy.Principal) (*bytes.Buffer, string, error) {
	if !policy.IsWorker(actor) {
		return nil, "", ErrPermissionDenied
	}

	students, err := s.repo.Student.Search(ctx, "")
	if err != nil {
		s.logger.Error("load students for report failed", zap.Error(err))
		return nil, "", err
	}
	if len(students) == 0 {
		return nil, "", ErrExportNoStudents
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "SUW Report"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "D", 10)
	f.SetColWidth(sheetName, "E", "E", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"ID", "Name", "Block", "Room", "SUW Hours"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for row, st := range students {
		values := []interface{}{st.ID, studentFullName(&students[row]), blockLabel(st.Block), st.Room, st.Suw}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write excel buffer failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("suw-report-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// ────────────────────── CalendarFeed ──────────────────────

func (s *exportService) CalendarFeed(ctx context.Context) (string, error) {
	events, err := s.repo.Event.List(ctx, nil)
	if err != nil {
		s.logger.Error("load events for calendar failed", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Hostel Organization//Event Catalog//EN")

	now := time.Now().UTC()
	for i := range events {
		ev := &events[i]
		vevent := cal.AddEvent(fmt.Sprintf("%s@hostel-organization", ev.Slug))
		vevent.SetCreatedTime(now)
		vevent.SetDtStampTime(now)
		vevent.SetAllDayStartAt(ev.StartDate)
		vevent.SetAllDayEndAt(ev.StartDate.AddDate(0, 0, 1))
		vevent.SetSummary(ev.Name)
		if ev.Description != "" {
			vevent.SetDescription(ev.Description)
		}
	}

	return cal.Serialize(), nil
}
