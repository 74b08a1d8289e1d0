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
	"gorm.io/gorm"

	"siscof/backend/internal/model"
	"siscof/backend/internal/repository"
)

var (
	ErrExportNoAssignments = errors.New("schedule has no assignments to export")
)

// defaultStartTime is assumed for calendar events when the schedule has no
// explicit start time.
const defaultStartTime = "19:00"

// calendarHorizon caps how many upcoming services the feed carries.
const calendarHorizon = 50

// ExportService produces the file representations of a roster: an .xlsx
// grid for printing and an iCalendar feed of a unit's upcoming services.
type ExportService interface {
	ExportScheduleXLSX(ctx context.Context, scheduleID string, caller Caller) (*bytes.Buffer, string, error)
	PublicUnitCalendar(ctx context.Context, unitID string) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	perms  PermissionService
	logger *zap.Logger
}

func NewExportService(repo *repository.Repository, perms PermissionService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, perms: perms, logger: logger}
}

// ExportScheduleXLSX renders one schedule's roster as a spreadsheet:
// one row per slot, in the same role-rank order as the list views.
func (s *exportService) ExportScheduleXLSX(ctx context.Context, scheduleID string, caller Caller) (*bytes.Buffer, string, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrScheduleNotFound
		}
		s.logger.Error("loading schedule failed", zap.Error(err))
		return nil, "", err
	}

	caps, err := s.perms.Resolve(ctx, caller, schedule.Unit())
	if err != nil {
		return nil, "", err
	}
	if !caps.CanViewScale {
		return nil, "", ErrPermissionDenied
	}

	assignments, err := s.repo.Assignment.ListBySchedule(ctx, scheduleID)
	if err != nil {
		s.logger.Error("listing assignments failed", zap.Error(err))
		return nil, "", err
	}
	if len(assignments) == 0 {
		return nil, "", ErrExportNoAssignments
	}

	dateText := schedule.ServiceDate.Format(dateFormat)
	title := "Escala — " + dateText
	if schedule.ServiceType != nil {
		title = schedule.ServiceType.Name + " — " + dateText
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Escala"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 18)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "C", 20)
	f.SetColWidth(sheetName, "D", "D", 40)
	f.SetColWidth(sheetName, "E", "E", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", "E1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"Função", "Escalado", "Título", "Link", "Presença"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s2", col)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := 3
	for i := range assignments {
		a := &assignments[i]

		roleName := ""
		if a.Role != nil {
			roleName = a.Role.Name
		}
		holder := "A definir"
		if a.CustomName != nil && *a.CustomName != "" {
			holder = *a.CustomName
		} else if a.Member != nil {
			holder = a.Member.Name
		}
		attendance := ""
		if a.Attended != nil {
			if *a.Attended {
				attendance = "Presente"
			} else {
				attendance = "Ausente"
			}
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), roleName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), holder)
		if a.TitleLabel != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), *a.TitleLabel)
		}
		if a.Link != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), *a.Link)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), attendance)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("writing xlsx failed", zap.Error(err))
		return nil, "", err
	}

	filename := "escala_" + dateText + ".xlsx"
	return buf, filename, nil
}

// PublicUnitCalendar serializes the unit's upcoming schedules as an
// iCalendar feed. Only approved units are served; the feed carries no
// roster or financial detail.
func (s *exportService) PublicUnitCalendar(ctx context.Context, unitID string) (string, error) {
	unit, unitName, err := s.resolvePublicUnit(ctx, unitID)
	if err != nil {
		return "", err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	schedules, err := s.repo.Schedule.ListByUnitAndRange(ctx, unit, today, nil, calendarHorizon)
	if err != nil {
		s.logger.Error("listing schedules for calendar failed", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//SISCOF//Agenda de Cultos//PT")
	cal.SetName(unitName)

	for i := range schedules {
		sc := &schedules[i]

		startTime := defaultStartTime
		if sc.StartTime != nil && *sc.StartTime != "" {
			startTime = *sc.StartTime
		}
		start, err := time.ParseInLocation(dateFormat+" 15:04",
			sc.ServiceDate.Format(dateFormat)+" "+startTime, now.Location())
		if err != nil {
			start = sc.ServiceDate
		}

		summary := "Culto"
		if sc.ServiceType != nil {
			summary = sc.ServiceType.Name
		}

		event := cal.AddEvent(sc.ScheduleID + "@siscof")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(2 * time.Hour))
		event.SetSummary(summary)
		event.SetLocation(unitName)
	}

	return cal.Serialize(), nil
}

// resolvePublicUnit maps a bare unit id to a church or cell reference,
// requiring public approval either way.
func (s *exportService) resolvePublicUnit(ctx context.Context, unitID string) (model.UnitRef, string, error) {
	church, err := s.repo.Church.GetByID(ctx, unitID)
	if err == nil {
		if !church.IsApproved {
			return model.UnitRef{}, "", ErrUnitNotFound
		}
		return model.ChurchUnit(church.ChurchID), church.Name, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("loading church failed", zap.Error(err))
		return model.UnitRef{}, "", err
	}

	cell, err := s.repo.Cell.GetByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.UnitRef{}, "", ErrUnitNotFound
		}
		s.logger.Error("loading cell failed", zap.Error(err))
		return model.UnitRef{}, "", err
	}
	if !cell.IsApproved {
		return model.UnitRef{}, "", ErrUnitNotFound
	}
	return model.CellUnit(cell.CellID), cell.Name, nil
}
