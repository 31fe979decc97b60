package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"

	apptservices "github.com/bitecare/clinic-backend/internal/appointment/services"
	"github.com/bitecare/clinic-backend/internal/common/apperr"
)

// ExportService renders the staff appointment report as a spreadsheet.
type ExportService struct {
	Appointments *apptservices.AppointmentService
}

func NewExportService(appointments *apptservices.AppointmentService) *ExportService {
	return &ExportService{Appointments: appointments}
}

// AppointmentReport builds an xlsx of the full appointment collection.
func (s *ExportService) AppointmentReport() ([]byte, error) {
	snapshot, err := s.Appointments.Snapshot()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}

	headers := map[string]string{
		"A1": "ID",
		"B1": "Patient",
		"C1": "Reason",
		"D1": "Branch",
		"E1": "Date",
		"F1": "Time Slot",
		"G1": "Status",
		"H1": "Channel",
	}
	file := excelize.NewFile()
	sheet := "Appointments"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for cell, title := range headers {
		file.SetCellValue(sheet, cell, title)
	}

	for i, a := range snapshot {
		row := i + 2
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), a.ID)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), a.PatientName)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", row), a.Reason)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", row), a.Branch)
		file.SetCellValue(sheet, fmt.Sprintf("E%d", row), a.Date)
		file.SetCellValue(sheet, fmt.Sprintf("F%d", row), a.TimeSlot)
		file.SetCellValue(sheet, fmt.Sprintf("G%d", row), string(a.Status))
		file.SetCellValue(sheet, fmt.Sprintf("H%d", row), strings.Title(a.Channel))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}
	return buf.Bytes(), nil
}
