package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/wellatlas/wellatlas/models"
	"github.com/wellatlas/wellatlas/store"
)

var jobReportHeaders = []string{
	"Customer", "Site", "Job Number", "Category", "Status", "Created", "Updated",
}

// jobReportRows flattens the customer → site → job tree into report rows,
// in the same stable order the backup exporter uses.
func jobReportRows(s *store.Store) ([][]string, error) {
	var rows [][]string
	customers, err := s.ListCustomers()
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		sites, err := s.ListSitesByCustomer(c.ID)
		if err != nil {
			return nil, err
		}
		for _, site := range sites {
			jobs, err := s.ListJobsBySite(site.ID)
			if err != nil {
				return nil, err
			}
			for _, j := range jobs {
				rows = append(rows, []string{
					c.Name, site.Name, j.JobNumber, j.Category, j.Status,
					j.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
					j.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
				})
			}
		}
	}
	return rows, nil
}

// ExportJobsToExcel exports the flattened job report as a spreadsheet.
func ExportJobsToExcel(w http.ResponseWriter, r *http.Request) {
	rows, err := jobReportRows(st())
	if err != nil {
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	sheetName := "Jobs"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	for colIdx, header := range jobReportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("wellatlas_jobs_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportJobsToCSV exports the flattened job report as CSV.
func ExportJobsToCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := jobReportRows(st())
	if err != nil {
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Write(jobReportHeaders)
	for _, row := range rows {
		cw.Write(row)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		http.Error(w, "failed to write CSV", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("wellatlas_jobs_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ListCategories returns the canonical job categories for form dropdowns.
func ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Categories())
}
