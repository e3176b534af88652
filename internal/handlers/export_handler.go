package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finledger/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves ledger downloads.
type ExportHandler struct {
	exportService services.ExportServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService services.ExportServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportCSV downloads transactions as CSV
// @Summary     Export CSV
// @Description Columns id,type,date,month,amount,category,description,card; accepts the list filters
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {file} file "CSV"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /export/transactions.csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	h.export(c, "csv", "text/csv; charset=utf-8", h.exportService.ExportCSV)
}

// ExportXLSX downloads transactions as an Excel workbook
// @Summary     Export XLSX
// @Tags        export
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Success     200 {file} file "XLSX"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /export/transactions.xlsx [get]
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	h.export(c, "xlsx", xlsxContentType, h.exportService.ExportXLSX)
}

// export renders into memory first so a failure can still become a JSON error.
func (h *ExportHandler) export(c *gin.Context, ext, contentType string, render func(io.Writer, services.TransactionFilter) error) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := render(&buf, filter); err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.%s\"",
		time.Now().Format("20060102"), ext))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
