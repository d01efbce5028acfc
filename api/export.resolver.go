package api

import (
	"fmt"
	"net/http"

	"stockboard/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
)

// positionsCsv exports the enriched position table. Runs the full load
// pipeline so the CSV carries the same live prices the page shows.
func (m ApiHandler) positionsCsv(c *gin.Context) {
	result := m.Board.Load(c.Request.Context())
	if !result.Ok() {
		returnErrorJson(fmt.Errorf("load snapshot: %s", result.Err.Message), c)
		return
	}
	if result.Payload.Mode != domain.ModePortfolio {
		returnErrorJson(fmt.Errorf("snapshot has no positions to export"), c)
		return
	}

	csv, err := gocsv.MarshalString(&result.Enriched)
	if err != nil {
		returnErrorJson(fmt.Errorf("encode positions csv: %w", err), c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="positions.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
