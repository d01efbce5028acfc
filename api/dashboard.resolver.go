package api

import (
	"net/http"

	"stockboard/internal"

	"github.com/gin-gonic/gin"
)

// dashboardPage serves the rendered dashboard. Failures render the same page
// with the error banner, so this always answers 200 with HTML; only the JSON
// API reports failures as statuses.
func (m ApiHandler) dashboardPage(c *gin.Context) {
	result := m.Board.Load(c.Request.Context())
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(internal.DashboardHTML(result)))
}

// dashboardJson exposes the load pipeline's result directly.
func (m ApiHandler) dashboardJson(c *gin.Context) {
	result := m.Board.Load(c.Request.Context())
	if !result.Ok() {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": result.Err.Message,
			"kind":  result.Err.Kind,
		})
		return
	}
	c.JSON(http.StatusOK, result)
}
