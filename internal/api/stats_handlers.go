package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pagetribe/sleepwell/internal/service"
)

func GetStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := app.Records().ListRecords(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch records for stats")
			return
		}

		report := service.AggregateStats(records)
		meta := map[string]any{"nights": report.Nights, "insufficient": report.Insufficient}
		HandleSuccess(c, app.Logger(), report, meta)
	}
}
