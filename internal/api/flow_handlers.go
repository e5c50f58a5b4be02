package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pagetribe/sleepwell/internal/service"
)

// GetFlow tells the client which form to show right now: the evening
// form for a new record, or the morning form targeting the in-progress
// one. Re-resolved on every call; never cached.
func GetFlow(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := app.Records().ListRecords(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch records for flow")
			return
		}

		decision := service.ResolveFlow(app.Clock().Now(), records, app.MorningWindow())
		HandleSuccess(c, app.Logger(), decision, nil)
	}
}
