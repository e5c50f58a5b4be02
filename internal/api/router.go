package api

import "github.com/gin-gonic/gin"

// Register wires all journal routes onto the router. Auth and
// request-id middleware are the caller's concern.
func Register(r gin.IRoutes, app App) {
	r.GET("/flow", GetFlow(app))
	r.GET("/records", GetRecords(app))
	r.POST("/records", PostRecord(app))
	r.POST("/records/:id/complete", CompleteRecord(app))
	r.PUT("/records/:id", PutRecord(app))
	r.DELETE("/records/:id", DeleteRecord(app))
	r.GET("/records/stats", GetStats(app))
}
