package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/pagetribe/sleepwell/internal"
	"github.com/pagetribe/sleepwell/internal/service"
)

func PostRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.EveningRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		app.Logger().Infof("Parsed EveningRequest: %+v", body)

		if err := service.ValidateEveningRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		rec, err := service.CreateEvening(c.Request.Context(), app.Records(), app.Clock(), &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save record")
			return
		}

		HandleSuccess(c, app.Logger(), rec, nil)
	}
}

func GetRecords(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := app.Records().ListRecords(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch records")
			return
		}
		HandleSuccess(c, app.Logger(), records, nil)
	}
}

func CompleteRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var body service.MorningRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateMorningRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		rec, err := service.CompleteMorning(c.Request.Context(), app.Records(), id, &body)
		if err != nil {
			if errors.Is(err, internal.ErrRecordNotFound) {
				HandleError(c, app.Logger(), err, 404, "No record to complete")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to complete record")
			return
		}

		HandleSuccess(c, app.Logger(), rec, nil)
	}
}

func PutRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var body service.EditRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateEditRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		rec, err := service.EditRecord(c.Request.Context(), app.Records(), id, &body)
		if err != nil {
			if errors.Is(err, internal.ErrRecordNotFound) {
				HandleError(c, app.Logger(), err, 404, "No record to edit")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to edit record")
			return
		}

		HandleSuccess(c, app.Logger(), rec, nil)
	}
}

func DeleteRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if err := app.Records().DeleteRecord(c.Request.Context(), id); err != nil {
			if errors.Is(err, internal.ErrRecordNotFound) {
				HandleError(c, app.Logger(), err, 404, "No record to delete")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to delete record")
			return
		}

		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": id})
	}
}
