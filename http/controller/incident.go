package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-storage-gateway/utils"
)

// ListIncidents serves recent dual-write incidents to operators. Read-only:
// the records describe store disagreements but nothing here (or anywhere else)
// repairs them.
func (ctrl *Controller) ListIncidents(c *gin.Context) {
	ctx := c.Request.Context()

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			utils.JSON400(c, "limit must be between 1 and 500")
			return
		}
		limit = parsed
	}

	incidents, err := ctrl.Incidents.ListRecent(ctx, limit)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Incident] Failed to list incidents: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}

	utils.JSON200(c, incidents)
}
