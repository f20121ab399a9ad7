package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"amispark/internal/services"
	"amispark/models"
)

type ZoneHandler struct {
	zones services.ZoneDirectory
}

func NewZoneHandler(zones services.ZoneDirectory) *ZoneHandler {
	return &ZoneHandler{zones: zones}
}

func (h *ZoneHandler) RegisterRoutes(e *core.ServeEvent) {
	e.Router.GET("/api/v1/zones", h.ListZones)
}

// ListZones returns the pricing directory for one theme. The default is the
// main event; the other theme is only reachable by asking for it explicitly.
func (h *ZoneHandler) ListZones(e *core.RequestEvent) error {
	theme := e.Request.URL.Query().Get("theme")
	if theme == "" {
		theme = models.ThemeAmispark
	}
	if theme != models.ThemeAmispark && theme != models.ThemeRahasya {
		return apis.NewBadRequestError("Unknown theme", nil)
	}

	zones, err := h.zones.ListZones(e.Request.Context(), theme)
	if err != nil {
		return apis.NewInternalServerError("Failed to load zones", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"theme": theme,
		"zones": zones,
	})
}
