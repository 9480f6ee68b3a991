package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dashboard shows the entity counts and the latest registered systems.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	counts := gin.H{}
	for label, count := range map[string]func() (int64, error){
		"Offices":       func() (int64, error) { return h.db.CountOffices(ctx) },
		"Users":         func() (int64, error) { return h.db.CountUsers(ctx) },
		"Personnel":     func() (int64, error) { return h.db.CountPersonnel(ctx) },
		"CommDevices":   func() (int64, error) { return h.db.CountCommDevices(ctx) },
		"CryptoDevices": func() (int64, error) { return h.db.CountCryptoDevices(ctx) },
		"Systems":       func() (int64, error) { return h.db.CountSystemRecords(ctx) },
	} {
		n, err := count()
		if err != nil {
			h.logger.Error("failed to count rows", zap.String("entity", label), zap.Error(err))
		}
		counts[label] = n
	}

	recent, err := h.db.RecentSystemRecords(ctx, 5)
	if err != nil {
		h.logger.Error("failed to load recent systems", zap.Error(err))
	}

	h.render(c, "dashboard.tmpl", gin.H{
		"Title":  "Dashboard",
		"Counts": counts,
		"Recent": recent,
	})
}
