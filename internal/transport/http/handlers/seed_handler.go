package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vedran77/replydesk/internal/service"
	"github.com/vedran77/replydesk/internal/transport/http/middleware"
)

type SeedHandler struct {
	seedService *service.SeedService
	logger      *logrus.Logger
}

func NewSeedHandler(seedService *service.SeedService, logger *logrus.Logger) *SeedHandler {
	return &SeedHandler{seedService: seedService, logger: logger}
}

func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	res, err := h.seedService.Seed(r.Context(), middleware.GetOperatorID(r.Context()))
	if err != nil {
		h.logger.WithError(err).Error("Seeding demo data failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, res)
}
