package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jstittsworth/topdog-adp/internal/models"
	"github.com/jstittsworth/topdog-adp/internal/services"
	"github.com/jstittsworth/topdog-adp/pkg/utils"
)

type PickHandler struct {
	picks  *services.PickStore
	season string
}

func NewPickHandler(picks *services.PickStore, season string) *PickHandler {
	return &PickHandler{picks: picks, season: season}
}

type pickEventRequest struct {
	PlayerID   string    `json:"player_id" binding:"required"`
	PickNumber int       `json:"pick_number" binding:"required,min=1"`
	DraftID    string    `json:"draft_id"`
	Format     string    `json:"format" binding:"required,oneof=slow fast"`
	PickedAt   time.Time `json:"picked_at"`
	Season     string    `json:"season"`
}

type ingestRequest struct {
	Events []pickEventRequest `json:"events" binding:"required,min=1,dive"`
}

// IngestPicks accepts a batch of pick events from a draft room. A missing
// draft_id gets one generated so single-event senders stay simple; a missing
// picked_at means "just now".
func (h *PickHandler) IngestPicks(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	now := time.Now().UTC()
	fallbackDraftID := uuid.New().String()

	events := make([]models.PickEvent, len(req.Events))
	for i, ev := range req.Events {
		season := ev.Season
		if season == "" {
			season = h.season
		}
		draftID := ev.DraftID
		if draftID == "" {
			draftID = fallbackDraftID
		}
		pickedAt := ev.PickedAt
		if pickedAt.IsZero() {
			pickedAt = now
		}
		events[i] = models.PickEvent{
			Season:     season,
			PlayerID:   ev.PlayerID,
			PickNumber: ev.PickNumber,
			DraftID:    draftID,
			Format:     ev.Format,
			PickedAt:   pickedAt,
		}
	}

	if err := h.picks.Ingest(events); err != nil {
		utils.SendValidationError(c, "Failed to ingest pick events", err.Error())
		return
	}

	utils.SendCreated(c, gin.H{"ingested": len(events)})
}
