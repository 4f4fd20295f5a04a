package server

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"justwe/backend/internal/classify"
	"justwe/backend/internal/respond"
)

type chatTurnPayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message string            `json:"message"`
	History []chatTurnPayload `json:"history"`
	UserID  string            `json:"user_id"`
}

type chatResponse struct {
	Message          string  `json:"message"`
	UserID           string  `json:"user_id"`
	CrisisDetected   bool    `json:"crisis_detected"`
	CrisisLevel      string  `json:"crisis_level"`
	CrisisConfidence float64 `json:"crisis_confidence"`
	Emotion          string  `json:"emotion"`
	EmotionIntensity string  `json:"emotion_intensity"`
	ResponseSource   string  `json:"response_source"`
	QualityScore     float64 `json:"quality_score"`
	EmotionApt       bool    `json:"emotion_appropriate"`
	CrisisApt        bool    `json:"crisis_appropriate"`
	Timestamp        string  `json:"timestamp"`
}

func (a *App) postChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(c, http.StatusBadRequest, "Message must not be empty")
		return
	}

	userID := a.resolveUserID(c, req.UserID)

	history := make([]respond.ChatTurn, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, respond.ChatTurn{Role: turn.Role, Content: turn.Content})
	}

	res, err := a.orch.Respond(c.Request.Context(), userID, req.Message, history)
	if err != nil {
		if errors.Is(err, respond.ErrEmptyMessage) {
			writeError(c, http.StatusBadRequest, "Message must not be empty")
			return
		}
		writeError(c, http.StatusInternalServerError, "Failed to produce a response")
		return
	}

	if res.Crisis.Level == classify.LevelHigh || res.Crisis.Level == classify.LevelImmediate {
		log.Printf("server: crisis detected for user %s (level=%s)", userID, res.Crisis.Level)
	}

	c.JSON(http.StatusOK, chatResponse{
		Message:          res.Message,
		UserID:           userID,
		CrisisDetected:   res.Crisis.Level != classify.LevelNone,
		CrisisLevel:      string(res.Crisis.Level),
		CrisisConfidence: res.Crisis.Confidence,
		Emotion:          string(res.Emotion.Primary),
		EmotionIntensity: string(res.Emotion.Intensity),
		ResponseSource:   res.Source,
		QualityScore:     res.QualityScore,
		EmotionApt:       res.EmotionAppropriate,
		CrisisApt:        res.CrisisAppropriate,
		Timestamp:        res.Timestamp.Format(time.RFC3339),
	})
}

// resolveUserID prefers the authenticated subject, then the request payload,
// and finally mints an anonymous id so memory still works within a session.
func (a *App) resolveUserID(c *gin.Context, payloadID string) string {
	if sub := c.GetString(authUserKey); sub != "" {
		return sub
	}
	if trimmed := strings.TrimSpace(payloadID); trimmed != "" {
		return trimmed
	}
	return uuid.NewString()
}
