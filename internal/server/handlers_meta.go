package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"justwe/backend/internal/classify"
)

// getResources serves the static crisis hotlines plus per-emotion coping
// suggestions. An optional ?emotion= narrows the coping section.
func (a *App) getResources(c *gin.Context) {
	bundle := classify.ResourcesFor(classify.LevelHigh)

	coping := map[string][]string{}
	if raw := strings.TrimSpace(c.Query("emotion")); raw != "" {
		emotion := classify.Emotion(strings.ToLower(raw))
		suggestions := classify.CopingFor(emotion)
		if suggestions == nil {
			writeError(c, http.StatusBadRequest, "Unknown emotion")
			return
		}
		coping[string(emotion)] = suggestions
	} else {
		for _, emotion := range []classify.Emotion{
			classify.EmotionAnxious, classify.EmotionSad, classify.EmotionAngry,
			classify.EmotionStressed, classify.EmotionLonely, classify.EmotionHappy,
			classify.EmotionConfused,
		} {
			coping[string(emotion)] = classify.CopingFor(emotion)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"hotlines":            bundle.Hotlines,
		"recommended_actions": bundle.RecommendedActions,
		"warning_signs":       bundle.WarningSigns,
		"coping_suggestions":  coping,
	})
}

func (a *App) getCorpusStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sources":  a.corpus.Stats(),
		"degraded": a.corpus.Empty(),
	})
}

func (a *App) getConversationSummary(c *gin.Context) {
	userID := c.GetString(authUserKey)
	if userID == "" {
		userID = strings.TrimSpace(c.Query("user_id"))
	}
	if userID == "" {
		writeError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	summary := a.memory.Summarize(userID)
	payload := gin.H{
		"user_id":              userID,
		"message_count":        summary.MessageCount,
		"dominant_emotion":     string(summary.DominantEmotion),
		"highest_crisis_level": string(summary.HighestCrisisLevel),
		"emotion_trend":        string(summary.EmotionTrend),
		"crisis_trend":         string(summary.CrisisTrend),
	}
	if !summary.LastInteraction.IsZero() {
		payload["last_interaction"] = summary.LastInteraction.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, payload)
}
