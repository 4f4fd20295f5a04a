// Package server is the gin transport in front of the response pipeline.
package server

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"

	"justwe/backend/internal/config"
	"justwe/backend/internal/corpus"
	"justwe/backend/internal/memory"
	"justwe/backend/internal/respond"
)

const authUserKey = "authUserID"

type App struct {
	cfg    config.Config
	orch   *respond.Orchestrator
	corpus *corpus.Store
	memory *memory.Store

	limitersMu sync.Mutex
	limiters   map[string]*rate.Limiter
}

func New(cfg config.Config, orch *respond.Orchestrator, store *corpus.Store, mem *memory.Store) *App {
	return &App{
		cfg:      cfg,
		orch:     orch,
		corpus:   store,
		memory:   mem,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (a *App) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", a.health)

	api := router.Group(a.cfg.APIPrefix)
	if a.cfg.AuthRequired {
		api.Use(a.authMiddleware())
	}
	api.Use(a.rateLimitMiddleware())

	api.POST("/chat", a.postChat)
	api.GET("/resources", a.getResources)
	api.GET("/corpus/stats", a.getCorpusStats)
	api.GET("/conversation/summary", a.getConversationSummary)

	return router
}

func (a *App) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":               "ok",
		"service":              "justwe-api",
		"auth_required":        a.cfg.AuthRequired,
		"corpus_loaded":        !a.corpus.Empty(),
		"generation_available": strings.TrimSpace(a.cfg.GroqAPIKey) != "",
	})
}

func (a *App) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			writeError(c, http.StatusUnauthorized, "Bearer token required")
			return
		}
		tokenString := strings.TrimSpace(authHeader[len("Bearer "):])
		if tokenString == "" {
			writeError(c, http.StatusUnauthorized, "Bearer token required")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if token.Method == nil || token.Method.Alg() != a.cfg.JWTAlgorithm {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(a.cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			writeError(c, http.StatusUnauthorized, "Invalid bearer token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			writeError(c, http.StatusUnauthorized, "Invalid token payload")
			return
		}
		if a.cfg.JWTAudience != "" && !claimHasAudience(claims["aud"], a.cfg.JWTAudience) {
			writeError(c, http.StatusUnauthorized, "Invalid token audience")
			return
		}
		if a.cfg.JWTIssuer != "" {
			issuer, _ := claims["iss"].(string)
			if issuer != a.cfg.JWTIssuer {
				writeError(c, http.StatusUnauthorized, "Invalid token issuer")
				return
			}
		}
		sub, _ := claims["sub"].(string)
		sub = strings.TrimSpace(sub)
		if sub == "" {
			writeError(c, http.StatusUnauthorized, "Token subject missing")
			return
		}

		c.Set(authUserKey, sub)
		c.Next()
	}
}

// rateLimitMiddleware keeps one token bucket per caller, keyed by the
// authenticated subject when there is one and by client IP otherwise.
func (a *App) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(authUserKey)
		if key == "" {
			key = c.ClientIP()
		}
		if !a.limiter(key).Allow() {
			writeError(c, http.StatusTooManyRequests, "Too many requests, please slow down")
			return
		}
		c.Next()
	}
}

func (a *App) limiter(key string) *rate.Limiter {
	a.limitersMu.Lock()
	defer a.limitersMu.Unlock()
	lim, ok := a.limiters[key]
	if !ok {
		perMinute := a.cfg.RateLimitPerMinute
		lim = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
		a.limiters[key] = lim
	}
	return lim
}

func claimHasAudience(value any, audience string) bool {
	switch v := value.(type) {
	case string:
		return v == audience
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == audience {
				return true
			}
		}
	case []string:
		for _, item := range v {
			if item == audience {
				return true
			}
		}
	}
	return false
}

func writeError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}
