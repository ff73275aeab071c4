// admin.go - privacy-conscious visitor tracking and the admin area
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bonhomie95/portfolio/internal/store"
)

const adminCookie = "admin_token"

func (s *server) initAdmin() error {
	token, err := randomToken()
	if err != nil {
		return fmt.Errorf("generate admin token: %w", err)
	}
	salt, err := randomToken()
	if err != nil {
		return fmt.Errorf("generate hashing salt: %w", err)
	}
	s.adminToken = token
	s.salt = salt
	s.adminUser, s.adminPass = s.cfg.adminCredentials(gin.Mode() == gin.DebugMode)

	logger.Info().Msg("admin access available at /admin/login")
	if gin.Mode() == gin.DebugMode {
		logger.Debug().Str("token", s.adminToken).Msg("admin token (dev only)")
	}
	return nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashIP is consistent per IP within one process lifetime.
func (s *server) hashIP(ip string) string {
	h := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(h[:])[:16]
}

func (s *server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func untracked(path string) bool {
	for _, prefix := range []string{"/static/", "/admin", "/favicon", "/privacy", "/healthz", "/api/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// visitorTracking records page views in the background. Do Not Track is
// honoured.
func (s *server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if untracked(path) || c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		visit := store.Visit{
			HashedIP:  s.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: s.now(),
		}
		s.tracking.Add(1)
		go func() {
			defer s.tracking.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.RecordVisit(ctx, visit); err != nil {
				logger.Error().Err(err).Msg("recording visitor")
			}
		}()
		c.Next()
	}
}

// cleanupOldVisits enforces the retention window.
func (s *server) cleanupOldVisits(ctx context.Context) {
	n, err := s.store.CleanupVisits(ctx, s.cfg.Retention)
	if err != nil {
		logger.Error().Err(err).Msg("cleaning up old visitor data")
		return
	}
	if n > 0 {
		logger.Info().Int64("removed", n).Dur("retention", s.cfg.Retention).Msg("privacy cleanup")
	}
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":         "Privacy Policy",
			"retentionDays": int(s.cfg.Retention.Hours() / 24),
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUser)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPass)) == 1
		if !userOK || !passOK {
			logger.Warn().Str("client", s.hashIP(c.ClientIP())).Msg("failed admin login")
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
			return
		}

		c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
		logger.Info().Str("client", s.hashIP(c.ClientIP())).Msg("admin login")
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuth())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			logger.Error().Err(err).Msg("loading admin stats")
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/messages", func(c *gin.Context) {
		messages, err := s.store.Messages(c.Request.Context(), 200)
		if err != nil {
			logger.Error().Err(err).Msg("loading messages")
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load messages"})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{"messages": messages})
	})

	admin.DELETE("/messages/:id", func(c *gin.Context) {
		id := c.Param("id")
		err := s.store.DeleteMessage(c.Request.Context(), id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		case err != nil:
			logger.Error().Err(err).Str("message_id", id).Msg("deleting message")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}
		logger.Info().Str("message_id", id).Msg("message deleted by admin")
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.store.RecentVisits(c.Request.Context(), 200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		s.cleanupOldVisits(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete"})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})
}
