package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/logging"
)

// visitorRetention is how long hashed visitor rows are kept.
const visitorRetention = 12 * 30 * 24 * time.Hour

type admin struct {
	token       string
	hashingSalt string
	username    string
	password    string

	store *Store
	hub   *streamHub
	log   logging.Logger
}

// newAdmin sets up credentials, a fresh session token and the IP hashing salt.
// Both token and salt change on every restart.
func newAdmin(cfg Config, store *Store, hub *streamHub, log logging.Logger) *admin {
	a := &admin{
		token:       generateAdminToken(),
		hashingSalt: generateAdminToken(), // Use for IP hashing
		username:    cfg.AdminUsername,
		password:    cfg.AdminPassword,
		store:       store,
		hub:         hub,
		log:         log,
	}

	// dev fallbacks; ADMIN_USERNAME/ADMIN_PASSWORD override
	if a.username == "" {
		a.username = "admin"
		log.Warnf("Using default admin username. Set ADMIN_USERNAME environment variable.")
	}
	if a.password == "" {
		a.password = "admin123"
		log.Warnf("Using default admin password. Set ADMIN_PASSWORD environment variable.")
	}

	log.Infof("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Debugf("Admin token (dev only): %s", a.token)
	}
	log.Infof("Privacy: Visitor tracking enabled with hashed IP addresses")
	return a
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic("failed to generate admin token: " + err.Error())
	}
	return hex.EncodeToString(bytes)
}

// hashIP is stable for one process lifetime and never reversible to the address.
func (a *admin) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16] // Truncate for storage efficiency
}

func (a *admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// untrackedPrefixes are never recorded as page visits.
var untrackedPrefixes = []string{"/static/", "/admin/", "/particles/", "/favicon", "/privacy"}

// visitorTrackingMiddleware records page GETs with a hashed client address.
func (a *admin) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}

		// DNT: 1 opts out
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashed, ua := a.hashIP(c.ClientIP()), c.GetHeader("User-Agent")
		go func() {
			if err := a.store.RecordVisit(hashed, ua, path, time.Now()); err != nil {
				a.log.Errorf("Error recording visitor: %v", err)
			}
		}()
		c.Next()
	}
}

// cleanupOldVisitorData drops visitor rows past visitorRetention.
func (a *admin) cleanupOldVisitorData() {
	rowsDeleted, err := a.store.CleanupVisitors(time.Now().Add(-visitorRetention))
	if err != nil {
		a.log.Errorf("Error cleaning up old visitor data: %v", err)
		return
	}
	if rowsDeleted > 0 {
		a.log.Infof("Privacy cleanup: Removed %d visitor records older than 12 months", rowsDeleted)
	}
}

func (a *admin) stats() (*AdminStats, error) {
	stats, err := a.store.Stats(time.Now())
	if err != nil {
		return nil, err
	}
	stats.ActiveStreams = a.hub.Active()
	return stats, nil
}

func (a *admin) setupRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
		if userOK && passOK {
			// 24h, scoped to /admin
			c.SetCookie("admin_token", a.token, 3600*24, "/admin", "", false, true)
			a.log.Infof("Admin login successful from %s", a.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		a.log.Warnf("Failed admin login attempt from %s", a.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		a.log.Infof("Admin logout from %s", a.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// everything below needs the token cookie
	adminGroup := r.Group("/admin")
	adminGroup.Use(a.authMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.stats()
		if err != nil {
			a.log.Errorf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.store.RecentVisitors(200)
		if err != nil {
			a.log.Errorf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	adminGroup.GET("/sessions", func(c *gin.Context) {
		sessions, err := a.store.RecentParticleSessions(200)
		if err != nil {
			a.log.Errorf("Error loading particle sessions: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load particle sessions",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-sessions.html", gin.H{
			"sessions": sessions,
			"active":   a.hub.Active(),
		})
	})

	adminGroup.GET("/messages", func(c *gin.Context) {
		messages, err := a.store.RecentContactMessages(200)
		if err != nil {
			a.log.Errorf("Error loading contact messages: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load messages",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{
			"messages": messages,
		})
	})

	adminGroup.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		go a.cleanupOldVisitorData()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		a.log.Infof("Admin stats exported by %s", a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
