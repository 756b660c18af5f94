package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/particlefield"
)

type app struct {
	cfg   Config
	store *Store
	hub   *streamHub
	admin *admin
	relay *contactRelay
	log   logging.Logger
}

func newApp(cfg Config, store *Store, mailer Mailer, log logging.Logger) *app {
	hub := newStreamHub(cfg, store, log)
	from := cfg.SMTPUser
	if from == "" {
		from = cfg.ToEmail
	}
	return &app{
		cfg:   cfg,
		store: store,
		hub:   hub,
		admin: newAdmin(cfg, store, hub, log),
		relay: &contactRelay{
			mailer:    mailer,
			from:      from,
			owner:     cfg.ToEmail,
			ownerName: personalInfo.Name,
			autoReply: cfg.AutoReply,
		},
		log: log,
	}
}

func (a *app) portfolioPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"info":             personalInfo,
		"nav":              navLinks,
		"skillGroups":      skillGroups,
		"projects":         projects,
		"featured":         featuredProjects(),
		"experience":       experience,
		"education":        education,
		"achievements":     achievements,
		"responsibilities": responsibilities,
		"particles":        particlefield.DefaultConfig(),
		"particleColor":    particlefield.DefaultColor,
		"year":             time.Now().Year(),
	})
}

func (a *app) router() *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob("templates/*")
	r.Static("/static", "./static")

	r.Use(a.admin.visitorTrackingMiddleware())

	r.GET("/", a.portfolioPage)

	// unknown pages render the portfolio; unknown API calls get a 404
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/particles/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		a.portfolioPage(c)
	})

	// HTMX fragments
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})

	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", gin.H{
			"experience":       experience,
			"responsibilities": responsibilities,
		})
	})

	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "education-content.html", gin.H{
			"education": education,
		})
	})

	r.POST("/contact", a.handleContact)

	// Hero particle field
	r.GET("/particles/stream", a.hub.handleStream)
	r.POST("/particles/:id/resize", a.hub.handleResize)
	r.DELETE("/particles/:id", a.hub.handleClose)

	a.admin.setupRoutes(r)
	return r
}

func (a *app) handleContact(c *gin.Context) {
	form := contactForm{
		Name:    strings.TrimSpace(c.PostForm("name")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}
	if !form.complete() {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, email and message.",
		})
		return
	}

	id, err := a.store.SaveContactMessage(ContactMessage{
		Name:      form.Name,
		Email:     form.Email,
		Message:   form.Message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		a.log.Errorf("Error saving contact message: %v", err)
	}

	if err := a.relay.Send(form); err != nil {
		a.log.Errorf("Error sending email: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}
	if id > 0 {
		if err := a.store.MarkContactDelivered(id); err != nil {
			a.log.Errorf("Error updating contact message %d: %v", id, err)
		}
	}
	a.log.Infof("Email sent successfully from %s", form.Name)

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

func main() {
	bootLog := logging.New("portfolio", false)
	cfg := envConfig(bootLog)
	log := logging.New("portfolio", cfg.Debug)

	store, err := openStore(cfg.DBPath)
	if err != nil {
		log.Errorf("Failed to open database: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	a := newApp(cfg, store, newSMTPMailer(cfg), log)
	go a.admin.cleanupOldVisitorData()

	log.Infof("Listening on :%s", cfg.Port)
	if err := a.router().Run(":" + cfg.Port); err != nil {
		log.Errorf("server: %v", err)
		os.Exit(1)
	}
}
