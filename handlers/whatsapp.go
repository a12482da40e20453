package handlers

import (
	"net/http"
	"strings"

	serviceRepo "glowdesk/database/repository/service"
	tenantRepo "glowdesk/database/repository/tenant"
	"glowdesk/services/bot"
	"glowdesk/services/whatsapp"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WhatsAppHandler receives the inbound webhook and exposes a test send
// endpoint.
type WhatsAppHandler struct {
	engine   *bot.Engine
	store    bot.Store
	tenants  tenantRepo.TenantRepository
	services serviceRepo.ServiceRepository
	sender   whatsapp.Sender
	logger   *zap.Logger
}

// NewWhatsAppHandler creates a WhatsAppHandler.
func NewWhatsAppHandler(engine *bot.Engine, store bot.Store, tenants tenantRepo.TenantRepository, services serviceRepo.ServiceRepository, sender whatsapp.Sender, logger *zap.Logger) *WhatsAppHandler {
	return &WhatsAppHandler{engine: engine, store: store, tenants: tenants, services: services, sender: sender, logger: logger}
}

// Webhook handles one inbound message. Twilio posts form fields From and
// Body; the From number carries a "whatsapp:" channel prefix.
func (h *WhatsAppHandler) Webhook(c *gin.Context) {
	from := c.PostForm("From")
	body := c.PostForm("Body")
	if from == "" || body == "" {
		utils.JSONError(c, http.StatusBadRequest, "From and Body are required", "")
		return
	}

	phone := strings.TrimSpace(strings.TrimPrefix(from, "whatsapp:"))
	message := strings.TrimSpace(body)

	tenantID, err := h.resolveTenant(c.Query("tenantId"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to resolve tenant", err.Error())
		return
	}

	reply := bot.GreetingReply
	if h.hasBookingContext(c, phone, message, tenantID) {
		var err error
		reply, err = h.engine.ProcessMessage(c, phone, message, tenantID)
		if err != nil {
			h.logger.Error("booking engine failed", zap.String("phone", phone), zap.Error(err))
			reply = "Sorry, something went wrong. Please try again in a moment."
		}
	}

	if err := h.sender.Send(c, phone, reply); err != nil {
		h.logger.Error("failed to send WhatsApp reply", zap.String("phone", phone), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// hasBookingContext decides whether the message enters the stateful flow:
// either a conversation is already in flight, or the message expresses
// booking intent. Everything else gets the static greeting.
func (h *WhatsAppHandler) hasBookingContext(c *gin.Context, phone, message, tenantID string) bool {
	state, err := h.store.Get(c, phone)
	if err != nil {
		h.logger.Warn("failed to load conversation", zap.String("phone", phone), zap.Error(err))
	}
	if state != nil {
		return true
	}

	var names []string
	if tenantID != "" {
		services, err := h.services.GetActiveByTenant(tenantID)
		if err != nil {
			h.logger.Warn("failed to list services for intent check", zap.Error(err))
		}
		for _, s := range services {
			names = append(names, s.Name)
		}
	}
	return bot.IsBookingIntent(message, names)
}

// resolveTenant maps the webhook to a tenant. With a single-tenant
// deployment the query parameter may be omitted.
func (h *WhatsAppHandler) resolveTenant(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	tenants, err := h.tenants.GetAll()
	if err != nil {
		return "", err
	}
	if len(tenants) == 1 {
		return tenants[0].ID, nil
	}
	return "", nil
}

// Send delivers an arbitrary message; used for development and testing.
func (h *WhatsAppHandler) Send(c *gin.Context) {
	var req struct {
		To      string `json:"to" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "to and message are required", err.Error())
		return
	}

	if err := h.sender.Send(c, req.To, req.Message); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to send message", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}
