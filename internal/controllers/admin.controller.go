package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"portfolio/internal/config"
)

type AdminController struct {
	cfg config.AdminConfig
	log zerolog.Logger
}

func NewAdminController(cfg config.AdminConfig, log zerolog.Logger) *AdminController {
	return &AdminController{cfg: cfg, log: log.With().Str("component", "admin_controller").Logger()}
}

type loginRequest struct {
	PIN string `json:"pin"`
}

// Login godoc
// @Summary Start an admin session
// @Description Exchanges the admin PIN for a short-lived bearer token
// @Tags admin
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Admin PIN"
// @Success 200 {object} map[string]interface{} "Session token issued"
// @Failure 401 {object} map[string]interface{} "Wrong PIN"
// @Router /api/admin/login [post]
func (ac *AdminController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PIN == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "pin is required"})
		return
	}

	if ac.cfg.PIN == "" || ac.cfg.JWTSecret == "" {
		ac.log.Error().Msg("ADMIN_PIN or JWT_SECRET not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "admin access is not configured"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.PIN), []byte(ac.cfg.PIN)) != 1 {
		ac.log.Warn().Str("ip", c.ClientIP()).Msg("admin login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid pin"})
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"iat": now.Unix(),
		"exp": now.Add(ac.cfg.TokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(ac.cfg.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"token": signed, "expiresIn": int(ac.cfg.TokenTTL.Seconds())},
	})
}
