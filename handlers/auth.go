package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/quanlykho/kho_backend/utils"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login is a single-operator check: ADMIN_USERNAME plus a bcrypt hash in
// ADMIN_PASSWORD_HASH. Without a configured hash the default shop password
// applies, same as the packaged installs in the field.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	if req.Username != username {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if hash == "" {
		if req.Password != "123456" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
	} else if err := utils.ComparePassword(hash, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.JwtGenerate(username, "admin")
	if err != nil {
		h.writeError(c, "Login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "username": username, "role": "admin"})
}
