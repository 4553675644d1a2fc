package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"menuva/httperr"
	"menuva/middleware"
	"menuva/models"
)

type RegisterRequest struct {
	Name         string      `json:"name" binding:"required"`
	Email        string      `json:"email" binding:"required,email"`
	Password     string      `json:"password" binding:"required,min=6"`
	Role         models.Role `json:"role" binding:"required,oneof=ADMIN RESTAURATOR"`
	RestaurantID *uint       `json:"restaurant_id"`
	Permissions  []string    `json:"permissions"`
	Phone        string      `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a platform account. Customers never register: guest
// checkout plus lookup-by-secret covers them.
func (a *API) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	if req.Role == models.RoleRestaurator {
		if req.RestaurantID == nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"code":    "VALIDATION",
				"message": "restaurant_id is required for RESTAURATOR accounts",
			})
			return
		}
		if _, err := a.Catalog.RestaurantByID(c.Request.Context(), *req.RestaurantID); err != nil {
			httperr.Render(c, err)
			return
		}
	}

	if _, err := a.Users.ByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"code":    "CONFLICT",
			"message": "Email already registered",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		RestaurantID: req.RestaurantID,
		Permissions:  models.PermissionSet(req.Permissions),
		Phone:        req.Phone,
	}
	if err := a.Users.Create(c.Request.Context(), &user); err != nil {
		httperr.Render(c, err)
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Login authenticates a user and returns a JWT
func (a *API) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	user, err := a.Users.ByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Invalid email or password",
		})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Invalid email or password",
		})
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// GetProfile returns the authenticated user's profile
func (a *API) GetProfile(c *gin.Context) {
	p := middleware.MustPrincipal(c)
	user, err := a.Users.ByID(c.Request.Context(), p.UserID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
