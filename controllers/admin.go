package controllers

import (
	"net/http"
	"strconv"
	"time"

	"question-bank-api/config"
	"question-bank-api/models"
	"question-bank-api/utils"

	"github.com/gin-gonic/gin"
)

type CreateUserRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role" binding:"required"`
}

// CreateUser registers a new maker or checker account. Admin only.
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role != models.RoleMaker && req.Role != models.RoleChecker {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be 'maker' or 'checker'"})
		return
	}
	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	user := models.User{
		Name:     utils.SanitizeInput(req.Name),
		Email:    req.Email,
		Password: hashed,
		Role:     req.Role,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// GetAllUsers lists maker and checker accounts. Admin only.
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Where("delete_at IS NULL AND role <> ?", models.RoleAdmin).
		Order("create_at DESC").
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	makers := make([]models.User, 0)
	checkers := make([]models.User, 0)
	for _, user := range users {
		switch user.Role {
		case models.RoleMaker:
			makers = append(makers, user)
		case models.RoleChecker:
			checkers = append(checkers, user)
		}
	}

	c.JSON(http.StatusOK, gin.H{"makers": makers, "checkers": checkers})
}

// DeleteUser soft-deletes an account. Admin only.
func DeleteUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.Role.CanAdminister() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin accounts cannot be deleted"})
		return
	}

	now := time.Now()
	user.DeleteAt = &now
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
