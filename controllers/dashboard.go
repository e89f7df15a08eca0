package controllers

import (
	"net/http"

	"question-bank-api/config"
	"question-bank-api/models"
	"question-bank-api/services"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns role-appropriate counters for the landing page.
func GetDashboardStats(c *gin.Context) {
	userID, okUser := currentUserID(c)
	role, okRole := currentRole(c)
	if !okUser || !okRole {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication context missing"})
		return
	}

	var stats map[string]interface{}
	var err error
	switch {
	case role.CanAdminister():
		stats, err = adminDashboard()
	case role.CanReview():
		stats, err = checkerDashboard(userID)
	default:
		stats, err = makerDashboard(userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func makerDashboard(userID uint) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	byStatus := make(map[models.QuestionStatus]int64)
	for _, status := range []models.QuestionStatus{
		models.StatusDraft, models.StatusPending, models.StatusApproved, models.StatusRejected,
	} {
		var count int64
		if err := config.DB.Model(&models.Question{}).
			Where("maker_id = ? AND status = ?", userID, status).
			Count(&count).Error; err != nil {
			return nil, err
		}
		byStatus[status] = count
	}
	stats["questions_by_status"] = byStatus

	var claimed int64
	if err := config.DB.Model(&models.Paper{}).
		Where("claimed_by = ?", userID).
		Count(&claimed).Error; err != nil {
		return nil, err
	}
	stats["claimed_papers"] = claimed

	totals, err := services.NewLedgerService(config.DB).TotalsFor(userID, models.RoleMaker)
	if err != nil {
		return nil, err
	}
	stats["ledger_totals"] = totals

	return stats, nil
}

func checkerDashboard(userID uint) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var pending int64
	if err := config.DB.Model(&models.Question{}).
		Where("status = ?", models.StatusPending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	stats["pending_questions"] = pending

	totals, err := services.NewLedgerService(config.DB).TotalsFor(userID, models.RoleChecker)
	if err != nil {
		return nil, err
	}
	stats["ledger_totals"] = totals

	return stats, nil
}

func adminDashboard() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var makers, checkers int64
	if err := config.DB.Model(&models.User{}).
		Where("role = ? AND delete_at IS NULL", models.RoleMaker).
		Count(&makers).Error; err != nil {
		return nil, err
	}
	if err := config.DB.Model(&models.User{}).
		Where("role = ? AND delete_at IS NULL", models.RoleChecker).
		Count(&checkers).Error; err != nil {
		return nil, err
	}
	stats["makers"] = makers
	stats["checkers"] = checkers

	var papers, claimedPapers int64
	if err := config.DB.Model(&models.Paper{}).Count(&papers).Error; err != nil {
		return nil, err
	}
	if err := config.DB.Model(&models.Paper{}).
		Where("claimed_by IS NOT NULL").
		Count(&claimedPapers).Error; err != nil {
		return nil, err
	}
	stats["papers"] = papers
	stats["claimed_papers"] = claimedPapers

	byStatus := make(map[models.QuestionStatus]int64)
	for _, status := range []models.QuestionStatus{
		models.StatusDraft, models.StatusPending, models.StatusApproved, models.StatusRejected,
	} {
		var count int64
		if err := config.DB.Model(&models.Question{}).
			Where("status = ?", status).
			Count(&count).Error; err != nil {
			return nil, err
		}
		byStatus[status] = count
	}
	stats["questions_by_status"] = byStatus

	return stats, nil
}
