package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"question-bank-api/config"
	"question-bank-api/models"
	"question-bank-api/services"

	"github.com/gin-gonic/gin"
)

// GetPendingQuestions lists questions waiting for review.
func GetPendingQuestions(c *gin.Context) {
	var questions []models.Question
	if err := config.DB.Preload("Maker").
		Where("status = ?", models.StatusPending).
		Order("update_at ASC").
		Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions, "total": len(questions)})
}

// GetReviewedQuestions lists questions that already have a decision.
func GetReviewedQuestions(c *gin.Context) {
	var questions []models.Question
	if err := config.DB.Preload("Maker").Preload("Checker").
		Where("status IN ?", []models.QuestionStatus{models.StatusApproved, models.StatusRejected}).
		Order("update_at DESC").
		Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviewed questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions, "total": len(questions)})
}

// ApproveQuestion approves a single pending question.
func ApproveQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || questionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	userID, _ := currentUserID(c)

	svc := services.NewReviewService(config.DB)
	question, err := svc.Approve(uint(questionID), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Question approved successfully",
		"question": question,
	})
}

// RejectQuestion rejects a single pending question with a comment and mails
// the maker about it.
func RejectQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || questionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID, _ := currentUserID(c)

	svc := services.NewReviewService(config.DB)
	question, err := svc.Reject(uint(questionID), userID, req.Comment)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	notifyRejection(question)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Question rejected successfully",
		"question": question,
	})
}

// BulkApproveQuestions approves a batch of pending questions. Ids that are
// not pending are skipped; the response reports how many went through.
func BulkApproveQuestions(c *gin.Context) {
	var req struct {
		IDs []uint `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No question IDs provided"})
		return
	}

	userID, _ := currentUserID(c)

	svc := services.NewReviewService(config.DB)
	approved, err := svc.BulkApprove(req.IDs, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Questions approved successfully",
		"approved": approved,
	})
}

// GetMyLedger returns the caller's performance ledger grouped by category.
func GetMyLedger(c *gin.Context) {
	userID, _ := currentUserID(c)
	role, _ := currentRole(c)

	svc := services.NewLedgerService(config.DB)
	entries, err := svc.EntriesFor(userID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ledger"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ledger": entries})
}

// notifyRejection emails the maker about the rejection. Best effort: the
// decision is already committed, so a mail failure is only logged.
func notifyRejection(question *models.Question) {
	if question == nil || question.Maker == nil || question.Maker.Email == "" {
		return
	}

	subject := "Your question was rejected"
	body := fmt.Sprintf(
		"<p>Your question %q was rejected by a checker.</p><p>Comment: %s</p><p>You can revise and resubmit it from your dashboard.</p>",
		question.QuestionText, question.CheckerComment,
	)
	if err := config.SendMail([]string{question.Maker.Email}, subject, body); err != nil {
		log.Printf("Warning: failed to send rejection mail for question %d: %v", question.QuestionID, err)
	}
}
