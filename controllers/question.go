package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"question-bank-api/config"
	"question-bank-api/models"
	"question-bank-api/services"
	"question-bank-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionRequest struct {
	QuestionID    uint                    `json:"question_id"`
	QuestionText  string                  `json:"question_text" binding:"required"`
	QuestionImage string                  `json:"question_image"`
	Options       []models.QuestionOption `json:"options" binding:"required"`
	Explanation   string                  `json:"explanation"`
	Reference     string                  `json:"reference"`
	Course        string                  `json:"course"`
	Subject       string                  `json:"subject" binding:"required"`
	Unit          string                  `json:"unit"`
	Chapter       string                  `json:"chapter"`
	Complexity    models.Complexity       `json:"complexity"`
	Keywords      []string                `json:"keywords"`
	PaperID       *uint                   `json:"paper_id"`
	PositionLabel string                  `json:"position_label"`
}

func validateQuestionRequest(req *QuestionRequest) string {
	if strings.TrimSpace(req.QuestionText) == "" {
		return "Question text is required"
	}
	if len(req.Options) < 2 {
		return "At least two options are required"
	}
	correct := 0
	for _, opt := range req.Options {
		if strings.TrimSpace(opt.Text) == "" && opt.Image == "" {
			return "Every option needs text or an image"
		}
		if opt.IsCorrect {
			correct++
		}
	}
	if correct > 1 {
		return "At most one option may be marked correct"
	}
	if req.Complexity == "" {
		req.Complexity = models.ComplexityEasy
	}
	if !req.Complexity.Valid() {
		return "Complexity must be Easy, Medium or Hard"
	}
	return ""
}

// CreateOrUpdateQuestion saves a maker's question. With a question_id it
// updates an existing draft or rejected question owned by the caller;
// otherwise it creates a new draft.
func CreateOrUpdateQuestion(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if msg := validateQuestionRequest(&req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	options, err := json.Marshal(req.Options)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid options"})
		return
	}
	keywords, err := json.Marshal(req.Keywords)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid keywords"})
		return
	}

	if req.QuestionID != 0 {
		// Update an existing question, but only the caller's own and only
		// while it is editable.
		var question models.Question
		if err := config.DB.Where("question_id = ? AND maker_id = ?", req.QuestionID, userID).
			First(&question).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Question not found or not yours"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load question"})
			return
		}

		if question.Status == models.StatusPending || question.Status == models.StatusApproved {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Only draft or rejected questions can be edited"})
			return
		}

		question.QuestionText = utils.SanitizeInput(req.QuestionText)
		question.QuestionImage = req.QuestionImage
		question.Options = options
		question.Explanation = req.Explanation
		question.Reference = req.Reference
		question.Course = req.Course
		question.Subject = req.Subject
		question.Unit = req.Unit
		question.Chapter = req.Chapter
		question.Complexity = req.Complexity
		question.Keywords = keywords
		question.PaperID = req.PaperID
		question.PositionLabel = req.PositionLabel

		if err := config.DB.Save(&question).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Question updated successfully", "question": question})
		return
	}

	question := models.Question{
		QuestionText:  utils.SanitizeInput(req.QuestionText),
		QuestionImage: req.QuestionImage,
		Options:       options,
		Explanation:   req.Explanation,
		Reference:     req.Reference,
		Course:        req.Course,
		Subject:       req.Subject,
		Unit:          req.Unit,
		Chapter:       req.Chapter,
		Complexity:    req.Complexity,
		Keywords:      keywords,
		Status:        models.StatusDraft,
		MakerID:       userID,
		PaperID:       req.PaperID,
		PositionLabel: req.PositionLabel,
	}

	if err := config.DB.Create(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Question created successfully", "question": question})
}

// GetQuestion returns a single question. Checkers may view any question;
// makers only their own.
func GetQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || questionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	userID, _ := currentUserID(c)
	role, _ := currentRole(c)

	var question models.Question
	if err := config.DB.Preload("Maker").Preload("Paper").
		First(&question, "question_id = ?", questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	if !role.CanReview() && !role.CanAdminister() && question.MakerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to view this question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": question})
}

// GetDraftQuestions lists the caller's drafts, newest first.
func GetDraftQuestions(c *gin.Context) {
	userID, _ := currentUserID(c)

	var drafts []models.Question
	if err := config.DB.Where("maker_id = ? AND status = ?", userID, models.StatusDraft).
		Order("create_at DESC").
		Find(&drafts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch drafts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": drafts, "total": len(drafts)})
}

type questionIDsRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// DeleteQuestions removes the caller's own drafts in bulk.
func DeleteQuestions(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req questionIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No question IDs provided"})
		return
	}

	result := config.DB.Where("question_id IN ? AND maker_id = ? AND status = ?",
		req.IDs, userID, models.StatusDraft).
		Delete(&models.Question{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Questions deleted successfully",
		"deleted": result.RowsAffected,
	})
}

// SubmitQuestions sends the caller's drafts into the review queue.
func SubmitQuestions(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req questionIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No question IDs provided"})
		return
	}

	svc := services.NewWorkflowService(config.DB)
	submitted, err := svc.Submit(req.IDs, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Questions submitted for approval",
		"submitted": submitted,
	})
}

// ResubmitQuestion puts a rejected question back into the review queue.
func ResubmitQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || questionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	userID, _ := currentUserID(c)

	svc := services.NewWorkflowService(config.DB)
	question, err := svc.Resubmit(uint(questionID), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Question resubmitted for approval",
		"question": question,
	})
}

// GetSubmittedQuestions lists everything the caller has authored, with the
// review outcome and any checker comment.
func GetSubmittedQuestions(c *gin.Context) {
	userID, _ := currentUserID(c)

	var questions []models.Question
	if err := config.DB.Where("maker_id = ? AND status <> ?", userID, models.StatusDraft).
		Order("create_at DESC").
		Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions, "total": len(questions)})
}
