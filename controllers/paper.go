package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"question-bank-api/config"
	"question-bank-api/models"
	"question-bank-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClaimPaper assigns an available paper to the calling maker. Exactly one of
// any number of concurrent claimants wins; everyone else gets a conflict.
func ClaimPaper(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	userID, _ := currentUserID(c)

	svc := services.NewClaimService(config.DB)
	paper, err := svc.Claim(uint(paperID), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Paper claimed successfully",
		"paper":   paper,
	})
}

// GetAvailablePapers lists papers no maker has claimed yet.
func GetAvailablePapers(c *gin.Context) {
	svc := services.NewClaimService(config.DB)
	papers, err := svc.ListAvailable()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"papers": papers, "total": len(papers)})
}

// GetMyClaimedPapers lists the papers held by the calling maker.
func GetMyClaimedPapers(c *gin.Context) {
	userID, _ := currentUserID(c)

	svc := services.NewClaimService(config.DB)
	papers, err := svc.ListClaimedBy(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"papers": papers, "total": len(papers)})
}

// GetAllPapers lists every paper with its claim state. Admin only.
func GetAllPapers(c *gin.Context) {
	svc := services.NewClaimService(config.DB)
	papers, err := svc.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"papers": papers, "total": len(papers)})
}

// UploadPapers stores one or more PDFs and registers them as claimable
// papers. Admin only.
func UploadPapers(c *gin.Context) {
	userID, _ := currentUserID(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	uploadDir := filepath.Join(uploadPath, "papers")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload directory"})
		return
	}

	uploaded := make([]models.Paper, 0, len(files))
	for _, header := range files {
		contentType := header.Header.Get("Content-Type")
		if contentType != "application/pdf" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s: only PDF files are allowed", header.Filename)})
			return
		}
		if header.Size > 20*1024*1024 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s: file size exceeds 20MB limit", header.Filename)})
			return
		}

		// Unique stored name; the original name stays as the paper's
		// human-readable (and unique) identity.
		storedName := uuid.New().String() + filepath.Ext(header.Filename)
		storedPath := filepath.Join(uploadDir, storedName)

		if err := c.SaveUploadedFile(header, storedPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}

		paper := models.Paper{
			Name:       strings.TrimSpace(header.Filename),
			StoredPath: storedPath,
			SourceURL:  "/papers/files/" + storedName,
			FileSize:   header.Size,
			MimeType:   contentType,
			UploadedBy: userID,
		}
		if err := config.DB.Create(&paper).Error; err != nil {
			_ = os.Remove(storedPath)
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("%s: a paper with this name already exists", header.Filename)})
			return
		}

		uploaded = append(uploaded, paper)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Papers uploaded successfully",
		"papers":  uploaded,
	})
}

// DeletePaper removes a paper and its stored file. This is also the only way
// a claim is ever undone. Admin only.
func DeletePaper(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	var paper models.Paper
	if err := config.DB.First(&paper, "paper_id = ?", paperID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}

	if err := config.DB.Delete(&paper).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete paper"})
		return
	}

	if paper.StoredPath != "" {
		if err := os.Remove(paper.StoredPath); err != nil && !os.IsNotExist(err) {
			// Record is gone; a leftover file is only worth a log line.
			fmt.Fprintf(config.LogWriter, "Warning: failed to remove paper file %s: %v\n", paper.StoredPath, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Paper deleted successfully"})
}

// DownloadPaper streams a stored paper back to the caller.
func DownloadPaper(c *gin.Context) {
	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil || paperID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	var paper models.Paper
	if err := config.DB.First(&paper, "paper_id = ?", paperID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}

	c.FileAttachment(paper.StoredPath, paper.Name)
}
