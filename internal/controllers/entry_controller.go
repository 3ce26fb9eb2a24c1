package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-be/internal/middleware"
	"catalog-be/internal/models"
	"catalog-be/internal/repository"
	"catalog-be/internal/service"
)

type EntryController struct {
	entryService service.EntryService
}

func NewEntryController(entryService service.EntryService) *EntryController {
	return &EntryController{entryService: entryService}
}

// callerID returns the authenticated user's ID set by the auth middleware
func callerID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return "", false
	}
	return userID, true
}

// Create handles POST /api/entry/
func (ec *EntryController) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": err.Error(),
		})
		return
	}

	entry, err := ec.entryService.Create(userID, &req)
	if err != nil {
		log.Printf("Create entry error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create entry",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    entry,
	})
}

// List handles GET /api/entry/?page&limit&search&type
func (ec *EntryController) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var query models.ListEntriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": err.Error(),
		})
		return
	}

	result, err := ec.entryService.List(userID, &query)
	if err != nil {
		log.Printf("List entries error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch entries",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       result.Entries,
		"pagination": result.Pagination,
	})
}

// Get handles GET /api/entry/:id
func (ec *EntryController) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	entry, err := ec.entryService.Get(userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Entry not found",
			})
			return
		}
		log.Printf("Get entry error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch entry",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entry,
	})
}

// Update handles PUT /api/entry/:id with a partial body
func (ec *EntryController) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": err.Error(),
		})
		return
	}

	entry, err := ec.entryService.Update(userID, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Entry not found",
			})
			return
		}
		log.Printf("Update entry error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update entry",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entry,
	})
}

// Delete handles DELETE /api/entry/:id
func (ec *EntryController) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := ec.entryService.Delete(userID, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Entry not found",
			})
			return
		}
		log.Printf("Delete entry error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete entry",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Entry deleted successfully",
	})
}
