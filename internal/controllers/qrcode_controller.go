package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"catalog-be/internal/repository"
	"catalog-be/internal/service"
)

type QRCodeController struct {
	entryService service.EntryService
	clientURL    string
}

func NewQRCodeController(entryService service.EntryService, clientURL string) *QRCodeController {
	return &QRCodeController{
		entryService: entryService,
		clientURL:    clientURL,
	}
}

// GenerateQRCode handles GET /api/entry/:id/qrcode - returns a PNG QR code
// for the entry's share link. Ownership is checked the same way as Get.
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	entry, err := qc.entryService.Get(userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Entry not found",
			})
			return
		}
		log.Printf("QR code entry lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	shareURL := qc.clientURL + "/entry/" + entry.ID

	// 256x256 pixels, medium error recovery
	pngData, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code image"})
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
