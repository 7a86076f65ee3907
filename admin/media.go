package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vitrine/localstore"
)

func (a *AdminModule) listImages(c *gin.Context) {
	ctx := c.Request.Context()
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		c.JSON(http.StatusOK, a.images.Search(ctx, a.owner(c), q))
		return
	}
	c.JSON(http.StatusOK, a.images.List(ctx, a.owner(c)))
}

func imageError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, localstore.ErrImageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, localstore.ErrImageType), errors.Is(err, localstore.ErrInvalidImageData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, localstore.ErrImageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	default:
		return false
	}
	return true
}

func (a *AdminModule) uploadImage(c *gin.Context) {
	var up localstore.ImageUpload
	if err := c.ShouldBindJSON(&up); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and data are required"})
		return
	}
	img, err := a.images.Save(c.Request.Context(), a.owner(c), up)
	if err != nil {
		if imageError(c, err) {
			return
		}
		a.log.Error("failed to save image", zap.String("name", up.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save image"})
		return
	}
	c.JSON(http.StatusCreated, img)
}

func (a *AdminModule) updateImage(c *gin.Context) {
	var up localstore.ImageUpdate
	if err := c.ShouldBindJSON(&up); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	img, err := a.images.Update(c.Request.Context(), a.owner(c), c.Param("id"), up)
	if err != nil {
		if imageError(c, err) {
			return
		}
		a.log.Error("failed to update image", zap.String("image", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update image"})
		return
	}
	c.JSON(http.StatusOK, img)
}

func (a *AdminModule) deleteImage(c *gin.Context) {
	if err := a.images.Delete(c.Request.Context(), a.owner(c), c.Param("id")); err != nil {
		if imageError(c, err) {
			return
		}
		a.log.Error("failed to delete image", zap.String("image", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

func (a *AdminModule) imageUsage(c *gin.Context) {
	c.JSON(http.StatusOK, a.images.Usage(c.Request.Context(), a.owner(c)))
}
