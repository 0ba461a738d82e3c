package reviews

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the /resenas endpoints on the given group.
func RegisterRoutes(rg *gin.RouterGroup, svc *Service) {
	rg.GET("/resenas", func(c *gin.Context) {
		list, err := svc.ListResolved(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	rg.GET("/resenas/juego/:juegoId", func(c *gin.Context) {
		list, err := svc.ListByGame(c.Request.Context(), c.Param("juegoId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	rg.POST("/resenas", func(c *gin.Context) {
		var in CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rv, err := svc.Create(c.Request.Context(), &in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, rv)
	})

	rg.PUT("/resenas/:id", func(c *gin.Context) {
		var in UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rv, err := svc.Update(c.Request.Context(), c.Param("id"), &in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rv)
	})

	rg.DELETE("/resenas/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "resena eliminada"})
	})
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
