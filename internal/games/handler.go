package games

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReviewPurger removes every review referencing a game. Implemented by the
// reviews service; declared here so the games package does not import it.
type ReviewPurger interface {
	DeleteByGame(ctx context.Context, gameID string) (int64, error)
}

// CoverStore persists cover images and returns a URL for stored objects.
type CoverStore interface {
	UploadCover(ctx context.Context, gameID string, r io.Reader, size int64, contentType string) (string, error)
}

// RegisterRoutes registers the /juegos endpoints on the given group.
// The cover-upload endpoint is only registered when a CoverStore is supplied.
func RegisterRoutes(rg *gin.RouterGroup, svc *Service, purger ReviewPurger, covers CoverStore) {
	rg.GET("/juegos", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	rg.GET("/juegos/:id", func(c *gin.Context) {
		g, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, g)
	})

	rg.POST("/juegos", func(c *gin.Context) {
		var in CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		g, err := svc.Create(c.Request.Context(), &in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, g)
	})

	rg.PUT("/juegos/:id", func(c *gin.Context) {
		var in UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		g, err := svc.Update(c.Request.Context(), c.Param("id"), &in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, g)
	})

	rg.DELETE("/juegos/:id", func(c *gin.Context) {
		id := c.Param("id")
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		// Purge is a second, non-transactional step: the game is already gone
		// at this point, so a purge failure is reported as a partial result
		// rather than an error status.
		n, err := purger.DeleteByGame(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"message":        "juego eliminado",
				"reviewsDeleted": n,
				"partial":        true,
				"error":          err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "juego eliminado", "reviewsDeleted": n})
	})

	if covers != nil {
		rg.POST("/juegos/:id/cover", uploadCover(svc, covers))
	}
}

func uploadCover(svc *Service, covers CoverStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := svc.Get(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		fh, err := c.FormFile("cover")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cover file is required"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer f.Close()
		url, err := covers.UploadCover(c.Request.Context(), id, f, fh.Size, fh.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		g, err := svc.SetCoverURL(c.Request.Context(), id, url)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, g)
	}
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
