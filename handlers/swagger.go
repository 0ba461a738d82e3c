package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>juegoteca — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the games and reviews endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "juegoteca", "version": "v0.1.0" },
  "paths": {
    "/api/juegos": {
      "get": { "summary": "List games, newest first", "responses": { "200": { "description": "array of games" } } },
      "post": { "summary": "Create a game", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["title"],"properties":{"title":{"type":"string"},"platform":{"type":"string"},"genre":{"type":"string"},"completed":{"type":"boolean"},"rating":{"type":"number","minimum":0,"maximum":5},"hoursPlayed":{"type":"number"},"coverUrl":{"type":"string"}}}}}}, "responses": { "201": { "description": "created game" }, "400": { "description": "validation error" } } }
    },
    "/api/juegos/{id}": {
      "get": { "summary": "Get a game by id", "responses": { "200": { "description": "game" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update a game", "responses": { "200": { "description": "updated game" }, "400": { "description": "validation error" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a game and purge its reviews", "responses": { "200": { "description": "confirmation with reviewsDeleted count" }, "404": { "description": "not found" } } }
    },
    "/api/resenas": {
      "get": { "summary": "List reviews with their game resolved, newest first", "responses": { "200": { "description": "array of resolved reviews" } } },
      "post": { "summary": "Create a review", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["gameId","content"],"properties":{"gameId":{"type":"string"},"title":{"type":"string"},"content":{"type":"string"},"rating":{"type":"number","minimum":0,"maximum":5}}}}}}, "responses": { "201": { "description": "created review" }, "400": { "description": "validation error" } } }
    },
    "/api/resenas/{id}": {
      "put": { "summary": "Update a review", "responses": { "200": { "description": "updated review" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a review", "responses": { "200": { "description": "confirmation" }, "404": { "description": "not found" } } }
    },
    "/api/resenas/juego/{juegoId}": {
      "get": { "summary": "List reviews for one game, newest first", "responses": { "200": { "description": "array of reviews" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
