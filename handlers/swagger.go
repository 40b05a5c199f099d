package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the Swagger UI page and its OpenAPI document.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>post-digester-donation API</title>
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

// OpenAPI document for the public API.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "post-digester-donation", "version": "v1.0.0" },
  "paths": {
    "/api/v1/register": {
      "post": {
        "summary": "Register a user",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","email","password"],"properties":{"name":{"type":"string"},"email":{"type":"string"},"password":{"type":"string"},"image":{"type":"string"}}}}}},
        "responses": { "201": { "description": "registered" }, "400": { "description": "user exists or bad body" } }
      }
    },
    "/api/v1/login": {
      "post": {
        "summary": "Log in and receive a bearer token",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["email","password"],"properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "token returned" }, "401": { "description": "invalid email or password" } }
      }
    },
    "/api/v1/me": {
      "get": { "summary": "Profile of the token's user", "responses": { "200": { "description": "user" }, "401": { "description": "missing or invalid token" } } }
    },
    "/api/v1/donations": {
      "get": { "summary": "List donations", "responses": { "200": { "description": "array of donations" } } },
      "post": { "summary": "Create a donation", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"category":{"type":"string"},"amount":{"type":"number"}}}}}}, "responses": { "201": { "description": "insert result" } } }
    },
    "/api/v1/donations/{id}": {
      "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ],
      "get": { "summary": "Get a donation", "responses": { "200": { "description": "donation" }, "404": { "description": "not found" }, "500": { "description": "lookup failed" } } },
      "patch": { "summary": "Update supplied donation fields", "responses": { "200": { "description": "updated document or null" } } },
      "delete": { "summary": "Delete a donation", "responses": { "200": { "description": "deleted document or null" } } }
    },
    "/api/v1/statistics": {
      "get": { "summary": "Donation totals per category", "responses": { "200": { "description": "totalDonationSum and statistics" } } }
    },
    "/api/v1/donor": {
      "get": { "summary": "List donors", "responses": { "200": { "description": "donors under data" } } },
      "post": { "summary": "Record a donor contribution", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["email"],"properties":{"email":{"type":"string"},"name":{"type":"string"},"image":{"type":"string"},"amount":{"type":"number"}}}}}}, "responses": { "200": { "description": "insert or update result" } } }
    },
    "/api/v1/comments": {
      "get": { "summary": "List comments", "responses": { "200": { "description": "comments" } } },
      "post": { "summary": "Add a comment", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["comments","email"],"properties":{"comments":{"type":"string"},"email":{"type":"string"}}}}}}, "responses": { "201": { "description": "insert result" }, "404": { "description": "user not found" } } }
    },
    "/api/v1/testimonial": {
      "get": { "summary": "List testimonials", "responses": { "200": { "description": "testimonials" } } },
      "post": { "summary": "Add a testimonial", "responses": { "201": { "description": "insert result" } } }
    },
    "/api/v1/volunteer": {
      "get": { "summary": "List volunteers", "responses": { "200": { "description": "volunteers" } } },
      "post": { "summary": "Sign up as volunteer", "responses": { "201": { "description": "insert result" } } }
    },
    "/api/v1/uploads": {
      "post": { "summary": "Upload an image (multipart field file)", "responses": { "201": { "description": "object key and presigned URL" }, "400": { "description": "missing or non-image file" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
