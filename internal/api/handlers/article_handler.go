package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmorell/newsroom-be/internal/apperr"
	"github.com/jmorell/newsroom-be/internal/auth"
	"github.com/jmorell/newsroom-be/internal/models"
	"github.com/jmorell/newsroom-be/internal/services"
	ws "github.com/jmorell/newsroom-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// ArticleHandler handles HTTP requests related to news articles.
type ArticleHandler struct {
	service services.ArticleServiceProvider
	audit   services.AuditServiceProvider
	hub     *ws.Hub
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(service services.ArticleServiceProvider, audit services.AuditServiceProvider, hub *ws.Hub) *ArticleHandler {
	return &ArticleHandler{service: service, audit: audit, hub: hub}
}

// GetAll handles the request to get all articles.
func (h *ArticleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.GetAllArticles()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve articles")
		respondMsg(w, http.StatusInternalServerError, "Error fetching news")
		return
	}
	respondJSON(w, http.StatusOK, articles)
}

// Get handles the request to get a single article by its ID.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	article, err := h.service.GetArticleByID(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			respondMsg(w, http.StatusNotFound, "News not found")
			return
		}
		log.Error().Err(err).Str("article_id", id).Msg("Failed to retrieve article")
		respondMsg(w, http.StatusInternalServerError, "Error fetching news")
		return
	}
	respondJSON(w, http.StatusOK, article)
}

// Create handles the request to create a new article.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var article models.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		respondMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.CreateArticle(article)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			respondMsg(w, http.StatusBadRequest, "Title, category, content and category_news are required")
			return
		}
		log.Error().Err(err).Msg("Failed to create article")
		respondMsg(w, http.StatusInternalServerError, "Error creating news")
		return
	}

	h.recordAudit(r, "article.create", fmt.Sprintf("Article %q created", created.Title))
	h.broadcast("article_created", created)
	h.broadcastTo(created.Category, "category_article_created", created)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"msg":  "News created successfully",
		"news": created,
	})
}

// Update handles the request to update an existing article.
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	var patch models.ArticleUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateArticle(id, patch)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			respondMsg(w, http.StatusNotFound, "News not found")
			return
		}
		log.Error().Err(err).Str("article_id", id).Msg("Failed to update article")
		respondMsg(w, http.StatusInternalServerError, "Error updating news")
		return
	}

	h.recordAudit(r, "article.update", fmt.Sprintf("Article %q updated", updated.Title))
	h.broadcast("article_updated", updated)

	respondJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete an article.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteArticle(id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			respondMsg(w, http.StatusNotFound, "News not found")
			return
		}
		log.Error().Err(err).Str("article_id", id).Msg("Failed to delete article")
		respondMsg(w, http.StatusInternalServerError, "Error deleting news")
		return
	}

	h.recordAudit(r, "article.delete", fmt.Sprintf("Article %s deleted", id))
	h.broadcast("article_deleted", map[string]string{"id": id})

	respondJSON(w, http.StatusOK, map[string]string{"msg": "News deleted successfully"})
}

// articleID extracts and validates the id path parameter, writing the
// error response itself when the id is malformed.
func articleID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		respondMsg(w, http.StatusBadRequest, "Invalid ID")
		return "", false
	}
	return id, true
}

func (h *ArticleHandler) recordAudit(r *http.Request, eventType, message string) {
	var actorID *string
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		actorID = &claims.UserID
	}
	if err := h.audit.Record(eventType, "info", message, actorID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record audit event")
	}
}

func (h *ArticleHandler) broadcast(action string, payload interface{}) {
	if h.hub == nil {
		return
	}
	if msg := ws.NewArticleMessage(action, payload); msg != nil {
		h.hub.Broadcast <- msg
	}
}

func (h *ArticleHandler) broadcastTo(category, action string, payload interface{}) {
	if h.hub == nil || category == "" {
		return
	}
	if msg := ws.NewArticleMessage(action, payload); msg != nil {
		h.hub.BroadcastTo(category, msg)
	}
}
