package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmorell/newsroom-be/internal/apperr"
	"github.com/jmorell/newsroom-be/internal/models"
)

// ArticleServiceProvider defines the interface for article services.
type ArticleServiceProvider interface {
	CreateArticle(article models.Article) (models.Article, error)
	GetAllArticles() ([]models.Article, error)
	GetArticleByID(id string) (models.Article, error)
	UpdateArticle(id string, patch models.ArticleUpdate) (models.Article, error)
	DeleteArticle(id string) error
}

// ArticleService provides business logic for news article management.
type ArticleService struct {
	db *sql.DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *sql.DB) *ArticleService {
	return &ArticleService{db: db}
}

// CreateArticle persists a new article. Title, category, content and
// category_news are required; the author username is optional.
func (s *ArticleService) CreateArticle(article models.Article) (models.Article, error) {
	if article.Title == "" || article.Category == "" || article.Content == "" || article.CategoryNews == "" {
		return models.Article{}, apperr.ErrValidation
	}

	article.ID = uuid.New().String()

	stmt, err := s.db.Prepare("INSERT INTO articles(id, username, title, image, category, content, category_news) VALUES(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Article{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(article.ID, article.Username, article.Title, article.Image, article.Category, article.Content, article.CategoryNews)
	if err != nil {
		return models.Article{}, err
	}

	return s.GetArticleByID(article.ID)
}

// GetAllArticles retrieves every article, newest first.
func (s *ArticleService) GetAllArticles() ([]models.Article, error) {
	rows, err := s.db.Query("SELECT id, username, title, COALESCE(image, ''), category, content, category_news, created_at, updated_at FROM articles ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.Username, &a.Title, &a.Image, &a.Category, &a.Content, &a.CategoryNews, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// GetArticleByID retrieves a single article by its ID.
func (s *ArticleService) GetArticleByID(id string) (models.Article, error) {
	var a models.Article
	row := s.db.QueryRow("SELECT id, username, title, COALESCE(image, ''), category, content, category_news, created_at, updated_at FROM articles WHERE id = ?", id)
	err := row.Scan(&a.ID, &a.Username, &a.Title, &a.Image, &a.Category, &a.Content, &a.CategoryNews, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Article{}, apperr.ErrNotFound
		}
		return models.Article{}, err
	}
	return a, nil
}

// UpdateArticle applies a partial update and returns the updated row.
// Fields left nil in the patch keep their stored value.
func (s *ArticleService) UpdateArticle(id string, patch models.ArticleUpdate) (models.Article, error) {
	current, err := s.GetArticleByID(id)
	if err != nil {
		return models.Article{}, err
	}

	applyString(&current.Username, patch.Username)
	applyString(&current.Title, patch.Title)
	applyString(&current.Image, patch.Image)
	applyString(&current.Category, patch.Category)
	applyString(&current.Content, patch.Content)
	applyString(&current.CategoryNews, patch.CategoryNews)

	_, err = s.db.Exec("UPDATE articles SET username = ?, title = ?, image = ?, category = ?, content = ?, category_news = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		current.Username, current.Title, current.Image, current.Category, current.Content, current.CategoryNews, id)
	if err != nil {
		return models.Article{}, err
	}

	return s.GetArticleByID(id)
}

// DeleteArticle removes an article from the database.
func (s *ArticleService) DeleteArticle(id string) error {
	result, err := s.db.Exec("DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
