package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"insightfeed/internal/middleware"
	"insightfeed/internal/models"
	"insightfeed/internal/service"
)

// ArticleResponse - представление для списков и чтения: вместо множеств
// реакций отдаем счетчики
type ArticleResponse struct {
	ArticleID string    `json:"articleId"`
	AuthorID  string    `json:"authorId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Images    []string  `json:"images"`
	Tags      []string  `json:"tags"`
	Category  string    `json:"category"`
	Published bool      `json:"published"`
	Likes     int       `json:"likes"`
	Dislikes  int       `json:"dislikes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newArticleResponse(article *models.Article) ArticleResponse {
	return ArticleResponse{
		ArticleID: article.ArticleID,
		AuthorID:  article.AuthorID,
		Title:     article.Title,
		Content:   article.Content,
		Images:    article.Images,
		Tags:      article.Tags,
		Category:  article.Category,
		Published: article.Published,
		Likes:     len(article.Likes),
		Dislikes:  len(article.Dislikes),
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
}

func newArticleListResponse(articles []models.Article) []ArticleResponse {
	result := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		result = append(result, newArticleResponse(&articles[i]))
	}
	return result
}

// readImageUpload достает файл image из multipart-формы и проверяет, что
// это действительно изображение. Отсутствие файла - не ошибка.
func (h *Handlers) readImageUpload(w http.ResponseWriter, r *http.Request) (*service.ImageUpload, bool) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат формы", http.StatusBadRequest)
		return nil, false
	}

	// временные файлы multipart чистим по принципу best-effort
	defer func() {
		if r.MultipartForm != nil {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				log.Printf("Предупреждение: не удалось удалить временные файлы: %v", err)
			}
		}
	}()

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		WriteError(w, "Неверный файл изображения", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.Cfg.MaxUploadSize+1))
	if err != nil {
		WriteError(w, "Не удалось прочитать файл", http.StatusBadRequest)
		return nil, false
	}

	if int64(len(data)) > h.Cfg.MaxUploadSize {
		WriteError(w, "Файл слишком большой. Максимум 5MB", http.StatusBadRequest)
		return nil, false
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		WriteError(w, "Допускаются только изображения", http.StatusBadRequest)
		return nil, false
	}

	return &service.ImageUpload{
		FileName:    header.Filename,
		ContentType: mtype.String(),
		Size:        int64(len(data)),
		File:        bytes.NewReader(data),
	}, true
}

func (h *Handlers) CreateArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	image, ok := h.readImageUpload(w, r)
	if !ok {
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	category := strings.ToLower(strings.TrimSpace(r.FormValue("category")))
	tags := r.FormValue("tags")

	if title == "" || content == "" || category == "" {
		WriteError(w, "Заголовок, текст и категория обязательны", http.StatusBadRequest)
		return
	}

	if !models.IsValidCategory(category) {
		WriteError(w, "Неизвестная категория", http.StatusBadRequest)
		return
	}

	article, err := h.ArticleService.Create(r.Context(), service.CreateArticleRequest{
		AuthorID: userID,
		Title:    title,
		Content:  content,
		Category: category,
		Tags:     tags,
		Image:    image,
	})
	if err != nil {
		h.writeDomainError(w, err, "Не удалось создать статью")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"message": "Статья создана",
		"article": newArticleResponse(article),
	}, http.StatusCreated)
}

func (h *Handlers) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	articleID := mux.Vars(r)["articleId"]

	image, ok := h.readImageUpload(w, r)
	if !ok {
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	category := strings.ToLower(strings.TrimSpace(r.FormValue("category")))
	tags := r.FormValue("tags")

	if title == "" || content == "" || category == "" {
		WriteError(w, "Заголовок, текст и категория обязательны", http.StatusBadRequest)
		return
	}

	if !models.IsValidCategory(category) {
		WriteError(w, "Неизвестная категория", http.StatusBadRequest)
		return
	}

	article, err := h.ArticleService.Update(r.Context(), service.UpdateArticleRequest{
		ArticleID: articleID,
		ActorID:   userID,
		Title:     title,
		Content:   content,
		Category:  category,
		Tags:      tags,
		Image:     image,
	})
	if err != nil {
		h.writeDomainError(w, err, "Не удалось обновить статью")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"message": "Статья обновлена",
		"article": newArticleResponse(article),
	}, http.StatusOK)
}

func (h *Handlers) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	articleID := mux.Vars(r)["articleId"]

	if err := h.ArticleService.Delete(r.Context(), articleID, userID); err != nil {
		h.writeDomainError(w, err, "Не удалось удалить статью")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"message": "Статья удалена",
	}, http.StatusOK)
}

func (h *Handlers) PublishArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	articleID := mux.Vars(r)["id"]

	article, err := h.ArticleService.Publish(r.Context(), articleID, userID)
	if err != nil {
		h.writeDomainError(w, err, "Не удалось опубликовать статью")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"message": "Статья опубликована",
		"article": newArticleResponse(article),
	}, http.StatusOK)
}

func (h *Handlers) GetArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	articleID := mux.Vars(r)["articleId"]

	article, err := h.ArticleService.GetByID(r.Context(), articleID)
	if err != nil {
		h.writeDomainError(w, err, "Не удалось получить статью")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"article": newArticleResponse(article),
	}, http.StatusOK)
}

func (h *Handlers) GetUserArticles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	articles, err := h.ArticleService.GetByAuthor(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, err, "Не удалось получить статьи")
		return
	}

	response := newArticleListResponse(articles)

	WriteSuccess(w, map[string]interface{}{
		"success":  true,
		"articles": response,
		"count":    len(response),
	}, http.StatusOK)
}

func (h *Handlers) GetArticlesByCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	categoriesParam := r.URL.Query().Get("categories")
	if categoriesParam == "" {
		WriteError(w, "Параметр categories обязателен", http.StatusBadRequest)
		return
	}

	articles, err := h.ArticleService.GetByCategories(r.Context(), strings.Split(categoriesParam, ","))
	if err != nil {
		h.writeDomainError(w, err, "Не удалось получить статьи")
		return
	}

	response := newArticleListResponse(articles)

	WriteSuccess(w, map[string]interface{}{
		"success":  true,
		"articles": response,
		"count":    len(response),
	}, http.StatusOK)
}

// GetLatestArticles - публичный эндпоинт, авторизация не нужна
func (h *Handlers) GetLatestArticles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	articles, err := h.ArticleService.GetLatest(r.Context())
	if err != nil {
		h.writeDomainError(w, err, "Не удалось получить последние статьи")
		return
	}

	response := newArticleListResponse(articles)

	WriteSuccess(w, map[string]interface{}{
		"success":  true,
		"articles": response,
		"count":    len(response),
	}, http.StatusOK)
}

var reactionMessages = map[service.ReactionAction]string{
	service.ActionLike:          "Лайк поставлен",
	service.ActionDislike:       "Дизлайк поставлен",
	service.ActionRemoveLike:    "Лайк убран",
	service.ActionRemoveDislike: "Дизлайк убран",
	service.ActionBlock:         "Статья заблокирована",
	service.ActionUnblock:       "Статья разблокирована",
}

// Reaction - общий хендлер для всех операций над множествами реакций
func (h *Handlers) Reaction(action service.ReactionAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
			return
		}

		articleID := mux.Vars(r)["articleId"]

		article, err := h.ArticleService.React(r.Context(), action, articleID, userID)
		if err != nil {
			h.writeDomainError(w, err, "Не удалось выполнить действие")
			return
		}

		WriteSuccess(w, map[string]interface{}{
			"success": true,
			"message": reactionMessages[action],
			"article": newArticleResponse(article),
		}, http.StatusOK)
	}
}
