package test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"insightfeed/internal/middleware"
	"insightfeed/internal/models"
	"insightfeed/internal/repository"
	"insightfeed/internal/service"
)

// минимальный валидный PNG-заголовок, mimetype распознает его как image/png
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func testArticle() *models.Article {
	return &models.Article{
		ArticleID: "article-1",
		AuthorID:  "user-1",
		Title:     "Заголовок",
		Content:   "Текст статьи",
		Category:  "technology",
		Tags:      []string{"go"},
		Likes:     []string{"user-2"},
	}
}

func newMultipartRequest(t *testing.T, target string, fields map[string]string, image []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if image != nil {
		part, err := writer.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req.WithContext(middleware.WithIdentity(req.Context(), "user-1", "test@example.com"))
}

func articleFields() map[string]string {
	return map[string]string{
		"title":    "Заголовок",
		"content":  "Текст статьи",
		"category": "technology",
		"tags":     "go,backend",
	}
}

func TestCreateArticleHandler(t *testing.T) {
	t.Run("Создание статьи с изображением", func(t *testing.T) {
		h, mocks := createTestHandler()

		mocks.article.On("Create", mock.Anything, mock.MatchedBy(func(req service.CreateArticleRequest) bool {
			return req.AuthorID == "user-1" &&
				req.Title == "Заголовок" &&
				req.Image != nil &&
				req.Image.ContentType == "image/png"
		})).Return(testArticle(), nil)

		req := newMultipartRequest(t, "/article/create", articleFields(), pngHeader)
		rr := httptest.NewRecorder()
		h.CreateArticle(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mocks.article.AssertExpectations(t)
	})

	t.Run("Создание без изображения допускается", func(t *testing.T) {
		h, mocks := createTestHandler()

		mocks.article.On("Create", mock.Anything, mock.MatchedBy(func(req service.CreateArticleRequest) bool {
			return req.Image == nil
		})).Return(testArticle(), nil)

		req := newMultipartRequest(t, "/article/create", articleFields(), nil)
		rr := httptest.NewRecorder()
		h.CreateArticle(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Не изображение отклоняется", func(t *testing.T) {
		h, mocks := createTestHandler()

		req := newMultipartRequest(t, "/article/create", articleFields(), []byte("plain text, not an image"))
		rr := httptest.NewRecorder()
		h.CreateArticle(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mocks.article.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Неизвестная категория", func(t *testing.T) {
		h, mocks := createTestHandler()

		fields := articleFields()
		fields["category"] = "astrology"

		req := newMultipartRequest(t, "/article/create", fields, nil)
		rr := httptest.NewRecorder()
		h.CreateArticle(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mocks.article.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Пустой заголовок", func(t *testing.T) {
		h, mocks := createTestHandler()

		fields := articleFields()
		fields["title"] = ""

		req := newMultipartRequest(t, "/article/create", fields, nil)
		rr := httptest.NewRecorder()
		h.CreateArticle(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mocks.article.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Без аутентификации", func(t *testing.T) {
		h, _ := createTestHandler()

		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/article/create", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		rr := httptest.NewRecorder()
		h.CreateArticle(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestDeleteArticleHandler(t *testing.T) {
	t.Run("Автор удаляет статью", func(t *testing.T) {
		h, mocks := createTestHandler()

		mocks.article.On("Delete", mock.Anything, "article-1", "user-1").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/article/articles/article-1", nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), "user-1", "test@example.com"))
		req = mux.SetURLVars(req, map[string]string{"articleId": "article-1"})

		rr := httptest.NewRecorder()
		h.DeleteArticle(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Чужая статья", func(t *testing.T) {
		h, mocks := createTestHandler()

		mocks.article.On("Delete", mock.Anything, "article-1", "intruder").
			Return(repository.ErrForbidden)

		req := httptest.NewRequest(http.MethodDelete, "/article/articles/article-1", nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), "intruder", "bad@example.com"))
		req = mux.SetURLVars(req, map[string]string{"articleId": "article-1"})

		rr := httptest.NewRecorder()
		h.DeleteArticle(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestPublishArticleHandler(t *testing.T) {
	t.Run("Повторная публикация", func(t *testing.T) {
		h, mocks := createTestHandler()

		mocks.article.On("Publish", mock.Anything, "article-1", "user-1").
			Return(nil, repository.ErrAlreadyPublished)

		req := httptest.NewRequest(http.MethodPatch, "/article/publish/article-1", nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), "user-1", "test@example.com"))
		req = mux.SetURLVars(req, map[string]string{"id": "article-1"})

		rr := httptest.NewRecorder()
		h.PublishArticle(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestReactionHandler(t *testing.T) {
	newReactionRequest := func(articleID, userID string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/article/articles/like/"+articleID, nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), userID, "test@example.com"))
		return mux.SetURLVars(req, map[string]string{"articleId": articleID})
	}

	t.Run("Лайк возвращает свежие счетчики", func(t *testing.T) {
		h, mocks := createTestHandler()

		mocks.article.On("React", mock.Anything, service.ActionLike, "article-1", "user-1").
			Return(testArticle(), nil)

		rr := httptest.NewRecorder()
		h.Reaction(service.ActionLike)(rr, newReactionRequest("article-1", "user-1"))

		require.Equal(t, http.StatusOK, rr.Code)

		var response struct {
			Success bool `json:"success"`
			Article struct {
				Likes    int `json:"likes"`
				Dislikes int `json:"dislikes"`
			} `json:"article"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.True(t, response.Success)
		assert.Equal(t, 1, response.Article.Likes)
		assert.Equal(t, 0, response.Article.Dislikes)
	})

	t.Run("Повторный лайк", func(t *testing.T) {
		h, mocks := createTestHandler()

		mocks.article.On("React", mock.Anything, service.ActionLike, "article-1", "user-1").
			Return(nil, repository.ErrAlreadyLiked)

		rr := httptest.NewRecorder()
		h.Reaction(service.ActionLike)(rr, newReactionRequest("article-1", "user-1"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Несуществующая статья", func(t *testing.T) {
		h, mocks := createTestHandler()

		mocks.article.On("React", mock.Anything, service.ActionLike, "ghost", "user-1").
			Return(nil, repository.ErrArticleNotFound)

		rr := httptest.NewRecorder()
		h.Reaction(service.ActionLike)(rr, newReactionRequest("ghost", "user-1"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGetLatestArticlesHandler(t *testing.T) {
	t.Run("Публичный список без аутентификации", func(t *testing.T) {
		h, mocks := createTestHandler()

		mocks.article.On("GetLatest", mock.Anything).
			Return([]models.Article{*testArticle()}, nil)

		req := httptest.NewRequest(http.MethodGet, "/article/latest", nil)
		rr := httptest.NewRecorder()
		h.GetLatestArticles(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var response struct {
			Success bool `json:"success"`
			Count   int  `json:"count"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.True(t, response.Success)
		assert.Equal(t, 1, response.Count)
	})
}

func TestGetArticlesByCategoriesHandler(t *testing.T) {
	t.Run("Категории из query-параметра", func(t *testing.T) {
		h, mocks := createTestHandler()

		mocks.article.On("GetByCategories", mock.Anything, []string{"technology", "space"}).
			Return([]models.Article{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/article/getarticles-by-preferences?categories=technology,space", nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), "user-1", "test@example.com"))

		rr := httptest.NewRecorder()
		h.GetArticlesByCategories(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mocks.article.AssertExpectations(t)
	})

	t.Run("Без параметра categories", func(t *testing.T) {
		h, mocks := createTestHandler()

		req := httptest.NewRequest(http.MethodGet, "/article/getarticles-by-preferences", nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), "user-1", "test@example.com"))

		rr := httptest.NewRecorder()
		h.GetArticlesByCategories(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mocks.article.AssertNotCalled(t, "GetByCategories", mock.Anything, mock.Anything)
	})
}
