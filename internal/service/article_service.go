package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"insightfeed/internal/config"
	"insightfeed/internal/models"
	"insightfeed/internal/repository"
	"insightfeed/internal/storage"
)

type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

type CreateArticleRequest struct {
	AuthorID string
	Title    string
	Content  string
	Category string
	Tags     string
	Image    *ImageUpload
}

type UpdateArticleRequest struct {
	ArticleID string
	ActorID   string
	Title     string
	Content   string
	Category  string
	Tags      string
	Image     *ImageUpload
}

type ArticleService interface {
	Create(ctx context.Context, req CreateArticleRequest) (*models.Article, error)
	Update(ctx context.Context, req UpdateArticleRequest) (*models.Article, error)
	Delete(ctx context.Context, articleID, actorID string) error
	Publish(ctx context.Context, articleID, actorID string) (*models.Article, error)
	GetByID(ctx context.Context, articleID string) (*models.Article, error)
	GetByAuthor(ctx context.Context, authorID string) ([]models.Article, error)
	GetByCategories(ctx context.Context, categories []string) ([]models.Article, error)
	GetLatest(ctx context.Context) ([]models.Article, error)

	React(ctx context.Context, action ReactionAction, articleID, userID string) (*models.Article, error)
}

// ReactionAction перечисляет операции над множествами реакций
type ReactionAction string

const (
	ActionLike          ReactionAction = "like"
	ActionDislike       ReactionAction = "dislike"
	ActionRemoveLike    ReactionAction = "removelike"
	ActionRemoveDislike ReactionAction = "removedislike"
	ActionBlock         ReactionAction = "block"
	ActionUnblock       ReactionAction = "unblock"
)

const latestArticlesLimit = 6

type articleService struct {
	articleRepo repository.ArticleRepository
	storage     storage.Storage
	cfg         *config.Config
}

func NewArticleService(articleRepo repository.ArticleRepository, storage storage.Storage, cfg *config.Config) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		storage:     storage,
		cfg:         cfg,
	}
}

// NormalizeTags разбивает строку по запятым, чистит пробелы, приводит к
// нижнему регистру и убирает дубликаты с сохранением порядка
func NormalizeTags(tags string) []string {
	parts := strings.Split(tags, ",")

	seen := make(map[string]struct{}, len(parts))
	result := make([]string, 0, len(parts))

	for _, tag := range parts {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}

	return result
}

func (s *articleService) Create(ctx context.Context, req CreateArticleRequest) (*models.Article, error) {
	var images []string

	if req.Image != nil {
		imageURL, err := s.storage.UploadArticleImage(ctx, req.Image.FileName, req.Image.ContentType, req.Image.File, req.Image.Size)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки изображения: %w", err)
		}
		images = []string{imageURL}
	}

	article := &models.Article{
		AuthorID:  req.AuthorID,
		Title:     strings.TrimSpace(req.Title),
		Content:   strings.TrimSpace(req.Content),
		Images:    images,
		Tags:      NormalizeTags(req.Tags),
		Category:  strings.ToLower(strings.TrimSpace(req.Category)),
		Published: false,
	}

	err := s.articleRepo.Create(ctx, article)
	if err != nil {
		// статья не сохранилась - убираем уже загруженное изображение
		s.cleanupImages(ctx, images)
		return nil, err
	}

	return s.articleRepo.GetByID(ctx, article.ArticleID)
}

func (s *articleService) Update(ctx context.Context, req UpdateArticleRequest) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}

	if article.AuthorID != req.ActorID {
		return nil, repository.ErrForbidden
	}

	if req.Image != nil {
		// старое изображение сносим по возможности, новое грузим обязательно
		s.cleanupImages(ctx, article.Images)

		imageURL, err := s.storage.UploadArticleImage(ctx, req.Image.FileName, req.Image.ContentType, req.Image.File, req.Image.Size)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки изображения: %w", err)
		}
		article.Images = []string{imageURL}
	}

	article.Title = strings.TrimSpace(req.Title)
	article.Content = strings.TrimSpace(req.Content)
	article.Category = strings.ToLower(strings.TrimSpace(req.Category))
	article.Tags = NormalizeTags(req.Tags)

	err = s.articleRepo.Update(ctx, article)
	if err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(ctx, req.ArticleID)
}

// Delete удаляет статью автора; изображения в хранилище чистятся по
// принципу best-effort и не блокируют удаление записи
func (s *articleService) Delete(ctx context.Context, articleID, actorID string) error {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return err
	}

	if article.AuthorID != actorID {
		return repository.ErrForbidden
	}

	s.cleanupImages(ctx, article.Images)

	return s.articleRepo.Delete(ctx, articleID)
}

func (s *articleService) Publish(ctx context.Context, articleID, actorID string) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if article.AuthorID != actorID {
		return nil, repository.ErrForbidden
	}

	err = s.articleRepo.Publish(ctx, articleID)
	if err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(ctx, articleID)
}

func (s *articleService) GetByID(ctx context.Context, articleID string) (*models.Article, error) {
	return s.articleRepo.GetByID(ctx, articleID)
}

func (s *articleService) GetByAuthor(ctx context.Context, authorID string) ([]models.Article, error) {
	return s.articleRepo.GetByAuthor(ctx, authorID)
}

func (s *articleService) GetByCategories(ctx context.Context, categories []string) ([]models.Article, error) {
	normalized := make([]string, 0, len(categories))
	for _, category := range categories {
		category = strings.ToLower(strings.TrimSpace(category))
		if category != "" {
			normalized = append(normalized, category)
		}
	}

	if len(normalized) == 0 {
		return nil, errors.New("не указаны категории")
	}

	return s.articleRepo.GetByCategories(ctx, normalized)
}

func (s *articleService) GetLatest(ctx context.Context) ([]models.Article, error) {
	return s.articleRepo.GetLatest(ctx, latestArticlesLimit)
}

// React проверяет существование статьи, выполняет мутацию и возвращает
// свежий снимок. Авторство не требуется, только аутентификация.
func (s *articleService) React(ctx context.Context, action ReactionAction, articleID, userID string) (*models.Article, error) {
	_, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionLike:
		err = s.articleRepo.Like(ctx, articleID, userID)
	case ActionDislike:
		err = s.articleRepo.Dislike(ctx, articleID, userID)
	case ActionRemoveLike:
		err = s.articleRepo.RemoveLike(ctx, articleID, userID)
	case ActionRemoveDislike:
		err = s.articleRepo.RemoveDislike(ctx, articleID, userID)
	case ActionBlock:
		err = s.articleRepo.Block(ctx, articleID, userID)
	case ActionUnblock:
		err = s.articleRepo.Unblock(ctx, articleID, userID)
	default:
		return nil, fmt.Errorf("неизвестное действие: %s", action)
	}

	if err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(ctx, articleID)
}

func (s *articleService) cleanupImages(ctx context.Context, imageURLs []string) {
	for _, imageURL := range imageURLs {
		objectName := storage.ObjectNameFromURL(imageURL)
		if objectName == "" {
			continue
		}
		if err := s.storage.DeleteImage(ctx, objectName); err != nil {
			log.Printf("Предупреждение: не удалось удалить изображение %s: %v", objectName, err)
		}
	}
}
