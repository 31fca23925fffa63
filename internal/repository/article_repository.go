package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"insightfeed/internal/models"
)

type ArticleRepositoryImpl struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) *ArticleRepositoryImpl {
	return &ArticleRepositoryImpl{db: db}
}

// articleColumns собирает статью вместе с множествами реакций
const articleColumns = `
	a.article_id, a.author_id, a.title, a.content, a.images, a.tags,
	a.category, a.published, a.created_at, a.updated_at,
	COALESCE((SELECT array_agg(r.user_id::text ORDER BY r.created_at)
		FROM article_reactions r
		WHERE r.article_id = a.article_id AND r.reaction = 'like'), '{}') AS likes,
	COALESCE((SELECT array_agg(r.user_id::text ORDER BY r.created_at)
		FROM article_reactions r
		WHERE r.article_id = a.article_id AND r.reaction = 'dislike'), '{}') AS dislikes,
	COALESCE((SELECT array_agg(b.user_id::text ORDER BY b.created_at)
		FROM article_blocks b
		WHERE b.article_id = a.article_id), '{}') AS blocks
`

func (r *ArticleRepositoryImpl) Create(ctx context.Context, article *models.Article) error {
	if article.ArticleID == "" {
		article.ArticleID = uuid.New().String()
	}

	now := time.Now()
	article.CreatedAt = now
	article.UpdatedAt = now

	if article.Images == nil {
		article.Images = pq.StringArray{}
	}
	if article.Tags == nil {
		article.Tags = pq.StringArray{}
	}

	query := `
		INSERT INTO articles
		(article_id, author_id, title, content, images, tags, category, published, created_at, updated_at)
		VALUES
		(:article_id, :author_id, :title, :content, :images, :tags, :category, :published, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, article)
	if err != nil {
		return fmt.Errorf("ошибка при создании статьи: %w", err)
	}

	return nil
}

func (r *ArticleRepositoryImpl) GetByID(ctx context.Context, articleID string) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles a WHERE a.article_id = $1`

	var article models.Article
	err := r.db.GetContext(ctx, &article, query, articleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("ошибка при получении статьи: %w", err)
	}

	return &article, nil
}

func (r *ArticleRepositoryImpl) GetByAuthor(ctx context.Context, authorID string) ([]models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles a WHERE a.author_id = $1 ORDER BY a.created_at DESC`

	var articles []models.Article
	err := r.db.SelectContext(ctx, &articles, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статей автора: %w", err)
	}

	return articles, nil
}

// GetByCategories возвращает только опубликованные статьи, свежие первыми
func (r *ArticleRepositoryImpl) GetByCategories(ctx context.Context, categories []string) ([]models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles a
		WHERE a.category = ANY($1) AND a.published = TRUE
		ORDER BY a.created_at DESC`

	var articles []models.Article
	err := r.db.SelectContext(ctx, &articles, query, pq.Array(categories))
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статей по категориям: %w", err)
	}

	return articles, nil
}

func (r *ArticleRepositoryImpl) GetLatest(ctx context.Context, limit int) ([]models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles a ORDER BY a.created_at DESC LIMIT $1`

	var articles []models.Article
	err := r.db.SelectContext(ctx, &articles, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении последних статей: %w", err)
	}

	return articles, nil
}

func (r *ArticleRepositoryImpl) Update(ctx context.Context, article *models.Article) error {
	article.UpdatedAt = time.Now()

	query := `
		UPDATE articles SET
			title = :title,
			content = :content,
			category = :category,
			tags = :tags,
			images = :images,
			updated_at = :updated_at
		WHERE article_id = :article_id AND author_id = :author_id
	`

	result, err := r.db.NamedExecContext(ctx, query, article)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении статьи: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrArticleNotFound
	}

	return nil
}

func (r *ArticleRepositoryImpl) Delete(ctx context.Context, articleID string) error {
	// реакции и блокировки удаляются каскадом по внешнему ключу
	query := `DELETE FROM articles WHERE article_id = $1`

	result, err := r.db.ExecContext(ctx, query, articleID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении статьи: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrArticleNotFound
	}

	return nil
}

func (r *ArticleRepositoryImpl) Publish(ctx context.Context, articleID string) error {
	query := `
		UPDATE articles SET
			published = TRUE,
			updated_at = CURRENT_TIMESTAMP
		WHERE article_id = $1 AND published = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, articleID)
	if err != nil {
		return fmt.Errorf("ошибка при публикации статьи: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyPublished
	}

	return nil
}

// Like одним условным запросом ставит лайк и снимает дизлайк, если тот был.
// Повторный лайк не проходит условие и даёт ноль строк.
func (r *ArticleRepositoryImpl) Like(ctx context.Context, articleID, userID string) error {
	return r.setReaction(ctx, articleID, userID, "like", ErrAlreadyLiked)
}

func (r *ArticleRepositoryImpl) Dislike(ctx context.Context, articleID, userID string) error {
	return r.setReaction(ctx, articleID, userID, "dislike", ErrAlreadyDisliked)
}

func (r *ArticleRepositoryImpl) setReaction(ctx context.Context, articleID, userID, reaction string, duplicateErr error) error {
	query := `
		INSERT INTO article_reactions (article_id, user_id, reaction)
		VALUES ($1, $2, $3)
		ON CONFLICT (article_id, user_id)
		DO UPDATE SET reaction = EXCLUDED.reaction, created_at = CURRENT_TIMESTAMP
		WHERE article_reactions.reaction <> EXCLUDED.reaction
	`

	result, err := r.db.ExecContext(ctx, query, articleID, userID, reaction)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении реакции: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return duplicateErr
	}

	return nil
}

func (r *ArticleRepositoryImpl) RemoveLike(ctx context.Context, articleID, userID string) error {
	return r.removeReaction(ctx, articleID, userID, "like", ErrNotLiked)
}

func (r *ArticleRepositoryImpl) RemoveDislike(ctx context.Context, articleID, userID string) error {
	return r.removeReaction(ctx, articleID, userID, "dislike", ErrNotDisliked)
}

func (r *ArticleRepositoryImpl) removeReaction(ctx context.Context, articleID, userID, reaction string, missingErr error) error {
	query := `DELETE FROM article_reactions WHERE article_id = $1 AND user_id = $2 AND reaction = $3`

	result, err := r.db.ExecContext(ctx, query, articleID, userID, reaction)
	if err != nil {
		return fmt.Errorf("ошибка при удалении реакции: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return missingErr
	}

	return nil
}

// Block и Unblock идемпотентны в отличие от лайков: повторный вызов - не ошибка
func (r *ArticleRepositoryImpl) Block(ctx context.Context, articleID, userID string) error {
	query := `
		INSERT INTO article_blocks (article_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (article_id, user_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, articleID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при блокировке статьи: %w", err)
	}

	return nil
}

func (r *ArticleRepositoryImpl) Unblock(ctx context.Context, articleID, userID string) error {
	query := `DELETE FROM article_blocks WHERE article_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, articleID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при разблокировке статьи: %w", err)
	}

	return nil
}
