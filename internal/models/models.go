package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	UserID       string         `json:"userId" db:"user_id"`
	FirstName    string         `json:"firstName" db:"first_name"`
	LastName     string         `json:"lastName" db:"last_name"`
	Phone        string         `json:"phone" db:"phone"`
	Email        string         `json:"email" db:"email"`
	DOB          time.Time      `json:"dob" db:"dob"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Preferences  pq.StringArray `json:"preferences" db:"preferences"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at"`
}

// PendingRegistration - OTP-челлендж с вложенными данными будущего пользователя.
// Пароль здесь уже захеширован.
type PendingRegistration struct {
	ID           string         `json:"id" db:"id"`
	Email        string         `json:"email" db:"email"`
	OTP          string         `json:"otp" db:"otp"`
	ExpiresAt    time.Time      `json:"expiresAt" db:"expires_at"`
	FirstName    string         `json:"firstName" db:"first_name"`
	LastName     string         `json:"lastName" db:"last_name"`
	Phone        string         `json:"phone" db:"phone"`
	DOB          time.Time      `json:"dob" db:"dob"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Preferences  pq.StringArray `json:"preferences" db:"preferences"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
}

type Article struct {
	ArticleID string         `json:"articleId" db:"article_id"`
	AuthorID  string         `json:"authorId" db:"author_id"`
	Title     string         `json:"title" db:"title"`
	Content   string         `json:"content" db:"content"`
	Images    pq.StringArray `json:"images" db:"images"`
	Tags      pq.StringArray `json:"tags" db:"tags"`
	Category  string         `json:"category" db:"category"`
	Published bool           `json:"published" db:"published"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
	Likes     pq.StringArray `json:"likes" db:"likes"`
	Dislikes  pq.StringArray `json:"dislikes" db:"dislikes"`
	Blocks    pq.StringArray `json:"blocks" db:"blocks"`
}

// Categories - фиксированный список категорий статей
var Categories = []string{
	"sports", "politics", "space", "technology", "health",
	"entertainment", "business", "science", "lifestyle", "education",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
