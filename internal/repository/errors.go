package repository

import "errors"

// Сентинельные ошибки доменного слоя. Сервисы и хендлеры сравнивают их
// через errors.Is и переводят в HTTP-статусы на границе.
var (
	ErrDuplicateIdentity = errors.New("email или телефон уже существует")

	// просроченный и несуществующий код намеренно неразличимы
	ErrInvalidOrExpiredOTP = errors.New("неверный или просроченный код")
	ErrNoPendingPayload    = errors.New("данные пользователя в заявке отсутствуют")

	ErrUserNotFound    = errors.New("пользователь не найден")
	ErrArticleNotFound = errors.New("статья не найдена")
	ErrForbidden       = errors.New("доступ запрещен")

	ErrAlreadyLiked    = errors.New("статья уже лайкнута")
	ErrAlreadyDisliked = errors.New("статья уже дизлайкнута")
	ErrNotLiked        = errors.New("лайк не был поставлен")
	ErrNotDisliked     = errors.New("дизлайк не был поставлен")

	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrAlreadyPublished   = errors.New("статья уже опубликована")
)
