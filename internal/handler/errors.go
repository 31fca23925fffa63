package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"insightfeed/internal/repository"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Success: false, Message: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServerError прячет внутренние детали в production-окружении
func (h *Handlers) writeServerError(w http.ResponseWriter, message string, err error) {
	response := ErrorResponse{Success: false, Message: message}
	if !h.Cfg.IsProduction() && err != nil {
		response.Detail = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(response)
}

// mapDomainError переводит сентинельные ошибки доменного слоя в HTTP-статус;
// false - ошибка не доменная, нужен writeServerError
func mapDomainError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, repository.ErrDuplicateIdentity):
		return http.StatusBadRequest, "Email или телефон уже существует", true
	case errors.Is(err, repository.ErrInvalidOrExpiredOTP):
		return http.StatusBadRequest, "Неверный или просроченный код", true
	case errors.Is(err, repository.ErrNoPendingPayload):
		return http.StatusBadRequest, "Данные пользователя не найдены", true
	case errors.Is(err, repository.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Неверный email или пароль", true
	case errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound, "Пользователь не найден", true
	case errors.Is(err, repository.ErrArticleNotFound):
		return http.StatusNotFound, "Статья не найдена", true
	case errors.Is(err, repository.ErrForbidden):
		return http.StatusForbidden, "Доступ запрещен", true
	case errors.Is(err, repository.ErrAlreadyLiked):
		return http.StatusBadRequest, "Вы уже лайкнули эту статью", true
	case errors.Is(err, repository.ErrAlreadyDisliked):
		return http.StatusBadRequest, "Вы уже дизлайкнули эту статью", true
	case errors.Is(err, repository.ErrNotLiked):
		return http.StatusBadRequest, "Вы не лайкали эту статью", true
	case errors.Is(err, repository.ErrNotDisliked):
		return http.StatusBadRequest, "Вы не дизлайкали эту статью", true
	case errors.Is(err, repository.ErrAlreadyPublished):
		return http.StatusBadRequest, "Статья уже опубликована", true
	}
	return 0, "", false
}

func (h *Handlers) writeDomainError(w http.ResponseWriter, err error, fallbackMessage string) {
	if status, message, ok := mapDomainError(err); ok {
		WriteError(w, message, status)
		return
	}
	h.writeServerError(w, fallbackMessage, err)
}
