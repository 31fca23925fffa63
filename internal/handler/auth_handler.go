package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"
	"unicode/utf8"

	"insightfeed/internal/middleware"
	"insightfeed/internal/models"
	"insightfeed/internal/service"
)

type SignupRequest struct {
	FirstName   string   `json:"firstName" validate:"required"`
	LastName    string   `json:"lastName" validate:"required"`
	Phone       string   `json:"phone" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	DOB         string   `json:"dob" validate:"required"`
	Password    string   `json:"password" validate:"required,min=8"`
	Preferences []string `json:"preferences" validate:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type UserResponse struct {
	UserID      string   `json:"userId"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	DOB         string   `json:"dob"`
	Preferences []string `json:"preferences"`
}

type AuthResponse struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

var (
	patternEmail = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	patternPhone = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// newUserResponse - урезанное представление без хеша пароля
func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Phone:       user.Phone,
		Email:       user.Email,
		DOB:         user.DOB.Format("2006-01-02"),
		Preferences: user.Preferences,
	}
}

func parseDOB(value string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if dob, err := time.Parse(layout, value); err == nil {
			return dob, true
		}
	}
	return time.Time{}, false
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	// check method
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Все поля обязательны", http.StatusBadRequest)
		return
	}

	// email verification
	if !patternEmail.MatchString(req.Email) {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	// phone verification
	if !patternPhone.MatchString(req.Phone) {
		WriteError(w, "Неверный формат телефона", http.StatusBadRequest)
		return
	}

	// password verification
	if utf8.RuneCountInString(req.Password) < 8 {
		WriteError(w, "Пароль должен быть не менее 8 символов", http.StatusBadRequest)
		return
	}

	// date of birth must be in the past
	dob, ok := parseDOB(req.DOB)
	if !ok || !dob.Before(time.Now()) {
		WriteError(w, "Неверная дата рождения", http.StatusBadRequest)
		return
	}

	serviceReq := service.SignupRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Email:       req.Email,
		DOB:         dob,
		Password:    req.Password,
		Preferences: req.Preferences,
	}

	if err := h.AuthService.Signup(r.Context(), serviceReq); err != nil {
		h.writeDomainError(w, err, "Не удалось отправить код подтверждения")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"message": "Код подтверждения отправлен на email",
	}, http.StatusOK)
}

func (h *Handlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	// check method
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Email и код обязательны", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		h.writeDomainError(w, err, "Не удалось завершить регистрацию")
		return
	}

	h.setAuthCookies(w, accessToken, refreshToken)

	response := AuthResponse{
		Success:      true,
		Message:      "Пользователь зарегистрирован",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         newUserResponse(user),
	}

	WriteSuccess(w, response, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	// check method
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeDomainError(w, err, "Ошибка аутентификации")
		return
	}

	h.setAuthCookies(w, accessToken, refreshToken)

	response := AuthResponse{
		Success:      true,
		Message:      "Вход выполнен",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         newUserResponse(user),
	}

	WriteSuccess(w, response, http.StatusOK)
}

// Logout только чистит cookie: серверного отзыва токенов нет
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.clearAuthCookies(w)

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"message": "Выход выполнен",
	}, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		FirstName       string   `json:"firstName"`
		LastName        string   `json:"lastName"`
		Phone           string   `json:"phone"`
		Email           string   `json:"email"`
		DOB             string   `json:"dob"`
		Password        string   `json:"password"`
		ConfirmPassword string   `json:"confirmPassword"`
		Preferences     []string `json:"preferences"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.Phone == "" || req.Email == "" {
		WriteError(w, "Имя, фамилия, телефон и email обязательны", http.StatusBadRequest)
		return
	}

	if !patternEmail.MatchString(req.Email) {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	if req.Password != "" {
		if req.Password != req.ConfirmPassword {
			WriteError(w, "Пароли не совпадают", http.StatusBadRequest)
			return
		}
		if utf8.RuneCountInString(req.Password) < 8 {
			WriteError(w, "Пароль должен быть не менее 8 символов", http.StatusBadRequest)
			return
		}
	}

	serviceReq := service.UpdateProfileRequest{
		UserID:      userID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Email:       req.Email,
		Password:    req.Password,
		Preferences: req.Preferences,
	}

	if req.DOB != "" {
		dob, ok := parseDOB(req.DOB)
		if !ok {
			WriteError(w, "Неверная дата рождения", http.StatusBadRequest)
			return
		}
		serviceReq.DOB = &dob
	}

	user, err := h.UserService.UpdateProfile(r.Context(), serviceReq)
	if err != nil {
		h.writeDomainError(w, err, "Не удалось обновить профиль")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"message": "Профиль обновлен",
		"user":    newUserResponse(user),
	}, http.StatusOK)
}
