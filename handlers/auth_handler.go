package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Dosada05/tournament-api/middleware"
	"github.com/Dosada05/tournament-api/models"
	"github.com/Dosada05/tournament-api/services"
	"github.com/Dosada05/tournament-api/utils"
)

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
	tokenTTL    time.Duration
}

func NewAuthHandler(authService services.AuthService, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
	}
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *models.User) {
	token, err := utils.GenerateJWT(h.jwtSecret, user.ID, h.tokenTTL)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to sign token: %w", err))
		return
	}

	response := jsonResponse{
		"user":       user,
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int(h.tokenTTL.Seconds()),
	}
	if err = writeJSON(w, status, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Register godoc
// @Summary Регистрация пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Имя, email, пароль и подтверждение"
// @Success 201 {object} map[string]interface{} "Пользователь и токен"
// @Failure 400 {object} map[string]interface{} "Ошибка валидации"
// @Failure 409 {object} map[string]string "Email уже занят"
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login godoc
// @Summary Вход по email и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Email и пароль"
// @Success 200 {object} map[string]interface{} "Пользователь и токен"
// @Failure 401 {object} map[string]string "Неверные учетные данные"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user)
}

// Logout godoc
// @Summary Выход: текущий токен отзывается до истечения exp
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string "Неавторизован"
// @Security BearerAuth
// @Router /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "Unauthenticated.")
		return
	}
	tokenID, expiresAt, err := middleware.GetTokenFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "Unauthenticated.")
		return
	}

	if err = h.authService.Logout(r.Context(), userID, tokenID, expiresAt); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"message": "Logged out successfully."}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CurrentUser godoc
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "Неавторизован"
// @Security BearerAuth
// @Router /user [get]
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "Unauthenticated.")
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
