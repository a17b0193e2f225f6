package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/Dosada05/tournament-api/middleware"
	"github.com/Dosada05/tournament-api/services"
)

// запас сверх лимита аватара на остальные поля формы
const maxProfileFormBytes = services.MaxAvatarSize + 1<<20

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(ps services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: ps}
}

// Show godoc
// @Summary Профиль текущего пользователя с турнирами и игроками
// @Tags profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Неавторизован"
// @Security BearerAuth
// @Router /profile [get]
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "Unauthenticated.")
		return
	}

	user, err := h.profileService.Show(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update godoc
// @Summary Изменить профиль: имя, email, био, аватар, пароль
// @Tags profile
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param name formData string true "Имя"
// @Param email formData string true "Email"
// @Param bio formData string false "О себе"
// @Param avatar formData file false "Аватар (jpeg, png, gif; до 2 МБ)"
// @Param current_password formData string false "Текущий пароль (нужен для смены пароля)"
// @Param password formData string false "Новый пароль"
// @Param password_confirmation formData string false "Подтверждение пароля"
// @Success 200 {object} map[string]interface{} "Профиль обновлен"
// @Failure 422 {object} map[string]interface{} "Ошибка валидации"
// @Security BearerAuth
// @Router /profile [post]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "Unauthenticated.")
		return
	}

	var input services.UpdateProfileInput
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		closeFile, err := readProfileForm(w, r, &input)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		defer closeFile()
	} else if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.profileService.Update(r.Context(), currentUserID, input)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			failedValidationResponse(w, r, http.StatusUnprocessableEntity, vErr)
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user, "message": "Profile updated successfully."}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// readProfileForm заполняет input из multipart формы; возвращённая функция закрывает файл аватара.
func readProfileForm(w http.ResponseWriter, r *http.Request, input *services.UpdateProfileInput) (func(), error) {
	noop := func() {}

	r.Body = http.MaxBytesReader(w, r.Body, maxProfileFormBytes)
	if err := r.ParseMultipartForm(maxProfileFormBytes); err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			return noop, fmt.Errorf("body must not be larger than %d bytes", maxProfileFormBytes)
		}
		return noop, fmt.Errorf("invalid multipart form: %w", err)
	}

	input.Name = r.FormValue("name")
	input.Email = r.FormValue("email")
	input.CurrentPassword = r.FormValue("current_password")
	input.Password = r.FormValue("password")
	input.PasswordConfirmation = r.FormValue("password_confirmation")
	if _, ok := r.MultipartForm.Value["bio"]; ok {
		bio := r.FormValue("bio")
		input.Bio = &bio
	}

	file, header, err := r.FormFile("avatar")
	if errors.Is(err, http.ErrMissingFile) {
		return noop, nil
	}
	if err != nil {
		return noop, err
	}

	contentType := header.Header.Get("Content-Type")
	var reader io.Reader = file
	if contentType == "" || contentType == "application/octet-stream" {
		sniff := make([]byte, 512)
		n, _ := io.ReadFull(file, sniff)
		contentType = http.DetectContentType(sniff[:n])
		reader = io.MultiReader(bytes.NewReader(sniff[:n]), file)
	}

	input.Avatar = &services.AvatarUpload{
		Reader:      reader,
		Size:        header.Size,
		ContentType: contentType,
	}
	return func() { _ = file.Close() }, nil
}

// Stats godoc
// @Summary Сводная статистика текущего пользователя
// @Tags profile
// @Produce json
// @Success 200 {object} models.ProfileStats
// @Security BearerAuth
// @Router /profile/stats [get]
func (h *ProfileHandler) Stats(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "Unauthenticated.")
		return
	}

	stats, err := h.profileService.Stats(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
