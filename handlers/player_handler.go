package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-api/middleware"
	"github.com/Dosada05/tournament-api/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

// List godoc
// @Summary Игроки турнира
// @Tags players
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/players [get]
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.playerService.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Register godoc
// @Summary Зарегистрировать игрока в открытом турнире
// @Tags players
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body services.PlayerInput true "Имя, email и gamertag"
// @Success 201 {object} map[string]interface{} "Игрок зарегистрирован"
// @Failure 400 {object} map[string]interface{} "Ошибка валидации, регистрация закрыта или мест нет"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/players [post]
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "Unauthenticated.")
		return
	}

	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.Register(r.Context(), currentUserID, tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByID godoc
// @Summary Игрок турнира с его матчами
// @Tags players
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param playerID path int true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Игрок не найден в турнире"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/players/{playerID} [get]
func (h *PlayerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ids, err := getIDsFromURL(r, "tournamentID", "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetByID(r.Context(), ids[0], ids[1])
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update godoc
// @Summary Изменить игрока (автор регистрации или владелец турнира)
// @Tags players
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param playerID path int true "Player ID"
// @Param body body services.PlayerInput true "Имя, email и gamertag"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Ошибка валидации"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Игрок не найден в турнире"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/players/{playerID} [put]
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	ids, err := getIDsFromURL(r, "tournamentID", "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "Unauthenticated.")
		return
	}

	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.Update(r.Context(), currentUserID, ids[0], ids[1], input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Удалить игрока
// @Tags players
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param playerID path int true "Player ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Игрок не найден в турнире"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/players/{playerID} [delete]
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ids, err := getIDsFromURL(r, "tournamentID", "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "Unauthenticated.")
		return
	}

	if err = h.playerService.Delete(r.Context(), currentUserID, ids[0], ids[1]); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "Player deleted successfully."}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Stats godoc
// @Summary Статистика игрока: матчи, процент побед, место
// @Tags players
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param playerID path int true "Player ID"
// @Success 200 {object} models.PlayerStats
// @Failure 404 {object} map[string]string "Игрок не найден в турнире"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/players/{playerID}/stats [get]
func (h *PlayerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ids, err := getIDsFromURL(r, "tournamentID", "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.playerService.Stats(r.Context(), ids[0], ids[1])
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
