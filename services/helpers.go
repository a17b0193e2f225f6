package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"

	"github.com/Dosada05/tournament-api/models"
	"github.com/Dosada05/tournament-api/realtime"
	"github.com/Dosada05/tournament-api/repositories"
	"github.com/Dosada05/tournament-api/storage"
	"github.com/Dosada05/tournament-api/utils"
)

// maxIntColumn - верхняя граница для значений, хранимых в INTEGER колонках postgres.
const maxIntColumn = math.MaxInt32

// Broadcaster рассылает сообщения подписчикам комнаты турнира.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

func notify(b Broadcaster, tournamentID int, msgType string, payload interface{}) {
	if b == nil {
		return
	}
	room := realtime.TournamentRoom(tournamentID)
	b.BroadcastToRoom(room, realtime.Message{Type: msgType, Payload: payload, RoomID: room})
}

// withTx выполняет fn в одной транзакции: commit при успехе, rollback при ошибке или панике.
func withTx(ctx context.Context, db *sqlx.DB, logger *slog.Logger, fn func(tx *sqlx.Tx) error) (txErr error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorContext(ctx, "Error during rollback", slog.Any("error", rbErr), slog.Any("original_error", txErr))
				txErr = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	txErr = fn(tx)
	return txErr
}

// ValidationError содержит сообщения об ошибках по полям запроса.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// validator накапливает ошибки полей.
type validator struct {
	fields map[string][]string
}

func newValidator() *validator {
	return &validator{fields: make(map[string][]string)}
}

func (v *validator) check(ok bool, field, message string) {
	if !ok {
		v.fields[field] = append(v.fields[field], message)
	}
}

func (v *validator) has(field string) bool {
	_, ok := v.fields[field]
	return ok
}

func (v *validator) required(value, field string) {
	v.check(strings.TrimSpace(value) != "", field, "The "+humanize(field)+" field is required.")
}

func (v *validator) maxLen(value string, limit int, field string) {
	v.check(utf8.RuneCountInString(value) <= limit, field,
		fmt.Sprintf("The %s may not be greater than %d characters.", humanize(field), limit))
}

func (v *validator) email(value, field string) {
	v.check(utils.IsValidEmail(value), field, "The "+humanize(field)+" must be a valid email address.")
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate принимает RFC3339 или локальные форматы без зоны (трактуются как UTC).
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// normalizeOptional превращает пустую строку в nil.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func populateUserAvatarURL(user *models.User, uploader storage.FileUploader) {
	if user == nil {
		return
	}
	user.PasswordHash = "" // Важно для безопасности
	if user.AvatarKey != nil && *user.AvatarKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*user.AvatarKey)
		if url != "" {
			user.AvatarURL = &url
		}
	}
}

// GetExtensionFromContentType возвращает расширение для поддерживаемых типов изображений.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	default:
		return "", fmt.Errorf("unsupported image content type '%s'", contentType)
	}
}

// handleRepositoryError переводит ошибки репозиториев в ошибки сервисов.
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrUserEmailConflict):
		return ErrUserEmailConflict
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchResultsRecorded):
		return ErrMatchResultsRecorded
	case errors.Is(err, repositories.ErrParticipationNotFound):
		return ErrPlayerNotInMatch
	default:
		return err
	}
}
