package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/tournament-api/db/dbtest"
	"github.com/Dosada05/tournament-api/models"
	"github.com/Dosada05/tournament-api/realtime"
	"github.com/Dosada05/tournament-api/repositories"
	"github.com/Dosada05/tournament-api/storage"
	"github.com/Dosada05/tournament-api/utils"
)

func TestMain(m *testing.M) {
	utils.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []realtime.Message
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if msg, ok := message.(realtime.Message); ok {
		b.messages = append(b.messages, msg)
	}
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.messages))
	for i, m := range b.messages {
		out[i] = m.Type
	}
	return out
}

type env struct {
	db          *sqlx.DB
	playerRepo  repositories.PlayerRepository
	matchRepo   repositories.MatchRepository
	broadcaster *recordingBroadcaster
	storageDir  string

	auth        AuthService
	tournaments TournamentService
	players     PlayerService
	matches     MatchService
	profile     ProfileService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	conn := dbtest.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	storageDir := t.TempDir()
	uploader, err := storage.NewLocalUploader(storageDir, "http://localhost:8080/storage")
	require.NoError(t, err)

	userRepo := repositories.NewUserRepository(conn)
	tournamentRepo := repositories.NewTournamentRepository(conn)
	playerRepo := repositories.NewPlayerRepository(conn)
	matchRepo := repositories.NewMatchRepository(conn)
	b := &recordingBroadcaster{}

	return &env{
		db:          conn,
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		broadcaster: b,
		storageDir:  storageDir,
		auth:        NewAuthService(userRepo, repositories.NewTokenRepository(conn), uploader),
		tournaments: NewTournamentService(tournamentRepo, playerRepo, matchRepo, userRepo, uploader, logger),
		players:     NewPlayerService(conn, tournamentRepo, playerRepo, matchRepo, b, logger),
		matches:     NewMatchService(conn, tournamentRepo, playerRepo, matchRepo, b, logger),
		profile:     NewProfileService(userRepo, tournamentRepo, playerRepo, matchRepo, uploader, logger),
	}
}

func (e *env) user(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), RegisterInput{
		Name:                 name,
		Email:                name + "@example.com",
		Password:             "password123",
		PasswordConfirmation: "password123",
	})
	require.NoError(t, err)
	return u
}

func (e *env) tournament(t *testing.T, ownerID, maxPlayers int, status models.TournamentStatus) *models.Tournament {
	t.Helper()
	tr, err := e.tournaments.Create(context.Background(), ownerID, TournamentInput{
		Name:       "Winter Open",
		Game:       "Tekken 8",
		StartDate:  "2026-12-01T10:00",
		MaxPlayers: &maxPlayers,
		Status:     string(status),
	})
	require.NoError(t, err)
	return tr
}

func (e *env) register(t *testing.T, userID, tournamentID int, name string) *models.Player {
	t.Helper()
	p, err := e.players.Register(context.Background(), userID, tournamentID, PlayerInput{Name: name, Gamertag: name + "_gt"})
	require.NoError(t, err)
	return p
}

func (e *env) match(t *testing.T, ownerID, tournamentID int, playerIDs ...int) *models.Match {
	t.Helper()
	round := 1
	m, err := e.matches.Create(context.Background(), ownerID, tournamentID, CreateMatchInput{
		Round:     &round,
		Status:    string(models.MatchStatusPending),
		PlayerIDs: playerIDs,
	})
	require.NoError(t, err)
	return m
}

func completed() *string {
	s := string(models.MatchStatusCompleted)
	return &s
}

func (e *env) mustPlayer(t *testing.T, id int) *models.Player {
	t.Helper()
	p, err := e.playerRepo.GetByID(context.Background(), nil, id)
	require.NoError(t, err)
	return p
}

func TestTournamentLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.user(t, "owner")
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	carol := e.user(t, "carol")

	tr := e.tournament(t, owner.ID, 2, models.TournamentStatusOpen)
	assert.Equal(t, "winter-open", tr.Slug)

	a := e.register(t, alice.ID, tr.ID, "Alice")
	b := e.register(t, bob.ID, tr.ID, "Bob")

	_, err := e.players.Register(ctx, carol.ID, tr.ID, PlayerInput{Name: "Carol", Gamertag: "carol_gt"})
	assert.ErrorIs(t, err, ErrTournamentFull)

	m := e.match(t, owner.ID, tr.ID, a.ID, b.ID)
	require.Len(t, m.Players, 2)
	for _, mp := range m.Players {
		assert.Equal(t, 0, mp.Score)
		assert.Equal(t, tr.ID, mp.TournamentID)
	}

	updated, err := e.matches.UpdateScores(ctx, owner.ID, tr.ID, m.ID, UpdateScoresInput{
		Scores: []models.ScoreEntry{{PlayerID: a.ID, Score: 10}, {PlayerID: b.ID, Score: 7}},
		Status: completed(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusCompleted, updated.Status)
	require.NotNil(t, updated.WinnerPlayerID)
	assert.Equal(t, a.ID, *updated.WinnerPlayerID)
	assert.NotNil(t, updated.ResultsRecordedAt)

	gotA, gotB := e.mustPlayer(t, a.ID), e.mustPlayer(t, b.ID)
	assert.Equal(t, 1, gotA.Wins)
	assert.Equal(t, 0, gotA.Losses)
	assert.Equal(t, 10, gotA.TotalScore)
	assert.Equal(t, 0, gotB.Wins)
	assert.Equal(t, 1, gotB.Losses)
	assert.Equal(t, 7, gotB.TotalScore)

	statsA, err := e.players.Stats(ctx, tr.ID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, statsA.Rank)
	assert.Equal(t, 1, *statsA.Rank)
	assert.Equal(t, 1, statsA.MatchCount)
	assert.Equal(t, float64(100), statsA.WinRate)

	statsB, err := e.players.Stats(ctx, tr.ID, b.ID)
	require.NoError(t, err)
	require.NotNil(t, statsB.Rank)
	assert.Equal(t, 2, *statsB.Rank)
	assert.Equal(t, float64(0), statsB.WinRate)

	board, err := e.tournaments.Leaderboard(ctx, tr.ID)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, a.ID, board[0].ID)
	assert.Equal(t, 1, board[0].Rank)

	assert.Equal(t, []string{
		realtime.MessagePlayerRegistered,
		realtime.MessagePlayerRegistered,
		realtime.MessageMatchCreated,
		realtime.MessageMatchUpdated,
		realtime.MessageLeaderboardUpdated,
	}, e.broadcaster.types())

	profileStats, err := e.profile.Stats(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProfileStats{TotalMatches: 1, TotalWins: 1, TotalScore: 10, WinRate: 100}, *profileStats)

	ownerStats, err := e.profile.Stats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, ownerStats.TournamentsCreated)
	assert.Equal(t, 0, ownerStats.TournamentsCompleted)
}

func TestRegisterRequiresOpenTournament(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	tr := e.tournament(t, owner.ID, 4, models.TournamentStatusDraft)

	_, err := e.players.Register(context.Background(), owner.ID, tr.ID, PlayerInput{Name: "Me", Gamertag: "me"})
	assert.ErrorIs(t, err, ErrRegistrationNotOpen)

	_, err = e.players.Register(context.Background(), owner.ID, 9999, PlayerInput{Name: "Me", Gamertag: "me"})
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestCreateMatchWithForeignPlayerPersistsNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.user(t, "owner")
	tr := e.tournament(t, owner.ID, 4, models.TournamentStatusOpen)
	other := e.tournament(t, owner.ID, 4, models.TournamentStatusOpen)
	a := e.register(t, owner.ID, tr.ID, "A")
	foreign := e.register(t, owner.ID, other.ID, "F")

	round := 1
	_, err := e.matches.Create(ctx, owner.ID, tr.ID, CreateMatchInput{
		Round: &round, Status: "pending", PlayerIDs: []int{a.ID, foreign.ID},
	})
	assert.ErrorIs(t, err, ErrInvalidMatchPlayers)

	list, err := e.matches.ListByTournament(ctx, tr.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	var rows int
	require.NoError(t, e.db.Get(&rows, `SELECT COUNT(*) FROM match_player`))
	assert.Zero(t, rows)
}

func TestCreateMatchValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")
	stranger := e.user(t, "stranger")
	tr := e.tournament(t, owner.ID, 4, models.TournamentStatusOpen)
	a := e.register(t, owner.ID, tr.ID, "A")

	round := 1
	_, err := e.matches.Create(ctx, owner.ID, tr.ID, CreateMatchInput{Round: &round, Status: "pending", PlayerIDs: []int{a.ID, a.ID}})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "player_ids")

	_, err = e.matches.Create(ctx, owner.ID, tr.ID, CreateMatchInput{Status: "finished", PlayerIDs: []int{a.ID}})
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "round")
	assert.Contains(t, vErr.Fields, "status")
	assert.Contains(t, vErr.Fields, "player_ids")

	huge := math.MaxInt32 + 1
	_, err = e.matches.Create(ctx, owner.ID, tr.ID, CreateMatchInput{Round: &huge, Status: "pending", PlayerIDs: []int{a.ID, 2}})
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "round")

	_, err = e.matches.Create(ctx, stranger.ID, tr.ID, CreateMatchInput{Round: &round, Status: "pending", PlayerIDs: []int{a.ID, 2}})
	assert.ErrorIs(t, err, ErrForbiddenOperation)

	_, err = e.matches.Create(ctx, owner.ID, 9999, CreateMatchInput{Round: &round, Status: "pending", PlayerIDs: []int{a.ID, 2}})
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestUpdateScoresIsAllOrNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.user(t, "owner")
	tr := e.tournament(t, owner.ID, 4, models.TournamentStatusOpen)
	a := e.register(t, owner.ID, tr.ID, "A")
	b := e.register(t, owner.ID, tr.ID, "B")
	c := e.register(t, owner.ID, tr.ID, "C")
	m := e.match(t, owner.ID, tr.ID, a.ID, b.ID)

	_, err := e.matches.UpdateScores(ctx, owner.ID, tr.ID, m.ID, UpdateScoresInput{
		Scores: []models.ScoreEntry{{PlayerID: a.ID, Score: 5}, {PlayerID: c.ID, Score: 3}},
	})
	assert.ErrorIs(t, err, ErrPlayerNotInMatch)

	parts, err := e.matchRepo.ListParticipants(ctx, nil, m.ID)
	require.NoError(t, err)
	for _, p := range parts {
		assert.Zero(t, p.Score, "score of player %d must not be committed", p.PlayerID)
	}

	_, err = e.matches.UpdateScores(ctx, owner.ID, tr.ID, m.ID, UpdateScoresInput{
		Scores: []models.ScoreEntry{{PlayerID: a.ID, Score: -1}},
	})
	assert.ErrorIs(t, err, ErrInvalidScore)
	assert.ErrorIs(t, err, ErrValidationFailed)

	pending := "pending"
	_, err = e.matches.UpdateScores(ctx, owner.ID, tr.ID, m.ID, UpdateScoresInput{
		Scores: []models.ScoreEntry{{PlayerID: a.ID, Score: 1}},
		Status: &pending,
	})
	assert.ErrorIs(t, err, ErrValidationFailed)

	// частичное обновление без завершения не трогает статистику
	updated, err := e.matches.UpdateScores(ctx, owner.ID, tr.ID, m.ID, UpdateScoresInput{
		Scores: []models.ScoreEntry{{PlayerID: b.ID, Score: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusPending, updated.Status)
	assert.Nil(t, updated.WinnerPlayerID)
	assert.Zero(t, e.mustPlayer(t, b.ID).TotalScore)
}

func TestCompletionIsRecordedOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.user(t, "owner")
	tr := e.tournament(t, owner.ID, 4, models.TournamentStatusInProgress)
	// регистрация закрыта, поэтому игроков создаём напрямую
	a := &models.Player{TournamentID: tr.ID, Name: "A", Gamertag: "a"}
	b := &models.Player{TournamentID: tr.ID, Name: "B", Gamertag: "b"}
	require.NoError(t, e.playerRepo.Create(ctx, nil, a))
	require.NoError(t, e.playerRepo.Create(ctx, nil, b))
	m := e.match(t, owner.ID, tr.ID, a.ID, b.ID)

	_, err := e.matches.UpdateScores(ctx, owner.ID, tr.ID, m.ID, UpdateScoresInput{
		Scores: []models.ScoreEntry{{PlayerID: a.ID, Score: 3}, {PlayerID: b.ID, Score: 3}},
		Status: completed(),
	})
	require.NoError(t, err)

	_, err = e.matches.UpdateScores(ctx, owner.ID, tr.ID, m.ID, UpdateScoresInput{
		Scores: []models.ScoreEntry{{PlayerID: a.ID, Score: 1}, {PlayerID: b.ID, Score: 9}},
		Status: completed(),
	})
	assert.ErrorIs(t, err, ErrMatchResultsRecorded)

	gotA, gotB := e.mustPlayer(t, a.ID), e.mustPlayer(t, b.ID)
	assert.Equal(t, 1, gotA.Wins, "tie goes to the first listed player")
	assert.Equal(t, 3, gotA.TotalScore)
	assert.Equal(t, 1, gotB.Losses)
	assert.Equal(t, 3, gotB.TotalScore)

	_, err = e.matches.Update(ctx, owner.ID, tr.ID, m.ID, UpdateMatchInput{Round: intPtr(2), Status: "pending"})
	assert.ErrorIs(t, err, ErrMatchResultsRecorded)
}

func TestNestedResourceChecks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.user(t, "owner")
	stranger := e.user(t, "stranger")
	tr := e.tournament(t, owner.ID, 4, models.TournamentStatusOpen)
	other := e.tournament(t, owner.ID, 4, models.TournamentStatusOpen)
	a := e.register(t, owner.ID, tr.ID, "A")
	b := e.register(t, stranger.ID, tr.ID, "B")
	m := e.match(t, owner.ID, tr.ID, a.ID, b.ID)

	_, err := e.matches.GetByID(ctx, other.ID, m.ID)
	assert.ErrorIs(t, err, ErrMatchNotInTournament)
	_, err = e.players.GetByID(ctx, other.ID, a.ID)
	assert.ErrorIs(t, err, ErrPlayerNotInTournament)
	_, err = e.matches.GetByID(ctx, tr.ID, 9999)
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, err = e.matches.UpdateScores(ctx, stranger.ID, tr.ID, m.ID, UpdateScoresInput{
		Scores: []models.ScoreEntry{{PlayerID: a.ID, Score: 1}},
	})
	assert.ErrorIs(t, err, ErrForbiddenOperation)

	// свой профиль игрока менять можно, чужой нельзя
	_, err = e.players.Update(ctx, stranger.ID, tr.ID, b.ID, PlayerInput{Name: "Bee", Gamertag: "bee"})
	assert.NoError(t, err)
	_, err = e.players.Update(ctx, stranger.ID, tr.ID, a.ID, PlayerInput{Name: "Ay", Gamertag: "ay"})
	assert.ErrorIs(t, err, ErrForbiddenOperation)

	withMatches, err := e.players.GetByID(ctx, tr.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, withMatches.Matches, 1)
	assert.Equal(t, m.ID, withMatches.Matches[0].ID)

	require.NoError(t, e.matches.Delete(ctx, owner.ID, tr.ID, m.ID))
	assert.Contains(t, e.broadcaster.types(), realtime.MessageMatchDeleted)

	assert.ErrorIs(t, e.players.Delete(ctx, stranger.ID, tr.ID, a.ID), ErrForbiddenOperation)
	assert.NoError(t, e.players.Delete(ctx, owner.ID, tr.ID, a.ID))
}

func TestTournamentServiceValidationAndOwnership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")
	stranger := e.user(t, "stranger")

	one := 1
	end := "2026-11-01"
	_, err := e.tournaments.Create(ctx, owner.ID, TournamentInput{
		Game:       "Chess",
		StartDate:  "2026-12-01",
		EndDate:    &end,
		MaxPlayers: &one,
		Status:     "archived",
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	for _, field := range []string{"name", "end_date", "max_players", "status"} {
		assert.Contains(t, vErr.Fields, field)
	}

	tr := e.tournament(t, owner.ID, 8, models.TournamentStatusDraft)
	eight := 8
	input := TournamentInput{Name: "Renamed Cup", Game: "Chess", StartDate: "2026-12-01", MaxPlayers: &eight, Status: "open"}

	_, err = e.tournaments.Update(ctx, stranger.ID, tr.ID, input)
	assert.ErrorIs(t, err, ErrForbiddenOperation)

	updated, err := e.tournaments.Update(ctx, owner.ID, tr.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "renamed-cup", updated.Slug)
	assert.Equal(t, models.TournamentStatusOpen, updated.Status)

	detail, err := e.tournaments.GetDetails(ctx, tr.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, owner.ID, detail.Owner.ID)
	assert.Empty(t, detail.Owner.PasswordHash)

	mine, err := e.tournaments.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assert.ErrorIs(t, e.tournaments.Delete(ctx, stranger.ID, tr.ID), ErrForbiddenOperation)
	require.NoError(t, e.tournaments.Delete(ctx, owner.ID, tr.ID))
	_, err = e.tournaments.GetByID(ctx, tr.ID)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestAuthService(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u := e.user(t, "dana")
	assert.Empty(t, u.PasswordHash)

	_, err := e.auth.Register(ctx, RegisterInput{Name: "Dana", Email: "DANA@example.com", Password: "password123", PasswordConfirmation: "password123"})
	assert.ErrorIs(t, err, ErrUserEmailConflict)

	_, err = e.auth.Register(ctx, RegisterInput{Name: "X", Email: "not-an-email", Password: "short", PasswordConfirmation: "other"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "email")
	assert.Len(t, vErr.Fields["password"], 2)

	logged, err := e.auth.Login(ctx, LoginInput{Email: "Dana@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	_, err = e.auth.Login(ctx, LoginInput{Email: "dana@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
	_, err = e.auth.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	revoked, err := e.auth.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
	require.NoError(t, e.auth.Logout(ctx, u.ID, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = e.auth.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.ErrorIs(t, e.auth.Logout(ctx, u.ID, "", time.Now().Add(time.Hour)), ErrAuthInvalidCredentials)
}

func TestProfileUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.user(t, "erin")
	e.user(t, "frank")

	bio := "Speedrunner"
	png := []byte("\x89PNG\r\n\x1a\nfake")
	updated, err := e.profile.Update(ctx, u.ID, UpdateProfileInput{
		Name:  "Erin",
		Email: "erin@example.com",
		Bio:   &bio,
		Avatar: &AvatarUpload{
			Reader:      bytes.NewReader(png),
			Size:        int64(len(png)),
			ContentType: "image/png",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AvatarURL)
	assert.Contains(t, *updated.AvatarURL, fmt.Sprintf("http://localhost:8080/storage/avatars/%d/", u.ID))
	assert.Equal(t, "Speedrunner", *updated.Bio)

	_, err = e.profile.Update(ctx, u.ID, UpdateProfileInput{
		Name:                 "Erin",
		Email:                "frank@example.com",
		CurrentPassword:      "wrong-password",
		Password:             "newpassword1",
		PasswordConfirmation: "newpassword1",
		Avatar:               &AvatarUpload{Reader: bytes.NewReader(nil), Size: MaxAvatarSize + 1, ContentType: "image/webp"},
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "current_password")
	assert.Len(t, vErr.Fields["avatar"], 2)

	_, err = e.profile.Update(ctx, u.ID, UpdateProfileInput{Name: "Erin", Email: "frank@example.com"})
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "email")

	avatarDir := filepath.Join(e.storageDir, "avatars", strconv.Itoa(u.ID))
	before, err := os.ReadDir(avatarDir)
	require.NoError(t, err)
	_, err = e.profile.Update(ctx, u.ID, UpdateProfileInput{
		Name:   "Erin",
		Email:  "frank@example.com",
		Avatar: &AvatarUpload{Reader: bytes.NewReader(png), Size: int64(len(png)), ContentType: "image/png"},
	})
	require.ErrorAs(t, err, &vErr)
	after, err := os.ReadDir(avatarDir)
	require.NoError(t, err)
	assert.Len(t, after, len(before), "avatar of a rejected update must not stay in storage")
	current, err := e.profile.Show(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated.AvatarURL, *current.AvatarURL)

	_, err = e.profile.Update(ctx, u.ID, UpdateProfileInput{
		Name:                 "Erin",
		Email:                "erin@example.com",
		CurrentPassword:      "password123",
		Password:             "newpassword1",
		PasswordConfirmation: "newpassword1",
	})
	require.NoError(t, err)
	_, err = e.auth.Login(ctx, LoginInput{Email: "erin@example.com", Password: "newpassword1"})
	assert.NoError(t, err)

	shown, err := e.profile.Show(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, shown.AvatarURL)
	assert.Empty(t, shown.Tournaments)
	assert.Empty(t, shown.Players)
}

func intPtr(v int) *int { return &v }

func TestGenerateRoundRobin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.user(t, "owner")
	stranger := e.user(t, "stranger")
	tr := e.tournament(t, owner.ID, 8, models.TournamentStatusOpen)

	e.register(t, owner.ID, tr.ID, "A")
	_, err := e.matches.GenerateRoundRobin(ctx, owner.ID, tr.ID, GenerateScheduleInput{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "players")

	for _, name := range []string{"B", "C", "D"} {
		e.register(t, owner.ID, tr.ID, name)
	}

	_, err = e.matches.GenerateRoundRobin(ctx, stranger.ID, tr.ID, GenerateScheduleInput{})
	assert.ErrorIs(t, err, ErrForbiddenOperation)
	_, err = e.matches.GenerateRoundRobin(ctx, owner.ID, tr.ID, GenerateScheduleInput{Legs: 3})
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "legs")

	matches, err := e.matches.GenerateRoundRobin(ctx, owner.ID, tr.ID, GenerateScheduleInput{Legs: 1})
	require.NoError(t, err)
	require.Len(t, matches, 6)
	for _, m := range matches {
		assert.Equal(t, models.MatchStatusPending, m.Status)
		require.Len(t, m.Players, 2)
		assert.Zero(t, m.Players[0].Score)
		assert.Zero(t, m.Players[1].Score)
	}

	_, err = e.matches.GenerateRoundRobin(ctx, owner.ID, tr.ID, GenerateScheduleInput{})
	assert.ErrorIs(t, err, ErrScheduleExists)
}
