package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/chessroom-go/internal/api"
	"github.com/mcoot/chessroom-go/internal/api/apierr"
	"github.com/mcoot/chessroom-go/internal/dependencies/mocks"
	"github.com/mcoot/chessroom-go/internal/services/normalizer"
	"github.com/mcoot/chessroom-go/internal/services/opponent"
	"github.com/mcoot/chessroom-go/internal/services/room"
	"github.com/mcoot/chessroom-go/internal/services/rules"
	"github.com/mcoot/chessroom-go/internal/storage/memory"
	"github.com/mcoot/chessroom-go/internal/testutil"
)

const (
	aliceToken = "alice-token"
	bobToken   = "bob-token"
)

type testServer struct {
	handler http.Handler
	random  *mocks.MockRandom
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := testutil.NopLogger()
	rulesAdapter := rules.New(logger)
	rnd := mocks.NewMockRandom()

	controller := room.NewController(
		memory.New(),
		rulesAdapter,
		normalizer.New(nil, 0, logger),
		mocks.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		logger,
	)
	opponentService := opponent.NewService(
		controller,
		opponent.NewRandomMover(rulesAdapter, rnd),
		0,
		logger,
	)

	handler := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		RoomController:  controller,
		OpponentService: opponentService,
	})

	return &testServer{handler: handler, random: rnd}
}

// request performs an HTTP request against the test server. A non-empty
// token is sent as the bearer participant identity.
func (ts *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeJSON[apierr.ErrorResponse](t, rec).Error.Code
}

// createRoom creates a room and seats alice as white and bob as black.
func (ts *testServer) createRoom(t *testing.T, code string) {
	t.Helper()

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms", aliceToken, map[string]any{"code": code})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(t, http.MethodPost, "/api/v1/rooms/"+code+"/join", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = ts.request(t, http.MethodPost, "/api/v1/rooms/"+code+"/join", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateRoom(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms", aliceToken, map[string]any{"code": "abc123"})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, "ABC123", body["code"])
	assert.Equal(t, "ongoing", body["status"])
	assert.Equal(t, "white", body["turn"])
}

func TestCreateRoomRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms", "", map[string]any{"code": "ABC123"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apierr.CodeUnauthorized, errorCode(t, rec))
}

func TestCreateRoomEmptyCode(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms", aliceToken, map[string]any{"code": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rec))
}

func TestCreateRoomDuplicate(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC123")

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms", bobToken, map[string]any{"code": "abc123"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apierr.CodeRoomExists, errorCode(t, rec))
}

func TestGetRoomIsPublic(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC123")

	rec := ts.request(t, http.MethodGet, "/api/v1/rooms/ABC123", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, "ABC123", body["code"])
}

func TestGetRoomNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/v1/rooms/NOPE", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierr.CodeRoomNotFound, errorCode(t, rec))
}

func TestJoinWithSeatPreference(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms", aliceToken, map[string]any{"code": "ABC123"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(t, http.MethodPost, "/api/v1/rooms/ABC123/join", aliceToken, map[string]string{"seat": "black"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, "black", body["seat"])
}

func TestJoinInvalidSeat(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC123")

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms/ABC123/join", aliceToken, map[string]string{"seat": "red"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJoinFullRoomSpectates(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC123")

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms/ABC123/join", "carol-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, true, body["spectator"])
}

func TestMoveFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC123")

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms/ABC123/moves", aliceToken, map[string]string{"input": "e4"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, "e4", body["move"])
	roomBody := body["room"].(map[string]any)
	assert.Equal(t, "black", roomBody["turn"])

	rec = ts.request(t, http.MethodPost, "/api/v1/rooms/ABC123/moves", bobToken, map[string]string{"input": "e5"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMoveOutOfTurn(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC123")

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms/ABC123/moves", bobToken, map[string]string{"input": "e5"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, apierr.CodeNotYourTurn, errorCode(t, rec))
}

func TestMoveBadNotation(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC123")

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms/ABC123/moves", aliceToken, map[string]string{"input": "gibberish"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierr.CodeInvalidNotation, errorCode(t, rec))
}

func TestMoveIllegal(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC123")

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms/ABC123/moves", aliceToken, map[string]string{"input": "e5"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, apierr.CodeInvalidMove, errorCode(t, rec))
}

func TestMoveMissingInput(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC123")

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms/ABC123/moves", aliceToken, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResignFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC123")

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms/ABC123/resign", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, "ended", body["status"])
	assert.Equal(t, "white_wins", body["outcome"])

	// The game is over; further moves are rejected
	rec = ts.request(t, http.MethodPost, "/api/v1/rooms/ABC123/moves", aliceToken, map[string]string{"input": "e4"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apierr.CodeGameEnded, errorCode(t, rec))
}

func TestResignBySpectator(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC123")

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms/ABC123/resign", "carol-token", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, apierr.CodeNotAParticipant, errorCode(t, rec))
}

func TestVsEngineRoom(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms", aliceToken, map[string]any{"code": "SOLO1", "vs_engine": true})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeJSON[map[string]any](t, rec)
	seats := body["seats"].(map[string]any)
	assert.Equal(t, "engine-opponent", seats["black"])

	rec = ts.request(t, http.MethodPost, "/api/v1/rooms/SOLO1/join", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	joinBody := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, "white", joinBody["seat"])

	rec = ts.request(t, http.MethodPost, "/api/v1/rooms/SOLO1/moves", aliceToken, map[string]string{"input": "e4"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.request(t, http.MethodPost, "/api/v1/rooms/SOLO1/engine-move", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	moveBody := decodeJSON[map[string]any](t, rec)
	assert.NotEmpty(t, moveBody["move"])
	roomBody := moveBody["room"].(map[string]any)
	assert.Equal(t, "white", roomBody["turn"])
}

func TestEngineMoveOutOfTurn(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/v1/rooms", aliceToken, map[string]any{"code": "SOLO1", "vs_engine": true})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(t, http.MethodPost, "/api/v1/rooms/SOLO1/engine-move", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, apierr.CodeNotYourTurn, errorCode(t, rec))
}
