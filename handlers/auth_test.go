package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lexdraft/models"
	"lexdraft/services/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUserService struct {
	registerErr error
	authResp    *models.AuthResponse
	authErr     error
	revokedID   string
}

func (f *fakeUserService) Register(req models.SignupRequest) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: "u1", Email: req.Email}, nil
}

func (f *fakeUserService) Authenticate(email, password string) (*models.AuthResponse, error) {
	return f.authResp, f.authErr
}

func (f *fakeUserService) RevokeAuthToken(userID string) error {
	f.revokedID = userID
	return nil
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	router := gin.New()
	router.POST(path, handler)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func responseMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestSignupHandlerSuccess(t *testing.T) {
	h := NewAuthHandler(&fakeUserService{})
	w := postJSON(t, h.SignupHandler, "/api/signup", models.SignupRequest{
		Name: "Jane", Phone: "555-0100", Email: "jane@example.com", Password: "secret",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered successfully!", responseMessage(t, w))
}

func TestSignupHandlerMissingFields(t *testing.T) {
	h := NewAuthHandler(&fakeUserService{registerErr: user.ErrMissingFields})
	w := postJSON(t, h.SignupHandler, "/api/signup", models.SignupRequest{Email: "jane@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required!", responseMessage(t, w))
}

func TestSignupHandlerDuplicateEmail(t *testing.T) {
	h := NewAuthHandler(&fakeUserService{registerErr: user.ErrDuplicateEmail})
	w := postJSON(t, h.SignupHandler, "/api/signup", models.SignupRequest{
		Name: "Jane", Phone: "555-0100", Email: "jane@example.com", Password: "secret",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "A user with this email already exists!", responseMessage(t, w))
}

func TestSignupHandlerStorageFailure(t *testing.T) {
	h := NewAuthHandler(&fakeUserService{registerErr: assert.AnError})
	w := postJSON(t, h.SignupHandler, "/api/signup", models.SignupRequest{
		Name: "Jane", Phone: "555-0100", Email: "jane@example.com", Password: "secret",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error saving user to database!", responseMessage(t, w))
}

func TestLoginHandlerSuccess(t *testing.T) {
	h := NewAuthHandler(&fakeUserService{authResp: &models.AuthResponse{
		Message: "Login successful!", UserID: "u1", Username: "Jane", Token: "tok",
	}})
	w := postJSON(t, h.LoginHandler, "/api/login", models.LoginRequest{Email: "jane@example.com", Password: "secret"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, "tok", resp.Token)
}

func TestLoginHandlerMissingFields(t *testing.T) {
	h := NewAuthHandler(&fakeUserService{authErr: user.ErrMissingFields})
	w := postJSON(t, h.LoginHandler, "/api/login", models.LoginRequest{Email: "jane@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and password are required!", responseMessage(t, w))
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&fakeUserService{authErr: user.ErrInvalidCredentials})
	w := postJSON(t, h.LoginHandler, "/api/login", models.LoginRequest{Email: "jane@example.com", Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password!", responseMessage(t, w))
}

func TestLoginHandlerServerError(t *testing.T) {
	h := NewAuthHandler(&fakeUserService{authErr: assert.AnError})
	w := postJSON(t, h.LoginHandler, "/api/login", models.LoginRequest{Email: "jane@example.com", Password: "secret"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server error during login!", responseMessage(t, w))
}

func TestLogoutHandlerRequiresAuthContext(t *testing.T) {
	h := NewAuthHandler(&fakeUserService{})
	w := postJSON(t, h.LogoutHandler, "/api/account/logout", gin.H{})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutHandlerRevokesToken(t *testing.T) {
	svc := &fakeUserService{}
	h := NewAuthHandler(svc)

	router := gin.New()
	router.POST("/api/account/logout", func(c *gin.Context) {
		c.Set("userID", "u1")
		h.LogoutHandler(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/account/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", svc.revokedID)
}
