//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/bissquit/signup-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// registerPayload builds a valid registration request with a unique email.
func registerPayload(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":     "Juan Rodriguez",
		"email":    email,
		"password": "Passw0rd12",
		"phones": []map[string]string{
			{"number": "1234567", "citycode": "1", "countrycode": "57"},
		},
	}
}

type registeredUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Created   string `json:"created"`
	Modified  string `json:"modified"`
	LastLogin string `json:"last_login"`
	Token     string `json:"token"`
	IsActive  bool   `json:"is_active"`
}

type registerResponse struct {
	Data registeredUser `json:"data"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func TestRegister_Success(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()

	resp, err := client.POST("/api/v1/users/register", registerPayload(email))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result registerResponse
	testutil.DecodeJSON(t, resp, &result)

	assert.NotEmpty(t, result.Data.ID)
	assert.Equal(t, "Juan Rodriguez", result.Data.Name)
	assert.Equal(t, email, result.Data.Email)
	assert.NotEmpty(t, result.Data.Token)
	assert.True(t, result.Data.IsActive)
	assert.Equal(t, result.Data.Created, result.Data.Modified)
	assert.Equal(t, result.Data.Created, result.Data.LastLogin)
}

func TestRegister_PersistsHashedPasswordAndPhones(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()

	resp, err := client.POST("/api/v1/users/register", registerPayload(email))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result registerResponse
	testutil.DecodeJSON(t, resp, &result)

	ctx := context.Background()

	var stored string
	err = testDB.QueryRow(ctx,
		"SELECT password FROM users WHERE id = $1", result.Data.ID).Scan(&stored)
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd12", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("Passw0rd12")))

	var phoneCount int
	err = testDB.QueryRow(ctx,
		"SELECT COUNT(*) FROM phones WHERE user_id = $1", result.Data.ID).Scan(&phoneCount)
	require.NoError(t, err)
	assert.Equal(t, 1, phoneCount)
}

func TestRegister_ResponseOmitsPassword(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/api/v1/users/register", registerPayload(testutil.RandomEmail()))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := testutil.ReadBody(t, resp)
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "Passw0rd12")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail()

	resp, err := client.POST("/api/v1/users/register", registerPayload(email))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = client.POST("/api/v1/users/register", registerPayload(email))
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var result errorResponse
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, "email already registered", result.Error.Message)

	var count int
	err = testDB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM users WHERE email = $1", email).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegister_InvalidEmailFormat(t *testing.T) {
	client := newTestClient(t)

	payload := registerPayload("not-an-email")
	resp, err := client.POST("/api/v1/users/register", payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var result errorResponse
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, "email does not match the required format", result.Error.Message)
}

func TestRegister_InvalidPasswordFormat(t *testing.T) {
	client := newTestClient(t)

	payload := registerPayload(testutil.RandomEmail())
	payload["password"] = "abc123"
	resp, err := client.POST("/api/v1/users/register", payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var result errorResponse
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, "password does not match the required format", result.Error.Message)
}

func TestRegister_MissingFields(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/api/v1/users/register", map[string]interface{}{
		"name": "Juan Rodriguez",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var result errorResponse
	testutil.DecodeJSON(t, resp, &result)
	assert.NotEmpty(t, result.Error.Details)
}

func TestRegister_EmptyPhones(t *testing.T) {
	client := newTestClient(t)

	payload := registerPayload(testutil.RandomEmail())
	payload["phones"] = []map[string]string{}
	resp, err := client.POST("/api/v1/users/register", payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var result errorResponse
	testutil.DecodeJSON(t, resp, &result)
	assert.NotEmpty(t, result.Error.Details)
}

func TestRegister_MalformedJSON(t *testing.T) {
	client := newTestClientWithoutValidation()

	resp, err := client.POST("/api/v1/users/register", "this is not an object")
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestHealthEndpoints(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = client.GET("/readyz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestVersionEndpoint(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/version")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Version string `json:"version"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.NotEmpty(t, result.Version)
}
