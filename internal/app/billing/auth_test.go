package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetPasswordSendsUIDAndTokenInQuery(t *testing.T) {
	var gotPath, gotQuery string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeStore{})
	err := client.ResetPassword(context.Background(), "MTI", "tok-12345", "newpassword1")

	require.NoError(t, err)
	assert.Equal(t, "/auth/reset-password/", gotPath)
	assert.Equal(t, "uid=MTI&token=tok-12345", gotQuery)
	// в теле только новый пароль
	assert.Equal(t, map[string]string{"new_password": "newpassword1"}, gotBody)
}

func TestVerifyEmailSendsUIDAndToken(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeStore{})
	err := client.VerifyEmail(context.Background(), "MTI", "tok-12345")

	require.NoError(t, err)
	assert.Equal(t, "/users/verify-email", gotPath)
	assert.Equal(t, map[string]string{"uid": "MTI", "token": "tok-12345"}, gotBody)
}
