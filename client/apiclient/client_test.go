package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskbridge/go-task-server/client/apiclient"
)

const testToken = "test-token-abc"

func tokenProvider(token string) apiclient.TokenProvider {
	return func() string { return token }
}

func TestTasksAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/api/tasks", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"description":"Buy groceries","isDone":false},{"id":2,"description":"Walk the dog","isDone":true}]`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, tokenProvider(testToken), apiclient.Options{})
	require.NoError(t, err)

	tasks, err := client.Tasks(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer "+testToken, gotAuth)
	require.Len(t, tasks, 2)
	require.Equal(t, int64(1), tasks[0].ID)
	require.True(t, tasks[1].IsDone)
}

func TestNoTokenMeansNoAuthorizationHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, tokenProvider(""), apiclient.Options{})
	require.NoError(t, err)

	_, err = client.Tasks(context.Background())
	require.Empty(t, gotAuth)

	var statusErr *apiclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.Code)
}

func TestSetTaskDonePostsBody(t *testing.T) {
	var gotPath string
	var gotBody map[string]bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, tokenProvider(testToken), apiclient.Options{})
	require.NoError(t, err)

	require.NoError(t, client.SetTaskDone(context.Background(), 5, true))
	require.Equal(t, "/api/tasks/5/done", gotPath)
	require.Equal(t, map[string]bool{"isDone": true}, gotBody)
}

func TestUserDecodesIdentities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/user", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-1","identities":{"username":{"id":"demo"},"google":null}}`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, tokenProvider(testToken), apiclient.Options{})
	require.NoError(t, err)

	user, err := client.User(context.Background())
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)
	require.Equal(t, "demo", user.DisplayName())
	require.Nil(t, user.Identities.Google)
}

func TestDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, tokenProvider(testToken), apiclient.Options{})
	require.NoError(t, err)

	_, err = client.Tasks(context.Background())
	require.ErrorIs(t, err, apiclient.ErrDecode)
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Nothing is listening anymore

	client, err := apiclient.New(srv.URL, tokenProvider(testToken), apiclient.Options{})
	require.NoError(t, err)

	_, err = client.Tasks(context.Background())
	require.ErrorIs(t, err, apiclient.ErrNetwork)
}

func TestNotFoundStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, tokenProvider(testToken), apiclient.Options{})
	require.NoError(t, err)

	err = client.SetTaskDone(context.Background(), 99, true)
	var statusErr *apiclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.Code)
}
