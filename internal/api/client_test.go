package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/trackit/internal/habit"
)

func TestListHabitsSendsBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth, gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Read","days":[1,3]},{"id":2,"name":"Run","days":[0]}]`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL+"/", "tok-123")
	habits, err := c.ListHabits(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.Equal(t, "/habits", gotPath)
	require.Equal(t, http.MethodGet, gotMethod)
	require.Equal(t, []habit.Habit{
		{ID: 1, Name: "Read", Days: []int{1, 3}},
		{ID: 2, Name: "Run", Days: []int{0}},
	}, habits)
}

func TestListHabitsEmptyBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	t.Cleanup(srv.Close)

	habits, err := New(srv.URL, "t").ListHabits(context.Background())
	require.NoError(t, err)
	require.NotNil(t, habits)
	require.Empty(t, habits)
}

func TestCreateHabitPostsDraft(t *testing.T) {
	t.Parallel()

	var got habit.Draft
	var method, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"name":"Stretch","days":[2,4]}`))
	}))
	t.Cleanup(srv.Close)

	h, err := New(srv.URL, "t").CreateHabit(context.Background(), habit.Draft{Name: "Stretch", Days: []int{2, 4}})
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, method)
	require.Equal(t, "application/json", contentType)
	require.Equal(t, habit.Draft{Name: "Stretch", Days: []int{2, 4}}, got)
	require.Equal(t, habit.Habit{ID: 7, Name: "Stretch", Days: []int{2, 4}}, h)
}

func TestErrorMessageFromBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"habit name is required"}`))
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, "t").CreateHabit(context.Background(), habit.Draft{Days: []int{1}})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	require.Equal(t, "habit name is required", apiErr.Message)
	require.Equal(t, "habit name is required", Message(err))
}

func TestErrorWithoutMessageFallsBackToStatusText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, "t").ListHabits(context.Background())
	require.Equal(t, "bad gateway", Message(err))
}

func TestTransportErrorIsWrapped(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "t", WithTimeout(20*time.Millisecond))
	_, err := c.ListHabits(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.False(t, errors.As(err, &apiErr))
	require.Contains(t, Message(err), "GET /habits")
}

func TestTimeoutLeavesCallerClientAlone(t *testing.T) {
	t.Parallel()

	for _, order := range [][]func(*http.Client) Option{
		{func(*http.Client) Option { return WithTimeout(5 * time.Second) }, WithHTTPClient},
		{WithHTTPClient, func(*http.Client) Option { return WithTimeout(5 * time.Second) }},
	} {
		shared := &http.Client{}
		c := New("http://localhost", "t", order[0](shared), order[1](shared))
		require.Zero(t, shared.Timeout)
		require.Equal(t, 5*time.Second, c.http.Timeout)
		require.NotSame(t, shared, c.http)
	}

	shared := &http.Client{Timeout: time.Second}
	c := New("http://localhost", "t", WithHTTPClient(shared))
	require.Same(t, shared, c.http)
}

func TestMessageNil(t *testing.T) {
	t.Parallel()
	require.Equal(t, "", Message(nil))
}
