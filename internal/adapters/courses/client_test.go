package courses

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elan-ev/tobira-auth-callback-service/internal/core"
	apperrors "github.com/elan-ev/tobira-auth-callback-service/internal/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Options{
		Config: Config{URLTemplate: server.URL + "/user/{username}/courses"},
		Cache:  core.NewMemoryCache(16, time.Minute),
	})
	return client, server
}

func TestCourseRolesUnconfigured(t *testing.T) {
	client := NewClient(Options{})

	roles, err := client.CourseRoles(context.Background(), "jane")
	require.NoError(t, err)
	assert.Nil(t, roles)
}

func TestCourseRolesSuccess(t *testing.T) {
	var requestedPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[1,2,3,4]`))
	}))

	roles, err := client.CourseRoles(context.Background(), "jane@edu.org")
	require.NoError(t, err)

	assert.Equal(t, "/user/jane@edu.org/courses", requestedPath)
	assert.Equal(t, []string{
		"ROLE_COURSE_1_Learner",
		"ROLE_COURSE_2_Learner",
		"ROLE_COURSE_3_Learner",
		"ROLE_COURSE_4_Learner",
	}, roles)
}

func TestCourseRolesStringIdentifiers(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`["math-101","bio-2"]`))
	}))

	roles, err := client.CourseRoles(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_COURSE_math-101_Learner", "ROLE_COURSE_bio-2_Learner"}, roles)
}

func TestCourseRolesNonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	roles, err := client.CourseRoles(context.Background(), "jane")
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestCourseRolesTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	client := NewClient(Options{
		Config: Config{URLTemplate: server.URL + "/user/{username}/courses"},
	})

	_, err := client.CourseRoles(context.Background(), "jane")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestCourseRolesMalformedResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))

	_, err := client.CourseRoles(context.Background(), "jane")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestCourseRolesCachedWithinTTL(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[1,2]`))
	}))

	first, err := client.CourseRoles(context.Background(), "jane")
	require.NoError(t, err)
	second, err := client.CourseRoles(context.Background(), "jane")
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load(), "second lookup must not issue an outbound call")
	assert.Equal(t, first, second)

	// A different username is a cache miss.
	_, err = client.CourseRoles(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCourseRolesEmptyResultCached(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))

	for range 3 {
		roles, err := client.CourseRoles(context.Background(), "jane")
		require.NoError(t, err)
		assert.Empty(t, roles)
	}
	assert.Equal(t, int32(1), calls.Load(), "non-success results are cached too")
}

func TestCourseRolesRedirectFollowed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/jane/courses", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/moved", http.StatusFound)
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[7]`))
	})
	client, _ := newTestClient(t, mux)

	roles, err := client.CourseRoles(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_COURSE_7_Learner"}, roles)
}
