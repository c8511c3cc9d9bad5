package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington.dev/activities/internal/app/appconfig"
)

func newTestClient(backendURL string) *Client {
	conf := &appconfig.Config{}
	conf.BackendURL = backendURL
	conf.BoardRequestTimeout = time.Second * 5
	return New(conf)
}

func TestClientFetchActivities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/activities", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Chess Club": {
				"description": "Learn strategies and compete in chess tournaments",
				"schedule": "Fridays, 3:30 PM - 5:00 PM",
				"max_participants": 12,
				"participants": ["michael@mergington.edu"]
			},
			"Soccer Club": {
				"description": "Participate in soccer practice and matches",
				"schedule": "Wednesdays, 3:30 PM - 5:30 PM",
				"max_participants": 18,
				"participants": []
			}
		}`))
	}))
	defer srv.Close()

	activities, err := newTestClient(srv.URL).FetchActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, activities, 2)

	chess := activities["Chess Club"]
	require.NotNil(t, chess)
	assert.Equal(t, "Chess Club", chess.Name, "map key should be copied onto the record")
	assert.Equal(t, 12, chess.MaxParticipants)
	assert.Equal(t, []string{"michael@mergington.edu"}, chess.Participants)

	soccer := activities["Soccer Club"]
	require.NotNil(t, soccer)
	assert.Empty(t, soccer.Participants)
}

func TestClientFetchActivitiesDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchActivities(context.Background())
	require.Error(t, err)

	var rej *RejectionError
	assert.False(t, errors.As(err, &rej), "a decode failure is not a rejection")
}

func TestClientSignup(t *testing.T) {
	t.Run("EncodesPathAndQuery", func(t *testing.T) {
		var gotURI string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURI = r.URL.RequestURI()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"message": "Signed up new+student@mergington.edu for Chess Club"}`))
		}))
		defer srv.Close()

		message, err := newTestClient(srv.URL).Signup(context.Background(), "Chess Club", "new+student@mergington.edu")
		require.NoError(t, err)
		assert.Equal(t, "Signed up new+student@mergington.edu for Chess Club", message)
		assert.Equal(t, "/activities/Chess%20Club/signup?email=new%2Bstudent%40mergington.edu", gotURI)
	})

	t.Run("RejectionCarriesDetail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail": "Student michael@mergington.edu is already signed up for Chess Club"}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Signup(context.Background(), "Chess Club", "michael@mergington.edu")
		require.Error(t, err)

		var rej *RejectionError
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, http.StatusBadRequest, rej.StatusCode)
		assert.Equal(t, "Student michael@mergington.edu is already signed up for Chess Club", rej.Detail)
	})

	t.Run("RejectionWithGarbledBodyHasEmptyDetail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`upstream exploded`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Signup(context.Background(), "Chess Club", "michael@mergington.edu")
		require.Error(t, err)

		var rej *RejectionError
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, http.StatusBadGateway, rej.StatusCode)
		assert.Empty(t, rej.Detail)
	})

	t.Run("TransportFailureIsNotARejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := newTestClient(srv.URL).Signup(context.Background(), "Chess Club", "michael@mergington.edu")
		require.Error(t, err)

		var rej *RejectionError
		assert.False(t, errors.As(err, &rej))
	})
}

func TestClientUnregister(t *testing.T) {
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "Unregistered michael@mergington.edu from Chess Club"}`))
	}))
	defer srv.Close()

	message, err := newTestClient(srv.URL).Unregister(context.Background(), "Chess Club", "michael@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, "Unregistered michael@mergington.edu from Chess Club", message)
	assert.Equal(t, "/activities/Chess%20Club/unregister?email=michael%40mergington.edu", gotURI)
}
