package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("abc"), nil)
	var out map[string]bool
	require.NoError(t, c.Get(context.Background(), "/websites/", &out))

	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.True(t, out["ok"])
}

func TestClient_NoTokenOmitsHeader(t *testing.T) {
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	require.NoError(t, c.Get(context.Background(), "/", nil))
	assert.False(t, present)
}

func TestClient_ContextTokenWins(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	c := New(srv.URL, ContextToken{Fallback: StaticToken("fallback")}, nil)

	require.NoError(t, c.Get(WithToken(context.Background(), "session"), "/", nil))
	assert.Equal(t, "Bearer session", gotAuth)

	require.NoError(t, c.Get(context.Background(), "/", nil))
	assert.Equal(t, "Bearer fallback", gotAuth)
}

func TestClient_PostEncodesBody(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	require.NoError(t, c.Post(context.Background(), "/coupons/validate", map[string]string{"code": "SAVE10"}, nil))
	assert.Equal(t, "SAVE10", got["code"])
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error field", 400, `{"error": "bad coupon"}`, "bad coupon"},
		{"message field", 400, `{"message": "try again"}`, "try again"},
		{"detail field", 404, `{"detail": "Not found."}`, "Not found."},
		{"error wins over detail", 400, `{"detail": "d", "error": "e"}`, "e"},
		{"other object", 422, `{"slug": ["taken"]}`, `{"slug": ["taken"]}`},
		{"plain text", 500, "boom", "boom"},
		{"empty body", 502, "", "HTTP error! status: 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := New(srv.URL, nil, nil).Get(context.Background(), "/x", nil)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	err := New(srv.URL, nil, nil).Get(context.Background(), "/products/9/", nil)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsTransport(err))
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := New(url, nil, nil).Get(context.Background(), "/", nil)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.False(t, IsNotFound(err))
}

func TestDecodeList(t *testing.T) {
	type item struct {
		ID int `json:"id"`
	}

	bare, err := DecodeList[item](json.RawMessage(`[{"id":1},{"id":2}]`))
	require.NoError(t, err)
	assert.Len(t, bare, 2)

	paged, err := DecodeList[item](json.RawMessage(`{"count": 1, "results": [{"id":3}]}`))
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 3}}, paged)

	empty, err := DecodeList[item](json.RawMessage(`{"count": 0}`))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = DecodeList[item](json.RawMessage(`"nope"`))
	assert.Error(t, err)
}
