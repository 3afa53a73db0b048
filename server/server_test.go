package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reqbody"
	"github.com/xy-planning-network/reqbody/logger"
	"github.com/xy-planning-network/reqbody/server"
)

func testConfig() server.Config {
	cfg := server.NewConfig()
	cfg.Env = reqbody.Testing
	cfg.Host = "localhost"
	cfg.Port = ":0"
	cfg.RateLimitEnabled = false

	return cfg
}

func newServer(t *testing.T, cfg server.Config) (*server.Server, *bytes.Buffer) {
	t.Helper()

	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(logger.LogLevelDebug))
	s, err := server.New(server.WithConfig(cfg), server.WithLogger(l))
	require.Nil(t, err)

	return s, b
}

func post(s http.Handler, path, contentType, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "http://example.com"+path, strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}

	s.ServeHTTP(w, r)
	return w
}

func TestNewConfig(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "8080")
	t.Setenv("BODY_MAX_BYTES", "64")
	t.Setenv("JSON_ASSOC", "false")
	t.Setenv("JSON_MAX_DEPTH", "3")
	t.Setenv("RATE_LIMIT_RPS", "nope")

	// Act
	actual := server.NewConfig()

	// Assert
	require.Equal(t, reqbody.Production, actual.Env)
	require.Equal(t, logger.LogLevelDebug, actual.LogLevel)
	require.Equal(t, ":8080", actual.Port)
	require.Equal(t, int64(64), actual.MaxBodyBytes)
	require.False(t, actual.JSONAssoc)
	require.Equal(t, 3, actual.JSONMaxDepth)
	require.Equal(t, server.DefaultRateLimitRPS, actual.RateLimitRPS)
	require.Equal(t, server.DefaultHost, actual.Host)
}

func TestNewBadEnvironment(t *testing.T) {
	// Arrange
	cfg := testConfig()
	cfg.Env = "nope"

	// Act
	_, err := server.New(server.WithConfig(cfg), server.WithLogger(logger.New()))

	// Assert
	require.ErrorIs(t, err, reqbody.ErrBadConfig)
}

func TestServerEcho(t *testing.T) {
	tcs := []struct {
		name        string
		contentType string
		body        string
		code        int
		expected    string
	}{
		{"JSON", "application/json", `{"test":"value"}`, http.StatusOK, `{"contentType":"application/json","parsed":true,"body":{"test":"value"}}`},
		{"JSON-Scalar", "application/json", `true`, http.StatusOK, `{"contentType":"application/json","parsed":true,"body":null}`},
		{"YAML", "application/yaml", "test: value\nlist: [1, 2]\n", http.StatusOK, `{"contentType":"application/yaml","parsed":true,"body":{"list":[1,2],"test":"value"}}`},
		{"Form", "application/x-www-form-urlencoded", "a=1&b=2&b=3", http.StatusOK, `{"contentType":"application/x-www-form-urlencoded","parsed":true,"body":{"a":"1","b":["2","3"]}}`},
		{"No-Content-Type", "", `{"test":"value"}`, http.StatusOK, `{"contentType":"","parsed":false,"body":null}`},
		{"Unregistered", "text/plain", `hi`, http.StatusOK, `{"contentType":"text/plain","parsed":false,"body":null}`},
	}

	s, _ := newServer(t, testConfig())
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			w := post(s, "/echo", tc.contentType, tc.body)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.JSONEq(t, tc.expected, w.Body.String())
			require.NotZero(t, w.Header().Get("X-Request-Id"))
		})
	}
}

func TestServerEchoOrderedObjects(t *testing.T) {
	// Arrange
	cfg := testConfig()
	cfg.JSONAssoc = false
	s, _ := newServer(t, cfg)

	// Act
	w := post(s, "/echo", "application/json", `{"z":1,"a":{"y":2,"b":3}}`)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"contentType":"application/json","parsed":true,"body":{"z":1,"a":{"y":2,"b":3}}}`, w.Body.String())
}

func TestServerBadRequestBody(t *testing.T) {
	// Arrange
	s, b := newServer(t, testConfig())

	// Act
	w := post(s, "/echo", "application/json", `{"test": invalid json}`)

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.True(t, strings.HasPrefix(w.Body.String(), "Bad Request\nInvalid JSON data in request body: "))
	require.Contains(t, b.String(), "bad request body")

	// Arrange
	cfg := testConfig()
	cfg.Env = reqbody.Production
	s, _ = newServer(t, cfg)

	// Act
	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "https://example.com/echo", strings.NewReader(`{`))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("X-Forwarded-Proto", "https")
	s.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Bad Request", w.Body.String())

	// Arrange
	cfg = testConfig()
	cfg.IgnoreBadRequestBody = true
	s, _ = newServer(t, cfg)

	// Act
	w = post(s, "/echo", "application/json", `{`)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"contentType":"application/json","parsed":false,"body":null}`, w.Body.String())
}

func TestServerMaxDepth(t *testing.T) {
	// Arrange
	cfg := testConfig()
	cfg.JSONMaxDepth = 2
	s, _ := newServer(t, cfg)

	// Act
	ok := post(s, "/echo", "application/json", `[1]`)
	tooDeep := post(s, "/echo", "application/json", `[[1]]`)

	// Assert
	require.Equal(t, http.StatusOK, ok.Code)
	require.Equal(t, http.StatusBadRequest, tooDeep.Code)
	require.Contains(t, tooDeep.Body.String(), "maximum stack depth exceeded")
}

func TestServerGreet(t *testing.T) {
	tcs := []struct {
		name        string
		contentType string
		body        string
		code        int
		contains    string
	}{
		{"JSON", "application/json", `{"name":"Ada"}`, http.StatusOK, `"message":"Hello, Ada!"`},
		{"Form", "application/x-www-form-urlencoded", "name=Ada&greeting=Hi", http.StatusOK, `"message":"Hi, Ada!"`},
		{"YAML", "application/yaml", "name: Ada\ntags: [a, b]\n", http.StatusOK, `"tags":["a","b"]`},
		{"Missing-Name", "application/json", `{"greeting":"Hi"}`, http.StatusUnprocessableEntity, `"field":"name"`},
		{"Wrong-Type", "application/json", `{"name":["Ada"]}`, http.StatusBadRequest, "Bad Request"},
		{"No-Body", "", ``, http.StatusBadRequest, "Bad Request"},
	}

	s, _ := newServer(t, testConfig())
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			w := post(s, "/greet", tc.contentType, tc.body)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Contains(t, w.Body.String(), tc.contains)
		})
	}
}

func TestServerMetrics(t *testing.T) {
	// Arrange
	s, _ := newServer(t, testConfig())
	post(s, "/echo", "application/json", `{}`)
	post(s, "/echo", "application/json", `{`)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "http://example.com/metrics", nil)

	// Act
	s.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `reqbody_body_parser_outcomes_total{mime="application/json",outcome="parsed"} 1`)
	require.Contains(t, w.Body.String(), `reqbody_body_parser_outcomes_total{mime="application/json",outcome="rejected"} 1`)
}

func TestServerNotFound(t *testing.T) {
	// Arrange
	s, _ := newServer(t, testConfig())

	// Act
	w := post(s, "/missing", "application/json", `{}`)

	// Assert
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestServerGuide(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(log.New(b, "", 0)))
	s, err := server.New(server.WithConfig(testConfig()), server.WithLogger(l), server.WithContext(ctx))
	require.Nil(t, err)

	time.AfterFunc(50*time.Millisecond, cancel)

	// Act
	err = s.Guide()

	// Assert
	require.Nil(t, err)
	require.Contains(t, b.String(), "web server shutdown successfully")
}

func TestValidationErrorsResponse(t *testing.T) {
	// Arrange
	s, _ := newServer(t, testConfig())

	// Act
	w := post(s, "/greet", "application/json", `{"tags":["a","b","c","d","e","f"]}`)

	// Assert
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var actual struct {
		ValidationErrors []struct {
			Field string `json:"field"`
			Rule  string `json:"rule"`
		} `json:"validationErrors"`
	}
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &actual))
	require.Len(t, actual.ValidationErrors, 2)
	require.Equal(t, "name", actual.ValidationErrors[0].Field)
	require.Equal(t, "tags", actual.ValidationErrors[1].Field)
}
