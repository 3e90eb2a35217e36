package system_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"etude-backend/internal/apptest"
	users_testing "etude-backend/internal/features/users/testing"
	test_utils "etude-backend/internal/util/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Healthcheck_IsPublic(t *testing.T) {
	router := apptest.GetRouter()

	response := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodGet,
		URL:            "/api/v1/healthcheck",
		ExpectedStatus: http.StatusOK,
	})

	var body map[string]string
	require.NoError(t, json.Unmarshal(response.Body, &body))
	assert.Equal(t, "ok", body["status"])
}

func Test_SystemStats_RequiresAuth(t *testing.T) {
	router := apptest.GetRouter()

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodGet,
		URL:            "/api/v1/system/stats",
		ExpectedStatus: http.StatusUnauthorized,
	})

	session := users_testing.CreateTestUser()

	response := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodGet,
		URL:            "/api/v1/system/stats",
		AuthToken:      "Bearer " + session.Token,
		ExpectedStatus: http.StatusOK,
	})

	var stats map[string]any
	require.NoError(t, json.Unmarshal(response.Body, &stats))
	assert.Contains(t, stats, "goroutines")
}
