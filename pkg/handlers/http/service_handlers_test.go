package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/ChapterGenie/pkg/handlers/http/response"
	"github.com/NeuralTrust/ChapterGenie/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getJSON(t *testing.T, app *fiber.App, path string, out interface{}) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
	return resp.StatusCode
}

func TestRootHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/", NewRootHandler().Handle)

	var info response.ServiceInfo
	status := getJSON(t, app, "/", &info)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "YouTube Chapter Generator API", info.Name)
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "Generate chapter timestamps for YouTube videos", info.Description)
	assert.Equal(t, "/docs", info.Documentation)
	assert.Len(t, info.Endpoints, 5)
	assert.Equal(t, "Main endpoint for generating chapters", info.Endpoints["POST /api"])
	assert.Equal(t, "Keep service awake", info.Endpoints["GET /wake"])
}

func TestTestHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/test", NewTestHandler().Handle)

	var out response.StatusResponse
	assert.Equal(t, fiber.StatusOK, getJSON(t, app, "/test", &out))
	assert.Equal(t, response.StatusResponse{Status: "ok", Message: "Server is running correctly"}, out)
}

func TestWakeHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/wake", NewWakeHandler().Handle)

	var out response.MessageResponse
	assert.Equal(t, fiber.StatusOK, getJSON(t, app, "/wake", &out))
	assert.Equal(t, "I Won't Sleep", out.Message)
}

func TestGetVersionHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/version", NewGetVersionHandler().Handle)

	var out version.Info
	assert.Equal(t, fiber.StatusOK, getJSON(t, app, "/version", &out))
	assert.Equal(t, version.Version, out.Version)
	assert.Equal(t, version.AppName, out.AppName)
}

func TestSimpleDemoHandler(t *testing.T) {
	app := fiber.New()
	app.Post("/simple-demo", NewSimpleDemoHandler(logrus.New()).Handle)

	status, data := postJSON(t, app, "/simple-demo", `{"url":"https://www.youtube.com/watch?v=anything"}`)
	require.Equal(t, fiber.StatusOK, status)

	var out response.ChaptersResponse
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Chapters, 8)
	assert.Equal(t, "00:00", out.Chapters[0].Timestamp)
	assert.Equal(t, "Introduction", out.Chapters[0].Title)
	assert.Equal(t, "25:30", out.Chapters[7].Timestamp)
	assert.Equal(t, "Conclusion and key takeaways", out.Chapters[7].Title)

	status, _ = postJSON(t, app, "/simple-demo", `not json`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
