package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
)

func setupRecoveryRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	C.InitForTest(&C.Configuration{AppName: "app_server", Env: C.DEVELOPMENT,
		APPDomain: "app.modulyn.test"})

	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) {
		panic(errors.New("store exploded"))
	})
	r.GET("/fine", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/widget", WrapWidget("summary", func(c *gin.Context) {
		panic("widget exploded")
	}))
	return r
}

func doRequest(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestRecoveryCatchesPanic(t *testing.T) {
	r := setupRecoveryRouter()

	w := doRequest(r, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "retry")
	assert.Contains(t, body["error_id"], "err_")
	assert.Equal(t, "support@app.modulyn.test", body["support"])

	// The raw panic message never leaks to the response.
	assert.NotContains(t, w.Body.String(), "store exploded")
}

func TestRecoveryErrorIDsAreFreshPerCatch(t *testing.T) {
	r := setupRecoveryRouter()

	var first, second map[string]string
	assert.Nil(t, json.Unmarshal(doRequest(r, "/boom").Body.Bytes(), &first))
	assert.Nil(t, json.Unmarshal(doRequest(r, "/boom").Body.Bytes(), &second))

	// Same crash, two catches, two ids.
	assert.NotEmpty(t, first["error_id"])
	assert.NotEqual(t, first["error_id"], second["error_id"])
}

func TestRecoveryLeavesHealthyRoutesAlone(t *testing.T) {
	r := setupRecoveryRouter()

	w := doRequest(r, "/fine")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWrapWidgetDegradesInPlace(t *testing.T) {
	r := setupRecoveryRouter()

	// A widget crash is a 200 with a degraded payload, not a page
	// failure.
	w := doRequest(r, "/widget")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "summary", body["widget"])
	assert.Contains(t, body["error_id"], "err_")
	assert.NotContains(t, w.Body.String(), "widget exploded")
}
