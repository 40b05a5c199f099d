package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/postdigester/donation-backend/internal/donation/service"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	RegisterDonationRoutes(g.Group("/api/v1"), service.NewMemoryService())
	return g
}

func do(t *testing.T, g *gin.Engine, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func createDonation(t *testing.T, g *gin.Engine, body string) string {
	t.Helper()
	code, out := do(t, g, http.MethodPost, "/api/v1/donations", body)
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, true, out["success"])
	result := out["result"].(map[string]interface{})
	require.Equal(t, true, result["acknowledged"])
	id, _ := result["insertedId"].(string)
	require.Len(t, id, 24)
	return id
}

func TestDonationHandler_CRUD(t *testing.T) {
	g := newRouter()

	id := createDonation(t, g, `{"category":"food","amount":10,"title":"Rice","image":"http://img/r.png"}`)

	// get returns the same fields
	code, out := do(t, g, http.MethodGet, "/api/v1/donations/"+id, "")
	require.Equal(t, http.StatusOK, code)
	d := out["result"].(map[string]interface{})
	require.Equal(t, id, d["_id"])
	require.Equal(t, "food", d["category"])
	require.Equal(t, 10.0, d["amount"])
	require.Equal(t, "Rice", d["title"])
	require.Equal(t, "http://img/r.png", d["image"])

	// list
	code, out = do(t, g, http.MethodGet, "/api/v1/donations", "")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, out["result"], 1)

	// patch only touches supplied fields
	code, out = do(t, g, http.MethodPatch, "/api/v1/donations/"+id, `{"amount":50}`)
	require.Equal(t, http.StatusOK, code)
	d = out["result"].(map[string]interface{})
	require.Equal(t, 50.0, d["amount"])
	require.Equal(t, "food", d["category"])
	require.Equal(t, "Rice", d["title"])

	// delete returns the removed document
	code, out = do(t, g, http.MethodDelete, "/api/v1/donations/"+id, "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, id, out["result"].(map[string]interface{})["_id"])

	// then the id is gone
	code, out = do(t, g, http.MethodGet, "/api/v1/donations/"+id, "")
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, false, out["success"])

	// deleting again yields a null result, not an error
	code, out = do(t, g, http.MethodDelete, "/api/v1/donations/"+id, "")
	require.Equal(t, http.StatusOK, code)
	require.Nil(t, out["result"])
}

func TestDonationHandler_MalformedID(t *testing.T) {
	g := newRouter()

	code, out := do(t, g, http.MethodGet, "/api/v1/donations/not-an-object-id", "")
	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, false, out["success"])

	code, _ = do(t, g, http.MethodPatch, "/api/v1/donations/not-an-object-id", `{"amount":1}`)
	require.Equal(t, http.StatusInternalServerError, code)

	code, _ = do(t, g, http.MethodDelete, "/api/v1/donations/not-an-object-id", "")
	require.Equal(t, http.StatusInternalServerError, code)
}

func TestDonationHandler_RejectsNonObjectBody(t *testing.T) {
	g := newRouter()
	code, _ := do(t, g, http.MethodPost, "/api/v1/donations", `[1,2,3]`)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestDonationHandler_Statistics(t *testing.T) {
	g := newRouter()

	// no donations: both fields absent
	code, out := do(t, g, http.MethodGet, "/api/v1/statistics", "")
	require.Equal(t, http.StatusOK, code)
	require.NotContains(t, out, "totalDonationSum")
	require.NotContains(t, out, "statistics")

	createDonation(t, g, `{"category":"food","amount":10}`)
	createDonation(t, g, `{"category":"food","amount":5}`)
	createDonation(t, g, `{"category":"cash","amount":20}`)

	code, out = do(t, g, http.MethodGet, "/api/v1/statistics", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 35.0, out["totalDonationSum"])

	groups := out["statistics"].([]interface{})
	require.Len(t, groups, 2)
	totals := map[string]float64{}
	for _, grp := range groups {
		row := grp.(map[string]interface{})
		totals[row["_id"].(string)] = row["totalDonation"].(float64)
	}
	require.Equal(t, map[string]float64{"food": 15, "cash": 20}, totals)
}
