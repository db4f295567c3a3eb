package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(nil, nil, func(string) bool { return false })
}

func TestClientCountsPerRoom(t *testing.T) {
	h := newTestHub()

	h.registerClient(clientMeta{sid: "a", room: RoomPublic})
	h.registerClient(clientMeta{sid: "b", room: RoomPublic})
	h.registerClient(clientMeta{sid: "c", room: RoomAdmin})

	assert.Equal(t, 2, h.ClientCount(RoomPublic))
	assert.Equal(t, 1, h.ClientCount(RoomAdmin))
	assert.Equal(t, 3, h.ClientCount(""))

	// Re-registering the same sid must not double count.
	h.registerClient(clientMeta{sid: "a", room: RoomPublic})
	assert.Equal(t, 2, h.ClientCount(RoomPublic))

	h.unregisterClient(clientMeta{sid: "b", room: RoomPublic})
	assert.Equal(t, 1, h.ClientCount(RoomPublic))
	h.unregisterClient(clientMeta{sid: "b", room: RoomPublic})
	assert.Equal(t, 1, h.ClientCount(RoomPublic), "unknown sid is a no-op")
}

func TestStatsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHub()
	h.registerClient(clientMeta{sid: "a", room: RoomPublic})

	r := gin.New()
	h.RegisterRoutes(r.Group(""))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/gateway/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats["public"])
	assert.Equal(t, 0, stats["admin"])
	assert.Equal(t, 1, stats["total"])
}

func TestAdminTokenExtraction(t *testing.T) {
	assert.Equal(t, "abc", normalizeToken("Bearer abc"))
	assert.Equal(t, "abc", normalizeToken("  abc  "))
	assert.Equal(t, "", normalizeToken("   "))

	values := map[string][]string{"Authorization": {" Bearer xyz "}}
	assert.Equal(t, "Bearer xyz", firstValue(values, "authorization"))
	assert.Equal(t, "", firstValue(values, "token"))
}
