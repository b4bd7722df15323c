package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func ctxWithQuery(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func TestParse(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 1, 10, 0},
		{"explicit larger page size", "page=3&limit=20", 3, 20, 40},
		{"over-limit snaps to default", "limit=50", 1, 10, 0},
		{"in-between snaps to default", "limit=15", 1, 10, 0},
		{"zero values fall back", "page=0&limit=0", 1, 10, 0},
		{"negative page falls back", "page=-2", 1, 10, 0},
		{"garbage falls back", "page=abc&limit=xyz", 1, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(ctxWithQuery(t, tc.query))
			if got.Page != tc.wantPage || got.Limit != tc.wantLimit || got.Offset != tc.wantOffset {
				t.Errorf("Parse(%q) = %+v, want page=%d limit=%d offset=%d",
					tc.query, got, tc.wantPage, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}
