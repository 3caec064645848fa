package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParse(t *testing.T) {
	p := Parse(contextWithQuery("page=3&limit=10"))
	assert.Equal(t, Params{Page: 3, Limit: 10, Offset: 20}, p)

	p = Parse(contextWithQuery(""))
	assert.Equal(t, Params{Page: 1, Limit: DefaultLimit, Offset: 0}, p)

	p = Parse(contextWithQuery("page=-1&limit=1000"))
	assert.Equal(t, Params{Page: 1, Limit: MaxLimit, Offset: 0}, p)
}

func TestParseWithDefault(t *testing.T) {
	p := ParseWithDefault(contextWithQuery("limit=abc"), 50)
	assert.Equal(t, 50, p.Limit)
}
