package response

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessWithPagination(t *testing.T) {
	res := SuccessWithPagination(http.StatusOK, []string{"a"}, 2, 20, 41)
	require.NotNil(t, res.Meta)
	assert.Equal(t, int64(3), res.Meta.TotalPages)

	res = SuccessWithPagination(http.StatusOK, nil, 1, 0, 5)
	assert.Zero(t, res.Meta.TotalPages)
}

func TestErrorOmitsData(t *testing.T) {
	raw, err := json.Marshal(Error(http.StatusNotFound, "operator not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","status_code":404,"error":"operator not found"}`, string(raw))
}
