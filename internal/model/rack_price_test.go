package model_test

import (
	"sync"
	"testing"

	"fuelprice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestRackPrice_BasePriceKeepsFeedPrecision(t *testing.T) {
	s, err := schema.Parse(&model.RackPrice{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	field := s.LookUpField("BasePrice")
	require.NotNil(t, field)
	assert.Equal(t, "base_price", field.DBName)
	assert.EqualValues(t, "numeric(12,6)", field.DataType)
}
