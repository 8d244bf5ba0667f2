package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHitString(t *testing.T) {
	hit := Hit{
		"code":    "123",
		"scans":   float64(42),
		"score":   1.5,
		"brands":  []any{"lu", "mondelez"},
		"organic": true,
		"nothing": nil,
	}

	assert.Equal(t, "123", hit.String("code"))
	assert.Equal(t, "42", hit.String("scans"))
	assert.Equal(t, "1.5", hit.String("score"))
	assert.Equal(t, "lu, mondelez", hit.String("brands"))
	assert.Equal(t, "true", hit.String("organic"))
	assert.Empty(t, hit.String("nothing"))
	assert.Empty(t, hit.String("missing"))
}

func TestFacetItemLabel(t *testing.T) {
	assert.Equal(t, "Coca", FacetItem{Key: "coca", Name: "Coca"}.Label())
	assert.Equal(t, "coca", FacetItem{Key: "coca"}.Label())
}

func TestChartSidebarStateNext(t *testing.T) {
	assert.Equal(t, SidebarOpened, SidebarClosed.Next())
	assert.Equal(t, SidebarExpanded, SidebarOpened.Next())
	assert.Equal(t, SidebarClosed, SidebarExpanded.Next())
}
