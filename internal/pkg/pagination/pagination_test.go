package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=3&pageSize=10", nil)
	p := FromQuery(r)
	assert.Equal(t, Params{Page: 3, PageSize: 10}, p)
	assert.Equal(t, 20, p.Offset())

	r = httptest.NewRequest("GET", "/?page=-1&pageSize=1000", nil)
	assert.Equal(t, Params{Page: 1, PageSize: MaxPageSize}, FromQuery(r))

	r = httptest.NewRequest("GET", "/?page=abc", nil)
	assert.Equal(t, Params{Page: 1, PageSize: DefaultPageSize}, FromQuery(r))
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, Params{Page: 1, PageSize: 2}, 5)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(5), p.TotalCount)

	empty := NewPage[int](nil, Params{Page: 1, PageSize: 20}, 0)
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 0, empty.TotalPages)

	mapped := Map(p, func(i int) string { return string(rune('a' + i)) })
	assert.Equal(t, []string{"b", "c"}, mapped.Data)
	assert.Equal(t, 3, mapped.TotalPages)
}
