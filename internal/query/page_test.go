package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageDefaults(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		limit    string
		expected Page
	}{
		{"empty", "", "", Page{Number: 1, Limit: 20}},
		{"valid", "3", "50", Page{Number: 3, Limit: 50}},
		{"zero page", "0", "10", Page{Number: 1, Limit: 10}},
		{"negative", "-2", "-5", Page{Number: 1, Limit: 20}},
		{"garbage", "abc", "xyz", Page{Number: 1, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePage(tt.page, tt.limit, 20))
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Limit: 20}.Offset())
	assert.Equal(t, 10, Page{Number: 2, Limit: 10}.Offset())
	assert.Equal(t, 40, Page{Number: 5, Limit: 10}.Offset())
}

func TestPaginate(t *testing.T) {
	p := Paginate(15, Page{Number: 2, Limit: 10})
	assert.Equal(t, int64(15), p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, int64(2), p.Pages)

	assert.Equal(t, int64(0), Paginate(0, Page{Number: 1, Limit: 10}).Pages)
	assert.Equal(t, int64(1), Paginate(10, Page{Number: 1, Limit: 10}).Pages)
	assert.Equal(t, int64(2), Paginate(11, Page{Number: 1, Limit: 10}).Pages)
}
