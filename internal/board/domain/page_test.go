package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		counter int64
		page    int64
		size    int64
		want    PageWindow
	}{
		{"no counter", 0, 1, 10, PageWindow{TotalElements: 0, TotalPages: 0, Page: 1, Size: 10, StartAt: 0}},
		{"counter reserved slot", 1, 1, 10, PageWindow{TotalElements: 0, TotalPages: 0, Page: 1, Size: 10, StartAt: 0}},
		{"three messages first page", 4, 1, 2, PageWindow{TotalElements: 3, TotalPages: 2, Page: 1, Size: 2, StartAt: 3}},
		{"three messages second page", 4, 2, 2, PageWindow{TotalElements: 3, TotalPages: 2, Page: 2, Size: 2, StartAt: 1}},
		{"beyond last page", 4, 3, 2, PageWindow{TotalElements: 3, TotalPages: 0, Page: 3, Size: 2, StartAt: 0}},
		{"huge page does not wrap", 4, 1 << 62, 4, PageWindow{TotalElements: 3, TotalPages: 0, Page: 1 << 62, Size: 4, StartAt: 0}},
		{"max page", 100, math.MaxInt64, 10, PageWindow{TotalElements: 99, TotalPages: 0, Page: math.MaxInt64, Size: 10, StartAt: 0}},
		{"zero size", 4, 1, 0, PageWindow{TotalElements: 3, TotalPages: 0, Page: 1, Size: 0, StartAt: 0}},
		{"exact multiple boundary", 5, 3, 2, PageWindow{TotalElements: 4, TotalPages: 0, Page: 3, Size: 2, StartAt: 0}},
		{"exact multiple", 11, 1, 10, PageWindow{TotalElements: 10, TotalPages: 1, Page: 1, Size: 10, StartAt: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPageWindow(tt.counter, tt.page, tt.size))
		})
	}
}

func TestPageBeyondTotalIsEmpty(t *testing.T) {
	for counter := int64(0); counter < 30; counter++ {
		for size := int64(1); size <= 7; size++ {
			w := NewPageWindow(counter, 1, size)
			beyond := NewPageWindow(counter, w.TotalPages+1, size)
			assert.True(t, beyond.Empty(), "counter=%d size=%d", counter, size)
			assert.Zero(t, beyond.TotalPages)
		}
	}
}

func TestEmptyPageViewHasEmptyContent(t *testing.T) {
	v := NewEmptyPage(NewPageWindow(4, 9, 2)).View()
	assert.NotNil(t, v.Content)
	assert.Len(t, v.Content, 0)
	assert.Equal(t, int64(3), v.TotalElements)
}
