package response

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		count      int
		totalItems int64
		want       Pagination
	}{
		{
			name: "first page of several", page: 1, pageSize: 10, count: 10, totalItems: 25,
			want: Pagination{Page: 1, PageSize: 10, TotalPages: 3, TotalItems: 25, HasMore: true, From: 1, To: 10},
		},
		{
			name: "last partial page", page: 3, pageSize: 10, count: 5, totalItems: 25,
			want: Pagination{Page: 3, PageSize: 10, TotalPages: 3, TotalItems: 25, HasMore: false, From: 21, To: 25},
		},
		{
			name: "empty listing", page: 1, pageSize: 10, count: 0, totalItems: 0,
			want: Pagination{Page: 1, PageSize: 10, TotalPages: 0, TotalItems: 0, HasMore: false, From: 0, To: 0},
		},
		{
			name: "defaults applied", page: 0, pageSize: 0, count: 1, totalItems: 1,
			want: Pagination{Page: 1, PageSize: 1, TotalPages: 1, TotalItems: 1, HasMore: false, From: 1, To: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPagination(tt.page, tt.pageSize, tt.count, tt.totalItems)
			if *got != tt.want {
				t.Errorf("NewPagination() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}
