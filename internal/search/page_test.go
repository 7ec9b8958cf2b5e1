package search

import "testing"

func TestBuildPageMeta(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		offset     int
		limit      int
		wantCount  int
		wantMore   bool
		wantNext   int
		wantNoNext bool
	}{
		{"empty", 0, 0, 20, 0, false, 0, true},
		{"first page", 100, 0, 20, 20, true, 20, false},
		{"middle page", 100, 40, 20, 20, true, 60, false},
		{"last full page", 100, 80, 20, 20, false, 0, true},
		{"short last page", 100, 90, 20, 10, false, 0, true},
		{"offset at end", 100, 100, 20, 0, false, 0, true},
		{"offset past end", 100, 120, 20, 0, false, 0, true},
		{"tiny pages", 5, 2, 2, 2, true, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := PageWindow(tt.total, tt.offset, tt.limit)
			count := end - start
			if count != tt.wantCount {
				t.Fatalf("window count = %d, want %d", count, tt.wantCount)
			}

			meta := BuildPageMeta(tt.total, tt.offset, tt.limit, count)
			if meta.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", meta.Count, tt.wantCount)
			}
			if meta.HasMore != tt.wantMore {
				t.Errorf("HasMore = %v, want %v", meta.HasMore, tt.wantMore)
			}
			if tt.wantNoNext {
				if meta.NextOffset != nil {
					t.Errorf("NextOffset = %d, want nil", *meta.NextOffset)
				}
			} else {
				if meta.NextOffset == nil {
					t.Fatalf("NextOffset = nil, want %d", tt.wantNext)
				}
				if *meta.NextOffset != tt.wantNext {
					t.Errorf("NextOffset = %d, want %d", *meta.NextOffset, tt.wantNext)
				}
			}
		})
	}
}

func TestPage(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	page, meta := Page(items, 2, 2)
	if len(page) != 2 || page[0] != "c" || page[1] != "d" {
		t.Errorf("page = %v, want [c d]", page)
	}
	if meta.TotalMatches != 5 || !meta.HasMore {
		t.Errorf("meta = %+v", meta)
	}

	page, meta = Page(items, 10, 2)
	if len(page) != 0 {
		t.Errorf("out-of-range page = %v, want empty", page)
	}
	if meta.HasMore {
		t.Error("out-of-range page should not report has_more")
	}
	if meta.NextOffset != nil {
		t.Error("out-of-range page should have nil next_offset")
	}
}

func TestPageNegativeOffset(t *testing.T) {
	items := []int{1, 2, 3}
	page, _ := Page(items, -5, 2)
	if len(page) != 2 || page[0] != 1 {
		t.Errorf("negative offset page = %v, want [1 2]", page)
	}
}
