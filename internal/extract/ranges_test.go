package extract

import "testing"

func TestParseRange(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []int
	}{
		{"single", []string{"7"}, []int{7}},
		{"range", []string{"2-4"}, []int{2, 3, 4}},
		{"list", []string{"1", "3", "5"}, []int{1, 3, 5}},
		{"range of one", []string{"3-3"}, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}

func TestParseRange_Malformed(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"a-b"},
		{"2-"},
		{"-4"},
		{"5-2"},
		{"1", "two"},
	} {
		if _, err := ParseRange(args); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}
