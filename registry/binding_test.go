package registry

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParamsEqual(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tt := []struct {
		name string
		a, b Params
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil and empty", nil, Params{}, false},
		{"empty and empty", Params{}, Params{}, true},
		{"nil and values", nil, Params{1}, false},
		{"equal strings", Params{"a", "b"}, Params{"a", "b"}, true},
		{"order matters", Params{"a", "b"}, Params{"b", "a"}, false},
		{"length differs", Params{1}, Params{1, 2}, false},
		{"int and int64", Params{1}, Params{int64(1)}, true},
		{"int and float", Params{1}, Params{1.0}, true},
		{"uint and int", Params{uint8(7)}, Params{7}, true},
		{"decimal and int", Params{decimal.NewFromInt(5)}, Params{5}, true},
		{"decimal and float", Params{decimal.RequireFromString("1.50")}, Params{1.5}, true},
		{"different numbers", Params{1}, Params{2}, false},
		{"number and string", Params{1}, Params{"1"}, false},
		{"bool is not numeric", Params{true}, Params{1}, false},
		{"times", Params{now}, Params{now}, true},
		{"nil elements", Params{nil}, Params{nil}, true},
		{"byte slices", Params{[]byte("x")}, Params{[]byte("x")}, true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ParamsEqual(tc.a, tc.b); got != tc.want {
				t.Fatalf("ParamsEqual(%v, %v): want %v, got %v", tc.a, tc.b, tc.want, got)
			}
			if got := ParamsEqual(tc.b, tc.a); got != tc.want {
				t.Fatalf("ParamsEqual is not symmetric for %v and %v", tc.a, tc.b)
			}
		})
	}
}

func TestBindingString(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 40)

	tt := []struct {
		name    string
		binding Binding
		prefix  string
		want    []string
	}{
		{
			name:    "regular",
			binding: Binding{Query: "SELECT 1", Payload: Rows{}},
			prefix:  "Binding: ",
			want:    []string{"SELECT 1", " -> "},
		},
		{
			name:    "ephemeral with params",
			binding: Binding{Query: "SELECT ?", Params: Params{1}, Payload: Record{"a": 1}, Ephemeral: true},
			prefix:  "EphemeralBinding: ",
			want:    []string{"SELECT ?", " + [1]", " -> "},
		},
		{
			name:    "truncated query",
			binding: Binding{Query: long, Payload: Rows{}},
			prefix:  "Binding: ",
			want:    []string{strings.Repeat("x", 30) + "..."},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := tc.binding.String()
			if !strings.HasPrefix(got, tc.prefix) {
				t.Fatalf("expected prefix %q in %q", tc.prefix, got)
			}
			for _, w := range tc.want {
				if !strings.Contains(got, w) {
					t.Fatalf("expected %q in %q", w, got)
				}
			}
			if strings.Contains(got, strings.Repeat("x", 31)) {
				t.Fatalf("query was not truncated: %q", got)
			}
		})
	}
}
