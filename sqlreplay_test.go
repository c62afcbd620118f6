package sqlreplay

import "testing"

func TestRuntimeConfigWithDefaults(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name string
		cfg  RuntimeConfig
		want string
	}{
		{"empty", RuntimeConfig{}, DefaultNamespace},
		{"custom", RuntimeConfig{Namespace: "custom"}, "custom"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.cfg.WithDefaults().Namespace; got != tc.want {
				t.Fatalf("expected namespace %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDefaultHostCall(t *testing.T) {
	t.Parallel()

	hc := DefaultHostCall()
	if hc == nil {
		t.Fatal("expected a host call")
	}
	if out, err := hc(DefaultNamespace, "logging", "Info", []byte("hello")); err != nil || out != nil {
		t.Fatalf("expected a silent no-op, got %q, %v", out, err)
	}
}
