package envconf

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type nested struct {
	DSN   string `env:"T_DSN"`
	Conns int    `env:"T_CONNS" envDefault:"4"`
}

type sample struct {
	Port     uint16        `env:"T_PORT"`
	Level    slog.Level    `env:"T_LEVEL"`
	Timeout  time.Duration `env:"T_TIMEOUT" envDefault:"5s"`
	Debug    bool          `env:"T_DEBUG" envDefault:"false"`
	Ratio    *float64      `env:"T_RATIO" envDefault:"0.5"`
	Postgres nested
}

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
		anyErr  bool
		check   func(t *testing.T, got sample)
	}{
		{
			name: "defaults_applied",
			env:  map[string]string{"T_PORT": "8080", "T_LEVEL": "DEBUG", "T_DSN": "postgres://x"},
			check: func(t *testing.T, got sample) {
				t.Helper()

				if got.Port != 8080 || got.Level != slog.LevelDebug || got.Postgres.DSN != "postgres://x" {
					t.Fatalf("unexpected values: %+v", got)
				}

				if got.Timeout != 5*time.Second || got.Postgres.Conns != 4 || got.Debug {
					t.Fatalf("defaults not applied: %+v", got)
				}

				if got.Ratio == nil || *got.Ratio != 0.5 {
					t.Fatalf("pointer default not applied: %v", got.Ratio)
				}
			},
		},
		{
			name: "env_overrides_default",
			env: map[string]string{
				"T_PORT": "1", "T_LEVEL": "ERROR", "T_DSN": "d",
				"T_TIMEOUT": "250ms", "T_CONNS": "16", "T_DEBUG": "true",
			},
			check: func(t *testing.T, got sample) {
				t.Helper()

				if got.Timeout != 250*time.Millisecond || got.Postgres.Conns != 16 || !got.Debug {
					t.Fatalf("overrides not applied: %+v", got)
				}
			},
		},
		{
			name:    "missing_required",
			env:     map[string]string{"T_PORT": "1", "T_LEVEL": "INFO"},
			wantErr: ErrMissingRequired,
		},
		{
			name:   "bad_uint",
			env:    map[string]string{"T_PORT": "70000", "T_LEVEL": "INFO", "T_DSN": "d"},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got sample

			err := LoadFrom(&got, mapLookup(tt.env))

			switch {
			case tt.anyErr:
				if err == nil {
					t.Fatal("expected parse error")
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				tt.check(t, got)
			}
		})
	}
}

func TestLoadFrom_InvalidDestination(t *testing.T) {
	t.Parallel()

	var s sample

	for _, dst := range []any{nil, s, new(int)} {
		err := LoadFrom(dst, mapLookup(nil))
		if err == nil {
			t.Fatalf("expected error for destination %T", dst)
		}
	}
}

type unsupported struct {
	C chan int `env:"T_CHAN"`
}

func TestLoadFrom_UnsupportedType(t *testing.T) {
	t.Parallel()

	var u unsupported

	err := LoadFrom(&u, mapLookup(map[string]string{"T_CHAN": "1"}))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("want ErrUnsupportedType, got %v", err)
	}
}

//nolint:paralleltest
func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")

	err := os.WriteFile(path, []byte("ENVCONF_DOTENV_A=from-file\nENVCONF_DOTENV_B=from-file\n"), 0o600)
	if err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("ENVCONF_DOTENV_B", "from-env")

	err = LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load dotenv: %v", err)
	}

	if got := os.Getenv("ENVCONF_DOTENV_A"); got != "from-file" {
		t.Fatalf("A: want from-file, got %q", got)
	}

	if got := os.Getenv("ENVCONF_DOTENV_B"); got != "from-env" {
		t.Fatalf("B: existing variable must win, got %q", got)
	}

	os.Unsetenv("ENVCONF_DOTENV_A")
}
