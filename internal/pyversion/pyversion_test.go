package pyversion

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/indaco/pkgmeta/internal/core"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "double quotes", input: "__version__ = \"0.1.0\"\n", want: "0.1.0"},
		{name: "single quotes", input: "__version__ = '1.2.3'", want: "1.2.3"},
		{name: "surrounding content", input: "\"\"\"doc\"\"\"\n__version__ = \"2.5.10\"\nother = 1\n", want: "2.5.10"},
		{name: "multi digit segments", input: `__version__ = "10.20.300"`, want: "10.20.300"},
		{name: "two segments", input: `__version__ = "1.0"`, want: "1.0"},
		{name: "first marker wins", input: "__version__ = \"1.0.0\"\n__version__ = \"2.0.0\"\n", want: "1.0.0"},
		{name: "wrong variable name", input: `version = "1.0.0"`, wantErr: true},
		{name: "empty input", input: "", wantErr: true},
		{name: "no spaces around equals", input: `__version__="1.0.0"`, wantErr: true},
		{name: "pre-release suffix is not digits", input: `__version__ = "1.0.0rc1"`, wantErr: true},
		{name: "empty quoted value", input: `__version__ = ""`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrVersionNotFound) {
					t.Fatalf("Extract() error = %v, want ErrVersionNotFound", err)
				}
				if got != "" {
					t.Errorf("Extract() = %q on failure, want empty", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	input := "__version__ = \"3.1.4\"\n"
	first, err := Extract(input)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Extract(input)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("Extract() not idempotent: %q then %q", first, second)
	}
}

func TestExtractFile(t *testing.T) {
	ctx := context.Background()
	mfs := core.NewMockFileSystem()
	mfs.SetFile("pkg/__init__.py", []byte("__version__ = '0.9.0'\n"))
	mfs.SetFile("pkg/empty.py", []byte("import os\n"))

	t.Run("found", func(t *testing.T) {
		got, err := ExtractFile(ctx, mfs, "pkg/__init__.py")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "0.9.0" {
			t.Errorf("got %q, want %q", got, "0.9.0")
		}
	})

	t.Run("pattern missing", func(t *testing.T) {
		_, err := ExtractFile(ctx, mfs, "pkg/empty.py")
		if !errors.Is(err, ErrVersionNotFound) {
			t.Fatalf("expected ErrVersionNotFound, got %v", err)
		}
		if want := "version pattern not found in pkg/empty.py"; err.Error() != want {
			t.Errorf("error = %q, want %q", err.Error(), want)
		}
	})

	t.Run("file missing", func(t *testing.T) {
		_, err := ExtractFile(ctx, mfs, "pkg/nope.py")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := ExtractFile(cctx, mfs, "pkg/__init__.py")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		version string
		want    string
		wantErr bool
	}{
		{
			name:    "keeps double quotes",
			input:   "\"\"\"doc\"\"\"\n__version__ = \"1.2.3\"\n",
			version: "1.3.0",
			want:    "\"\"\"doc\"\"\"\n__version__ = \"1.3.0\"\n",
		},
		{
			name:    "keeps single quotes",
			input:   "__version__ = '0.1.0'\nx = 1\n",
			version: "0.2.0",
			want:    "__version__ = '0.2.0'\nx = 1\n",
		},
		{
			name:    "only first marker",
			input:   "__version__ = \"1.0\"\n__version__ = \"1.0\"\n",
			version: "2.0",
			want:    "__version__ = \"2.0\"\n__version__ = \"1.0\"\n",
		},
		{
			name:    "missing marker",
			input:   "VERSION = '1.0.0'\n",
			version: "2.0.0",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Replace(tt.input, tt.version)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Replace() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Replace() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplaceFile(t *testing.T) {
	ctx := context.Background()
	mfs := core.NewMockFileSystem()
	mfs.SetFile("pkg/__init__.py", []byte("__version__ = \"1.0.0\"\n"))

	old, err := ReplaceFile(ctx, mfs, "pkg/__init__.py", "1.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if old != "1.0.0" {
		t.Errorf("old = %q, want 1.0.0", old)
	}

	data, _ := mfs.GetFile("pkg/__init__.py")
	if string(data) != "__version__ = \"1.0.1\"\n" {
		t.Errorf("file content = %q", data)
	}

	t.Run("write failure", func(t *testing.T) {
		wfs := core.NewMockFileSystem()
		wfs.SetFile("v.py", []byte("__version__ = \"1.0.0\"\n"))
		wfs.WriteErr = errors.New("disk full")
		if _, err := ReplaceFile(ctx, wfs, "v.py", "2.0.0"); err == nil {
			t.Fatal("expected write error")
		}
	})

	t.Run("no marker leaves file untouched", func(t *testing.T) {
		nfs := core.NewMockFileSystem()
		nfs.SetFile("v.py", []byte("x = 1\n"))
		_, err := ReplaceFile(ctx, nfs, "v.py", "2.0.0")
		if !errors.Is(err, ErrVersionNotFound) {
			t.Fatalf("expected ErrVersionNotFound, got %v", err)
		}
		data, _ := nfs.GetFile("v.py")
		if string(data) != "x = 1\n" {
			t.Errorf("file modified: %q", data)
		}
	})
}
