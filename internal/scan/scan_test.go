// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFiles creates empty files under dir, making parent directories.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscover(t *testing.T) {
	exts := []string{".png", ".jpg", ".jpeg"}

	tests := []struct {
		name      string
		files     []string
		recursive bool
		want      []string
	}{
		{
			name:      "flat directory filters and sorts",
			files:     []string{"b.png", "a.jpg", "notes.txt", "c.webp"},
			recursive: false,
			want:      []string{"a.jpg", "b.png"},
		},
		{
			name:      "flat ignores subdirectories",
			files:     []string{"top.png", "sub/nested.png"},
			recursive: false,
			want:      []string{"top.png"},
		},
		{
			name:      "recursive walks subdirectories",
			files:     []string{"top.png", "sub/nested.jpeg", "sub/deep/more.jpg", "sub/skip.gif"},
			recursive: true,
			want:      []string{"sub/deep/more.jpg", "sub/nested.jpeg", "top.png"},
		},
		{
			name:      "uppercase extensions match",
			files:     []string{"SHOUT.PNG", "photo.JPeG"},
			recursive: true,
			want:      []string{"SHOUT.PNG", "photo.JPeG"},
		},
		{
			name:      "hidden directories pruned",
			files:     []string{"keep.png", ".cache/skip.png"},
			recursive: true,
			want:      []string{"keep.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, tt.files...)

			got, err := Discover(dir, exts, tt.recursive)
			if err != nil {
				t.Fatal(err)
			}

			want := make([]string, len(tt.want))
			for i, w := range tt.want {
				want[i] = filepath.Join(dir, filepath.FromSlash(w))
			}
			if len(got) != len(want) {
				t.Fatalf("got %d files %v, want %d %v", len(got), got, len(want), want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("file[%d] = %q, want %q", i, got[i], want[i])
				}
			}
		})
	}
}

func TestDiscover_MissingDirectory(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent"), []string{".png"}, true)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestDiscover_EmptyDirectory(t *testing.T) {
	files, err := Discover(t.TempDir(), []string{".png"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}
