package ringicon

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	path := func(name string) string { return filepath.Join(dir, name) }

	// generated by this package
	g, err := New(WithIcons([]Icon{{Size: 32, Path: path("generated.png")}}))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Generate(context.Background()); err != nil {
		t.Fatal(err)
	}

	// same pixels, different encoder
	writePNG(t, path("reencoded.png"), Render(32).Image())

	// every channel one step brighter
	writePNG(t, path("touched.png"), brighten(Render(64).Image()))

	// a different picture
	writePNG(t, path("other.png"), invert(Render(64).Image()))

	// right pixels, wrong size
	writePNG(t, path("small.png"), Render(16).Image())

	// corrupted crc
	b, err := MarshalPNG(Render(32))
	if err != nil {
		t.Fatal(err)
	}
	b[len(b)-1] ^= 0xff
	if err := os.WriteFile(path("corrupt.png"), b, 0o600); err != nil {
		t.Fatal(err)
	}

	icons := []Icon{
		{Size: 32, Path: path("generated.png")},
		{Size: 32, Path: path("reencoded.png")},
		{Size: 64, Path: path("touched.png")},
		{Size: 64, Path: path("other.png")},
		{Size: 32, Path: path("small.png")},
		{Size: 32, Path: path("corrupt.png")},
		{Size: 32, Path: path("absent.png")},
	}
	v, err := New(WithIcons(icons))
	if err != nil {
		t.Fatal(err)
	}
	reports, err := v.Verify(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var got []Status
	for i, r := range reports {
		if r.Icon != icons[i] {
			t.Errorf("report %d is for %v, want %v", i, r.Icon, icons[i])
		}
		got = append(got, r.Status)
	}
	want := []Status{
		StatusIdentical,
		StatusIdentical,
		StatusSimilar,
		StatusStale,
		StatusBroken,
		StatusBroken,
		StatusMissing,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}
	for _, i := range []int{4, 5, 6} {
		if reports[i].Err == nil {
			t.Errorf("%s: no error reported", icons[i].Path)
		}
	}
}

func TestStatusOK(t *testing.T) {
	tests := []struct {
		s    Status
		want bool
	}{
		{StatusIdentical, true},
		{StatusSimilar, true},
		{StatusStale, false},
		{StatusBroken, false},
		{StatusMissing, false},
	}
	for _, tt := range tests {
		if got := tt.s.OK(); got != tt.want {
			t.Errorf("%s.OK() = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestVerifyIconExactBytes(t *testing.T) {
	p := filepath.Join(t.TempDir(), "icon.png")
	b, err := MarshalPNG(Render(48))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, b, 0o600); err != nil {
		t.Fatal(err)
	}
	r := verifyIcon(Icon{Size: 48, Path: p})
	if r.Status != StatusIdentical || r.Err != nil || r.Distance != 0 {
		t.Errorf("got %s (distance %d, err %v), want identical", r.Status, r.Distance, r.Err)
	}
}
