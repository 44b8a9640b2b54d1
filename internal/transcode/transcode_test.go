package transcode_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"portfolio/internal/catalog"
	"portfolio/internal/rendition"
	"portfolio/internal/testsupport"
	"portfolio/internal/transcode"
)

func TestFitWidth(t *testing.T) {
	tests := []struct {
		name         string
		w, h, bound  int
		wantW, wantH int
	}{
		{"thumbnail of landscape", 2000, 1333, 400, 400, 266},
		{"fullscreen of landscape", 2000, 1333, 1600, 1600, 1066},
		{"hero of 3:2", 3000, 2000, 1920, 1920, 1280},
		{"narrower than bound", 300, 200, 400, 300, 200},
		{"exactly the bound", 400, 300, 400, 400, 300},
		{"panorama keeps one row", 10000, 1, 400, 400, 1},
		{"portrait", 1000, 3000, 400, 400, 1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := transcode.FitWidth(tt.w, tt.h, tt.bound)
			if w != tt.wantW || h != tt.wantH {
				t.Fatalf("FitWidth(%d, %d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.bound, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFitWidthPreservesAspectRatio(t *testing.T) {
	for w := 401; w <= 5000; w += 97 {
		for _, h := range []int{3, 250, 1333, 4000} {
			_, got := transcode.FitWidth(w, h, 400)
			exact := float64(h) * 400 / float64(w)
			if diff := exact - float64(got); diff < -1 || diff > 1 {
				t.Fatalf("FitWidth(%d, %d) height %d too far from %.2f", w, h, got, exact)
			}
		}
	}
}

func newJob(t *testing.T, dir, name string, spec rendition.Spec) rendition.Job {
	t.Helper()
	src := catalog.NewSourceImage(filepath.Join(dir, "src"), name)
	outDir := filepath.Join(dir, "out", spec.Folder)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return rendition.Job{
		Category:    "wildlife",
		Slug:        "wildlife",
		Source:      src,
		Spec:        spec,
		Destination: filepath.Join(outDir, src.BaseName+spec.Format.Ext()),
	}
}

func decodedSize(t *testing.T, path string) (int, int) {
	t.Helper()
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open output %s: %v", path, err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestTranscodeResizesJPEG(t *testing.T) {
	dir := t.TempDir()
	specs := rendition.DefaultSpecs()
	job := newJob(t, dir, "RedPanda.JPG", specs.Thumbnail())
	testsupport.WriteJPEG(t, job.Source.Path, 2000, 1333)

	res, err := transcode.New().Transcode(context.Background(), job)
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}
	if res.Width != 400 || res.Height != 266 {
		t.Fatalf("unexpected result size %dx%d", res.Width, res.Height)
	}
	if w, h := decodedSize(t, job.Destination); w != 400 || h != 266 {
		t.Fatalf("unexpected output size %dx%d", w, h)
	}
	if res.Bytes <= 0 {
		t.Fatalf("expected byte count, got %d", res.Bytes)
	}
}

func TestTranscodeNeverEnlarges(t *testing.T) {
	dir := t.TempDir()
	job := newJob(t, dir, "small.png", rendition.DefaultSpecs().Fullscreen())
	testsupport.WritePNG(t, job.Source.Path, 320, 240)

	if _, err := transcode.New().Transcode(context.Background(), job); err != nil {
		t.Fatalf("Transcode: %v", err)
	}
	if w, h := decodedSize(t, job.Destination); w != 320 || h != 240 {
		t.Fatalf("expected original size, got %dx%d", w, h)
	}
	if filepath.Ext(job.Destination) != ".jpeg" {
		t.Fatalf("expected jpeg output, got %s", job.Destination)
	}
}

func TestTranscodeAppliesOrientation(t *testing.T) {
	dir := t.TempDir()
	job := newJob(t, dir, "rotated.jpg", rendition.DefaultSpecs().Thumbnail())
	testsupport.WriteJPEGWithOrientation(t, job.Source.Path, 300, 200, 6)

	res, err := transcode.New().Transcode(context.Background(), job)
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}
	if res.Width != 200 || res.Height != 300 {
		t.Fatalf("expected upright 200x300, got %dx%d", res.Width, res.Height)
	}
}

func TestTranscodeIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	job := newJob(t, dir, "leaf.jpg", rendition.DefaultSpecs().Thumbnail())
	testsupport.WriteJPEG(t, job.Source.Path, 900, 600)

	tr := transcode.New()
	if _, err := tr.Transcode(context.Background(), job); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(job.Destination)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Transcode(context.Background(), job); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(job.Destination)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected identical output on re-run")
	}
}

func TestTranscodeCorruptSource(t *testing.T) {
	dir := t.TempDir()
	job := newJob(t, dir, "broken.jpg", rendition.DefaultSpecs().Thumbnail())
	testsupport.WriteCorrupt(t, job.Source.Path)

	_, err := transcode.New().Transcode(context.Background(), job)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !bytes.Contains([]byte(err.Error()), []byte("broken.jpg")) {
		t.Fatalf("expected file name in error, got %v", err)
	}
	if _, statErr := os.Stat(job.Destination); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output for failed job, got %v", statErr)
	}
}

func TestTranscodeFailureRemovesEarlierRendition(t *testing.T) {
	dir := t.TempDir()
	job := newJob(t, dir, "bridge.jpg", rendition.DefaultSpecs().Thumbnail())
	testsupport.WriteJPEG(t, job.Source.Path, 800, 600)

	tr := transcode.New()
	if _, err := tr.Transcode(context.Background(), job); err != nil {
		t.Fatalf("first Transcode: %v", err)
	}
	if _, err := os.Stat(job.Destination); err != nil {
		t.Fatalf("expected rendition after first run: %v", err)
	}

	testsupport.WriteCorrupt(t, job.Source.Path)
	if _, err := tr.Transcode(context.Background(), job); err == nil {
		t.Fatal("expected decode error after source was corrupted")
	}
	if _, err := os.Stat(job.Destination); !os.IsNotExist(err) {
		t.Fatalf("expected stale rendition to be removed, got %v", err)
	}
}

func TestTranscodeDecodesWebP(t *testing.T) {
	dir := t.TempDir()
	job := newJob(t, dir, "solid.webp", rendition.DefaultSpecs().Thumbnail())
	data, err := os.ReadFile(filepath.Join("testdata", "solid-640x480.webp"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(job.Source.Path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(job.Source.Path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := transcode.New().Transcode(context.Background(), job)
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}
	if res.Width != 400 || res.Height != 300 {
		t.Fatalf("unexpected result size %dx%d", res.Width, res.Height)
	}
	if w, h := decodedSize(t, job.Destination); w != 400 || h != 300 {
		t.Fatalf("unexpected output size %dx%d", w, h)
	}
	if filepath.Base(job.Destination) != "solid.jpeg" {
		t.Fatalf("unexpected destination %s", job.Destination)
	}
}

func TestTranscodeMissingDestinationDir(t *testing.T) {
	dir := t.TempDir()
	job := newJob(t, dir, "ok.jpg", rendition.DefaultSpecs().Thumbnail())
	testsupport.WriteJPEG(t, job.Source.Path, 100, 100)
	job.Destination = filepath.Join(dir, "missing", "ok.jpeg")

	if _, err := transcode.New().Transcode(context.Background(), job); err == nil {
		t.Fatal("expected write error")
	}
}

func TestTranscodeHonoursCancellation(t *testing.T) {
	dir := t.TempDir()
	job := newJob(t, dir, "ok.jpg", rendition.DefaultSpecs().Thumbnail())
	testsupport.WriteJPEG(t, job.Source.Path, 100, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := transcode.New().Transcode(ctx, job); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(job.Destination); !os.IsNotExist(err) {
		t.Fatalf("expected no output after cancellation, got %v", err)
	}
}
