package transcode

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"portfolio/internal/fileutil"
	"portfolio/internal/rendition"
)

// Result describes a finished rendition.
type Result struct {
	Job     rendition.Job
	Width   int
	Height  int
	Bytes   int64
	Elapsed time.Duration
}

// Transcoder produces one rendition per call.
type Transcoder interface {
	Transcode(ctx context.Context, job rendition.Job) (Result, error)
}

// Imaging transcodes with github.com/disintegration/imaging.
type Imaging struct {
	filter imaging.ResampleFilter
	now    func() time.Time
}

// New returns the production transcoder.
func New() *Imaging {
	return &Imaging{filter: imaging.Lanczos, now: time.Now}
}

// Transcode decodes job.Source, resizes it to fit job.Spec.Width and writes
// the encoded rendition to job.Destination.
func (t *Imaging) Transcode(ctx context.Context, job rendition.Job) (Result, error) {
	result := Result{Job: job}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	started := t.now()

	src, err := imaging.Open(job.Source.Path, imaging.AutoOrientation(true))
	if err != nil {
		return result, discard(job, fmt.Errorf("decode %s: %w", job.Source.Name, err))
	}

	resized := t.resize(src, job.Spec.Width)
	bounds := resized.Bounds()
	result.Width, result.Height = bounds.Dx(), bounds.Dy()

	size, err := t.write(resized, job)
	if err != nil {
		return result, discard(job, err)
	}
	result.Bytes = size
	result.Elapsed = t.now().Sub(started)
	return result, nil
}

func (t *Imaging) resize(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	width, height := FitWidth(b.Dx(), b.Dy(), maxWidth)
	if width == b.Dx() && height == b.Dy() {
		return src
	}
	return imaging.Resize(src, width, height, t.filter)
}

func (t *Imaging) write(img image.Image, job rendition.Job) (int64, error) {
	format, err := encodeFormat(job.Spec.Format)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", job.Source.Name, err)
	}

	out, err := os.Create(job.Destination)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", job.Destination, err)
	}
	if err := imaging.Encode(out, img, format, imaging.JPEGQuality(job.Spec.Quality)); err != nil {
		_ = out.Close()
		return 0, fmt.Errorf("encode %s: %w", job.Source.Name, err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("write %s: %w", job.Destination, err)
	}

	info, err := os.Stat(job.Destination)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", job.Destination, err)
	}
	return info.Size(), nil
}

// discard removes whatever sits at the destination, including a rendition
// left by an earlier run, so a failed job never leaves a file behind.
func discard(job rendition.Job, cause error) error {
	if err := fileutil.RemoveIfExists(job.Destination); err != nil {
		return errors.Join(cause, fmt.Errorf("remove %s: %w", job.Destination, err))
	}
	return cause
}

func encodeFormat(format rendition.Format) (imaging.Format, error) {
	switch format {
	case rendition.FormatJPEG:
		return imaging.JPEG, nil
	default:
		return 0, fmt.Errorf("unsupported output format %q", format)
	}
}
