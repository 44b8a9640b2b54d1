// Package transcode resizes and re-encodes a single source image.
//
// The Imaging transcoder decodes with EXIF orientation applied, shrinks the
// image to the rendition width with a Lanczos filter (never enlarging), and
// encodes it straight to the destination. A failed job leaves no file at the
// destination.
package transcode
