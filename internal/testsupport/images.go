package testsupport

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// WriteJPEG writes a solid JPEG of the given dimensions to path.
func WriteJPEG(t testing.TB, path string, width, height int) {
	t.Helper()
	writeImage(t, path, encodeImage(t, width, height, imaging.JPEG))
}

// WritePNG writes a solid PNG of the given dimensions to path.
func WritePNG(t testing.TB, path string, width, height int) {
	t.Helper()
	writeImage(t, path, encodeImage(t, width, height, imaging.PNG))
}

// WriteJPEGWithOrientation writes a JPEG carrying an EXIF orientation tag.
// The stored pixels are width x height; viewers honouring the tag display
// orientations 5-8 with the dimensions swapped.
func WriteJPEGWithOrientation(t testing.TB, path string, width, height int, orientation uint16) {
	t.Helper()
	data := encodeImage(t, width, height, imaging.JPEG)
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Fatalf("encoded JPEG missing SOI marker")
	}
	withExif := make([]byte, 0, len(data)+64)
	withExif = append(withExif, data[:2]...)
	withExif = append(withExif, exifSegment(orientation)...)
	withExif = append(withExif, data[2:]...)
	writeImage(t, path, withExif)
}

// WriteCorrupt writes bytes that carry an image extension but no decodable
// image.
func WriteCorrupt(t testing.TB, path string) {
	t.Helper()
	writeImage(t, path, []byte("this is not an image"))
}

func encodeImage(t testing.TB, width, height int, format imaging.Format) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 180, G: 90, B: 40, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

// exifSegment builds an APP1 segment holding a single big-endian IFD entry
// for the orientation tag.
func exifSegment(orientation uint16) []byte {
	var tiff bytes.Buffer
	tiff.WriteString("MM")
	_ = binary.Write(&tiff, binary.BigEndian, uint16(0x002A))
	_ = binary.Write(&tiff, binary.BigEndian, uint32(8))
	_ = binary.Write(&tiff, binary.BigEndian, uint16(1))
	_ = binary.Write(&tiff, binary.BigEndian, uint16(0x0112))
	_ = binary.Write(&tiff, binary.BigEndian, uint16(3))
	_ = binary.Write(&tiff, binary.BigEndian, uint32(1))
	_ = binary.Write(&tiff, binary.BigEndian, orientation)
	_ = binary.Write(&tiff, binary.BigEndian, uint16(0))
	_ = binary.Write(&tiff, binary.BigEndian, uint32(0))

	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)
	segment := []byte{0xFF, 0xE1, 0, 0}
	binary.BigEndian.PutUint16(segment[2:], uint16(len(payload)+2))
	return append(segment, payload...)
}

func writeImage(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
