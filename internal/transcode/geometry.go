package transcode

// FitWidth returns the output dimensions for a width x height image bounded
// by maxWidth. Images already within the bound keep their size; otherwise the
// height is scaled by the same factor and truncated, never below one pixel.
func FitWidth(width, height, maxWidth int) (int, int) {
	if width <= 0 || height <= 0 || maxWidth <= 0 || width <= maxWidth {
		return width, height
	}
	outHeight := int(int64(height) * int64(maxWidth) / int64(width))
	if outHeight < 1 {
		outHeight = 1
	}
	return maxWidth, outHeight
}
