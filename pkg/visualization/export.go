// Package visualization exports rasters, in particular the debug overlay
// recorded by a tracked extraction, as ordinary image files.
package visualization

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"vinyl2wav/pkg/raster"
)

// SaveImage writes a lightness raster to filename as a grayscale image.
// The encoding is chosen from the file extension: .jpg/.jpeg produce JPEG,
// anything else produces PNG.
func SaveImage(img *raster.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %v", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(file, img.Gray(), &jpeg.Options{Quality: 90})
	default:
		return png.Encode(file, img.Gray())
	}
}
