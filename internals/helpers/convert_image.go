// file: internals/helpers/convert_image.go
package helper

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

/* ===============================
   Konversi gambar -> WebP
   (thumbnail course sebelum upload OSS)
=================================*/

const thumbnailMaxWidth = 1024

// ConvertToWebP membaca file multipart (jpeg/png), resize bila terlalu
// lebar, encode ke webp. Mengembalikan bytes siap upload.
func ConvertToWebP(fh *multipart.FileHeader) ([]byte, error) {
	name := strings.ToLower(fh.Filename)
	if !strings.HasSuffix(name, ".jpg") && !strings.HasSuffix(name, ".jpeg") && !strings.HasSuffix(name, ".png") {
		return nil, fmt.Errorf("format file %q tidak didukung (jpg/jpeg/png)", fh.Filename)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode gambar gagal: %w", err)
	}

	if img.Bounds().Dx() > thumbnailMaxWidth {
		img = imaging.Resize(img, thumbnailMaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode webp gagal: %w", err)
	}
	return buf.Bytes(), nil
}
