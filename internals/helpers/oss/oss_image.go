package helper

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"medaid_backend/internals/constants"
	"medaid_backend/internals/helpers/apperr"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// MaxUploadSize caps every single uploaded file.
const MaxUploadSize = int64(5 * 1024 * 1024)

/* =======================================================================
   WebP options (ENV-driven)
======================================================================= */

type WebPOptions struct {
	MaxW    int
	MaxH    int
	Quality float32
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float32) float32 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			return float32(f)
		}
	}
	return def
}

func DefaultWebPOptionsFromEnv() WebPOptions {
	return WebPOptions{
		MaxW:    envInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:    envInt("IMAGE_WEBP_MAX_H", 1600),
		Quality: envFloat("IMAGE_WEBP_QUALITY", 80),
	}
}

/* =======================================================================
   Prepared upload
======================================================================= */

type PreparedFile struct {
	Data        []byte
	ContentType string
	Ext         string
}

// PrepareFile reads one upload, enforces the size cap and normalizes it for
// storage: images become WebP, PDFs pass through untouched.
func PrepareFile(filename string, r io.Reader, opt WebPOptions) (*PreparedFile, error) {
	all, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, apperr.Internal("failed to read upload", err)
	}
	if len(all) == 0 {
		return nil, apperr.Validation(fmt.Sprintf("%s is empty", filename))
	}
	if int64(len(all)) > MaxUploadSize {
		return nil, apperr.Validation(fmt.Sprintf("%s exceeds the %d MB limit", filename, MaxUploadSize/(1024*1024)))
	}

	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	sniffed := http.DetectContentType(head)

	switch constants.DetectFileKindFromExt(filename) {
	case constants.FileKindImage:
		data, err := imageToWebP(all, opt)
		if err != nil {
			return nil, apperr.Validation(fmt.Sprintf("%s is not a readable image (use jpg/png/webp)", filename))
		}
		return &PreparedFile{Data: data, ContentType: "image/webp", Ext: ".webp"}, nil
	case constants.FileKindPDF:
		if !strings.HasPrefix(sniffed, "application/pdf") {
			return nil, apperr.Validation(fmt.Sprintf("%s is not a valid PDF", filename))
		}
		return &PreparedFile{Data: all, ContentType: "application/pdf", Ext: ".pdf"}, nil
	default:
		return nil, apperr.Validation(fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)))
	}
}

func imageToWebP(all []byte, opt WebPOptions) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	img = downscaleIfNeeded(img, opt.MaxW, opt.MaxH)

	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// downscaleIfNeeded keeps the aspect ratio; images already inside the box are untouched.
func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	if (maxW <= 0 || b.Dx() <= maxW) && (maxH <= 0 || b.Dy() <= maxH) {
		return src
	}
	if maxW <= 0 {
		maxW = b.Dx()
	}
	if maxH <= 0 {
		maxH = b.Dy()
	}
	return imaging.Fit(src, maxW, maxH, imaging.CatmullRom)
}
