package helper

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"medaid_backend/internals/helpers/apperr"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepareFile_ImageBecomesWebP(t *testing.T) {
	opt := WebPOptions{MaxW: 64, MaxH: 64, Quality: 75}

	got, err := PrepareFile("cnic_front.png", bytes.NewReader(pngBytes(t, 200, 100)), opt)
	require.NoError(t, err)
	assert.Equal(t, "image/webp", got.ContentType)
	assert.Equal(t, ".webp", got.Ext)

	cfg, err := webp.DecodeConfig(bytes.NewReader(got.Data))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
}

func TestPrepareFile_SmallImageKeepsSize(t *testing.T) {
	got, err := PrepareFile("photo.png", bytes.NewReader(pngBytes(t, 40, 30)), WebPOptions{MaxW: 1600, MaxH: 1600})
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(got.Data))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestPrepareFile_PDFPassesThrough(t *testing.T) {
	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

	got, err := PrepareFile("report.pdf", bytes.NewReader(pdf), DefaultWebPOptionsFromEnv())
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", got.ContentType)
	assert.Equal(t, pdf, got.Data)
}

func TestPrepareFile_Rejects(t *testing.T) {
	opt := DefaultWebPOptionsFromEnv()

	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{name: "empty", filename: "a.png", data: nil},
		{name: "unsupported extension", filename: "a.exe", data: []byte("MZ")},
		{name: "fake pdf", filename: "a.pdf", data: []byte("not a pdf at all")},
		{name: "broken image", filename: "a.jpg", data: []byte("definitely not jpeg")},
		{name: "too large", filename: "big.pdf", data: append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), int(MaxUploadSize))...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrepareFile(tt.filename, bytes.NewReader(tt.data), opt)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindValidation), err.Error())
		})
	}
}

func TestBuildObjectKey(t *testing.T) {
	s := &OSSService{Prefix: "medaid"}
	key := s.buildObjectKey("cases/cnic", "My CNIC Front.webp")

	assert.True(t, strings.HasPrefix(key, "medaid/cases/cnic/my-cnic-front_"), key)
	assert.True(t, strings.HasSuffix(key, ".webp"), key)
}

func TestPublicURLRoundTrip(t *testing.T) {
	s := &OSSService{Endpoint: "https://oss-ap-southeast-1.aliyuncs.com", BucketName: "medaid"}
	url := s.PublicURL("cases/x.webp")
	assert.Equal(t, "https://medaid.oss-ap-southeast-1.aliyuncs.com/cases/x.webp", url)

	key, err := s.ExtractKeyFromPublicURL(url)
	require.NoError(t, err)
	assert.Equal(t, "cases/x.webp", key)

	s.PublicBase = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/cases/x.webp", s.PublicURL("cases/x.webp"))
}

func TestDisabledUploader(t *testing.T) {
	_, err := DisabledUploader{}.Upload(context.Background(), nil, "cases")
	assert.True(t, apperr.Is(err, apperr.KindInternal))
}
