package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtymedia/internal/config"
)

func testPolicy() config.MediaPolicy {
	return config.MediaPolicy{
		MaxImageBytes:        32 * 1024,
		MaxDocumentBytes:     16 * 1024,
		AllowedImageTypes:    []string{"image/jpeg", "image/png"},
		AllowedDocumentTypes: []string{"application/pdf", "text/plain"},
		ThumbWidth:           100,
		ThumbHeight:          100,
		ThumbQuality:         85,
		ThumbKeepAspectRatio: true,
	}
}

func TestValidator_AcceptsValidImage(t *testing.T) {
	v := NewValidator(testPolicy())

	vu, err := v.Validate([]byte("pretend jpeg"), "image/jpeg", "photo.jpg", ClassImage)
	require.NoError(t, err)

	assert.Equal(t, "photo.jpg", vu.FileName)
	assert.Equal(t, "image/jpeg", vu.MimeType)
	assert.Equal(t, int64(len("pretend jpeg")), vu.SizeBytes)
	assert.Equal(t, ClassImage, vu.Class)
}

func TestValidator_StripsMimeParams(t *testing.T) {
	v := NewValidator(testPolicy())

	vu, err := v.Validate([]byte("x"), "text/plain; charset=utf-8", "notes.txt", ClassDocument)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", vu.MimeType)
}

func TestValidator_Rejections(t *testing.T) {
	v := NewValidator(testPolicy())

	tests := []struct {
		name     string
		raw      []byte
		mimeType string
		fileName string
		class    AssetClass
		wantErr  error
	}{
		{"empty file", nil, "image/jpeg", "a.jpg", ClassImage, ErrEmptyFile},
		{"image too large", make([]byte, 32*1024+1), "image/jpeg", "a.jpg", ClassImage, ErrFileTooLarge},
		{"document too large", make([]byte, 16*1024+1), "application/pdf", "a.pdf", ClassDocument, ErrFileTooLarge},
		{"type not in allow-list", []byte("x"), "image/tiff", "a.tiff", ClassImage, ErrUnsupportedType},
		{"document type as image", []byte("x"), "application/pdf", "a.pdf", ClassImage, ErrUnsupportedType},
		{"extension mismatch", []byte("x"), "image/jpeg", "a.png", ClassImage, ErrExtensionMismatch},
		{"unknown extension", []byte("x"), "image/jpeg", "a.xyz", ClassImage, ErrExtensionMismatch},
		{"no extension", []byte("x"), "image/jpeg", "photo", ClassImage, ErrExtensionMismatch},
		{"traversal name", []byte("x"), "image/jpeg", "..jpg..", ClassImage, ErrUnsafeFileName},
		{"blank name", []byte("x"), "image/jpeg", "   ", ClassImage, ErrUnsafeFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(tt.raw, tt.mimeType, tt.fileName, tt.class)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidator_SanitizesPathComponents(t *testing.T) {
	v := NewValidator(testPolicy())

	vu, err := v.Validate([]byte("x"), "image/png", "/etc/passwd/../evil.png", ClassImage)
	require.NoError(t, err)
	assert.Equal(t, "evil.png", vu.FileName)
	assert.Equal(t, "/etc/passwd/../evil.png", vu.OriginalFileName)

	vu, err = v.Validate([]byte("x"), "image/png", `C:\Users\me\shot.png`, ClassImage)
	require.NoError(t, err)
	assert.Equal(t, "shot.png", vu.FileName)
}

func TestValidator_StripsControlCharacters(t *testing.T) {
	v := NewValidator(testPolicy())

	vu, err := v.Validate([]byte("x"), "image/png", "ph\x00oto\x1f.png", ClassImage)
	require.NoError(t, err)
	assert.Equal(t, "photo.png", vu.FileName)
	assert.False(t, strings.ContainsAny(vu.FileName, "\x00\x1f"))
}

func TestValidator_Classify(t *testing.T) {
	v := NewValidator(testPolicy())

	assert.Equal(t, ClassImage, v.Classify("image/png"))
	assert.Equal(t, ClassImage, v.Classify("IMAGE/JPEG"))
	assert.Equal(t, ClassDocument, v.Classify("application/pdf"))
	assert.Equal(t, ClassDocument, v.Classify(""))
}
