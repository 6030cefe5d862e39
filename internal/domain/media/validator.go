package media

import (
	"path/filepath"
	"strings"

	"realtymedia/internal/config"
)

// extensionMime maps allowed file extensions to the MIME type they must be
// declared with. Upload validation rejects any extension/type disagreement.
var extensionMime = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// ValidatedUpload is the outcome of a successful policy check: a storage-safe
// file name plus the verified type and size. Nothing has been persisted yet.
type ValidatedUpload struct {
	FileName         string
	OriginalFileName string
	MimeType         string
	SizeBytes        int64
	Class            AssetClass
}

// Validator checks uploads against the injected size/type policy. It is a
// pure checker: no storage side effects.
type Validator struct {
	policy config.MediaPolicy
}

func NewValidator(policy config.MediaPolicy) *Validator {
	return &Validator{policy: policy}
}

// Classify decides the asset class from the declared MIME type.
func (v *Validator) Classify(mimeType string) AssetClass {
	if strings.HasPrefix(strings.ToLower(mimeType), "image/") {
		return ClassImage
	}
	return ClassDocument
}

// Validate checks raw upload bytes and declared metadata against the policy.
func (v *Validator) Validate(raw []byte, declaredType, declaredName string, class AssetClass) (*ValidatedUpload, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(raw)) > v.maxSizeFor(class) {
		return nil, ErrFileTooLarge
	}

	mimeType := strings.ToLower(strings.TrimSpace(declaredType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if !v.typeAllowed(mimeType, class) {
		return nil, ErrUnsupportedType
	}

	safeName, err := sanitizeFileName(declaredName)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(safeName))
	wantType, ok := extensionMime[ext]
	if !ok || wantType != mimeType {
		return nil, ErrExtensionMismatch
	}

	return &ValidatedUpload{
		FileName:         safeName,
		OriginalFileName: declaredName,
		MimeType:         mimeType,
		SizeBytes:        int64(len(raw)),
		Class:            class,
	}, nil
}

func (v *Validator) maxSizeFor(class AssetClass) int64 {
	if class == ClassImage {
		return v.policy.MaxImageBytes
	}
	return v.policy.MaxDocumentBytes
}

func (v *Validator) typeAllowed(mimeType string, class AssetClass) bool {
	allowed := v.policy.AllowedDocumentTypes
	if class == ClassImage {
		allowed = v.policy.AllowedImageTypes
	}
	for _, t := range allowed {
		if t == mimeType {
			return true
		}
	}
	return false
}

// sanitizeFileName strips path components and control characters from an
// uploader-supplied name. Names that still smell like path traversal after
// cleaning are rejected rather than repaired.
func sanitizeFileName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrUnsafeFileName
	}

	// Uploaders on Windows send backslash paths; take the last segment of either.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)

	if name == "" || name == "." || strings.Contains(name, "..") {
		return "", ErrUnsafeFileName
	}
	return name, nil
}
