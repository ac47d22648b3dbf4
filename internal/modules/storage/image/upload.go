package image

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxUploadSize caps uploaded files at 5 MiB.
const MaxUploadSize = 5 << 20

var (
	ErrFileTooLarge    = errors.New("file exceeds the 5 MiB upload limit")
	ErrNotAnImage      = errors.New("only image files are accepted")
	ErrMissingFile     = errors.New("missing image file")
	ErrUnsafeExtension = errors.New("file extension is not allowed")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".avif": true,
}

// savedFile describes a file persisted to the uploads directory.
type savedFile struct {
	Name     string
	Size     int64
	MimeType string
}

// saveUpload validates and writes a multipart file into dir. The stored
// name is a millisecond timestamp plus a random suffix, keeping the
// original extension.
func saveUpload(header *multipart.FileHeader, dir string) (*savedFile, error) {
	if header == nil {
		return nil, ErrMissingFile
	}
	if header.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return nil, ErrUnsafeExtension
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// Sniff the actual content rather than trusting the client header.
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	head = head[:n]

	mimeType := http.DetectContentType(head)
	if ext == ".svg" && strings.HasPrefix(mimeType, "text/") {
		mimeType = "image/svg+xml"
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrNotAnImage
	}

	name := buildFileName(ext)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	written, err := dst.Write(head)
	if err != nil {
		return nil, err
	}
	rest, err := io.Copy(dst, io.LimitReader(src, MaxUploadSize))
	if err != nil {
		return nil, err
	}

	return &savedFile{
		Name:     name,
		Size:     int64(written) + rest,
		MimeType: mimeType,
	}, nil
}

func buildFileName(ext string) string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		copy(suffix, []byte{0xde, 0xad, 0xbe, 0xef})
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(suffix), ext)
}
