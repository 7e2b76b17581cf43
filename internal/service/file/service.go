package file

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

// StoredFile describes an upload after it reached storage.
type StoredFile struct {
	Key      string
	FileName string
	FileType string
	FileSize int64
	FileURL  string
}

type FileService interface {
	// Leave attachment uploads
	UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string, contentType string) (StoredFile, error)

	// Generic operations
	DeleteFile(ctx context.Context, key string) error
}

// LeaveAttachmentKey is the storage key of a leave document stored under
// fileName for employeeID.
func LeaveAttachmentKey(employeeID, fileName string) string {
	return path.Join("leave", employeeID, fileName)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// UploadLeaveAttachment stores a leave document under a generated name and
// reports what was written.
func (s *fileServiceImpl) UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string, contentType string) (StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			contentType = byExt
		} else {
			contentType = "application/octet-stream"
		}
	}

	newFilename := uuid.New().String() + ext
	key := LeaveAttachmentKey(employeeID, newFilename)

	cr := &countingReader{r: file}
	uploadedPath, err := s.storage.Upload(ctx, cr, key, contentType)
	if err != nil {
		return StoredFile{}, fmt.Errorf("failed to upload leave attachment: %w", err)
	}

	return StoredFile{
		Key:      uploadedPath,
		FileName: newFilename,
		FileType: contentType,
		FileSize: cr.n,
		FileURL:  s.storage.URL(uploadedPath),
	}, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}
