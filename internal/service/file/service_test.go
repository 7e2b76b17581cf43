package file

import (
	"context"
	"strings"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadLeaveAttachment(t *testing.T) {
	ctx := context.Background()
	local, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	svc := NewFileService(local)

	stored, err := svc.UploadLeaveAttachment(ctx, "emp-1", strings.NewReader("%PDF-1.4 doctor note"), "Note.PDF", "")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(stored.FileName, ".pdf"))
	assert.Equal(t, "application/pdf", stored.FileType)
	assert.Equal(t, int64(len("%PDF-1.4 doctor note")), stored.FileSize)
	assert.Equal(t, "leave/emp-1/"+stored.FileName, stored.Key)
	assert.Equal(t, stored.Key, LeaveAttachmentKey("emp-1", stored.FileName))
	assert.Equal(t, "/uploads/leave/emp-1/"+stored.FileName, stored.FileURL)

	ok, err := local.Exists(ctx, stored.Key)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.DeleteFile(ctx, stored.Key))
	ok, err = local.Exists(ctx, stored.Key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUploadLeaveAttachment_KeepsExplicitType(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	stored, err := NewFileService(local).UploadLeaveAttachment(context.Background(), "emp-1", strings.NewReader("img"), "scan.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", stored.FileType)
}
