package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fileshare/internal/auth"
	apperrors "fileshare/internal/errors"
	"fileshare/internal/model"
)

func uintPtr(v uint) *uint { return &v }

func userClaims(id uint) *auth.Claims {
	return &auth.Claims{UserID: id, Username: "user", Role: model.RoleUser}
}

func adminClaims(id uint) *auth.Claims {
	return &auth.Claims{UserID: id, Username: "admin", Role: model.RoleAdmin}
}

func TestFileService_UploadRejectsOversize(t *testing.T) {
	mockRepo := new(MockFileRepository)
	mockStore := new(MockStore)
	service := NewFileService(mockRepo, mockStore, missCache{})

	_, err := service.Upload(context.Background(), Upload{
		OriginalName: "big.bin",
		Size:         MaxUploadSize + 1,
		Content:      strings.NewReader("x"),
	}, 1)

	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	// nothing was persisted: neither the store nor the repository was touched
	mockStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFileService_UploadRejectsEmpty(t *testing.T) {
	mockRepo := new(MockFileRepository)
	mockStore := new(MockStore)
	service := NewFileService(mockRepo, mockStore, missCache{})

	_, err := service.Upload(context.Background(), Upload{
		OriginalName: "empty.txt",
		Size:         0,
		Content:      strings.NewReader(""),
	}, 1)

	assert.ErrorIs(t, err, apperrors.ErrEmptyFile)
	mockStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFileService_Upload(t *testing.T) {
	mockRepo := new(MockFileRepository)
	mockStore := new(MockStore)

	mockStore.On("Save", mock.Anything, mock.AnythingOfType("string")).Return("uploads/stored_report.pdf", nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.File")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.File).ID = 3
	}).Return(nil)
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.File{
		ID:           3,
		OriginalName: "report.pdf",
		MimeType:     "application/pdf",
		Size:         1024,
		Path:         "uploads/stored_report.pdf",
		UploadedBy:   uintPtr(9),
		Uploader:     &model.User{ID: 9, Username: "alice"},
	}, nil)

	service := NewFileService(mockRepo, mockStore, missCache{})
	file, err := service.Upload(context.Background(), Upload{
		OriginalName: "report.pdf",
		MimeType:     "application/pdf",
		Size:         1024,
		Content:      strings.NewReader("pdf bytes"),
	}, 9)

	assert.NoError(t, err)
	assert.Equal(t, uint(3), file.ID)
	assert.Equal(t, "alice", file.Uploader.Username)
	mockRepo.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestFileService_UploadCleansUpOnInsertFailure(t *testing.T) {
	mockRepo := new(MockFileRepository)
	mockStore := new(MockStore)

	mockStore.On("Save", mock.Anything, mock.AnythingOfType("string")).Return("uploads/stored.bin", nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.File")).Return(errors.New("insert failed"))
	mockStore.On("Remove", "uploads/stored.bin").Return(nil)

	service := NewFileService(mockRepo, mockStore, missCache{})
	_, err := service.Upload(context.Background(), Upload{
		OriginalName: "a.bin",
		Size:         10,
		Content:      strings.NewReader("0123456789"),
	}, 1)

	assert.Error(t, err)
	mockStore.AssertExpectations(t)
}

func TestFileService_GetNotFound(t *testing.T) {
	mockRepo := new(MockFileRepository)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewFileService(mockRepo, new(MockStore), missCache{})
	_, err := service.Get(context.Background(), 99)

	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}

func TestFileService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		requester     *auth.Claims
		uploadedBy    *uint
		expectedError error
	}{
		{
			name:       "owner may delete",
			requester:  userClaims(5),
			uploadedBy: uintPtr(5),
		},
		{
			name:       "admin may delete anything",
			requester:  adminClaims(1),
			uploadedBy: uintPtr(5),
		},
		{
			name:       "admin may delete orphaned file",
			requester:  adminClaims(1),
			uploadedBy: nil,
		},
		{
			name:          "non-owner is rejected",
			requester:     userClaims(6),
			uploadedBy:    uintPtr(5),
			expectedError: apperrors.ErrNotOwner,
		},
		{
			name:          "regular user cannot delete orphaned file",
			requester:     userClaims(6),
			uploadedBy:    nil,
			expectedError: apperrors.ErrNotOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockFileRepository)
			mockStore := new(MockStore)

			mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.File{
				ID:         10,
				Path:       "uploads/stored.bin",
				UploadedBy: tt.uploadedBy,
			}, nil)
			if tt.expectedError == nil {
				mockStore.On("Remove", "uploads/stored.bin").Return(nil)
				mockRepo.On("Delete", mock.Anything, uint(10)).Return(nil)
			}

			service := NewFileService(mockRepo, mockStore, missCache{})
			err := service.Delete(context.Background(), 10, tt.requester)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				// the record must survive a forbidden delete
				mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
			mockStore.AssertExpectations(t)
		})
	}
}

// A failed unlink is logged and swallowed; the row deletion still happens and
// the operation still reports success.
func TestFileService_DeleteSurvivesUnlinkFailure(t *testing.T) {
	mockRepo := new(MockFileRepository)
	mockStore := new(MockStore)

	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.File{
		ID:         10,
		Path:       "uploads/gone.bin",
		UploadedBy: uintPtr(5),
	}, nil)
	mockStore.On("Remove", "uploads/gone.bin").Return(errors.New("unlink failed"))
	mockRepo.On("Delete", mock.Anything, uint(10)).Return(nil)

	service := NewFileService(mockRepo, mockStore, missCache{})
	err := service.Delete(context.Background(), 10, userClaims(5))

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestFileService_GetServedFromCache(t *testing.T) {
	mockRepo := new(MockFileRepository)
	mockCache := new(MockCache)

	mockCache.On("Get", mock.Anything, "file:4").Return([]byte(`{"id":4,"originalname":"cached.txt","uploader_name":"alice"}`), nil)

	service := NewFileService(mockRepo, new(MockStore), mockCache)
	file, err := service.Get(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, "cached.txt", file.OriginalName)
	require.NotNil(t, file.Uploader)
	assert.Equal(t, "alice", file.Uploader.Username)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// The Uploader relation is excluded from the model's JSON, so a naive
// marshal of the record would drop the display name on every cache hit.
func TestFileService_GetCacheRoundTripKeepsUploader(t *testing.T) {
	mockRepo := new(MockFileRepository)
	mockRepo.On("FindByID", mock.Anything, uint(4)).Return(&model.File{
		ID:           4,
		OriginalName: "report.pdf",
		UploadedBy:   uintPtr(9),
		Uploader:     &model.User{ID: 9, Username: "alice"},
	}, nil).Once()

	service := NewFileService(mockRepo, new(MockStore), newMapCache())

	first, err := service.Get(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, first.Uploader)

	second, err := service.Get(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, second.Uploader)
	assert.Equal(t, "alice", second.Uploader.Username)
	mockRepo.AssertNumberOfCalls(t, "FindByID", 1)
}
