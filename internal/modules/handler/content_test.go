package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tonelab-collective/booking/internal/modules/model"
	"github.com/tonelab-collective/booking/internal/modules/service"
)

func TestContentHandler_ListPublicContent(t *testing.T) {
	svc := &MockContentService{}
	svc.On("ListPublic", mock.Anything).Return([]*model.SiteContent{
		{Key: "event_title", Title: "Event Title", Content: "Tonelab Pilates"},
	}, nil)

	router := setupRouter()
	router.GET("/api/content/public", NewContentHandler(svc, nil).ListPublicContent)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/content/public", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"key":"event_title"`)
	svc.AssertExpectations(t)
}

func TestContentHandler_UpdateContent(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		path           string
		body           string
		setup          func(*MockContentService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "updated",
			path: id.String(),
			body: `{"content":"Saturday"}`,
			setup: func(svc *MockContentService) {
				svc.On("Update", mock.Anything, id, "Saturday").Return(&model.SiteContent{ID: id, Content: "Saturday"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing content field",
			path:           id.String(),
			body:           `{}`,
			setup:          func(*MockContentService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "blank content",
			path: id.String(),
			body: `{"content":"   "}`,
			setup: func(svc *MockContentService) {
				svc.On("Update", mock.Anything, id, "   ").Return(nil, service.ErrEmptyContent)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown id",
			path: id.String(),
			body: `{"content":"x"}`,
			setup: func(svc *MockContentService) {
				svc.On("Update", mock.Anything, id, "x").Return(nil, service.ErrContentNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "Content not found",
		},
		{
			name: "store failure",
			path: id.String(),
			body: `{"content":"x"}`,
			setup: func(svc *MockContentService) {
				svc.On("Update", mock.Anything, id, "x").Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to update content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockContentService{}
			tt.setup(svc)

			router := setupRouter()
			router.PUT("/api/content/:id", NewContentHandler(svc, nil).UpdateContent)

			req := httptest.NewRequest(http.MethodPut, "/api/content/"+tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestContentHandler_ImageUploadURL(t *testing.T) {
	objects := &MockReceiptService{}
	objects.On("ImageUploadTarget", mock.Anything).Return(&service.UploadTarget{
		UploadURL:  "https://s3.local/bucket/public/1?X-Amz-Signature=x",
		ObjectPath: "/objects/public/1",
	}, nil)

	router := setupRouter()
	router.POST("/api/content/upload-image", NewContentHandler(&MockContentService{}, objects).ImageUploadURL)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/content/upload-image", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uploadURL"`)
	assert.Contains(t, w.Body.String(), `"objectPath":"/objects/public/1"`)
	objects.AssertExpectations(t)
}

func TestContentHandler_UploadImage(t *testing.T) {
	tests := []struct {
		name           string
		field          string
		setup          func(*MockReceiptService)
		expectedStatus int
	}{
		{
			name:  "stored",
			field: "file",
			setup: func(svc *MockReceiptService) {
				svc.On("UploadImage", mock.Anything, mock.Anything).Return(&service.StoredImage{
					ObjectPath: "/objects/public/1", MIME: "image/png", SizeB: 4,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:  "not an image",
			field: "file",
			setup: func(svc *MockReceiptService) {
				svc.On("UploadImage", mock.Anything, mock.Anything).Return(nil, service.ErrUnsupportedImage)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "too large",
			field: "file",
			setup: func(svc *MockReceiptService) {
				svc.On("UploadImage", mock.Anything, mock.Anything).Return(nil, service.ErrFileTooLarge)
			},
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:           "no file field",
			setup:          func(*MockReceiptService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objects := &MockReceiptService{}
			tt.setup(objects)

			router := setupRouter()
			router.POST("/api/content/images", NewContentHandler(&MockContentService{}, objects).UploadImage)

			body, ct := multipartBody(t, tt.field, "hero.png", []byte("\x89PNG"))
			req := httptest.NewRequest(http.MethodPost, "/api/content/images", body)
			req.Header.Set("Content-Type", ct)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			objects.AssertExpectations(t)
		})
	}
}
