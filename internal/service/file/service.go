package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/leanchem/erp-backend-go/internal/pkg/storage"
)

// maxAttachmentSize caps task attachments at 10MB.
const maxAttachmentSize = 10 << 20

// maxPhotoSize caps employee photos at 5MB before compression.
const maxPhotoSize = 5 << 20

type FileService interface {
	// UploadEmployeePhoto stores a profile photo and returns its public URL
	UploadEmployeePhoto(ctx context.Context, employeeID string, file io.Reader, filename string, size int64) (string, error)

	// UploadTaskAttachment stores a task attachment and returns its public URL
	UploadTaskAttachment(ctx context.Context, taskID string, file io.Reader, filename string, size int64) (string, error)

	// DeleteEmployeePhoto removes the stored photo the given URL points to
	DeleteEmployeePhoto(ctx context.Context, employeeID string, photoURL string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadEmployeePhoto uploads and compresses an employee profile photo
func (s *fileServiceImpl) UploadEmployeePhoto(ctx context.Context, employeeID string, file io.Reader, filename string, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowedExts := []string{".jpg", ".jpeg", ".png"}

	isValid := false
	for _, allowed := range allowedExts {
		if ext == allowed {
			isValid = true
			break
		}
	}
	if !isValid {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	if size > maxPhotoSize {
		return "", fmt.Errorf("photo exceeds the %dMB limit", maxPhotoSize>>20)
	}

	buffer, err := io.ReadAll(io.LimitReader(file, maxPhotoSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}
	if len(buffer) > maxPhotoSize {
		return "", fmt.Errorf("photo exceeds the %dMB limit", maxPhotoSize>>20)
	}

	// Compress to keep profile photos small (50KB - 300KB)
	compressed, err := compressImage(buffer, 300*1024, 50*1024)
	if err != nil {
		return "", fmt.Errorf("failed to compress photo: %w", err)
	}

	uniqueID := uuid.New().String()
	newFilename := fmt.Sprintf("%s-%s.jpg", employeeID, uniqueID)
	path := filepath.Join("photos", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(compressed), path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return s.storage.GetURL(ctx, uploadedPath, 0)
}

// UploadTaskAttachment uploads a task attachment
func (s *fileServiceImpl) UploadTaskAttachment(ctx context.Context, taskID string, file io.Reader, filename string, size int64) (string, error) {
	if size > maxAttachmentSize {
		return "", fmt.Errorf("attachment exceeds the %dMB limit", maxAttachmentSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	uniqueID := uuid.New().String()
	timestamp := time.Now().Unix()
	newFilename := fmt.Sprintf("%s-%d%s", uniqueID, timestamp, ext)
	path := filepath.Join("attachments", taskID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, io.LimitReader(file, maxAttachmentSize), path, "application/octet-stream")
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}

	return s.storage.GetURL(ctx, uploadedPath, 0)
}

// DeleteEmployeePhoto removes a previously uploaded profile photo. Photos
// are stored under photos/{employeeID}/{basename}, so the basename of the
// public URL is enough to locate the file.
func (s *fileServiceImpl) DeleteEmployeePhoto(ctx context.Context, employeeID string, photoURL string) error {
	if photoURL == "" {
		return nil
	}
	return s.storage.Delete(ctx, filepath.Join("photos", employeeID, filepath.Base(photoURL)))
}

// compressImage compresses an image into the target size range.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	quality := 85
	var compressed []byte

	for quality >= 50 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}

		compressed = buf.Bytes()

		if len(compressed) <= maxSize && len(compressed) >= minSize {
			return compressed, nil
		}
		if len(compressed) > maxSize {
			quality -= 5
			continue
		}
		if len(compressed) < minSize && quality <= 60 {
			return compressed, nil
		}
		break
	}

	// Still too large after quality reduction: shrink dimensions.
	if len(compressed) > maxSize {
		targetSize := (maxSize + minSize) / 2
		ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
		newWidth := int(float64(originalWidth) * ratio)
		newHeight := int(float64(originalHeight) * ratio)

		if newWidth < 300 {
			newWidth = 300
		}
		if newHeight < 300 {
			newHeight = 300
		}

		resized := resizeImage(img, newWidth, newHeight)

		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70}); err != nil {
			return nil, fmt.Errorf("failed to encode resized image: %w", err)
		}
		compressed = buf.Bytes()
	}

	return compressed, nil
}

// resizeImage scales an image to the given dimensions
func resizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}
