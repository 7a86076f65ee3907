package localstore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"vitrine/models"
)

const MaxImageSize = 10 * 1024 * 1024

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrImageType        = errors.New("please select a valid image file (JPEG, PNG, WebP, or GIF)")
	ErrImageTooLarge    = errors.New("image size must be less than 10MB")
	ErrInvalidImageData = errors.New("image data is not valid base64")
)

var imageTypes = map[string]struct{}{
	"image/jpeg": {}, "image/jpg": {}, "image/png": {}, "image/webp": {}, "image/gif": {},
}

// ValidateImage checks the content type and decoded size of an upload.
func ValidateImage(contentType string, size int64) error {
	if _, ok := imageTypes[strings.ToLower(contentType)]; !ok {
		return ErrImageType
	}
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// NewImageID returns img_<unix millis>_<9 base36 chars>.
func NewImageID(now time.Time) string {
	var b strings.Builder
	for b.Len() < 9 {
		b.WriteString(strconv.FormatUint(rand.Uint64(), 36))
	}
	return fmt.Sprintf("img_%d_%s", now.UnixMilli(), b.String()[:9])
}

// FormatFileSize renders bytes with two decimals at most: "0 B", "1.5 KB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	sizes := []string{"B", "KB", "MB", "GB"}
	v, i := float64(bytes), 0
	for v >= 1024 && i < len(sizes)-1 {
		v /= 1024
		i++
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + " " + sizes[i]
}

type ImageUpload struct {
	Name        string   `json:"name" binding:"required"`
	ContentType string   `json:"type"`
	Data        string   `json:"data" binding:"required"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	AltText     string   `json:"alt_text"`
}

type ImageUpdate struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`
	AltText  *string  `json:"alt_text"`
}

type Usage struct {
	TotalImages   int64  `json:"totalImages"`
	TotalSize     int64  `json:"totalSize"`
	FormattedSize string `json:"formattedSize"`
}

// ImageStore keeps uploaded images as base64 data URLs in sqlite. Every
// call is scoped to one owner; another owner's images read as missing.
type ImageStore struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

func NewImageStore(db *gorm.DB, log *zap.Logger) *ImageStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageStore{db: db, log: log, now: time.Now}
}

// decodeUpload splits a data URL (or bare base64) into its content type and
// decoded byte length.
func decodeUpload(data string) (contentType string, size int64, err error) {
	payload := data
	if strings.HasPrefix(data, "data:") {
		header, rest, ok := strings.Cut(data, ",")
		if !ok {
			return "", 0, ErrInvalidImageData
		}
		contentType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		payload = rest
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", 0, ErrInvalidImageData
	}
	return contentType, int64(len(raw)), nil
}

func (s *ImageStore) owned(ctx context.Context, owner string) *gorm.DB {
	return s.db.WithContext(ctx).Where("owner = ?", owner)
}

func (s *ImageStore) Save(ctx context.Context, owner string, up ImageUpload) (models.Image, error) {
	urlType, size, err := decodeUpload(up.Data)
	if err != nil {
		return models.Image{}, err
	}
	contentType := up.ContentType
	if contentType == "" {
		contentType = urlType
	}
	if err := ValidateImage(contentType, size); err != nil {
		return models.Image{}, err
	}

	data := up.Data
	if !strings.HasPrefix(data, "data:") {
		data = "data:" + contentType + ";base64," + data
	}

	now := s.now()
	img := models.Image{
		ID:          NewImageID(now),
		Owner:       owner,
		Name:        up.Name,
		ContentType: contentType,
		Size:        size,
		Data:        data,
		Category:    up.Category,
		Tags:        strings.Join(models.NormalizeTags(up.Tags), ","),
		AltText:     up.AltText,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(&img).Error; err != nil {
		s.log.Error("failed to save image", zap.String("name", up.Name), zap.Error(err))
		return models.Image{}, fmt.Errorf("save image: %w", err)
	}
	return img, nil
}

func (s *ImageStore) Get(ctx context.Context, owner, id string) (models.Image, error) {
	var img models.Image
	err := s.owned(ctx, owner).First(&img, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Image{}, ErrImageNotFound
	}
	return img, err
}

// List returns the owner's images, newest first. A read failure yields no
// images.
func (s *ImageStore) List(ctx context.Context, owner string) []models.Image {
	var images []models.Image
	if err := s.owned(ctx, owner).Order("created_at desc").Find(&images).Error; err != nil {
		s.log.Warn("failed to list images", zap.Error(err))
		return []models.Image{}
	}
	return images
}

// Search matches the query against name, tags and alt text.
func (s *ImageStore) Search(ctx context.Context, owner, query string) []models.Image {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return s.List(ctx, owner)
	}
	like := "%" + query + "%"

	var images []models.Image
	err := s.owned(ctx, owner).
		Where("LOWER(name) LIKE ? OR LOWER(tags) LIKE ? OR LOWER(alt_text) LIKE ?", like, like, like).
		Order("created_at desc").
		Find(&images).Error
	if err != nil {
		s.log.Warn("failed to search images", zap.String("query", query), zap.Error(err))
		return []models.Image{}
	}
	return images
}

func (s *ImageStore) Update(ctx context.Context, owner, id string, up ImageUpdate) (models.Image, error) {
	img, err := s.Get(ctx, owner, id)
	if err != nil {
		return models.Image{}, err
	}
	if up.Name != nil {
		img.Name = *up.Name
	}
	if up.Category != nil {
		img.Category = *up.Category
	}
	if up.Tags != nil {
		img.Tags = strings.Join(models.NormalizeTags(up.Tags), ",")
	}
	if up.AltText != nil {
		img.AltText = *up.AltText
	}
	img.UpdatedAt = s.now()

	if err := s.db.WithContext(ctx).Save(&img).Error; err != nil {
		return models.Image{}, fmt.Errorf("update image %s: %w", id, err)
	}
	return img, nil
}

func (s *ImageStore) Delete(ctx context.Context, owner, id string) error {
	res := s.owned(ctx, owner).Delete(&models.Image{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete image %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrImageNotFound
	}
	return nil
}

func (s *ImageStore) Usage(ctx context.Context, owner string) Usage {
	var u Usage
	err := s.owned(ctx, owner).Model(&models.Image{}).
		Select("COUNT(*) AS total_images, COALESCE(SUM(size), 0) AS total_size").
		Scan(&u).Error
	if err != nil {
		s.log.Warn("failed to compute image usage", zap.Error(err))
		return Usage{FormattedSize: "0 B"}
	}
	u.FormattedSize = FormatFileSize(u.TotalSize)
	return u
}

func (s *ImageStore) Clear(ctx context.Context, owner string) error {
	return s.owned(ctx, owner).Delete(&models.Image{}).Error
}
