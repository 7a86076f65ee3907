package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	PageHome    = "home"
	PageAbout   = "about"
	PageContact = "contact"
	PageProduct = "product"
	PageBlogs   = "blogs"
	PageBlog    = "blog"
	PageSearch  = "search"
)

const (
	visitorCookie   = "vitrine_visitor_id"
	revisitWindow   = 30 * time.Minute
	visitorMaxAge   = 60 * 60 * 24 * 365 * 2
	dayBucketLayout = "2006-01-02"
	visitorCtxKey   = "analytics.visitor"
)

// SiteEvent is one storefront page visit.
type SiteEvent struct {
	ID          uint      `gorm:"primary_key;autoIncrement"`
	WebsiteSlug string    `gorm:"not null;index"`
	Page        string    `gorm:"not null;index"`
	ResourceID  *int      `gorm:"index"`
	VisitorID   string    `gorm:"not null;index"`
	Event       string    `gorm:"not null;default:'visit'"`
	IP          string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index"`
	Language    *string
	Browser     *string
}

// AnalyticsModule records storefront visits in its own database. A nil
// module is valid and records nothing.
type AnalyticsModule struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

func NewAnalyticsModule(db *gorm.DB, log *zap.Logger) *AnalyticsModule {
	if log == nil {
		log = zap.NewNop()
	}
	if db == nil {
		log.Info("analytics db is nil, analytics disabled")
		return nil
	}
	if err := db.AutoMigrate(&SiteEvent{}); err != nil {
		log.Error("failed to migrate site_events", zap.Error(err))
		return nil
	}
	return &AnalyticsModule{db: db, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// TrackVisit records a visit unless the same visitor saw the same page in
// the last 30 minutes.
func (a *AnalyticsModule) TrackVisit(c *gin.Context, slug, page string, resourceID *int) {
	if a == nil {
		return
	}
	visitorID := a.visitorID(c)
	now := a.now()

	q := a.db.WithContext(c.Request.Context()).Model(&SiteEvent{}).
		Where("visitor_id = ? AND website_slug = ? AND page = ? AND created_at > ?", visitorID, slug, page, now.Add(-revisitWindow))
	if resourceID != nil {
		q = q.Where("resource_id = ?", *resourceID)
	} else {
		q = q.Where("resource_id IS NULL")
	}
	var recent int64
	if err := q.Count(&recent).Error; err == nil && recent > 0 {
		return
	}

	event := SiteEvent{
		WebsiteSlug: slug,
		Page:        page,
		ResourceID:  resourceID,
		VisitorID:   visitorID,
		Event:       "visit",
		IP:          clientIP(c),
		Language:    language(c.GetHeader("Accept-Language")),
		Browser:     browser(c.Request.UserAgent()),
		CreatedAt:   now,
	}
	if err := a.db.WithContext(c.Request.Context()).Create(&event).Error; err != nil {
		a.log.Warn("failed to save analytics event", zap.String("site", slug), zap.Error(err))
	}
}

func (a *AnalyticsModule) visitorID(c *gin.Context) string {
	if id := c.GetString(visitorCtxKey); id != "" {
		return id
	}
	id, err := c.Cookie(visitorCookie)
	if err != nil || id == "" {
		sum := sha256.Sum256([]byte(time.Now().String() + c.ClientIP() + c.Request.UserAgent()))
		id = hex.EncodeToString(sum[:])
		c.SetCookie(visitorCookie, id, visitorMaxAge, "/", "", false, true)
	}
	c.Set(visitorCtxKey, id)
	return id
}

// Classifier maps a matched storefront route to the page it shows.
type Classifier func(c *gin.Context) (slug, page string, resourceID *int, ok bool)

// Middleware records a visit for every GET the classifier accepts once the
// handler (or the page cache in front of it) answered 200. The visitor
// cookie is issued before the response is written.
func (a *AnalyticsModule) Middleware(classify Classifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if a == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		slug, page, resourceID, ok := classify(c)
		if !ok {
			c.Next()
			return
		}
		a.visitorID(c)
		c.Next()
		if c.Writer.Status() == http.StatusOK {
			a.TrackVisit(c, slug, page, resourceID)
		}
	}
}

func clientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func browser(userAgent string) *string {
	if userAgent == "" {
		return nil
	}
	ua := strings.ToLower(userAgent)
	var name string
	switch {
	case strings.Contains(ua, "edg"):
		name = "Edge"
	case strings.Contains(ua, "opr") || strings.Contains(ua, "opera"):
		name = "Opera"
	case strings.Contains(ua, "chrome"):
		name = "Chrome"
	case strings.Contains(ua, "safari"):
		name = "Safari"
	case strings.Contains(ua, "firefox"):
		name = "Firefox"
	case strings.Contains(ua, "msie") || strings.Contains(ua, "trident"):
		name = "Internet Explorer"
	default:
		name = "Other"
	}
	return &name
}

// language keeps the most preferred tag of an Accept-Language header.
func language(header string) *string {
	if header == "" {
		return nil
	}
	lang := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	if lang == "" {
		return nil
	}
	return &lang
}

type DayVisits struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type ResourceVisits struct {
	ResourceID int   `json:"resourceId"`
	Count      int64 `json:"count"`
}

type Summary struct {
	Visits         int64            `json:"visits"`
	UniqueVisitors int64            `json:"uniqueVisitors"`
	ByDay          []DayVisits      `json:"byDay"`
	TopProducts    []ResourceVisits `json:"topProducts"`
}

// VisitsByDay returns one bucket per day for the last days days, oldest
// first, zero-filled.
func (a *AnalyticsModule) VisitsByDay(slug string, days int) []DayVisits {
	if a == nil || days <= 0 {
		return []DayVisits{}
	}
	now := a.now()
	start := now.AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)

	var rows []DayVisits
	a.db.Model(&SiteEvent{}).
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Where("website_slug = ? AND created_at >= ?", slug, start).
		Group("DATE(created_at)").
		Scan(&rows)

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Date] = r.Count
	}
	out := make([]DayVisits, days)
	for i := range out {
		d := now.AddDate(0, 0, -(days - 1 - i)).Format(dayBucketLayout)
		out[i] = DayVisits{Date: d, Count: counts[d]}
	}
	return out
}

// TopProducts ranks product pages by visits over the last days days.
func (a *AnalyticsModule) TopProducts(slug string, days, limit int) []ResourceVisits {
	if a == nil {
		return []ResourceVisits{}
	}
	var out []ResourceVisits
	a.db.Model(&SiteEvent{}).
		Select("resource_id, COUNT(*) AS count").
		Where("website_slug = ? AND page = ? AND resource_id IS NOT NULL AND created_at >= ?", slug, PageProduct, a.now().AddDate(0, 0, -days)).
		Group("resource_id").
		Order("count DESC").
		Limit(limit).
		Scan(&out)
	return out
}

func (a *AnalyticsModule) Summary(slug string, days int) Summary {
	s := Summary{ByDay: a.VisitsByDay(slug, days), TopProducts: a.TopProducts(slug, days, 5)}
	if a == nil {
		return s
	}
	since := a.now().AddDate(0, 0, -days)
	a.db.Model(&SiteEvent{}).Where("website_slug = ? AND created_at >= ?", slug, since).Count(&s.Visits)
	a.db.Model(&SiteEvent{}).Where("website_slug = ? AND created_at >= ?", slug, since).
		Distinct("visitor_id").Count(&s.UniqueVisitors)
	return s
}
