package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

var siteName = regexp.MustCompile(`^[a-z0-9-]+$`)

// PageCache stores rendered storefront pages on disk, one directory per
// website. A nil *PageCache is a disabled cache.
type PageCache struct {
	dir    string
	maxAge time.Duration
	log    *zap.Logger
}

func New(dir string, maxAge time.Duration, log *zap.Logger) *PageCache {
	if dir == "" || maxAge <= 0 {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PageCache{dir: dir, maxAge: maxAge, log: log}
}

func generateHash(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}

// Path returns the file a page of site is cached in. Pages are addressed by
// their path below the website, "" being the home page.
func (p *PageCache) Path(site, page string) string {
	name := strings.ReplaceAll(strings.Trim(page, "/"), "/", "_")
	if name == "" {
		name = "index"
	}
	key := generateHash(site + "/" + page)[:16]
	return filepath.Join(p.dir, site, fmt.Sprintf("%s_%s.html", name, key))
}

func (p *PageCache) Read(site, page string) (string, bool) {
	if p == nil || !siteName.MatchString(site) {
		return "", false
	}
	path := p.Path(site, page)

	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > p.maxAge {
		return "", false
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(content), true
}

func (p *PageCache) Write(site, page, html string) error {
	if p == nil || !siteName.MatchString(site) {
		return nil
	}
	if err := os.MkdirAll(filepath.Join(p.dir, site), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.Path(site, page), []byte(html), 0o644)
}

func (p *PageCache) Clear(site, page string) error {
	if p == nil || !siteName.MatchString(site) {
		return nil
	}
	err := os.Remove(p.Path(site, page))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ClearSite drops every cached page of a website. Called whenever the
// website, its products or its posts change.
func (p *PageCache) ClearSite(site string) error {
	if p == nil || !siteName.MatchString(site) {
		return nil
	}
	p.log.Debug("clearing page cache", zap.String("site", site))
	return os.RemoveAll(filepath.Join(p.dir, site))
}

// Sweep removes cached pages older than the max age.
func (p *PageCache) Sweep() error {
	if p == nil {
		return nil
	}
	removed := 0
	err := filepath.Walk(p.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		if time.Since(info.ModTime()) > p.maxAge && os.Remove(path) == nil {
			removed++
		}
		return nil
	})
	if removed > 0 {
		p.log.Info("swept page cache", zap.Int("removed", removed))
	}
	return err
}
