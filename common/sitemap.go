package common

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapEntry builds an entry under domain. A zero lastMod is omitted.
func SitemapEntry(domain, path string, lastMod time.Time, changeFreq, priority string) SitemapURL {
	u := SitemapURL{
		Loc:        strings.TrimSuffix(domain, "/") + path,
		ChangeFreq: changeFreq,
		Priority:   priority,
	}
	if !lastMod.IsZero() {
		u.LastMod = lastMod.Format(time.RFC3339)
	}
	return u
}

func WriteSitemap(c *gin.Context, urls []SitemapURL) {
	out, err := xml.MarshalIndent(urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9", URLs: urls}, "", "  ")
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to build sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}
