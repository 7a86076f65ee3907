package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vitrine/models"
	"vitrine/store"
)

const (
	defaultAnalyticsDays = 15
	maxAnalyticsDays     = 365
)

func (a *AdminModule) listOrders(c *gin.Context) {
	st := a.storeOf(c)
	res := a.orders.GetOrders(c.Request.Context())
	if !res.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": res.Error})
		return
	}
	st.Dispatch(store.SetOrders{Orders: res.Data})
	c.JSON(http.StatusOK, res.Data)
}

type statusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// updateOrderStatus moves an order along its lifecycle. Transitions the
// lifecycle forbids are refused before the backend is asked.
func (a *AdminModule) updateOrderStatus(c *gin.Context) {
	st := a.storeOf(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	ctx := c.Request.Context()
	current := a.orders.GetOrder(ctx, id)
	if !current.Success {
		status := http.StatusBadGateway
		if current.NotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": current.Error})
		return
	}

	order := current.Data
	if err := order.Transition(req.Status, req.Note, time.Now()); err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	res := a.orders.UpdateOrderStatus(ctx, id, req.Status)
	if !res.Success {
		a.log.Warn("order status update failed", zap.Int("order", id), zap.String("error", res.Error))
		c.JSON(http.StatusBadGateway, gin.H{"error": res.Error})
		return
	}
	if res.Data.ID == id {
		// The backend echo is authoritative for status; the timeline is ours.
		if len(res.Data.Timeline) < len(order.Timeline) {
			res.Data.Timeline = order.Timeline
		}
		order = res.Data
	}
	st.Dispatch(store.UpsertOrder{Order: order})
	c.JSON(http.StatusOK, order)
}

type dayVisitChart struct {
	Date       string  `json:"date"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type productVisitChart struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Count       int64   `json:"count"`
	Percentage  float64 `json:"percentage"`
}

func percentOf(count, max int64) float64 {
	if max <= 0 {
		return 0
	}
	return float64(count) / float64(max) * 100
}

// websiteAnalytics reports a website's visits for the last ?days= days
// (15 by default), with bar percentages relative to the busiest entry.
func (a *AdminModule) websiteAnalytics(c *gin.Context) {
	st := a.storeOf(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	days := defaultAnalyticsDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxAnalyticsDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 365"})
			return
		}
		days = n
	}
	if a.analytics == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	ctx := c.Request.Context()
	slug := a.siteSlug(c, id)
	if slug == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "website not found"})
		return
	}
	summary := a.analytics.Summary(slug, days)

	var maxDay int64
	for _, d := range summary.ByDay {
		maxDay = max(maxDay, d.Count)
	}
	dayCharts := make([]dayVisitChart, len(summary.ByDay))
	for i, d := range summary.ByDay {
		dayCharts[i] = dayVisitChart{Date: d.Date, Count: d.Count, Percentage: percentOf(d.Count, maxDay)}
	}

	names := map[int]string{}
	for _, p := range st.State().Products {
		names[p.ID] = p.Name
	}
	var maxProduct int64
	for _, p := range summary.TopProducts {
		maxProduct = max(maxProduct, p.Count)
	}
	productCharts := make([]productVisitChart, len(summary.TopProducts))
	for i, p := range summary.TopProducts {
		name, known := names[p.ResourceID]
		if !known {
			if res := a.products.GetProduct(ctx, p.ResourceID); res.Success {
				name = res.Data.Name
			} else {
				name = "Product #" + strconv.Itoa(p.ResourceID)
			}
		}
		productCharts[i] = productVisitChart{
			ProductID:   p.ResourceID,
			ProductName: name,
			Count:       p.Count,
			Percentage:  percentOf(p.Count, maxProduct),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"enabled":        true,
		"website":        slug,
		"days":           days,
		"visits":         summary.Visits,
		"uniqueVisitors": summary.UniqueVisitors,
		"visitsByDay":    dayCharts,
		"topProducts":    productCharts,
	})
}
