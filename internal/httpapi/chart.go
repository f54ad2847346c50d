package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muhammadchandra19/chart-data/internal/domain/bar"
	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/muhammadchandra19/chart-data/pkg/timeframe"
	"github.com/muhammadchandra19/chart-data/pkg/util"
)

// Response is the envelope of every answer.
type Response struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// LoadResult tells whether a load request was the one committed.
type LoadResult struct {
	Committed bool `json:"committed"`
}

// ChartHTTP serves the chart context over HTTP.
type ChartHTTP struct {
	chart      bar.Usecase
	ranges     bar.RangeProvider
	timeframes timeframe.Config
	logger     logger.Interface
	now        func() time.Time
}

// NewChartHTTP creates a new ChartHTTP.
func NewChartHTTP(chart bar.Usecase, ranges bar.RangeProvider, timeframes timeframe.Config, logger logger.Interface) *ChartHTTP {
	return &ChartHTTP{
		chart:      chart,
		ranges:     ranges,
		timeframes: timeframes,
		logger:     logger,
		now:        time.Now,
	}
}

// Routes registers the chart endpoints.
func (h *ChartHTTP) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.HandleMethodNotAllowed = true

	r.GET("/snapshot", h.GetSnapshot)
	r.GET("/last-prices", h.GetLastPrices)
	r.GET("/bar-ranges", h.GetBarRanges)
	r.GET("/timeframes", h.GetTimeframes)
	r.POST("/load", h.Load)
	return r
}

// GetSnapshot returns the current bar sequence and its meta.
func (h *ChartHTTP) GetSnapshot(c *gin.Context) {
	h.write(c, http.StatusOK, "success", h.chart.Snapshot())
}

// GetLastPrices returns the latest known price per symbol.
func (h *ChartHTTP) GetLastPrices(c *gin.Context) {
	h.write(c, http.StatusOK, "success", h.chart.LastPrices())
}

// GetBarRanges returns the stored date range of every symbol.
func (h *ChartHTTP) GetBarRanges(c *gin.Context) {
	ctx := c.Request.Context()
	ranges, err := h.ranges.Ranges(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, err)
		h.write(c, http.StatusInternalServerError, "failed to get bar ranges", nil)
		return
	}
	h.write(c, http.StatusOK, "success", ranges)
}

// GetTimeframes returns the timeframes a client may load.
func (h *ChartHTTP) GetTimeframes(c *gin.Context) {
	h.write(c, http.StatusOK, "success", h.timeframes.Enabled)
}

// Load switches the chart to the requested meta and waits for its history.
func (h *ChartHTTP) Load(c *gin.Context) {
	ctx := util.WithRequestID(c.Request.Context(), c.GetHeader("X-Request-Id"))

	var meta v1.Meta
	if err := c.ShouldBindJSON(&meta); err != nil {
		h.write(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	if !h.timeframes.IsEnabled(meta.Timeframe) {
		h.write(c, http.StatusBadRequest, "timeframe not enabled: "+meta.Timeframe.String(), nil)
		return
	}

	// a dropped client must not leave the chart with an empty series
	committed, err := h.chart.Load(context.WithoutCancel(ctx), meta)
	if err != nil {
		h.logger.ErrorContext(ctx, err, logger.NewField("meta", meta))
		h.write(c, http.StatusInternalServerError, "failed to load chart", nil)
		return
	}
	h.write(c, http.StatusOK, "success", LoadResult{Committed: committed})
}

func (h *ChartHTTP) write(c *gin.Context, status int, message string, data any) {
	resp := Response{
		Status:    "success",
		Message:   message,
		Data:      data,
		Timestamp: h.now().UTC(),
	}
	if status >= http.StatusBadRequest {
		resp.Status = "error"
	}
	c.JSON(status, resp)
}
