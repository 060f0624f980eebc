package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/astromaster/internal/domain/horoscope"
)

// Forecast returns every period for a sign.
func (h *Handler) Forecast(c *gin.Context) {
	resp, err := h.horoscopeSvc.Forecast(c.Request.Context(), horoscope.ForecastRequest{
		Sign:     c.Param("sign"),
		Date:     c.Query("date"),
		Language: requestLanguage(c),
	})
	if err != nil {
		abortWithError(c, fromDomain(err, "horoscope_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetHoroscope returns one bundle.
func (h *Handler) GetHoroscope(c *gin.Context) {
	resp, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ShareHoroscope renders the bundle as shareable plain text.
func (h *Handler) ShareHoroscope(c *gin.Context) {
	resp, ok := h.lookup(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, horoscope.ShareText(resp.Horoscope))
}

// ClearCache drops every cached bundle.
func (h *Handler) ClearCache(c *gin.Context) {
	removed, err := h.horoscopeSvc.ClearCache(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomain(err, "cache_clear_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": removed})
}

func (h *Handler) lookup(c *gin.Context) (horoscope.Response, bool) {
	resp, err := h.horoscopeSvc.Get(c.Request.Context(), horoscope.Request{
		Sign:     c.Param("sign"),
		Period:   c.Param("period"),
		Date:     c.Query("date"),
		Language: requestLanguage(c),
	})
	if err != nil {
		abortWithError(c, fromDomain(err, "horoscope_failed"))
		return horoscope.Response{}, false
	}
	return resp, true
}
