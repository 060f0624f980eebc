package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/astromaster/internal/domain/zodiac"
)

type classifyRequest struct {
	Birthdate string `json:"birthdate"`
	Language  string `json:"language"`
}

type classifyResponse struct {
	Birthdate string         `json:"birthdate"`
	Sign      zodiac.Sign    `json:"sign"`
	Name      string         `json:"name"`
	Profile   zodiac.Profile `json:"profile"`
}

// Classify maps a birthdate to its sign and profile.
func (h *Handler) Classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	lang, err := h.language(c, req.Language)
	if err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	sign, err := zodiac.ClassifyString(req.Birthdate)
	if err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	h.metrics.ObserveClassification(sign.Key())
	c.JSON(http.StatusOK, classifyResponse{
		Birthdate: req.Birthdate,
		Sign:      sign,
		Name:      sign.Name(lang),
		Profile:   zodiac.Describe(sign, lang),
	})
}

// ListSigns returns every sign profile in canonical order.
func (h *Handler) ListSigns(c *gin.Context) {
	lang, err := h.language(c, "")
	if err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	signs := zodiac.Signs()
	profiles := make([]zodiac.Profile, 0, len(signs))
	for _, sign := range signs {
		profiles = append(profiles, zodiac.Describe(sign, lang))
	}
	c.JSON(http.StatusOK, gin.H{"language": lang, "signs": profiles})
}

// GetSign returns one sign profile.
func (h *Handler) GetSign(c *gin.Context) {
	lang, err := h.language(c, "")
	if err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	sign, err := zodiac.ParseSign(c.Param("sign"))
	if err != nil {
		abortWithError(c, newHTTPError(http.StatusNotFound, "sign_not_found", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, zodiac.Describe(sign, lang))
}
