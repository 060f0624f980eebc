package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/astromaster/internal/domain/auth"
	"github.com/yanqian/astromaster/internal/domain/horoscope"
	"github.com/yanqian/astromaster/internal/domain/zodiac"
)

// Register creates an account.
func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	user, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomain(err, "register_failed"))
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for tokens.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomain(err, "login_failed"))
		return
	}
	h.prewarmFor(c.Request.Context(), resp.User)
	c.JSON(http.StatusOK, resp)
}

// Refresh issues a new token pair from a refresh token.
func (h *Handler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	resp, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		abortWithError(c, fromDomain(err, "refresh_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GoogleLogin redirects to the Google consent screen with PKCE state stored in a cookie.
func (h *Handler) GoogleLogin(c *gin.Context) {
	state, verifier, challenge, err := auth.NewOAuthState()
	if err != nil {
		abortWithError(c, newHTTPError(http.StatusInternalServerError, "oauth_state_failed", "failed to create oauth state", err))
		return
	}
	target, err := h.authSvc.GoogleAuthURL(c.Request.Context(), state, challenge)
	if err != nil {
		abortWithError(c, fromDomain(err, "oauth_failed"))
		return
	}
	sealed, err := h.oauthState.seal(oauthFlow{State: state, Verifier: verifier})
	if err != nil {
		abortWithError(c, newHTTPError(http.StatusInternalServerError, "oauth_state_failed", "failed to create oauth state", err))
		return
	}
	writeOAuthCookie(c, sealed, int(oauthStateTTL.Seconds()))
	c.Redirect(http.StatusFound, target)
}

// GoogleCallback completes the OAuth flow. With a post-login URL configured the
// tokens are handed over in the URL fragment, otherwise they are returned as JSON.
func (h *Handler) GoogleCallback(c *gin.Context) {
	raw, _ := c.Cookie(oauthCookieName)
	flow, ok := h.oauthState.open(raw)
	writeOAuthCookie(c, "", -1)
	if !ok || flow.State != c.Query("state") {
		abortWithError(c, newHTTPError(http.StatusBadRequest, "invalid_oauth_state", "oauth state mismatch", nil))
		return
	}
	if reason := c.Query("error"); reason != "" {
		abortWithError(c, newHTTPError(http.StatusUnauthorized, "oauth_denied", reason, nil))
		return
	}
	resp, err := h.authSvc.GoogleCallback(c.Request.Context(), c.Query("code"), flow.Verifier)
	if err != nil {
		abortWithError(c, fromDomain(err, "oauth_failed"))
		return
	}
	h.prewarmFor(c.Request.Context(), resp.User)
	if h.postLoginURL == "" {
		c.JSON(http.StatusOK, resp)
		return
	}
	fragment := url.Values{}
	fragment.Set("token", resp.Token)
	fragment.Set("refreshToken", resp.RefreshToken)
	c.Redirect(http.StatusFound, strings.SplitN(h.postLoginURL, "#", 2)[0]+"#"+fragment.Encode())
}

// Logout revokes provider tokens for the caller.
func (h *Handler) Logout(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.authSvc.Logout(c.Request.Context(), userID); err != nil {
		abortWithError(c, fromDomain(err, "logout_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the caller's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	user, err := h.authSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, fromDomain(err, "profile_failed"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe applies a partial profile update.
func (h *Handler) UpdateMe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var update auth.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	user, err := h.authSvc.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		abortWithError(c, fromDomain(err, "profile_failed"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteMe removes the caller's account.
func (h *Handler) DeleteMe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.authSvc.DeleteAccount(c.Request.Context(), userID); err != nil {
		abortWithError(c, fromDomain(err, "delete_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}

// MyHoroscope serves the caller's sign for the requested period in the
// caller's language unless lang overrides it.
func (h *Handler) MyHoroscope(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	user, err := h.authSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, fromDomain(err, "profile_failed"))
		return
	}
	if user.Zodiac == "" {
		abortWithError(c, newHTTPError(http.StatusConflict, "zodiac_not_set", "set a birthdate or zodiac sign first", nil))
		return
	}
	lang := requestLanguage(c)
	if lang == "" {
		lang = string(user.Language)
	}
	resp, err := h.horoscopeSvc.Get(c.Request.Context(), horoscope.Request{
		Sign:     user.Zodiac,
		Period:   c.Param("period"),
		Date:     c.Query("date"),
		Language: lang,
	})
	if err != nil {
		abortWithError(c, fromDomain(err, "horoscope_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) prewarmFor(ctx context.Context, user auth.UserView) {
	if !h.prewarm || user.Zodiac == "" {
		return
	}
	sign, err := zodiac.ParseSign(user.Zodiac)
	if err != nil {
		return
	}
	if err := h.horoscopeSvc.Prewarm(ctx, sign, user.Language); err != nil {
		h.logger.Warn("horoscope prewarm failed", "userId", user.ID, "error", err)
	}
}
