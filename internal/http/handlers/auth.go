package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"urbantide.com/store/internal/http/flash"
	"urbantide.com/store/internal/http/middleware"
	"urbantide.com/store/internal/http/render"
	"urbantide.com/store/internal/http/validation"
	"urbantide.com/store/internal/modules/auth"
	"urbantide.com/store/internal/shared/apperr"
	"urbantide.com/store/pkg/view"
)

// normalizeReturnTo only accepts same-site relative paths.
func normalizeReturnTo(s string) string {
	if s == "" || s[0] != '/' {
		return ""
	}
	if strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/\\") {
		return ""
	}
	if strings.Contains(s, "://") {
		return ""
	}
	return s
}

type AuthHandlers struct {
	provider *auth.Provider
	flash    *flash.Codec
	sessCfg  middleware.SessionCfg
}

func NewAuthHandlers(p *auth.Provider, flashCodec *flash.Codec, sessCfg middleware.SessionCfg) *AuthHandlers {
	return &AuthHandlers{provider: p, flash: flashCodec, sessCfg: sessCfg}
}

type sessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	Identity      auth.Identity `json:"identity"`
	IsAdmin       bool          `json:"isAdmin"`
	Flash         *view.Flash   `json:"flash,omitempty"`
}

// Session reports the restored identity and consumes the pending flash.
func (h *AuthHandlers) Session(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	c.JSON(http.StatusOK, sessionResponse{
		Authenticated: id.Authenticated(),
		Identity:      id,
		IsAdmin:       id.IsAdmin(),
		Flash:         middleware.TakeFlash(c),
	})
}

type signupInput struct {
	Email           string `json:"email" form:"email" binding:"required,email"`
	Password        string `json:"password" form:"password" binding:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm" binding:"required,eqfield=Password"`
}

func (h *AuthHandlers) SignUp(c *gin.Context) {
	var in signupInput
	if err := c.ShouldBind(&in); err != nil {
		c.Error(validation.BindErr(err, &in))
		return
	}

	id, err := h.provider.SignUp(c.Request.Context(), in.Email, in.Password)
	if errors.Is(err, auth.ErrEmailTaken) {
		const msg = "Este e-mail já está cadastrado."
		c.Error(apperr.ConflictErr(msg).WithFields(map[string]string{"email": msg}).WithErr(err))
		return
	}
	if err != nil {
		c.Error(apperr.Wrap(err))
		return
	}

	render.JSON(c, http.StatusCreated, id, view.Flash{
		Kind:    view.FlashSuccess,
		Message: "Conta criada. Faça login para continuar.",
	})
}

type loginInput struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
	ReturnTo string `json:"return_to" form:"return_to"`
}

type loginResponse struct {
	Identity auth.Identity `json:"identity"`
	Redirect string        `json:"redirect"`
}

func (h *AuthHandlers) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		c.Error(validation.BindErr(err, &in))
		return
	}

	sess, id, err := h.provider.SignIn(c.Request.Context(), in.Email, in.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.Error(apperr.UnauthorizedErr("E-mail ou senha incorretos.").WithErr(err))
		return
	}
	if err != nil {
		c.Error(apperr.Wrap(err))
		return
	}

	middleware.SetSessionCookie(c, h.sessCfg, sess, int(h.provider.SessionTTL().Seconds()))

	dest := normalizeReturnTo(in.ReturnTo)
	if dest == "" {
		dest = "/"
		if id.IsAdmin() {
			dest = "/admin"
		}
	}
	render.JSON(c, http.StatusOK, loginResponse{Identity: id, Redirect: dest}, view.Flash{
		Kind:    view.FlashSuccess,
		Message: "Login realizado com sucesso.",
	})
}

func (h *AuthHandlers) signOut(c *gin.Context) {
	if sid, err := c.Cookie(h.sessCfg.CookieName); err == nil && sid != "" {
		if err := h.provider.SignOut(c.Request.Context(), sid); err != nil {
			_ = c.Error(err)
		}
	}
	middleware.ClearSessionCookie(c, h.sessCfg)
}

// Logout ends the session. It serves both the API and the plain form post
// on /logout; there is no GET variant because the session cookie is
// SameSite=Lax and only a same-site POST may end a session.
func (h *AuthHandlers) Logout(c *gin.Context) {
	h.signOut(c)
	render.Redirect(c, h.flash, "/", view.Flash{Kind: view.FlashInfo, Message: "Você saiu da sua conta."})
}
