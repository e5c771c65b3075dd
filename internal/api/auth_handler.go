package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"vectorhire/internal/api/middleware"
	"vectorhire/internal/auth"
	"vectorhire/internal/session"
)

// AuthHandler 处理登录、注册与退出。凭证错误以可读原因返回，不抛异常。
type AuthHandler struct {
	holder      *session.Holder
	authService *auth.AuthService
	logger      *slog.Logger
}

// NewAuthHandler 构造认证处理器。
func NewAuthHandler(holder *session.Holder, authService *auth.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		holder:      holder,
		authService: authService,
		logger:      logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	User        session.Session `json:"user"`
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"`
}

// Login 校验演示凭证并返回会话与访问令牌。
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.String("email", req.Email))

	sess, err := h.holder.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredential) {
			logger.Info("login failed: invalid credential")
			Error(c, http.StatusUnauthorized, session.ErrInvalidCredential.Error())
			return
		}
		logger.Error("login failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	h.replyWithSession(c, *sess)
	logger.Info("login succeeded", slog.String("role", sess.Role))
}

type signupRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=64"`
	Email string `json:"email" binding:"required,email"`
}

// Signup 注册新的求职者身份。邮箱精确匹配已注册集合时返回冲突。
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.String("email", req.Email))

	sess, err := h.holder.Signup(ctx, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, session.ErrEmailTaken) {
			logger.Info("signup conflict: email taken")
			Conflict(c, session.ErrEmailTaken.Error())
			return
		}
		logger.Error("signup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	h.replyWithSession(c, *sess)
	logger.Info("signup succeeded")
}

// Logout 清除当前会话。
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.holder.Clear(c.Request.Context()); err != nil {
		h.loggerFromContext(c).Error("logout failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.Status(http.StatusOK)
}

// Me 返回令牌对应的会话身份。
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess})
}

func (h *AuthHandler) replyWithSession(c *gin.Context, sess session.Session) {
	token, err := h.authService.GenerateAccessToken(sess)
	if err != nil {
		h.loggerFromContext(c).Error("generate access token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		User:        sess,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.authService.AccessTokenTTL().Seconds()),
	})
}

func (h *AuthHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}
