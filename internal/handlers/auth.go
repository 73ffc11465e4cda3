package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dom "github.com/shivraj-io/Caption-io-Backend/internal/domain"
	"github.com/shivraj-io/Caption-io-Backend/internal/dto"
	"github.com/shivraj-io/Caption-io-Backend/internal/service"
)

// AuthHandler handles register and login.
type AuthHandler struct {
	users  UserService
	tokens TokenIssuer
	log    *zap.SugaredLogger
	detail bool
}

// NewAuthHandler returns a new AuthHandler. detail enables the error field in
// responses.
func NewAuthHandler(users UserService, tokens TokenIssuer, log *zap.SugaredLogger, detail bool) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, log: log, detail: detail}
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Credentials"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(h.detail, "username, email, and password are required", err))
		return
	}

	u, err := h.users.Register(c.Request.Context(), string(req.Username), string(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUsername) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
			return
		}
		h.log.Errorw("register failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(h.detail, "internal server error", err))
		return
	}

	token, err := h.tokens.Issue(u)
	if err != nil {
		h.log.Errorw("token issue failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(h.detail, "internal server error", err))
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "user registered successfully",
		Token:   token,
		User:    userToResponse(u),
	})
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(h.detail, "email and password are required", err))
		return
	}

	u, err := h.users.ValidateCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
			return
		}
		h.log.Errorw("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(h.detail, "internal server error", err))
		return
	}

	token, err := h.tokens.Issue(u)
	if err != nil {
		h.log.Errorw("token issue failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(h.detail, "internal server error", err))
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "login successful",
		Token:   token,
		User:    userToResponse(u),
	})
}

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
	}
}
