// Package httpapi exposes the authentication and profile operations over
// HTTP and maps service errors to transport responses.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avlasov/chatauth/internal/common"
	"github.com/avlasov/chatauth/internal/logging"
	"github.com/avlasov/chatauth/internal/server/auth"
	"github.com/avlasov/chatauth/internal/server/users"
)

// User-facing messages. Wrong password and unknown email share one message
// so responses leak nothing about account existence.
const (
	msgFieldsRequired     = "All fields are required"
	msgPasswordTooShort   = "Your password must be 6 characters or more."
	msgEmailExists        = "Email already exists."
	msgInvalidUserData    = "Invalid user data"
	msgInvalidCredentials = "Invalid credentials"
	msgProfilePicRequired = "Profile pic is required"
	msgCreated            = "Created successfully"
	msgLoggedOut          = "Logged out successfully"
	msgNoToken            = "Unauthorized - no token provided"
	msgInvalidToken       = "Unauthorized - invalid token"
	msgUserNotFound       = "User not found"
	msgInternal           = "Internal server error"
)

type Handler struct {
	users   *users.Service
	cookies *auth.CookiePolicy
	logger  logging.Logger
}

func NewHandler(us *users.Service, cookies *auth.CookiePolicy, l logging.Logger) *Handler {
	return &Handler{
		users:   us,
		cookies: cookies,
		logger:  l.With("module", "httpapi"),
	}
}

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	ProfilePic string `json:"profilePic"`
}

// userResponse is the public view of a user; the password hash never
// appears here.
type userResponse struct {
	ID         string `json:"_id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilePic"`
}

func publicUser(u *users.User) userResponse {
	return userResponse{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
	}
}

// Signup handles POST /api/auth/signup.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgFieldsRequired})
		return
	}

	user, token, err := h.users.Signup(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.cookies.Attach(c.Writer, token)
	c.JSON(http.StatusCreated, gin.H{
		"_id":        user.ID,
		"fullName":   user.FullName,
		"email":      user.Email,
		"profilePic": user.ProfilePic,
		"message":    msgCreated,
	})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgFieldsRequired})
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.cookies.Attach(c.Writer, token)
	c.JSON(http.StatusOK, publicUser(user))
}

// Logout handles POST /api/auth/logout. Idempotent: always clears the
// session cookie and reports success.
func (h *Handler) Logout(c *gin.Context) {
	h.cookies.Clear(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": msgLoggedOut})
}

// UpdateProfile handles PUT /api/auth/update-profile for an authenticated
// user.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgProfilePicRequired})
		return
	}

	user := currentUser(c)
	updated, err := h.users.UpdateProfilePic(c.Request.Context(), user.ID, req.ProfilePic)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, publicUser(updated))
}

// CheckAuth handles GET /api/auth/check. The middleware already resolved the
// user; this just echoes it back.
func (h *Handler) CheckAuth(c *gin.Context) {
	c.JSON(http.StatusOK, publicUser(currentUser(c)))
}

// writeError maps service errors to transport responses. Anything outside
// the known taxonomy is logged with detail and collapsed to a generic 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorFieldsRequired):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgFieldsRequired})
	case errors.Is(err, common.ErrorPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgPasswordTooShort})
	case errors.Is(err, common.ErrorEmailExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgEmailExists})
	case errors.Is(err, common.ErrorInvalidUserData):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidUserData})
	case errors.Is(err, common.ErrorInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidCredentials})
	case errors.Is(err, common.ErrorProfilePicRequired):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgProfilePicRequired})
	default:
		h.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
	}
}
