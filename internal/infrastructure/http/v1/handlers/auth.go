package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"medstock/internal/core/apperror"
	"medstock/internal/domain/auth"
	"medstock/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication and profile endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// formUpload reads an optional multipart file field into an auth.Upload.
// Size limits are enforced by the service; only read errors surface here.
func (h *AuthHandler) formUpload(c *gin.Context, field string) (*auth.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, apperror.NewFieldValidation(field, "invalid file upload")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperror.NewFieldValidation(field, "cannot read uploaded file")
	}
	defer f.Close()

	// Cap reads slightly above the limit so oversized files still fail
	// validation with the proper message instead of being truncated.
	data, err := io.ReadAll(io.LimitReader(f, auth.MaxUploadSize+1))
	if err != nil {
		return nil, apperror.NewFieldValidation(field, "cannot read uploaded file")
	}

	return &auth.Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Data:     data,
	}, nil
}

// Register handles POST /auth/register (multipart form).
// The drug license document is a required part of the form.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	license, err := h.formUpload(c, "drugLicense")
	if err != nil {
		h.Error(c, err)
		return
	}

	req := auth.RegisterRequest{
		FullName:    c.PostForm("fullName"),
		Email:       c.PostForm("email"),
		Password:    c.PostForm("password"),
		Phone:       c.PostForm("phone"),
		Address:     c.PostForm("address"),
		DrugLicense: license,
	}

	user, profile, err := h.service.Register(ctx, req)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AccountResponse{
		User:    dto.FromUser(user),
		Profile: dto.FromProfile(profile),
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, user, err := h.service.Login(ctx, req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: dto.FromAccessToken(token),
		User:  dto.FromUser(user),
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	user, profile, err := h.service.Me(ctx, userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccountResponse{
		User:    dto.FromUser(user),
		Profile: dto.FromProfile(profile),
	})
}

// UpdateProfile handles PUT /auth/profile (multipart form).
// Absent file fields keep the documents already on record.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	govID, err := h.formUpload(c, "govIdFile")
	if err != nil {
		h.Error(c, err)
		return
	}
	license, err := h.formUpload(c, "drugLicense")
	if err != nil {
		h.Error(c, err)
		return
	}

	upd := auth.ProfileUpdate{
		FullName:    c.PostForm("fullName"),
		Phone:       c.PostForm("phone"),
		Address:     c.PostForm("address"),
		GovIDType:   c.PostForm("govIdType"),
		GovID:       govID,
		DrugLicense: license,
	}

	profile, err := h.service.UpdateProfile(ctx, userID, upd)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProfile(profile))
}

// ChangePassword handles POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	err := h.service.ChangePassword(ctx, userID, auth.ChangePasswordRequest{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "password changed")
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	// Public routes (no auth required)
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)

	// Protected routes (auth required)
	protected.GET("/me", h.Me)
	protected.PUT("/profile", h.UpdateProfile)
	protected.POST("/change-password", h.ChangePassword)
}
