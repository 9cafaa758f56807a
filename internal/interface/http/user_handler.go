package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-commerce-user/internal/application"
	"github.com/oksasatya/go-commerce-user/internal/domain/errs"
	"github.com/oksasatya/go-commerce-user/internal/interface/middleware"
	"github.com/oksasatya/go-commerce-user/pkg/response"
	"github.com/oksasatya/go-commerce-user/pkg/validation"
)

// AccountService is the part of the application service the handler needs.
type AccountService interface {
	SignUp(ctx context.Context, in userapp.SignUpInput) (*userapp.AccountView, error)
	GetMe(ctx context.Context, loginID, password string) (*userapp.AccountView, error)
	ChangePassword(ctx context.Context, in userapp.ChangePasswordInput) error
}

type UserHandler struct {
	Svc    AccountService
	Logger *logrus.Logger
}

func NewUserHandler(svc AccountService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type signUpRequest struct {
	LoginID   string `json:"loginId" binding:"required,min=4,max=20"`
	Password  string `json:"password" binding:"required,min=8,max=16"`
	Name      string `json:"name" binding:"required,min=2,max=15"`
	BirthDate string `json:"birthDate" binding:"required,datetime=2006-01-02,pastdate"`
	Email     string `json:"email" binding:"required,email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=16"`
}

type signUpResponse struct {
	LoginID string `json:"loginId"`
}

type meResponse struct {
	LoginID   string `json:"loginId"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	Email     string `json:"email"`
}

const passwordChangedMessage = "비밀번호가 변경되었습니다."

// SignUp handles POST /v1/users.
func (h *UserHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	birthDate, err := time.Parse(validation.DateLayout, req.BirthDate)
	if err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.Svc.SignUp(c.Request.Context(), userapp.SignUpInput{
		LoginID:   req.LoginID,
		Password:  req.Password,
		Name:      req.Name,
		BirthDate: birthDate,
		Email:     req.Email,
		Meta:      requestMeta(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, signUpResponse{LoginID: view.LoginID}, "created", nil)
}

// GetMe handles GET /v1/users/me.
func (h *UserHandler) GetMe(c *gin.Context) {
	loginID, password := middleware.LoginCredentials(c)
	view, err := h.Svc.GetMe(c.Request.Context(), loginID, password)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, meResponse{
		LoginID:   view.LoginID,
		Name:      view.Name,
		BirthDate: view.BirthDate.Format(validation.DateLayout),
		Email:     view.Email,
	}, "ok", nil)
}

// ChangePassword handles PATCH /v1/users/me/password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	loginID, password := middleware.LoginCredentials(c)
	err := h.Svc.ChangePassword(c.Request.Context(), userapp.ChangePasswordInput{
		LoginID:         loginID,
		HeaderPassword:  password,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		Meta:            requestMeta(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, passwordChangedMessage, nil)
}

func requestMeta(c *gin.Context) userapp.RequestMeta {
	return userapp.RequestMeta{IP: middleware.ClientIP(c), UserAgent: c.Request.UserAgent()}
}

func badRequest(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, string(errs.KindBadRequest), errs.DefaultMessage(errs.KindBadRequest), validation.ToDetails(err))
}

// fail maps a use-case error to its HTTP status. Internal failures never
// leak their cause to the client.
func (h *UserHandler) fail(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	msg := errs.MessageOf(err)
	var details any
	var de *errs.Error
	if errors.As(err, &de) && de.Reason != "" {
		details = gin.H{"reason": de.Reason}
	}
	if kind == errs.KindInternal && h.Logger != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("request failed")
	}
	response.Error[any](c, StatusOf(kind), string(kind), msg, details)
}

// StatusOf returns the HTTP status for an error kind.
func StatusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindInvalidLoginID, errs.KindInvalidPassword, errs.KindInvalidName, errs.KindBadRequest:
		return http.StatusBadRequest
	case errs.KindUnauthorized:
		return http.StatusUnauthorized
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindDuplicateLoginID:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
