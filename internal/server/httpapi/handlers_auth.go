package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/dwitter/internal/common"
	"github.com/dmitrijs2005/dwitter/internal/server/services"
)

// AccountService registers users and logs them in.
type AccountService interface {
	Signup(ctx context.Context, d services.SignupDetails) (*services.AuthResult, error)
	Login(ctx context.Context, userName, password string) (*services.AuthResult, error)
}

type authResponse struct {
	Token    string `json:"token"`
	UserName string `json:"username"`
}

func (h *handlers) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req signupRequest
	if err := decodeAndValidate(r, &req, req.trim); err != nil {
		if !writeRequestError(w, err) {
			writeServiceError(ctx, w, h.logger, err, "")
		}
		return
	}

	res, err := h.accounts.Signup(ctx, services.SignupDetails{
		Name:     req.Name,
		UserName: req.Username,
		Email:    req.Email,
		Password: req.Password,
		URL:      req.URL,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeMessage(w, http.StatusConflict, fmt.Sprintf("%s already exists", req.Username))
			return
		}
		writeServiceError(ctx, w, h.logger, err, "")
		return
	}

	h.logger.Info(ctx, "user registered", "username", res.UserName)
	writeJSON(w, http.StatusCreated, authResponse{Token: res.Token, UserName: res.UserName})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := decodeAndValidate(r, &req, req.trim); err != nil {
		if !writeRequestError(w, err) {
			writeServiceError(ctx, w, h.logger, err, "")
		}
		return
	}

	res, err := h.accounts.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, "Invalid user or password")
			return
		}
		writeServiceError(ctx, w, h.logger, err, "")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: res.Token, UserName: res.UserName})
}

func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	token, _ := TokenFromContext(r.Context())
	writeJSON(w, http.StatusOK, authResponse{Token: token, UserName: p.UserName})
}
