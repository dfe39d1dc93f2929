package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"twitterapi/apperr"
	"twitterapi/auth"
	"twitterapi/dto"
	"twitterapi/models"
	"twitterapi/monitoring"
	"twitterapi/repositories"
)

const maxNameLength = 50

// AuthHandler handles sign-up and token issuance.
type AuthHandler struct {
	UserRepo repositories.UserRepository
	Secret   string
	TokenTTL time.Duration
}

func NewAuthHandler(userRepo repositories.UserRepository, secret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{UserRepo: userRepo, Secret: secret, TokenTTL: tokenTTL}
}

// SignIn issues a bearer token for valid account/password pairs. Admins sign
// in from the backstage, not here.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var requestData struct {
		Account  string `json:"account"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		respondError(w, apperr.Validation("invalid JSON"))
		return
	}

	if requestData.Account == "" || requestData.Password == "" {
		monitoring.LoginFailure.WithLabelValues("missing_fields").Inc()
		respondError(w, apperr.Validation("account and password are required"))
		return
	}

	user, err := h.UserRepo.FindByAccount(r.Context(), requestData.Account)
	if err != nil {
		monitoring.LoginFailure.WithLabelValues("unknown_account").Inc()
		if apperr.KindOf(err) == apperr.KindNotFound {
			err = apperr.Unauthorized("account not registered")
		}
		respondError(w, err)
		return
	}
	if user.Role == models.RoleAdmin {
		monitoring.LoginFailure.WithLabelValues("admin_account").Inc()
		respondError(w, apperr.Forbidden("admins must sign in from the backstage"))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(requestData.Password)) != nil {
		monitoring.LoginFailure.WithLabelValues("bad_password").Inc()
		respondError(w, apperr.Unauthorized("incorrect password"))
		return
	}

	token, err := auth.SignToken(user.ID, h.Secret, h.TokenTTL)
	if err != nil {
		respondError(w, err)
		return
	}

	monitoring.LoginSuccess.Inc()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "login successfully",
		"token":   token,
		"user": dto.UserSummary{
			ID:           user.ID,
			Name:         user.Name,
			Account:      user.Account,
			Email:        user.Email,
			Avatar:       user.Avatar,
			Cover:        user.Cover,
			Introduction: user.Introduction,
			Role:         user.Role,
		},
	})
}

// SignUp validates the registration payload and creates the user with the
// default role and images. All validation happens before any write.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var requestData struct {
		Name          string `json:"name"`
		Account       string `json:"account"`
		Email         string `json:"email"`
		Password      string `json:"password"`
		CheckPassword string `json:"checkPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		respondError(w, apperr.Validation("invalid JSON"))
		return
	}

	requestData.Name = strings.TrimSpace(requestData.Name)
	requestData.Account = strings.TrimSpace(requestData.Account)

	if err := validateSignUp(requestData.Name, requestData.Account, requestData.Email,
		requestData.Password, requestData.CheckPassword); err != nil {
		respondError(w, err)
		return
	}

	if taken, err := h.UserRepo.ExistsByAccount(r.Context(), requestData.Account); err != nil {
		respondError(w, err)
		return
	} else if taken {
		respondError(w, apperr.Conflict("account already taken"))
		return
	}
	if taken, err := h.UserRepo.ExistsByEmail(r.Context(), requestData.Email); err != nil {
		respondError(w, err)
		return
	} else if taken {
		respondError(w, apperr.Conflict("email already taken"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(requestData.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, err)
		return
	}

	user := models.User{
		Name:     requestData.Name,
		Account:  requestData.Account,
		Email:    requestData.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
		Avatar:   models.DefaultAvatar,
		Cover:    models.DefaultCover,
	}
	if err := h.UserRepo.Create(r.Context(), &user); err != nil {
		respondError(w, err)
		return
	}

	monitoring.RegisterSuccess.Inc()
	respondSuccess(w, "account registered successfully")
}

func validateSignUp(name, account, email, password, checkPassword string) error {
	switch {
	case name == "" || account == "" || email == "" || password == "":
		return apperr.Validation("name, account, email and password are required")
	case utf8.RuneCountInString(name) > maxNameLength:
		return apperr.Validation("name must be 50 characters or fewer")
	case password != checkPassword:
		return apperr.Validation("password confirmation does not match")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperr.Validation("email address is invalid")
	}
	return nil
}
