package auth

import (
	"encoding/json"
	"net"
	"net/http"
	"net/mail"
	"strings"

	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	tokens  *TokenIssuer
	log     *zap.Logger
}

func NewHandler(service *Service, tokens *TokenIssuer, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type registerResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Data    Profile `json:"data"`
}

type loginResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	Access      string  `json:"access"`
	Refresh     string  `json:"refresh"`
	UserProfile Profile `json:"user_profile"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type fieldErrorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{
			Status:  "error",
			Message: "invalid request body",
		})
		return
	}

	if fieldErrors := validateRegisterRequest(&req); len(fieldErrors) > 0 {
		h.log.Warn("invalid register request", zap.Any("errors", fieldErrors))
		writeJSON(w, http.StatusBadRequest, fieldErrorResponse{
			Status:  "error",
			Message: "User not registered",
			Errors:  fieldErrors,
		})
		return
	}

	profile, err := h.service.Register(r.Context(), RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}, clientAddress(r))
	if err != nil {
		if err == ErrUserExists {
			writeJSON(w, http.StatusConflict, statusResponse{
				Status:  "error",
				Message: "email already registered",
			})
			return
		}
		h.log.Error("failed to register user", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, statusResponse{
			Status:  "error",
			Message: "failed to register user",
		})
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Status:  "success",
		Message: "Account created successfully",
		Data:    profile,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{
			Status:  "failed",
			Message: "invalid request body",
		})
		return
	}

	if err := validateLoginRequest(&req); err != "" {
		writeJSON(w, http.StatusBadRequest, statusResponse{
			Status:  "failed",
			Message: err,
		})
		return
	}

	result, err := h.service.Login(r.Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, clientAddress(r), r.UserAgent())
	if err != nil {
		switch err {
		case ErrUserNotFound:
			writeJSON(w, http.StatusBadRequest, statusResponse{
				Status:  "failed",
				Message: "User not found with this email",
			})
		case ErrInvalidPassword:
			writeJSON(w, http.StatusBadRequest, statusResponse{
				Status:  "failed",
				Message: "Incorrect password",
			})
		default:
			h.log.Error("login failed",
				zap.String("email", req.Email),
				zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, statusResponse{
				Status:  "failed",
				Message: "login failed",
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Status:      "success",
		Message:     "Login successful",
		Access:      result.Tokens.AccessToken,
		Refresh:     result.Tokens.RefreshToken,
		UserProfile: result.Profile,
	})
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
		writeJSON(w, http.StatusUnauthorized, statusResponse{
			Status:  "failed",
			Message: "refresh token is required",
		})
		return
	}

	access, err := h.tokens.Refresh(req.Refresh)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, statusResponse{
			Status:  "failed",
			Message: "invalid refresh token",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

func validateRegisterRequest(req *registerRequest) map[string]string {
	errors := make(map[string]string)
	if req.FirstName == "" {
		errors["first_name"] = "first name is required"
	}
	if req.LastName == "" {
		errors["last_name"] = "last name is required"
	}
	if req.PhoneNumber == "" {
		errors["phone_number"] = "phone number is required"
	}
	if req.Email == "" {
		errors["email"] = "email is required"
	} else if !isValidEmail(req.Email) {
		errors["email"] = "invalid email format"
	}
	if req.Password == "" {
		errors["password"] = "password is required"
	} else if err := ValidatePassword(req.Password); err != nil {
		errors["password"] = err.Error()
	}
	return errors
}

func validateLoginRequest(req *loginRequest) string {
	if req.Email == "" {
		return "email is required"
	}
	if req.Password == "" {
		return "password is required"
	}
	return ""
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// clientAddress resolves the request's network address, preferring the
// first X-Forwarded-For entry over the direct connection address.
func clientAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.Index(fwd, ","); idx >= 0 {
			fwd = fwd[:idx]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
