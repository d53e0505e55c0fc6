package handler

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/rudovey/workpay/internal/models"
	"github.com/rudovey/workpay/internal/repository"
	"github.com/rudovey/workpay/internal/request"
	"github.com/rudovey/workpay/internal/response"
	"github.com/rudovey/workpay/internal/validator"

	"github.com/cradoe/gopass"
	"github.com/pascaldekloe/jwt"
)

const (
	WorkerActivityLogRegistrationDescription = "Worker account created"
	WorkerActivityLogLoginDescription        = "Worker logged in"
)

// Registration creates the worker account at the default percent. New
// accounts start unmentored, unblocked and with no wallets; everything
// else is assembled through the other endpoints.
func (h *RouteHandler) HandleAuthRegister(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email     string              `json:"email"`
		Password  string              `json:"password"`
		FirstName string              `json:"first_name"`
		LastName  string              `json:"last_name"`
		Username  string              `json:"username"`
		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	// password strength gate comes first, before the cheaper checks
	_, errs := gopass.Validate(input.Password)
	if errs != nil {
		h.ErrHandler.FailedValidation(w, r, errs)
		return
	}

	_, found, err := h.DB.Worker().GetByEmail(input.Email)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	input.Validator.Check(validator.NotBlank(input.Email), "Email is required")
	input.Validator.Check(validator.IsEmail(input.Email), "Must be a valid email address")
	input.Validator.Check(!found, "Email is already in use")

	input.Validator.Check(validator.NotBlank(input.FirstName), "First name is required")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	hashedPassword, err := gopass.Hash(input.Password)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	worker := &models.Worker{
		Email:          input.Email,
		FirstName:      input.FirstName,
		HashedPassword: hashedPassword,
	}

	if input.LastName != "" {
		worker.LastName = sql.NullString{String: input.LastName, Valid: true}
	}
	if input.Username != "" {
		worker.Username = sql.NullString{String: input.Username, Valid: true}
	}

	workerID, err := h.DB.Worker().Insert(worker, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	h.Helper.BackgroundTask(r, func() error {
		_, err := h.DB.Activity().Insert(&models.ActivityLog{
			WorkerID:    workerID,
			Entity:      repository.ActivityLogWorkerEntity,
			EntityID:    workerID,
			Description: WorkerActivityLogRegistrationDescription,
		})

		if err != nil {
			log.Printf("Error logging worker registration action: %v", err)
			return err
		}

		return nil
	})

	message := "Account created successfully"

	err = response.JSONCreatedResponse(w, map[string]int64{"worker_id": workerID}, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleAuthLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email     string              `json:"email"`
		Password  string              `json:"password"`
		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	worker, found, err := h.DB.Worker().GetByEmail(input.Email)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	input.Validator.Check(validator.NotBlank(input.Email), "Email is required")
	input.Validator.Check(validator.IsEmail(input.Email), "Must be a valid email address")
	input.Validator.Check(found, "Incorrect email/password")

	if found {
		passwordMatches, err := gopass.ComparePasswordAndHash(input.Password, worker.HashedPassword)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
			return
		}

		input.Validator.Check(validator.NotBlank(input.Password), "Password is required")
		input.Validator.Check(passwordMatches, "Incorrect email/password")
	}

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	if worker.IsBlocked {
		message := "Account has been blocked. Please contact support"
		err = response.JSONErrorResponse(w, nil, message, http.StatusForbidden, nil)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
		}
		return
	}

	h.Helper.BackgroundTask(r, func() error {
		if err := h.DB.Worker().Touch(worker.ID); err != nil {
			log.Printf("Error touching worker activity timestamp: %v", err)
			return err
		}

		_, err := h.DB.Activity().Insert(&models.ActivityLog{
			WorkerID:    worker.ID,
			Entity:      repository.ActivityLogWorkerEntity,
			EntityID:    worker.ID,
			Description: WorkerActivityLogLoginDescription,
		})

		if err != nil {
			log.Printf("Error logging worker login action: %v", err)
			return err
		}

		return nil
	})

	var claims jwt.Claims
	claims.Subject = strconv.FormatInt(worker.ID, 10)

	expiry := time.Now().Add(24 * time.Hour)
	claims.Issued = jwt.NewNumericTime(time.Now())
	claims.NotBefore = jwt.NewNumericTime(time.Now())
	claims.Expires = jwt.NewNumericTime(expiry)

	claims.Issuer = h.Config.BaseURL
	claims.Audiences = []string{h.Config.BaseURL}

	jwtBytes, err := claims.HMACSign(jwt.HS256, []byte(h.Config.Jwt.SecretKey))
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := map[string]string{
		"auth_token":   string(jwtBytes),
		"token_expiry": expiry.Format(time.RFC3339),
	}
	message := "Login successful"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
