package controllers

import (
	"context"
	"net/http"
	"time"

	"suma-service/internal/app/config"
	"suma-service/internal/app/contracts"
	"suma-service/internal/app/delivery/http/middlewares"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/exceptions"
	"suma-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type FinanceController struct {
	Log            *zap.Logger
	FinanceUsecase contracts.FinanceUsecase
	InternalConfig *config.InternalConfig
}

func NewFinanceController(logger *zap.Logger, financeUsecase contracts.FinanceUsecase, internalConfig *config.InternalConfig) *FinanceController {
	return &FinanceController{
		Log:            logger,
		FinanceUsecase: financeUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *FinanceController) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.SubmitDoctorPayment)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	payment, err := ctrl.FinanceUsecase.SubmitDoctorPayment(ctx, session, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.DoctorPaymentSuccess, payment)
}

func (ctrl *FinanceController) UploadProof(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	paymentID := chi.URLParam(r, constvars.URLParamPaymentID)

	maxBytes := ctrl.InternalConfig.App.PaymentProofMaxUploadSizeInMB * 1024 * 1024
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrFileTooLarge(err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidProofFile(err))
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	payment, err := ctrl.FinanceUsecase.UploadPaymentProof(ctx, session, paymentID, file, header)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UploadProofSuccess, payment)
}

func (ctrl *FinanceController) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	paymentID := chi.URLParam(r, constvars.URLParamPaymentID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	payment, err := ctrl.FinanceUsecase.ApproveDoctorPayment(ctx, session, paymentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ApproveDoctorPaySuccess, payment)
}

func (ctrl *FinanceController) ListPayments(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	doctorID := chi.URLParam(r, constvars.URLParamDoctorID)
	if doctorID == "" {
		doctorID = session.ProfileID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	payments, err := ctrl.FinanceUsecase.ListDoctorPayments(ctx, session, doctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorPaymentsSuccess, payments)
}
