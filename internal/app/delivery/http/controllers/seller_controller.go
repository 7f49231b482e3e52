package controllers

import (
	"context"
	"net/http"
	"time"

	"suma-service/internal/app/contracts"
	"suma-service/internal/app/delivery/http/middlewares"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SellerController struct {
	Log               *zap.Logger
	SellerUsecase     contracts.SellerUsecase
	CommissionUsecase contracts.CommissionUsecase
}

func NewSellerController(logger *zap.Logger, sellerUsecase contracts.SellerUsecase, commissionUsecase contracts.CommissionUsecase) *SellerController {
	return &SellerController{
		Log:               logger,
		SellerUsecase:     sellerUsecase,
		CommissionUsecase: commissionUsecase,
	}
}

func (ctrl *SellerController) GetCommissionSummary(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	params := utils.BuildQueryParamsRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summary, err := ctrl.SellerUsecase.GetCommissionSummary(ctx, session, params, time.Now())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCommissionSuccess, summary)
}

// RecordPayout is the admin action that settles a seller's current period.
func (ctrl *SellerController) RecordPayout(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	sellerID := chi.URLParam(r, constvars.URLParamSellerID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	payment, err := ctrl.CommissionUsecase.RecordPayout(ctx, session, sellerID, time.Now())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SellerPaymentSuccess, payment)
}

func (ctrl *SellerController) ListMarketingMaterials(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	materials, err := ctrl.SellerUsecase.ListMarketingMaterials(ctx, session)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetMarketingSuccess, materials)
}

func (ctrl *SellerController) MarkPayoutsRead(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.SellerUsecase.MarkPayoutsRead(ctx, session); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, nil)
}
