package controllers

import (
	"context"
	"net/http"
	"time"

	"suma-service/internal/app/config"
	"suma-service/internal/app/contracts"
	"suma-service/internal/app/delivery/http/middlewares"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/exceptions"
	"suma-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MarketingController struct {
	Log              *zap.Logger
	MarketingUsecase contracts.MarketingUsecase
	InternalConfig   *config.InternalConfig
}

func NewMarketingController(logger *zap.Logger, marketingUsecase contracts.MarketingUsecase, internalConfig *config.InternalConfig) *MarketingController {
	return &MarketingController{
		Log:              logger,
		MarketingUsecase: marketingUsecase,
		InternalConfig:   internalConfig,
	}
}

func (ctrl *MarketingController) Upload(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	maxBytes := int64(ctrl.InternalConfig.App.RequestBodyLimitInMegabyte) * 1024 * 1024
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
	title := r.FormValue("title")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	material, err := ctrl.MarketingUsecase.UploadMaterial(ctx, session, title, file, header)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.UploadMarketingSuccess, material)
}

func (ctrl *MarketingController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	materials, err := ctrl.MarketingUsecase.ListMaterials(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetMarketingSuccess, materials)
}

func (ctrl *MarketingController) Delete(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	materialID := chi.URLParam(r, constvars.URLParamMaterialID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.MarketingUsecase.DeleteMaterial(ctx, session, materialID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, nil)
}
