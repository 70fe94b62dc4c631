package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/metricsanalyzer/src/config"
	"github.com/username/metricsanalyzer/src/logger"
	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/security/validation"
	"github.com/username/metricsanalyzer/src/services"
	"github.com/username/metricsanalyzer/src/utils"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: service,
	}
}

func (h *ReportHandler) HandleProcessHubla(w http.ResponseWriter, r *http.Request) {
	h.handleProcess(w, r, models.PlatformHubla)
}

func (h *ReportHandler) HandleProcessHotmart(w http.ResponseWriter, r *http.Request) {
	h.handleProcess(w, r, models.PlatformHotmart)
}

func (h *ReportHandler) handleProcess(w http.ResponseWriter, r *http.Request, platform models.Platform) {
	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "platform", platform, "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "platform", platform, "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		logger.L.Warn("Uploaded file header reports size too large", "platform", platform, "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB (header check)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		logger.L.Warn("Invalid client-declared file type", "platform", platform, "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		logger.L.Warn("Server-side file content validation failed", "platform", platform, "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	logger.L.Info("File content validated by magic bytes", "platform", platform, "filename", fileHeader.Filename, "clientType", clientContentType, "detectedType", detectedContentType)

	result, err := h.reportService.ProcessReport(file, platform)
	if err != nil {
		if errors.Is(err, services.ErrParsingFailed) {
			logger.L.Warn("Report processing failed during parsing", "platform", platform, "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Error parsing report file: %v", err), http.StatusBadRequest)
		} else {
			logger.L.Error("Internal error processing report", "platform", platform, "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "An internal error occurred while processing the file. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding JSON response for report result", "platform", platform, "error", err)
	}
}

func (h *ReportHandler) HandleLatestResult(w http.ResponseWriter, r *http.Request) {
	platform := models.Platform(r.URL.Query().Get("platform"))
	if platform != models.PlatformHubla && platform != models.PlatformHotmart {
		utils.SendJSONError(w, "query parameter 'platform' must be 'hubla' or 'hotmart'", http.StatusBadRequest)
		return
	}

	result, err := h.reportService.LatestResult(platform)
	if err != nil {
		if errors.Is(err, services.ErrNoResult) {
			utils.SendJSONError(w, fmt.Sprintf("No report processed yet for platform %s", platform), http.StatusNotFound)
			return
		}
		logger.L.Error("Error retrieving latest result", "platform", platform, "error", err)
		utils.SendJSONError(w, "Error retrieving latest result", http.StatusInternalServerError)
		return
	}

	currentETag, etagErr := utils.GenerateETag(result)
	if etagErr != nil {
		logger.L.Error("Failed to generate ETag for latest result", "platform", platform, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		clientETag := r.Header.Get("If-None-Match")
		for _, cETag := range strings.Split(clientETag, ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				logger.L.Debug("ETag match for latest result", "platform", platform, "etag", currentETag)
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error generating JSON response for latest result", "platform", platform, "error", err)
	}
}
