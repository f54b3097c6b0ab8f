package logic

import (
	"encoding/json"
	"net/http"

	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/models"
)

// FormatError - takes ErrorResponse and uses correct code
func FormatError(err error, errType string) models.ErrorResponse {

	var status = http.StatusInternalServerError
	switch errType {
	case "internal":
		status = http.StatusInternalServerError
	case "badrequest":
		status = http.StatusBadRequest
	case "notfound":
		status = http.StatusNotFound
	case "unauthorized":
		status = http.StatusUnauthorized
	case "forbidden":
		status = http.StatusForbidden
	case "conflict":
		status = http.StatusConflict
	case "unsupported":
		status = http.StatusNotImplemented
	case "pending":
		status = http.StatusNotImplemented
	default:
		status = http.StatusInternalServerError
	}

	var response = models.ErrorResponse{
		Message: err.Error(),
		Code:    status,
	}
	return response
}

// ReturnSuccessResponse - processes message and adds header
func ReturnSuccessResponse(response http.ResponseWriter, request *http.Request, message string) {
	var httpResponse models.SuccessResponse
	httpResponse.Code = http.StatusOK
	httpResponse.Success = true
	httpResponse.Data = message
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(http.StatusOK)
	json.NewEncoder(response).Encode(httpResponse)
}

// ReturnSuccessResponseWithJson - processes a data payload and adds header
func ReturnSuccessResponseWithJson(response http.ResponseWriter, request *http.Request, res interface{}, message string) {
	var httpResponse models.SuccessResponse
	httpResponse.Code = http.StatusOK
	httpResponse.Success = true
	httpResponse.Data = res
	logger.Log(2, "processed request:", message)
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(http.StatusOK)
	json.NewEncoder(response).Encode(httpResponse)
}

// ReturnCreatedResponseWithJson - like ReturnSuccessResponseWithJson but responds 201
func ReturnCreatedResponseWithJson(response http.ResponseWriter, request *http.Request, res interface{}, message string) {
	var httpResponse models.SuccessResponse
	httpResponse.Code = http.StatusCreated
	httpResponse.Success = true
	httpResponse.Data = res
	logger.Log(2, "processed request:", message)
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(http.StatusCreated)
	json.NewEncoder(response).Encode(httpResponse)
}

// ReturnErrorResponse - processes error and adds header
func ReturnErrorResponse(response http.ResponseWriter, request *http.Request, errorMessage models.ErrorResponse) {
	httpResponse := &models.ErrorResponse{Code: errorMessage.Code, Message: errorMessage.Message}
	jsonResponse, err := json.Marshal(httpResponse)
	if err != nil {
		panic(err)
	}
	logger.Log(1, "processed request error:", errorMessage.Message)
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(errorMessage.Code)
	response.Write(jsonResponse)
}

// HandleOauthNotConfigured - returns an appropriate html page when oauth is not configured but an oauth login was attempted
func HandleOauthNotConfigured(response http.ResponseWriter) {
	response.Header().Set("Content-Type", "text/html; charset=utf-8")
	response.WriteHeader(http.StatusInternalServerError)
	response.Write([]byte("<html><body><h1>OAuth Login Failed, check if server is configured for OAuth.</h1></body></html>"))
}
