package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/logic"
)

func loggerHandlers(r *mux.Router) {
	r.HandleFunc("/api/logs", logic.SecurityCheck(true, http.HandlerFunc(getLogs))).Methods(http.MethodGet)
}

// swagger:route GET /api/logs logs getLogs
//
// Dump and retrieve the accumulated server log.
//
//		Schemes: https
//
// 		Security:
//   		oauth
func getLogs(w http.ResponseWriter, r *http.Request) {
	var currentFilePath = "data/grantlink.log"
	logger.DumpFile(currentFilePath)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(logger.Retrieve(currentFilePath)))
}
