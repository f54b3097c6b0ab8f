package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/grantlink/grantlink/logger"
	"github.com/grantlink/grantlink/servercfg"
)

// HttpHandlers - handler functions for REST interactions
var HttpHandlers = []interface{}{
	pluginHandlers,
	platformHandlers,
	clientHandlers,
	agencyHandlers,
	accessRequestHandlers,
	onboardingHandlers,
	identityHandlers,
	oauthHandlers,
	pamHandlers,
	userHandlers,
	serverHandlers,
	loggerHandlers,
}

// HandleRESTRequests - handles the rest requests
func HandleRESTRequests(wg *sync.WaitGroup, ctx context.Context) {
	defer wg.Done()

	r := mux.NewRouter()

	// Currently allowed dev origin is all. Should change in prod
	// should consider analyzing the allowed methods further
	headersOk := handlers.AllowedHeaders([]string{"Access-Control-Allow-Origin", "X-Requested-With", "Content-Type", "authorization"})
	originsOk := handlers.AllowedOrigins(strings.Split(servercfg.GetAllowedOrigin(), ","))
	methodsOk := handlers.AllowedMethods([]string{http.MethodGet, http.MethodPatch, http.MethodPut, http.MethodPost, http.MethodDelete})

	for _, handler := range HttpHandlers {
		handler.(func(*mux.Router))(r)
	}

	port := servercfg.GetAPIPort()

	srv := &http.Server{Addr: ":" + port, Handler: handlers.CORS(originsOk, headersOk, methodsOk)(r)}
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.FatalLog(err.Error())
		}
	}()
	logger.Log(0, "REST Server successfully started on port ", port, " (REST)")

	// block until context is cancelled from main
	<-ctx.Done()

	logger.Log(0, "Stopping the REST server...")
	srv.Shutdown(context.TODO())
	logger.Log(0, "REST Server closed.")
	logger.DumpFile("data/grantlink.log")
}
