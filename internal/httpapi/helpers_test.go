package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MarkoPoloResearchLab/reviewloop/internal/storage"
	"github.com/MarkoPoloResearchLab/reviewloop/internal/testutil"
)

const (
	testClientID        = "abc123"
	testClientName      = "Acme"
	testContactID       = "contact-42"
	testGoogleReviewURL = "https://g.page/x"
	testAdminToken      = "secret-admin-token"
)

func newTestDatabase(testingT *testing.T) *gorm.DB {
	testingT.Helper()

	gin.SetMode(gin.TestMode)
	sqliteDatabase := testutil.NewSQLiteTestDatabase(testingT)
	database, openErr := storage.OpenDatabase(sqliteDatabase.Configuration())
	require.NoError(testingT, openErr)
	require.NoError(testingT, storage.AutoMigrate(database))

	return testutil.ConfigureDatabaseLogger(testingT, database)
}

func performRequest(router *gin.Engine, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func httptestNewRequest(method string, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
