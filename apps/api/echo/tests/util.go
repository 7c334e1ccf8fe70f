package tests

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/raihan7913/devsecop-sub001/apps/api/echo"
	"github.com/raihan7913/devsecop-sub001/core"
	"github.com/raihan7913/devsecop-sub001/core/curriculum"
	"github.com/raihan7913/devsecop-sub001/core/workbook"
	"github.com/raihan7913/devsecop-sub001/services/logger"
	"github.com/raihan7913/devsecop-sub001/storage/database/inmem"
	"github.com/raihan7913/devsecop-sub001/storage/files"
	"github.com/raihan7913/devsecop-sub001/tests"
)

var (
	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}

	objectiveHeaders = []string{"No", "Elemen", "Tujuan Pembelajaran", "Kelas", "Semester", "KKTP"}
)

type app struct {
	*Server
	conf  *core.Config
	db    *inmemdb.DB
	files *filestore.MemStore
	svc   *curriculum.Service

	subject curriculum.Subject
}

func setup(t *testing.T) *app {
	conf := &core.Config{
		AppName:   "Kurikulum",
		SecretKey: "test-secret",
		TestMode:  true,
		Server: core.ServerConfig{
			JWTExpirationDelta: time.Hour,
			MaxUploadSize:      "10M",
			DisableReqLogs:     true,
		},
	}

	// set up DB & services
	db := inmemdb.Open()
	files := filestore.NewMemStore()
	logger := logsvc.NewLoggerMock()
	svc := curriculum.NewService(inmemdb.NewCurriculumRepository(db), files, logger, "curriculum")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	curriculum.InitValidators(validate, translator)

	// set up server
	server := NewServer(
		ServerDeps{
			Conf:          conf,
			Logger:        logger,
			CurriculumSvc: svc,
			Validate:      validate,
			Translator:    translator,
		},
	)
	t.Cleanup(func() { _ = server.Close() })

	return &app{
		Server:  server,
		conf:    conf,
		db:      db,
		files:   files,
		svc:     svc,
		subject: db.CreateSubject("Matematika"),
	}
}

func (a *app) token(t *testing.T, roles ...string) string {
	claims := NewClaims(a.conf, "1", "guru", roles...)
	token, err := GenerateToken(a.conf, claims)
	if err != nil {
		t.Fatalf("token() failed: %v", err)
	}
	return token
}

func (a *app) phasePath(phase string, suffix string) string {
	return "/v1/subjects/" + strconv.FormatInt(a.subject.ID, 10) + "/phases/" + phase + suffix
}

func objectiveGrid(t *testing.T) workbook.Grid {
	return testutil.ObjectiveGrid(t, objectiveHeaders,
		testutil.Row(t, 1, "Bilangan", "TP1", 3, "1", "K1"),
		testutil.Row(t, 2, "Bilangan", "TP2", 3, "2", "K2"),
		testutil.Row(t, 3, "Aljabar", "TP3", 4, "1", "K3"),
	)
}

func matematikaDocument(t *testing.T) []byte {
	return testutil.EncodeWorkbook(t,
		workbook.Sheet{
			Name: "CP",
			Grid: testutil.MetadataGrid(t, "CAPAIAN PEMBELAJARAN Matematika", []string{"Fase A", "Fase B"}, []string{"desc A", ""}),
		},
		workbook.Sheet{Name: "ATP Matematika Fase A", Grid: objectiveGrid(t)},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// newUploadRequest builds a multipart request carrying data under the given form field.
func newUploadRequest(t *testing.T, path, token, field, fileName string, data []byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, fileName)
		if err != nil {
			t.Fatalf("newUploadRequest() failed: %v", err)
		}
		if _, err = fw.Write(data); err != nil {
			t.Fatalf("newUploadRequest() failed: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
