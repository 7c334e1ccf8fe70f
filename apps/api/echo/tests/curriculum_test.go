package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/raihan7913/devsecop-sub001/apps/api/echo"
	"github.com/raihan7913/devsecop-sub001/core/curriculum"
	"github.com/raihan7913/devsecop-sub001/core/workbook"
	"github.com/raihan7913/devsecop-sub001/tests"
)

func (a *app) importDocument(t *testing.T) {
	_, err := a.svc.Import(context.Background(), matematikaDocument(t), "matematika.xlsx")
	require.NoError(t, err)
}

func Test_curriculumApi_auth(t *testing.T) {
	a := setup(t)
	a.importDocument(t)
	teacherToken := a.token(t, RoleTeacher)

	tests := []httpTest{
		{
			name:     "list phases without token",
			method:   http.MethodGet,
			path:     a.phasePath("", ""),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "objectives without token",
			method:   http.MethodGet,
			path:     a.phasePath("A", "/objectives"),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "teacher cannot update objectives",
			method:   http.MethodPut,
			path:     a.phasePath("A", "/objectives"),
			body:     []byte(`{"records": []}`),
			token:    teacherToken,
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, errForbidden),
		},
		{
			name:     "teacher cannot import",
			method:   http.MethodPost,
			path:     "/v1/curriculum/import",
			token:    teacherToken,
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, errForbidden),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			a.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_curriculumApi_importDocument(t *testing.T) {
	a := setup(t)
	adminToken := a.token(t, RoleAdmin)
	path := "/v1/curriculum/import"

	t.Run("success", func(t *testing.T) {
		req, rec := newUploadRequest(t, path, adminToken, "file", "matematika.xlsx", matematikaDocument(t))
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res curriculum.ImportResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, a.subject.ID, res.SubjectID)
		assert.Equal(t, "Matematika", res.SubjectName)
		assert.Equal(t, map[curriculum.Phase]int{curriculum.PhaseA: 0, curriculum.PhaseB: 1}, res.Phases)
		assert.Equal(t, 1, res.Written)
		assert.Equal(t, []curriculum.Phase{curriculum.PhaseB}, res.Skipped)
		assert.Empty(t, res.Errors)
		assert.Equal(t, []string{res.DocumentPath}, a.files.Paths())
	})

	tests := []struct {
		httpTest
		field string
		data  []byte
	}{
		{
			httpTest: httpTest{
				name:     "missing file",
				wantCode: http.StatusBadRequest,
				wantData: marchallObj(t, httpErr{Error: "missing document file"}),
			},
		},
		{
			httpTest: httpTest{
				name:     "not a spreadsheet",
				wantCode: http.StatusBadRequest,
				wantData: marchallObj(t, httpErr{Error: curriculum.ErrInvalidDocument.Error()}),
			},
			field: "file",
			data:  []byte("plain text"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newUploadRequest(t, path, adminToken, tt.field, "upload.xlsx", tt.data)
			a.ServeHTTP(rec, req)
			checkCodeAndData(t, tt.httpTest, rec)
		})
	}
}

func Test_curriculumApi_importErrors(t *testing.T) {
	a := setup(t)
	adminToken := a.token(t, RoleAdmin)

	document := func(title string, headers []string) []byte {
		return testutil.EncodeWorkbook(t, workbook.Sheet{
			Name: "CP",
			Grid: testutil.MetadataGrid(t, title, headers, []string{"desc"}),
		})
	}

	tests := []struct {
		httpTest
		data []byte
	}{
		{
			httpTest: httpTest{
				name:     "unknown subject",
				wantCode: http.StatusNotFound,
				wantData: marchallObj(t, httpErr{Error: curriculum.ErrSubjectNotFound.Error()}),
			},
			data: document("CAPAIAN PEMBELAJARAN Fisika", []string{"Fase A"}),
		},
		{
			httpTest: httpTest{
				name:     "no phase header",
				wantCode: http.StatusBadRequest,
				wantData: marchallObj(t, httpErr{Error: curriculum.ErrNoPhaseHeaderDetected.Error()}),
			},
			data: document("CAPAIAN PEMBELAJARAN Matematika", []string{"Deskripsi"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newUploadRequest(t, "/v1/curriculum/import", adminToken, "file", "upload.xlsx", tt.data)
			a.ServeHTTP(rec, req)
			checkCodeAndData(t, tt.httpTest, rec)
			assert.Empty(t, a.files.Paths())
		})
	}
}

func Test_curriculumApi_listPhases(t *testing.T) {
	a := setup(t)
	a.importDocument(t)
	token := a.token(t, RoleTeacher)

	descs, err := a.svc.ListPhases(context.Background(), a.subject.ID)
	require.NoError(t, err)
	require.Len(t, descs, 1)

	tests := []httpTest{
		{
			name:     "ok",
			path:     a.phasePath("", ""),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, descs),
		},
		{
			name:     "unknown subject",
			path:     "/v1/subjects/9999/phases",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: curriculum.ErrSubjectNotFound.Error()}),
		},
		{
			name:     "invalid subject id",
			path:     "/v1/subjects/abc/phases",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"subject_id": "must be an integer"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, token)
			a.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_curriculumApi_getObjectives(t *testing.T) {
	a := setup(t)
	a.importDocument(t)
	token := a.token(t, RoleTeacher)

	sheet, err := a.svc.GetObjectives(context.Background(), a.subject.ID, curriculum.PhaseA)
	require.NoError(t, err)
	require.Len(t, sheet.Records, 3)

	tests := []httpTest{
		{
			name:     "ok",
			path:     a.phasePath("A", "/objectives"),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, sheet),
		},
		{
			name:     "lower case phase",
			path:     a.phasePath("a", "/objectives"),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, sheet),
		},
		{
			name:     "invalid phase",
			path:     a.phasePath("D", "/objectives"),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"phase": "phase must be one of A, B or C"}`),
		},
		{
			name:     "phase without description",
			path:     a.phasePath("B", "/objectives"),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: curriculum.ErrDocumentNotFound.Error()}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, token)
			a.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_curriculumApi_updateObjectives(t *testing.T) {
	a := setup(t)
	a.importDocument(t)
	adminToken := a.token(t, RoleAdmin)
	path := a.phasePath("A", "/objectives")

	t.Run("replaces records", func(t *testing.T) {
		body := []byte(`{"records": [
			{"No": 1, "Elemen": "Data", "Tujuan Pembelajaran": "TP baru", "Kelas": 3, "Semester": "2", "KKTP": "K"}
		]}`)
		req, rec := newAuthRequest(http.MethodPut, path, adminToken, body)
		a.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		sheet, err := a.svc.GetObjectives(context.Background(), a.subject.ID, curriculum.PhaseA)
		require.NoError(t, err)
		require.Len(t, sheet.Records, 1)
		assert.Equal(t, "TP baru", sheet.Records[0]["Tujuan Pembelajaran"].String())
		assert.Equal(t, "3", sheet.Records[0]["Kelas"].String())

		ok, err := jsonBytesEqual(t, rec.Body.Bytes(), marchallObj(t, sheet))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	tests := []httpTest{
		{
			name:     "unknown column",
			body:     []byte(`{"records": [{"Tujuan": "x", "No": 1}]}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{
				"error": "unknown columns: Tujuan",
				"unknown": ["Tujuan"],
				"valid": ["No", "Elemen", "Tujuan Pembelajaran", "Kelas", "Semester", "KKTP"]
			}`),
		},
		{
			name:     "missing records",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"records": "this field is required"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, path, adminToken, tt.body)
			a.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_curriculumApi_filterObjectives(t *testing.T) {
	a := setup(t)
	a.importDocument(t)
	token := a.token(t, RoleTeacher)
	class := a.db.CreateClass("3A", "Ganjil")

	path := func(query string) string {
		return a.phasePath("A", "/objectives/filter?"+query)
	}
	classQuery := "class_id=" + strconv.FormatInt(class.ID, 10)
	semester := func(s int) *int { return &s }

	ganjil, err := a.svc.FilterObjectives(context.Background(), a.subject.ID, curriculum.PhaseA, class.ID, nil)
	require.NoError(t, err)
	require.Len(t, ganjil.Objectives, 1)
	assert.Equal(t, "TP1", ganjil.Objectives[0].Objective)

	genap, err := a.svc.FilterObjectives(context.Background(), a.subject.ID, curriculum.PhaseA, class.ID, semester(2))
	require.NoError(t, err)
	require.Len(t, genap.Objectives, 1)
	assert.Equal(t, "TP2", genap.Objectives[0].Objective)

	tests := []httpTest{
		{
			name:     "term semester",
			path:     path(classQuery),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, ganjil),
		},
		{
			name:     "semester override",
			path:     path(classQuery + "&semester=2"),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, genap),
		},
		{
			name:     "missing class",
			path:     path(""),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"class_id": "this field is required"}`),
		},
		{
			name:     "invalid class id",
			path:     path("class_id=abc"),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"class_id": "must be an integer"}`),
		},
		{
			name:     "invalid semester",
			path:     path(classQuery + "&semester=x"),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"semester": "must be an integer"}`),
		},
		{
			name:     "unknown class",
			path:     path("class_id=9999"),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: curriculum.ErrClassNotFound.Error()}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, token)
			a.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_curriculumApi_downloadDocument(t *testing.T) {
	a := setup(t)
	a.importDocument(t)

	doc, err := a.svc.OpenDocument(context.Background(), a.subject.ID, curriculum.PhaseA)
	require.NoError(t, err)

	req, rec := newAuthRequest(http.MethodGet, a.phasePath("A", "/document"), a.token(t, RoleTeacher))
	a.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, doc.Data, rec.Body.Bytes())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="`+doc.Name+`"`, rec.Header().Get("Content-Disposition"))
}
