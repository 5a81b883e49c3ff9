package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateCertificateEndToEnd(t *testing.T) {
	app, db := setupApp(t)
	stubPDFEngine(t)

	user := createUser(t, db, "student")
	course := createCourse(t, db, "JavaScript Fundamentals", "Sarah Johnson")
	completeCourse(t, db, user.ID, course.ID)
	token := authToken(t, user)

	resp := doRequest(t, app, "POST", "/api/v1/certificates/generate", token, map[string]string{
		"courseId":    course.ID.String(),
		"studentName": "A. Lee",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeJSON(t, resp)
	require.Equal(t, "Certificate generated successfully", body["message"])
	require.NotEmpty(t, body["downloadUrl"])

	cert, ok := body["certificate"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "A. Lee", cert["student_name"])
	require.Equal(t, "JavaScript Fundamentals", cert["course_title"])
	require.Equal(t, "Sarah Johnson", cert["instructor_name"])

	// The returned download reference must actually stream the artifact.
	downloadURL, _ := body["downloadUrl"].(string)
	download := doRequest(t, app, "GET", downloadURL, token, nil)
	require.Equal(t, http.StatusOK, download.StatusCode)
	require.Contains(t, download.Header.Get("Content-Disposition"), "attachment")
	require.Contains(t, download.Header.Get("Content-Disposition"), "certificate-"+cert["id"].(string)+".pdf")

	pdf := readBody(t, download)
	require.Contains(t, pdf, "A. Lee")
	require.Contains(t, pdf, "JavaScript Fundamentals")
	require.Contains(t, pdf, "Sarah Johnson")
}

func TestGenerateCertificateRequiresCompletion(t *testing.T) {
	app, db := setupApp(t)

	user := createUser(t, db, "student")
	course := createCourse(t, db, "React.js Complete Guide", "Michael Chen")
	token := authToken(t, user)

	resp := doRequest(t, app, "POST", "/api/v1/certificates/generate", token, map[string]string{
		"courseId":    course.ID.String(),
		"studentName": "A. Lee",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Course must be completed before generating certificate", decodeJSON(t, resp)["message"])
}

func TestGenerateCertificateDuplicateRejected(t *testing.T) {
	app, db := setupApp(t)
	stubPDFEngine(t)

	user := createUser(t, db, "student")
	course := createCourse(t, db, "JavaScript Fundamentals", "Sarah Johnson")
	completeCourse(t, db, user.ID, course.ID)
	token := authToken(t, user)

	resp := doRequest(t, app, "POST", "/api/v1/certificates/generate", token, map[string]string{
		"courseId":    course.ID.String(),
		"studentName": "A. Lee",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	retry := doRequest(t, app, "POST", "/api/v1/certificates/generate", token, map[string]string{
		"courseId":    course.ID.String(),
		"studentName": "Different Name",
	})
	require.Equal(t, http.StatusBadRequest, retry.StatusCode)
	require.Equal(t, "Certificate already exists for this course", decodeJSON(t, retry)["message"])
}

func TestGenerateCertificateValidation(t *testing.T) {
	app, db := setupApp(t)

	user := createUser(t, db, "student")
	course := createCourse(t, db, "JavaScript Fundamentals", "Sarah Johnson")
	completeCourse(t, db, user.ID, course.ID)
	token := authToken(t, user)

	missing := doRequest(t, app, "POST", "/api/v1/certificates/generate", token, map[string]string{
		"courseId": course.ID.String(),
	})
	require.Equal(t, http.StatusBadRequest, missing.StatusCode)

	blank := doRequest(t, app, "POST", "/api/v1/certificates/generate", token, map[string]string{
		"courseId":    course.ID.String(),
		"studentName": "   ",
	})
	require.Equal(t, http.StatusBadRequest, blank.StatusCode)
	require.Equal(t, "Course ID and student name are required", decodeJSON(t, blank)["message"])
}

func TestGenerateCertificateUnknownCourse(t *testing.T) {
	app, db := setupApp(t)

	user := createUser(t, db, "student")
	token := authToken(t, user)

	resp := doRequest(t, app, "POST", "/api/v1/certificates/generate", token, map[string]string{
		"courseId":    uuid.New().String(),
		"studentName": "A. Lee",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Course not found", decodeJSON(t, resp)["message"])
}

func TestDownloadHidesForeignCertificates(t *testing.T) {
	app, db := setupApp(t)
	stubPDFEngine(t)

	owner := createUser(t, db, "student")
	course := createCourse(t, db, "JavaScript Fundamentals", "Sarah Johnson")
	completeCourse(t, db, owner.ID, course.ID)

	resp := doRequest(t, app, "POST", "/api/v1/certificates/generate", authToken(t, owner), map[string]string{
		"courseId":    course.ID.String(),
		"studentName": "A. Lee",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	certID := decodeJSON(t, resp)["certificate"].(map[string]interface{})["id"].(string)

	intruder := createUser(t, db, "student")
	intruderToken := authToken(t, intruder)

	foreign := doRequest(t, app, "GET", "/api/v1/certificates/download/"+certID, intruderToken, nil)
	require.Equal(t, http.StatusNotFound, foreign.StatusCode)
	foreignBody := decodeJSON(t, foreign)

	absent := doRequest(t, app, "GET", "/api/v1/certificates/download/"+uuid.New().String(), intruderToken, nil)
	require.Equal(t, http.StatusNotFound, absent.StatusCode)
	absentBody := decodeJSON(t, absent)

	// Someone else's certificate is indistinguishable from a missing one.
	require.Equal(t, absentBody, foreignBody)
}

func TestDownloadRequiresAuth(t *testing.T) {
	app, _ := setupApp(t)

	resp := doRequest(t, app, "GET", "/api/v1/certificates/download/"+uuid.New().String(), "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListUserCertificates(t *testing.T) {
	app, db := setupApp(t)
	stubPDFEngine(t)

	user := createUser(t, db, "student")
	token := authToken(t, user)

	first := createCourse(t, db, "JavaScript Fundamentals", "Sarah Johnson")
	second := createCourse(t, db, "React.js Complete Guide", "Michael Chen")
	completeCourse(t, db, user.ID, first.ID)
	completeCourse(t, db, user.ID, second.ID)

	for _, course := range []string{first.ID.String(), second.ID.String()} {
		resp := doRequest(t, app, "POST", "/api/v1/certificates/generate", token, map[string]string{
			"courseId":    course,
			"studentName": "A. Lee",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	other := createUser(t, db, "student")
	otherList := doRequest(t, app, "GET", "/api/v1/certificates/user", authToken(t, other), nil)
	require.Equal(t, http.StatusOK, otherList.StatusCode)
	require.JSONEq(t, "[]", readBody(t, otherList))

	list := doRequest(t, app, "GET", "/api/v1/certificates/user", token, nil)
	require.Equal(t, http.StatusOK, list.StatusCode)
	body := readBody(t, list)
	require.Contains(t, body, "JavaScript Fundamentals")
	require.Contains(t, body, "React.js Complete Guide")
}
