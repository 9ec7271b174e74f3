package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/VernoB/TodoTask/internal/api/shared"
)

// newRequestWithPathParam builds a request carrying a chi URL parameter, the
// way the router would populate it.
func newRequestWithPathParam(t *testing.T, method, target, key, value string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// withAuthUser attaches an authenticated user ID to the request context, the
// way the auth middleware would.
func withAuthUser(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(
		context.WithValue(req.Context(), shared.UserIDContextKey, userID),
	)
}

// withPathParam attaches a chi URL parameter to an existing request.
func withPathParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// multipartBody builds a multipart form body from string fields plus an
// optional file part named "image" with the given content type.
func multipartBody(
	t *testing.T,
	fields map[string]string,
	fileName, fileContentType string,
	fileContent []byte,
) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if fileName != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="`+fileName+`"`)
		header.Set("Content-Type", fileContentType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}
