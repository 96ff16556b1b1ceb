package httpd

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/RubachokBoss/worker-portal/internal/models"
)

var errTrailingData = errors.New("request body must hold a single JSON value")

// decodeJSON reads a single JSON object into dst. An empty body leaves dst
// zero-valued so that field validation reports what is missing; anything
// after the first value is rejected.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// decodeForm parses url-encoded or multipart fields from the request body.
// Query string values are ignored.
func decodeForm(r *http.Request) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxMultipartBytes); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

func formID(values url.Values, key string) models.FlexID {
	return models.FlexID(strings.TrimSpace(values.Get(key)))
}

func submissionFromForm(values url.Values) *models.CreateSubmissionRequest {
	req := &models.CreateSubmissionRequest{
		WorkID:         formID(values, "work_id"),
		WorkerID:       formID(values, "worker_id"),
		SubmissionText: values.Get("submission_text"),
	}
	for _, field := range []string{"work_id", "worker_id", "submission_text"} {
		if values.Has(field) {
			req.MarkPresent(field)
		}
	}
	return req
}
