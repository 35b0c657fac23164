package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"postboard/app/middleware"
	"postboard/app/models"
	"postboard/app/repositories"
)

const (
	msgPostNotFound  = "Post not found"
	msgInternalError = "Internal Server Error"
)

// detailResponse is the error body shape shared by every endpoint.
type detailResponse struct {
	Detail any `json:"detail"`
}

func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendDetail(w http.ResponseWriter, status int, detail any) {
	sendJSON(w, status, detailResponse{Detail: detail})
}

// sendError maps service errors to responses.
func sendError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs models.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		sendDetail(w, http.StatusUnprocessableEntity, verrs)
	case errors.Is(err, repositories.ErrNotFound):
		sendDetail(w, http.StatusNotFound, msgPostNotFound)
	default:
		middleware.LoggerFrom(r.Context()).WithError(err).Error("Request failed")
		sendDetail(w, http.StatusInternalServerError, msgInternalError)
	}
}

// NotFound answers requests that match no route.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	sendDetail(w, http.StatusNotFound, "Not Found")
}

// MethodNotAllowed answers requests whose path matches but method does not.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	sendDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func postID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, models.ValidationErrors{{
			Loc:  []string{"path", "post_id"},
			Msg:  "Input should be a valid integer",
			Type: "int_parsing",
		}}
	}
	return id, nil
}

// decodeBody reads a JSON request body into dst, reporting problems in the
// same shape as payload validation.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err == nil {
		// The body must hold exactly one JSON value.
		var extra json.RawMessage
		if err = dec.Decode(&extra); errors.Is(err, io.EOF) {
			return nil
		}
		if err == nil {
			err = errors.New("unexpected data after the JSON value")
		}
		return invalidJSON(err)
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return models.ValidationErrors{{
			Loc:  []string{"body"},
			Msg:  "Field required",
			Type: "missing",
		}}
	case errors.As(err, &typeErr) && typeErr.Field == "":
		return models.ValidationErrors{{
			Loc:  []string{"body"},
			Msg:  "Input should be a valid dictionary",
			Type: "model_attributes_type",
		}}
	case errors.As(err, &typeErr):
		return models.ValidationErrors{{
			Loc:  []string{"body", typeErr.Field},
			Msg:  "Input should be a valid " + typeErr.Type.String(),
			Type: typeErr.Type.String() + "_type",
		}}
	default:
		return invalidJSON(err)
	}
}

func invalidJSON(err error) error {
	return models.ValidationErrors{{
		Loc:  []string{"body"},
		Msg:  err.Error(),
		Type: "json_invalid",
	}}
}
