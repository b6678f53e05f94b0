package httpresponse

import (
	"encoding/json"
	"fmt"
	"net/http"

	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
)

type Response struct {
	Status int `json:"Status"`
	Body   any `json:"Body,omitempty"`
}

type ErrorResponse struct {
	ErrorDescription string `json:"ErrorDescription"`
	ErrorCode        string `json:"ErrorCode,omitempty"`
}

const INTERNALERRORJSON = "{\"status\": 500,\"body\":{\"error\": \"Internal server error\"}}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

func WriteResponseWithStatus(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	jsonByte, err := marshalStatusJson(status, body)
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	_, err = w.Write(jsonByte)
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
}

// WriteRejection writes a swap2 rejection as a 400 with its code so the
// client can react to wrong_player/invalid_phase/etc without parsing text.
func WriteRejection(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if code := errs.CodeOf(err); code != "" {
		if code == errs.ErrGameNotFound.Code {
			status = http.StatusNotFound
		}
		WriteResponseWithStatus(w, status, ErrorResponse{
			ErrorDescription: err.Error(),
			ErrorCode:        code,
		})
		return
	}
	WriteResponseWithStatus(w, status, ErrorResponse{ErrorDescription: err.Error()})
}

func marshalStatusJson(status int, body any) ([]byte, error) {
	response := Response{
		Status: status,
		Body:   body,
	}
	marshal, err := json.Marshal(response)
	if err != nil {
		return nil, err
	}
	return marshal, nil
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	// implementation similar to http.Error, only difference is the Content-type
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(500)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}
