package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]any

const maxRequestBodyBytes = 1 << 20

var errEmptyBody = errors.New("body must not be empty")

var (
	validate = validator.New()
	trans    ut.Translator
)

func init() {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

// validateRequest. nil or a bad param error listing every failed field in plain english.
func validateRequest(request any) error {
	if err := validate.Struct(request); err != nil {
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return util.NewErrorf(util.ErrBadParamInput, "validation error: %v", vvString)
	}
	return nil
}

func parseFloatQuery(query map[string][]string, key string) (float64, error) {
	values := query[key]
	if len(values) == 0 || values[0] == "" {
		return 0, fmt.Errorf("%s is required and must be a valid float", key)
	}
	v, err := strconv.ParseFloat(values[0], 64)
	if err != nil || !util.IsFinite(v) {
		return 0, fmt.Errorf("%s is required and must be a valid float", key)
	}
	return v, nil
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("malformed json body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorEnvelope(status int, message any) envelope {
	return envelope{"error": map[string]any{
		"code":    http.StatusText(status),
		"message": message,
	}}
}

type responder struct {
	log *zap.Logger
}

func (rs responder) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	if err := writeJSON(w, status, errorEnvelope(status, message), nil); err != nil {
		rs.log.Error("failed to write error response", zap.Error(err), zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (rs responder) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	rs.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (rs responder) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	rs.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (rs responder) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	rs.log.Error("internal server error", zap.Error(err), zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	rs.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

// statusCode. http status of an error returned by the services.
func statusCode(err error) int {
	switch {
	case errors.Is(err, util.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, util.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, util.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, util.ErrGraphNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, util.ErrFetchGeometry):
		return http.StatusBadGateway
	case errors.Is(err, util.ErrParseGeometry):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (rs responder) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	status := statusCode(err)
	if status == http.StatusInternalServerError {
		rs.ServerErrorResponse(w, r, err)
		return
	}
	rs.errorResponse(w, r, status, err.Error())
}
