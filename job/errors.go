package job

import (
	"fmt"
	"net/http"

	"github.com/shiplogix/backend/srvcerror"
)

const ErrCodeJobNotFound = "job_not_found"

func ErrJobNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeJobNotFound,
		"The requested job posting was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeValidation = "validation_failed"

func ErrMissingField(name string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeValidation,
		fmt.Sprintf("Required field %q is missing", name),
	).SetHttpStatusCode(http.StatusBadRequest)
}
