package graphql

import (
	"errors"
	"log/slog"

	"github.com/corray333/backend-labs/crm/internal/service/models/crmerr"
)

const internalErrorMessage = "Internal error"

// fieldError is a listing failure reported with GraphQL error extensions.
type fieldError struct {
	err *crmerr.Error
}

func (e *fieldError) Error() string {
	return e.err.Message
}

// Extensions implements gqlerrors.ExtendedError.
func (e *fieldError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{
		"code": string(e.err.Code),
	}
	if e.err.Field != "" {
		ext["field"] = e.err.Field
	}

	return ext
}

// queryError converts a service error into the error returned from a listing resolver.
// Infrastructure failures are logged and hidden from the caller.
func queryError(op string, err error) error {
	if domainErr, ok := crmerr.As(err); ok {
		return &fieldError{err: domainErr}
	}

	slog.Error("Query failed", "operation", op, "error", err)

	return errors.New(internalErrorMessage)
}

// mutationMessage returns the message reported in a failed mutation payload.
func mutationMessage(op string, err error) string {
	if domainErr, ok := crmerr.As(err); ok {
		return domainErr.Message
	}

	slog.Error("Mutation failed", "operation", op, "error", err)

	return internalErrorMessage
}
