package services

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophledger/internal/client/gateway"
	"github.com/dmitrijs2005/gophledger/internal/client/result"
)

const (
	msgLoginRequired = "로그인이 필요합니다."
	msgStructure     = "데이터 구조가 맞지 않습니다."
)

// fromGatewayError converts a gateway failure into a Result. Validation
// failures keep the backend's reason; anything else gets fallback.
func fromGatewayError[T any](err error, fallback string) result.Result[T] {
	switch {
	case errors.Is(err, gateway.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), gateway.ErrValidation.Error()+": ")
		return result.Failure[T](result.KindValidation, msg)
	case errors.Is(err, gateway.ErrNotFound):
		return result.Failure[T](result.KindNotFound, fallback)
	case errors.Is(err, gateway.ErrConflict):
		return result.Failure[T](result.KindConflict, fallback)
	default:
		return result.Failure[T](result.KindTransport, fallback)
	}
}
