package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	LoggerKey    ContextKey = "logger"
	SessionKey   ContextKey = "session"
	RequestStart ContextKey = "requestStart"
)

var Validate = validator.New()
