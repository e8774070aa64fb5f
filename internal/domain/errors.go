package domain

import (
	"fmt"
	"strings"
)

type ErrorCategory string

const (
	ErrorCategory_Validation ErrorCategory = "validation"
	ErrorCategory_Network    ErrorCategory = "network"
	ErrorCategory_Server     ErrorCategory = "server"
	ErrorCategory_Unknown    ErrorCategory = "unknown"
)

// CategorizedError is the only error type that crosses the API boundary.
// Message is user-facing (Portuguese, like the rest of the wire contract);
// Details itemizes validation failures; Err keeps the technical cause for
// logs.
type CategorizedError struct {
	Category   ErrorCategory
	Message    string
	Details    []string
	StatusCode int // upstream HTTP status, server category only
	Err        error
}

func (e *CategorizedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Category, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *CategorizedError) Unwrap() error {
	return e.Err
}

func NewValidationError(details []string) *CategorizedError {
	return &CategorizedError{
		Category: ErrorCategory_Validation,
		Message:  "Foram encontrados erros de validação nas operações.",
		Details:  details,
	}
}

func NewTimeoutError(cause error) *CategorizedError {
	return &CategorizedError{
		Category: ErrorCategory_Network,
		Message:  "A requisição excedeu o tempo limite. Tente novamente.",
		Err:      cause,
	}
}

func NewConnectivityError(cause error) *CategorizedError {
	return &CategorizedError{
		Category: ErrorCategory_Network,
		Message:  "Não foi possível conectar ao servidor de análise. Verifique sua conexão.",
		Err:      cause,
	}
}

// serverMessages maps upstream status codes to user guidance.
var serverMessages = map[int]string{
	400: "Requisição inválida. Verifique os dados enviados.",
	401: "Sessão expirada. Faça login novamente.",
	403: "Você não tem permissão para executar esta operação.",
	404: "Recurso não encontrado no servidor de análise.",
	422: "Os dados enviados não puderam ser processados pelo servidor de análise.",
	500: "Erro interno no servidor de análise. Tente novamente mais tarde.",
	502: "O servidor de análise está indisponível no momento.",
	503: "O serviço está temporariamente em manutenção.",
	504: "O servidor de análise demorou demais para responder.",
}

func NewServerError(statusCode int, cause error) *CategorizedError {
	message, ok := serverMessages[statusCode]
	if !ok {
		message = "O servidor de análise retornou um erro inesperado."
	}
	return &CategorizedError{
		Category:   ErrorCategory_Server,
		Message:    message,
		StatusCode: statusCode,
		Err:        cause,
	}
}

func NewUnknownError(cause error) *CategorizedError {
	return &CategorizedError{
		Category: ErrorCategory_Unknown,
		Message:  "Ocorreu um erro inesperado. Tente novamente.",
		Err:      cause,
	}
}

func NewNotFoundError(message string) *CategorizedError {
	return &CategorizedError{
		Category:   ErrorCategory_Server,
		Message:    message,
		StatusCode: 404,
	}
}
