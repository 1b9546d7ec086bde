package http

import (
	"encoding/json"
	"net/http"
)

// envelope é o formato único de resposta: data preenchido no sucesso, error
// preenchido na falha, nunca os dois.
type envelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error"`
}

// ErrorBody carrega o código estável e a mensagem legível de uma falha.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON escreve o envelope de sucesso.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	escrever(w, status, envelope{Data: data})
}

// WriteError escreve o envelope de erro.
func WriteError(w http.ResponseWriter, status int, code, message string, details any) {
	escrever(w, status, envelope{Error: &ErrorBody{Code: code, Message: message, Details: details}})
}

func escrever(w http.ResponseWriter, status int, corpo envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(corpo)
}
