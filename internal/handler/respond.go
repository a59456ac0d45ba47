package handler

import (
	"encoding/json"
	"net/http"
)

type erroResponse struct {
	Erro string `json:"erro"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondErro devolve o corpo padrão {"erro": ...}. Mensagens são genéricas
// por construção: nada de stack trace ou identificador interno.
func respondErro(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, erroResponse{Erro: msg})
}
