package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

func GETHandlerRoot(w http.ResponseWriter, r *http.Request) {
	var welcomeString string = fmt.Sprintln("Welcome to Guest List Services.\nRequest one of the following routes to query data:\n /guests\n /guests/{id}\n /guests/search?lookup=\n /guests/export\n /ws")
	responseBytes := []byte(welcomeString)

	w.Header().Set("Content-Type", "text/plain")
	w.Write(responseBytes)
}

func WriteErrorToWriter(w http.ResponseWriter, statusCode int, errorString string) {
	jsonString, err := json.MarshalIndent(errorString, "", "\t")
	if err != nil {
		log.Print(err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(jsonString)
}

func WriteJSONToWriter(w http.ResponseWriter, statusCode int, value interface{}) {
	responseBytes, err := json.MarshalIndent(value, "", "\t")
	if err != nil {
		log.Printf("Failed marshaling response: %v", err)
		WriteErrorToWriter(w, http.StatusInternalServerError, "Error: Could not encode the response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(responseBytes)
}
