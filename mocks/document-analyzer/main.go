package main

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort      = "8082"
	defaultAPIKey    = "document-analyzer-secret-key"
	defaultLatencyMs = "300"
	maxImageBytes    = 10 << 20
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var (
	apiKey    = getEnv("API_KEY", defaultAPIKey)
	latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)
)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/analyze", handleAnalyze)

	log.Printf("📄 Mock Document Analyzer starting on port %s", port)
	log.Printf("📝 API Key: %s", apiKey)
	log.Printf("⏱️  Simulated latency: %dms", latencyMs)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "document-analyzer",
		"version": "1.0.0",
	})
}

// Magic filenames let local runs exercise the failure paths of the client.
//
//	blurry.*  -> 422, the image cannot be read
//	outage.*  -> 503, the analyzer is down
//	slow.*    -> answers after 10s
func handleAnalyze(w http.ResponseWriter, r *http.Request) {
	time.Sleep(time.Duration(latencyMs) * time.Millisecond)

	log.Printf("📥 Incoming request: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch key := r.Header.Get("X-API-Key"); {
	case key == "":
		sendError(w, "Missing X-API-Key header", http.StatusUnauthorized)
		return
	case key != apiKey:
		sendError(w, "Invalid API key", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		sendError(w, "file part is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	switch name := strings.ToLower(header.Filename); {
	case strings.HasPrefix(name, "blurry"):
		sendError(w, "Document could not be read", http.StatusUnprocessableEntity)
		return
	case strings.HasPrefix(name, "outage"):
		sendError(w, "Analysis backend unavailable", http.StatusServiceUnavailable)
		return
	case strings.HasPrefix(name, "slow"):
		time.Sleep(10 * time.Second)
	}

	h := sha256.New()
	size, err := h.ReadFrom(file)
	if err != nil || size == 0 {
		sendError(w, "Image is empty or unreadable", http.StatusBadRequest)
		return
	}
	fields := extractFields(h.Sum(nil))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(fields)

	log.Printf("✅ Extracted %d fields from %s (%d bytes)", len(fields), header.Filename, size)
}

// extractFields derives stable participant data from the image digest so the
// same photo always yields the same record.
func extractFields(sum []byte) map[string]string {
	n := int(sum[0])

	firstNames := []string{"Ana", "Bruno", "Camila", "Diego", "Elisa", "Fábio", "Gabriela", "Heitor", "Isabela", "João"}
	lastNames := []string{"Silva", "Santos", "Oliveira", "Souza", "Lima", "Pereira", "Costa", "Rodrigues", "Almeida", "Ferreira"}
	streets := []string{"Rua das Flores", "Av. Paulista", "Rua Augusta", "Av. Brasil", "Rua XV de Novembro"}
	cities := []string{"São Paulo - SP", "Curitiba - PR", "Belo Horizonte - MG", "Recife - PE", "Porto Alegre - RS"}

	name := fmt.Sprintf("%s %s", firstNames[n%len(firstNames)], lastNames[(n*3)%len(lastNames)])
	address := fmt.Sprintf("%s, %d, %s", streets[n%len(streets)], 10+int(sum[1])*7, cities[(n*2)%len(cities)])

	return map[string]string{
		"name":    name,
		"cpf":     fmt.Sprintf("%03d.%03d.%03d-%02d", digits(sum[2:4], 1000), digits(sum[4:6], 1000), digits(sum[6:8], 1000), digits(sum[8:9], 100)),
		"rg":      fmt.Sprintf("%02d.%03d.%03d-%d", digits(sum[9:10], 100), digits(sum[10:12], 1000), digits(sum[12:14], 1000), digits(sum[14:15], 10)),
		"address": address,
	}
}

func digits(b []byte, mod int) int {
	v := 0
	for _, x := range b {
		v = v<<8 | int(x)
	}
	return v % mod
}

func sendError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
	log.Printf("❌ Error response: %d - %s", code, message)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key, defaultValue string) int {
	value := getEnv(key, defaultValue)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid integer value for %s, using default: %s", key, defaultValue)
		intValue, _ = strconv.Atoi(defaultValue)
	}
	return intValue
}
