// Libris API Client Example
//
// This is a minimal example of how to register, authenticate, and manage
// books against a running Libris server.
//
// Usage:
//   export LIBRIS_BASE_URL="http://localhost:8080"
//   go run main.go

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type bookResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

type bookListResponse struct {
	Data  []bookResponse `json:"data"`
	Total int64          `json:"total"`
}

func main() {
	baseURL := os.Getenv("LIBRIS_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &http.Client{Timeout: 10 * time.Second}

	username := fmt.Sprintf("reader-%d", time.Now().Unix())
	password := "correct horse battery staple"

	// Register a user. A 409 here means the username is taken.
	if err := postJSON(client, baseURL+"/register", "", map[string]string{
		"username": username,
		"password": password,
	}, nil); err != nil {
		log.Fatalf("register: %v", err)
	}
	log.Printf("registered user %s", username)

	// Exchange credentials for a bearer token.
	var token tokenResponse
	if err := postJSON(client, baseURL+"/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &token); err != nil {
		log.Fatalf("login: %v", err)
	}
	log.Printf("received %s token", token.TokenType)

	// Create a book. Mutations require the token.
	var book bookResponse
	if err := postJSON(client, baseURL+"/books", token.AccessToken, map[string]any{
		"title":          "The Dispossessed",
		"author":         "Ursula K. Le Guin",
		"published_year": 1974,
		"genre":          "science fiction",
	}, &book); err != nil {
		log.Fatalf("create book: %v", err)
	}
	log.Printf("created book %s: %s by %s", book.ID, book.Title, book.Author)

	// List the catalog. Reads are public.
	resp, err := client.Get(baseURL + "/books?limit=5")
	if err != nil {
		log.Fatalf("list books: %v", err)
	}
	defer resp.Body.Close()

	var list bookListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		log.Fatalf("decode list: %v", err)
	}
	log.Printf("catalog holds %d books, showing %d", list.Total, len(list.Data))
}

func postJSON(client *http.Client, url, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s returned %d: %s (%s)", url, resp.StatusCode, apiErr.Error, apiErr.Code)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
