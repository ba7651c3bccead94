package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/jututor/server/domain"
)

// Manual client for a running server: sends one chat message, then speaks
// the reply and saves it as a WAV file.
func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	message := flag.String("message", "How do I say 'bom dia' in English?", "message to send")
	output := flag.String("out", "reply.wav", "where to save the spoken reply")
	flag.Parse()

	client := &http.Client{Timeout: 90 * time.Second}

	var chatResp domain.ChatResponse
	if err := postJSON(client, *baseURL+"/api/chat", domain.ChatRequest{Message: *message}, &chatResp); err != nil {
		log.Fatal("chat:", err)
	}
	log.Printf("reply: %s", chatResp.Reply)

	wav, err := postForBytes(client, *baseURL+"/api/voice", domain.VoiceRequest{Text: chatResp.Reply})
	if err != nil {
		log.Fatal("voice:", err)
	}
	if err := os.WriteFile(*output, wav, 0o644); err != nil {
		log.Fatal("write:", err)
	}
	log.Printf("saved %d bytes to %s", len(wav), *output)
}

func postJSON(client *http.Client, url string, body, out interface{}) error {
	payload, err := postForBytes(client, url, body)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(payload, out)
}

func postForBytes(client *http.Client, url string, body interface{}) ([]byte, error) {
	requestBody, err := sonic.Marshal(body)
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(requestBody))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, payload)
	}
	return payload, nil
}
