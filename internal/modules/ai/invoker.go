package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNoCredential means the model-access credential was absent at
	// startup. Every gateway operation degrades to its fallback value.
	ErrNoCredential = errors.New("ai: credential not configured")
	// ErrEmptyPrompt is returned before any network activity.
	ErrEmptyPrompt = errors.New("ai: empty prompt")
	// ErrEmptyResponse means the upstream answered without usable content.
	ErrEmptyResponse = errors.New("ai: empty model response")
)

// invokeRequest is one generateContent call. Exactly one HTTP request
// is made per invocation; there is no retry.
type invokeRequest struct {
	Model             string
	Contents          []geminiContent
	SystemInstruction string
	UseSearch         bool
	JSONResponse      bool
	AudioResponse     bool
}

// invokeResult carries the extracted model output.
type invokeResult struct {
	Text        string
	AudioBase64 string
}

// wire types for the generative language REST API

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiTool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type geminiSpeechConfig struct {
	VoiceConfig struct {
		PrebuiltVoiceConfig struct {
			VoiceName string `json:"voiceName"`
		} `json:"prebuiltVoiceConfig"`
	} `json:"voiceConfig"`
}

type geminiGenerationConfig struct {
	ResponseMimeType   string              `json:"responseMimeType,omitempty"`
	ResponseModalities []string            `json:"responseModalities,omitempty"`
	SpeechConfig       *geminiSpeechConfig `json:"speechConfig,omitempty"`
}

type geminiGenerateRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Tools             []geminiTool            `json:"tools,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// invoker performs single-attempt calls against the generative API.
type invoker struct {
	endpoint    string
	credential  string
	speechVoice string
	client      *http.Client
}

func newInvoker(endpoint, credential, speechVoice string, timeout time.Duration) *invoker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &invoker{
		endpoint:    strings.TrimRight(endpoint, "/"),
		credential:  credential,
		speechVoice: speechVoice,
		client:      &http.Client{Timeout: timeout},
	}
}

func (iv *invoker) hasCredential() bool { return iv.credential != "" }

func (iv *invoker) invoke(ctx context.Context, req invokeRequest) (*invokeResult, error) {
	if !iv.hasCredential() {
		return nil, ErrNoCredential
	}
	if len(req.Contents) == 0 {
		return nil, ErrEmptyPrompt
	}

	payload := geminiGenerateRequest{Contents: req.Contents}
	if req.SystemInstruction != "" {
		payload.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: req.SystemInstruction}},
		}
	}
	if req.UseSearch {
		payload.Tools = []geminiTool{{GoogleSearch: &struct{}{}}}
	}
	if req.JSONResponse || req.AudioResponse {
		cfg := &geminiGenerationConfig{}
		if req.JSONResponse {
			cfg.ResponseMimeType = "application/json"
		}
		if req.AudioResponse {
			cfg.ResponseModalities = []string{"AUDIO"}
			speech := &geminiSpeechConfig{}
			speech.VoiceConfig.PrebuiltVoiceConfig.VoiceName = iv.speechVoice
			cfg.SpeechConfig = speech
		}
		payload.GenerationConfig = cfg
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ai: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", iv.endpoint, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// The credential travels in a header, keeping it out of URLs and
	// anything that logs them.
	httpReq.Header.Set("x-goog-api-key", iv.credential)

	resp, err := iv.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("ai: read response: %w", err)
	}

	var parsed geminiGenerateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("ai: decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("ai: upstream status %d: %s", resp.StatusCode, msg)
	}
	if len(parsed.Candidates) == 0 {
		return nil, ErrEmptyResponse
	}

	result := &invokeResult{}
	var textParts []string
	for _, part := range parsed.Candidates[0].Content.Parts {
		if part.Text != "" {
			textParts = append(textParts, part.Text)
		}
		if part.InlineData != nil && part.InlineData.Data != "" && result.AudioBase64 == "" {
			result.AudioBase64 = part.InlineData.Data
		}
	}
	result.Text = strings.Join(textParts, "")
	if result.Text == "" && result.AudioBase64 == "" {
		return nil, ErrEmptyResponse
	}
	return result, nil
}

// userContents wraps a single prompt as a one-turn conversation.
func userContents(prompt string) []geminiContent {
	return []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}
}
