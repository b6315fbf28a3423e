package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finddreams/find-dreams/pkg/domain"
)

func TestNewClient_EmptyKey(t *testing.T) {
	_, err := NewClient("")
	require.Error(t, err)
}

func TestEnhancePrompt_ReturnsRewrittenContent(t *testing.T) {
	var gotReq chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []chatCompletionChoice{
				{Message: chatCompletionMessage{Role: "assistant", Content: "a long detailed rewrite"}},
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", WithBaseURL(srv.URL))
	require.NoError(t, err)

	got, err := c.EnhancePrompt(context.Background(), "gpt-4o-mini", "a glowing forest")
	require.NoError(t, err)
	require.Equal(t, "a long detailed rewrite", got)

	require.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	require.Equal(t, chatMessageRoleSystem, gotReq.Messages[0].Role)
	require.Equal(t, "a glowing forest", gotReq.Messages[1].Content)
}

func TestEnhancePrompt_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(chatCompletionResponse{})
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.EnhancePrompt(context.Background(), "gpt-4o-mini", "seed")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no choices")
}

func TestEnhancePrompt_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.EnhancePrompt(context.Background(), "gpt-4o-mini", "seed")
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestGenerateImage_NormalizesDataURLShape(t *testing.T) {
	var gotReq imageGenerationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/images/generations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(imageGenerationResponse{
			Data: []imageGenerationData{{URL: "https://x/img.png"}},
		})
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", WithBaseURL(srv.URL))
	require.NoError(t, err)

	url, err := c.GenerateImage(context.Background(), "a glowing forest", domain.DallE3Model)
	require.NoError(t, err)
	require.Equal(t, "https://x/img.png", url)

	require.Equal(t, domain.DallE3Model, gotReq.Model)
	require.Equal(t, "a glowing forest", gotReq.Prompt)
	require.Equal(t, 1, gotReq.N)
}

func TestGenerateImage_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(imageGenerationResponse{})
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.GenerateImage(context.Background(), "prompt", domain.DallE3Model)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no image url")
}
