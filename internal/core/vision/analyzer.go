package vision

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"google.golang.org/genai"

	"github.com/aadikrishna04/Devfest-CU/internal/core/realtime"
	"github.com/aadikrishna04/Devfest-CU/pkg/types"
)

// Analyzer describes a camera frame in the context of the current
// scenario. An empty observation with a nil error means "nothing worth
// saying". Implementations must never panic across this boundary.
type Analyzer interface {
	Analyze(ctx context.Context, frameB64 string, scenario types.Scenario, recentUtterance string) (string, error)
}

// Gemini analyzes frames with the Gemini vision API.
type Gemini struct {
	c     *genai.Client
	model string
}

func New(apiKey, model string) (*Gemini, error) {
	tr := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		TLSClientConfig:   &tls.Config{MinVersion: tls.VersionTLS12},
		ForceAttemptHTTP2: false,
		MaxIdleConns:      100,
		IdleConnTimeout:   90 * time.Second,
	}
	hc := &http.Client{Transport: tr, Timeout: 30 * time.Second}
	reqTimeout := 15 * time.Second
	cl, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: hc,
		HTTPOptions: genai.HTTPOptions{
			APIVersion: "v1",
			Timeout:    &reqTimeout,
		},
	})
	if err != nil {
		return nil, err
	}
	return &Gemini{c: cl, model: model}, nil
}

func (g *Gemini) Analyze(ctx context.Context, frameB64 string, scenario types.Scenario, recentUtterance string) (string, error) {
	ctx, span := otel.Tracer("first-aid-coach").Start(ctx, "vision.analyze")
	defer span.End()

	img, err := base64.StdEncoding.DecodeString(frameB64)
	if err != nil {
		return "", err
	}

	userContext := "Current scenario: " + string(scenario) + "."
	if recentUtterance != "" {
		userContext += " User just said: " + recentUtterance
	}

	parts := []*genai.Part{
		{Text: realtime.ScenePrompt},
		{Text: userContext},
		{InlineData: &genai.Blob{Data: img, MIMEType: "image/jpeg"}},
	}

	temp := float32(0.2)
	maxTok := int32(100)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: maxTok,
	}

	var lastErr error
	for i := 0; i < 3; i++ {
		resp, err := g.c.Models.GenerateContent(ctx, g.model, []*genai.Content{{Parts: parts}}, cfg)
		if err != nil {
			lastErr = err
			if retriable(err) {
				time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
				continue
			}
			return "", err
		}
		if t := strings.TrimSpace(resp.Text()); t != "" {
			return t, nil
		}
		lastErr = errors.New("empty response")
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}
	return "", lastErr
}

func retriable(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "unexpected EOF") ||
		strings.Contains(s, "timeout") ||
		strings.Contains(s, "RST_STREAM") ||
		strings.Contains(s, "connection reset")
}
