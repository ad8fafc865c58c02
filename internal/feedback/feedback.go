// Package feedback generates the personalized assessment message through a
// hosted text-generation API. The contract is a single request/response pair;
// any failure is answered by the caller with the configured fallback template.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fitconsult/fitfunnel/internal/model"
)

const defaultModel = "gemini-2.5-flash"

// Request carries the assessment facts the message is built from.
type Request struct {
	Name             string
	Goal             string
	TrainingLocation string
	ActivityLevel    string
	SleepQuality     int
	FoodQuality      int
	BMI              float64
}

// Config configures the Generator.
type Config struct {
	BaseURL string // e.g. https://generativelanguage.googleapis.com
	APIKey  string
	Model   string // defaults to gemini-2.5-flash
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Generator calls the text-generation API.
type Generator struct {
	base   string
	apiKey string
	model  string
	http   *http.Client
}

// New constructs a Generator.
func New(cfg Config) *Generator {
	g := &Generator{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		http:   cfg.HTTPClient,
	}
	if g.model == "" {
		g.model = defaultModel
	}
	if g.http == nil {
		g.http = &http.Client{Timeout: 30 * time.Second}
	}
	return g
}

// Labels shown to the coach persona, keyed by the stored enum values.
var (
	goalLabels = map[string]string{
		model.GoalLoseWeight: "Emagrecer",
		model.GoalDefine:     "Definir o corpo",
		model.GoalGainMass:   "Ganhar massa muscular",
	}
	activityLabels = map[string]string{
		model.ActivitySedentary:  "Sedentária",
		model.ActivityActive:     "Ativa",
		model.ActivityVeryActive: "Muito ativa",
	}
	locationLabels = map[string]string{
		model.LocationHome:  "Em casa",
		model.LocationGym:   "Na academia",
		model.LocationOther: "Outro local (ar livre, etc)",
	}
)

func label(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate requests one welcome-and-analysis message. The returned text is
// free-form; an empty response is an error so the caller falls back.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(req)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.base, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("generate feedback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate feedback: status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode feedback: %w", err)
	}
	text := ""
	if len(out.Candidates) > 0 && len(out.Candidates[0].Content.Parts) > 0 {
		text = strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	}
	if text == "" {
		return "", fmt.Errorf("generate feedback: empty response")
	}
	return text, nil
}

// Fallback substitutes the student's name into the configured template.
func Fallback(template, name string) string {
	return strings.ReplaceAll(template, "{name}", name)
}

func buildPrompt(r Request) string {
	return fmt.Sprintf(`Você é a "FitConsult AI", uma coach de fitness virtual para mulheres. Seu tom é motivador, empático e positivo. Use frases curtas e diretas.

A aluna %s preencheu uma avaliação:
- Objetivo: %s
- Local de Treino: %s
- Nível de Atividade: %s
- Qualidade do Sono: %d/5
- Qualidade da Alimentação: %d/5
- IMC: %.1f

Gere uma mensagem de boas-vindas e análise (máximo de 4-5 frases). A mensagem deve:
1. Cumprimentar a aluna pelo nome.
2. Fazer uma análise encorajadora baseada nos dados, mencionando o local de treino para personalizar a dica, e focando no potencial de melhoria.
3. Fazer duas perguntas curtas para reflexão baseadas nos dados de menor pontuação (sono ou alimentação).
4. Terminar com uma frase inspiradora e dizer que a primeira aula está liberada.`,
		r.Name,
		label(goalLabels, r.Goal),
		label(locationLabels, r.TrainingLocation),
		label(activityLabels, r.ActivityLevel),
		r.SleepQuality,
		r.FoodQuality,
		r.BMI,
	)
}
