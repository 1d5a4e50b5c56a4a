// Package ai generates follow-up emails through Groq's OpenAI-compatible
// chat completion API.
package ai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog"

	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

const (
	groqBaseURL  = "https://api.groq.com/openai/v1"
	defaultModel = "llama-3.3-70b-versatile"
)

// tonePrompts maps each tone to the style directive injected into the prompt.
var tonePrompts = map[ports.FollowupTone]string{
	ports.ToneFormal:  "très formel et soutenu, utilisant le vouvoiement systématiquement, environ 180 mots",
	ports.ToneNeutral: "professionnel mais accessible, adapté à un étudiant, environ 150 mots",
	ports.ToneShort:   "très court et direct, allant droit à l'essentiel, environ 80 mots",
}

// Generator produces French follow-up emails. An empty API key leaves the
// generator unconfigured and every call fails with domain.ErrNotConfigured.
type Generator struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

func NewGenerator(apiKey, model string, logger zerolog.Logger) *Generator {
	g := &Generator{model: model, logger: logger}
	if g.model == "" {
		g.model = defaultModel
	}
	if apiKey == "" {
		return g
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	g.client = openai.NewClientWithConfig(cfg)
	return g
}

func (g *Generator) GenerateFollowupEmail(ctx context.Context, company, role string, appliedAt *time.Time, tone ports.FollowupTone) (string, error) {
	if g.client == nil {
		return "", domain.ErrNotConfigured
	}

	directive, ok := tonePrompts[tone]
	if !ok {
		directive = tonePrompts[ports.ToneNeutral]
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Tu es un assistant qui aide des étudiants à rédiger des emails de relance professionnels en français. Tu réponds uniquement avec le contenu de l'email, objet inclus, sans aucun commentaire.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(
					"Rédige un email de relance pour une candidature au poste de %s chez %s, envoyée %s. Ton : %s. L'email commence par \"Objet :\" suivi de l'objet, puis le corps du message.",
					role, company, appliedPhrase(appliedAt), directive,
				),
			},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", domain.ErrUpstream)
	}

	g.logger.Debug().Str("model", g.model).Str("company", company).Msg("followup email generated")
	return resp.Choices[0].Message.Content, nil
}

// appliedPhrase renders the application date the way it appears in the
// prompt: a long French date, or "récemment" when unknown.
func appliedPhrase(appliedAt *time.Time) string {
	if appliedAt == nil {
		return "récemment"
	}
	return "le " + frLongDate(*appliedAt)
}

var frMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

func frLongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frMonths[t.Month()-1], t.Year())
}
