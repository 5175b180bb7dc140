// Package analyzer delegates source files to an LLM for security and
// code quality review.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/sentinelhq/sentinel/internal/config"
)

const requestTimeout = 60 * time.Second

const systemPrompt = `You are a Security Sentinel Agent, an expert code reviewer specializing in security analysis.
When given source code, do the following:
1. Read and understand the entire code carefully.
2. Identify security risks such as code injection, SQL injection, shell command execution, unsafe deserialization, improper error handling, and other common vulnerabilities.
3. Identify coding issues and bad practices such as swallowed errors, unsafe input handling, or misuse of libraries.
4. For each issue, explain in natural language what is wrong, why it is dangerous, and how to fix it safely.
5. Suggest safer alternatives or best practices wherever applicable.
6. If the code looks safe, say that clearly and encourage good practices.
Always respond thoroughly and educationally, as if mentoring a junior developer.
Your response should read like a professional code review report, not a raw checklist.`

// chatClient abstracts the OpenAI client for testability.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Analyzer sends file contents to the configured model and collects
// natural-language findings.
type Analyzer struct {
	cfg    *config.Config
	client chatClient
	logger zerolog.Logger
}

// New builds an Analyzer from the configuration. An API key is
// required; without one there is nothing to delegate to.
func New(cfg *config.Config, logger zerolog.Logger) (*Analyzer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key not set, please set it first: sentinel config set apikey YOUR_API_KEY")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.APIBase != "" {
		clientConfig.BaseURL = cfg.APIBase
	}

	return &Analyzer{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
		logger: logger,
	}, nil
}

// AnalyzeFile reviews one file. Failures never abort the batch: the
// error is recorded in the Result and the caller moves on.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path, content, language string) Result {
	result := Result{
		FilePath: path,
		FileName: filepath.Base(path),
		Language: language,
	}

	prompt, err := a.buildPrompt(result.FileName, language, content)
	if err != nil {
		result.Status = StatusError
		result.Analysis = fmt.Sprintf("Processing error: %v", err)
		return result
	}

	findings, err := a.complete(ctx, prompt)
	if err != nil {
		a.logger.Error().Err(err).Str("file", result.FileName).Msg("analysis failed")
		result.Status = StatusError
		result.Analysis = fmt.Sprintf("Processing error: %v", err)
		return result
	}

	result.Status = StatusSuccess
	result.Analysis = findings
	return result
}

func (a *Analyzer) buildPrompt(fileName, language, content string) (string, error) {
	tmpl, err := GetPromptTemplate(a.cfg.PromptTemplate)
	if err != nil {
		return "", err
	}
	return RenderTemplate(tmpl, TemplateData{
		FileName: fileName,
		Language: language,
		Code:     content,
	})
}

func (a *Analyzer) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call LLM: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("LLM returned empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
