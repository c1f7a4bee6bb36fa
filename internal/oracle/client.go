package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jacksen-ng/shift-agent/config"
)

// ── Oracle 传输层错误 ──

var (
	ErrOracleUnavailable = errors.New("oracle 服务不可用")
	ErrEmptyCompletion   = errors.New("oracle 返回空内容")
)

// Client 面向提示词的最小补全接口
// 生成/评估/修正三个角色都通过它调用模型，便于测试替换
type Client interface {
	Complete(ctx context.Context, systemInstruction, userContent string) (string, error)
}

// ══════════════════════════════════════════
// Gemini REST 实现
// ══════════════════════════════════════════

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  *geminiGenCfg   `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenCfg struct {
	Temperature float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type geminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	maxRetries int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGeminiClient 创建 Gemini REST 客户端
func NewGeminiClient(cfg *config.GeminiConfig, logger *zap.Logger) Client {
	return &geminiClient{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Complete 发送系统指令与用户内容，返回模型文本
// 只在传输层失败（网络错误、5xx、429）时有限重试；
// 内容解析失败属于契约问题，由调用方处理，不在这里重试
func (c *geminiClient) Complete(ctx context.Context, systemInstruction, userContent string) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: userContent}}},
		},
		GenerationConfig: &geminiGenCfg{Temperature: 0},
	}
	if systemInstruction != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}}
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 2 * time.Second
			c.logger.Warn("oracle 调用重试",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, retryable, err := c.doRequest(ctx, url, raw)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %v", ErrOracleUnavailable, lastErr)
}

func (c *geminiClient) doRequest(ctx context.Context, url string, payload []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// 网络层失败可重试
		return "", true, err
	}
	defer resp.Body.Close()

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", resp.StatusCode >= 500, fmt.Errorf("解析 oracle 响应失败: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		msg := resp.Status
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", true, fmt.Errorf("oracle 返回 %d: %s", resp.StatusCode, msg)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", false, fmt.Errorf("oracle 返回 %d: %s", resp.StatusCode, msg)
	}

	var b strings.Builder
	for _, cand := range parsed.Candidates {
		for _, p := range cand.Content.Parts {
			b.WriteString(p.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", false, ErrEmptyCompletion
	}
	return text, false, nil
}
