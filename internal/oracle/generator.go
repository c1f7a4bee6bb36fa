package oracle

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Generator 根据上下文快照生成初版排班草案
type Generator struct {
	client Client
	logger *zap.Logger
}

func NewGenerator(client Client, logger *zap.Logger) *Generator {
	return &Generator{client: client, logger: logger}
}

// Generate 调用模型产出窗口内的候选排班
func (g *Generator) Generate(ctx context.Context, sc *ScheduleContext) ([]DraftEntry, error) {
	payload, err := json.Marshal(sc)
	if err != nil {
		return nil, err
	}

	raw, err := g.client.Complete(ctx, generatorSystemPrompt, string(payload))
	if err != nil {
		return nil, err
	}

	entries, err := parseDraftSchedule("generate", raw, sc.CompanyInfo.CompanyID, sc.FirstDay, sc.LastDay)
	if err != nil {
		g.logger.Warn("生成阶段输出解析失败", zap.Error(err))
		return nil, err
	}
	g.logger.Info("生成候选排班",
		zap.Int("company_id", sc.CompanyInfo.CompanyID),
		zap.Int("entries", len(entries)))
	return entries, nil
}
