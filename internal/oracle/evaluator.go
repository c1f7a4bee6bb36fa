package oracle

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// evaluatePayload 评估阶段的输入: 上下文快照 + 待评估的候选排班
type evaluatePayload struct {
	*ScheduleContext
	EditShift []DraftEntry `json:"edit_shift"`
}

// Evaluator 按减点制评分规则给候选排班打分
type Evaluator struct {
	client Client
	logger *zap.Logger
}

func NewEvaluator(client Client, logger *zap.Logger) *Evaluator {
	return &Evaluator{client: client, logger: logger}
}

// Evaluate 对候选排班打分，分数恒在 [0, 100] 区间内
// 上下文中没有希望班次时，希望匹配项不参与减分（提示词内约定）
func (e *Evaluator) Evaluate(ctx context.Context, sc *ScheduleContext, candidate []DraftEntry) (*Evaluation, error) {
	payload, err := json.Marshal(evaluatePayload{ScheduleContext: sc, EditShift: candidate})
	if err != nil {
		return nil, err
	}

	raw, err := e.client.Complete(ctx, evaluatorSystemPrompt, string(payload))
	if err != nil {
		return nil, err
	}

	ev, err := parseEvaluation(raw)
	if err != nil {
		e.logger.Warn("评估阶段输出解析失败", zap.Error(err))
		return nil, err
	}
	e.logger.Info("候选排班评分",
		zap.Int("company_id", sc.CompanyInfo.CompanyID),
		zap.Int("score", ev.Score))
	return ev, nil
}
