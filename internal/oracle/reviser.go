package oracle

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// revisePayload 修正阶段的输入: 上下文快照 + 当前候选 + 评估反馈
type revisePayload struct {
	*ScheduleContext
	EditShift []DraftEntry `json:"edit_shift"`
	Feedback  string       `json:"feedback"`
}

// Reviser 根据评估反馈修正候选排班
type Reviser struct {
	client Client
	logger *zap.Logger
}

func NewReviser(client Client, logger *zap.Logger) *Reviser {
	return &Reviser{client: client, logger: logger}
}

// Revise 返回与生成阶段同构的新候选
// 无法安排真人的时段会以占位行（Unfilled）形式保留在结果里
func (r *Reviser) Revise(ctx context.Context, sc *ScheduleContext, candidate []DraftEntry, feedback string) ([]DraftEntry, error) {
	payload, err := json.Marshal(revisePayload{
		ScheduleContext: sc,
		EditShift:       candidate,
		Feedback:        feedback,
	})
	if err != nil {
		return nil, err
	}

	raw, err := r.client.Complete(ctx, reviserSystemPrompt, string(payload))
	if err != nil {
		return nil, err
	}

	entries, err := parseDraftSchedule("revise", raw, sc.CompanyInfo.CompanyID, sc.FirstDay, sc.LastDay)
	if err != nil {
		r.logger.Warn("修正阶段输出解析失败", zap.Error(err))
		return nil, err
	}

	unfilled := 0
	for _, e := range entries {
		if e.Unfilled {
			unfilled++
		}
	}
	r.logger.Info("修正候选排班",
		zap.Int("company_id", sc.CompanyInfo.CompanyID),
		zap.Int("entries", len(entries)),
		zap.Int("unfilled", unfilled))
	return entries, nil
}
