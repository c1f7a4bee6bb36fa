package oracle

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// UnfilledUserID 模型用它标记"该时段找不到人"的占位行
// 占位行永远不能当成真实排班写入数据库
const UnfilledUserID = 0

// ── 发送给模型的上下文快照 ──

// CompanyInfo 店铺经营约束
type CompanyInfo struct {
	CompanyID   int    `json:"company_id"`
	CompanyName string `json:"company_name"`
	OpenTime    string `json:"open_time"`  // HH:MM:SS
	CloseTime   string `json:"close_time"` // HH:MM:SS
	TargetSales int    `json:"target_sales"`
	LaborCost   int    `json:"labor_cost"`
	Comment     string `json:"comment,omitempty"`
}

// WorkerInfo 员工画像，评估人件费与技能覆盖时使用
type WorkerInfo struct {
	UserID     int    `json:"user_id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Evaluate   string `json:"evaluate"`
	Experience string `json:"experience"`
	HourPay    int    `json:"hour_pay"`
	Post       string `json:"post"`
}

// ShiftEntry 单条班次，所有时间均为 HH:MM:SS、日期为 YYYY-MM-DD
type ShiftEntry struct {
	UserID     int    `json:"user_id"`
	CompanyID  int    `json:"company_id"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	FinishTime string `json:"finish_time"`
}

// HistoryEntry 过往排班周期的评价摘要
type HistoryEntry struct {
	StartDay  string `json:"start_day"`
	FinishDay string `json:"finish_day"`
	Evaluate  string `json:"evaluate"`
}

// ScheduleContext 排班窗口的完整只读快照
// 在一次 生成→评估→修正 循环内不变，模型看到的世界是一致的
type ScheduleContext struct {
	CompanyInfo     CompanyInfo    `json:"company_info"`
	Positions       []string       `json:"positions"`
	RestDays        []string       `json:"rest_days"`
	Workers         []WorkerInfo   `json:"workers"`
	// 窗口内没有希望班次时整个省略，评分规则据此跳过希望匹配项
	SubmittedShifts []ShiftEntry   `json:"submitted_shift,omitempty"`
	History         []HistoryEntry `json:"evaluation_history,omitempty"`
	FirstDay        string         `json:"first_day"`
	LastDay         string         `json:"last_day"`
}

// ── 模型输出的候选排班 ──

// DraftEntry 候选排班中的一行
// Unfilled 为 true 表示这是占位行，只用于向店主报告缺口
type DraftEntry struct {
	UserID     int    `json:"user_id"`
	CompanyID  int    `json:"company_id"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	FinishTime string `json:"finish_time"`
	Unfilled   bool   `json:"-"`
}

type draftEnvelope struct {
	EditShift []DraftEntry `json:"edit_shift"`
}

// Evaluation 模型对候选排班的打分结果
type Evaluation struct {
	Score    int    `json:"quantitative_score"`
	Feedback string `json:"feedback_japanese"`
}

// ── 契约错误 ──

// ContractError 模型输出不符合约定格式时抛出，携带原始输出便于排查
// 契约违反不重试，直接上报给调用方
type ContractError struct {
	Stage string
	Raw   string
	Err   error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("oracle %s 输出违反契约: %v", e.Stage, e.Err)
}

func (e *ContractError) Unwrap() error { return e.Err }

// ── 解析工具 ──

// stripFence 剥掉模型习惯性包裹的 markdown 代码块
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// normalizeClock 把 HH:MM 统一成 HH:MM:SS，非法格式返回错误
func normalizeClock(v string) (string, error) {
	v = strings.TrimSpace(v)
	if _, err := time.Parse("15:04:05", v); err == nil {
		return v, nil
	}
	if t, err := time.Parse("15:04", v); err == nil {
		return t.Format("15:04:05"), nil
	}
	return "", fmt.Errorf("非法时间格式 %q", v)
}

// parseDraftSchedule 解析并校验候选排班
// 规则: 行日期必须落在窗口内、时间格式规范化、
// 同一真实员工同一天只允许一行；占位行（user_id=0）不受去重约束
func parseDraftSchedule(stage, raw string, companyID int, firstDay, lastDay string) ([]DraftEntry, error) {
	cleaned := stripFence(raw)

	var env draftEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
		return nil, &ContractError{Stage: stage, Raw: raw, Err: err}
	}
	if len(env.EditShift) == 0 {
		return nil, &ContractError{Stage: stage, Raw: raw, Err: fmt.Errorf("edit_shift 为空")}
	}

	from, err := time.Parse("2006-01-02", firstDay)
	if err != nil {
		return nil, fmt.Errorf("窗口起始日非法: %w", err)
	}
	to, err := time.Parse("2006-01-02", lastDay)
	if err != nil {
		return nil, fmt.Errorf("窗口结束日非法: %w", err)
	}

	seen := make(map[string]struct{}, len(env.EditShift))
	out := make([]DraftEntry, 0, len(env.EditShift))
	for i, e := range env.EditShift {
		day, err := time.Parse("2006-01-02", e.Day)
		if err != nil {
			return nil, &ContractError{Stage: stage, Raw: raw,
				Err: fmt.Errorf("第 %d 行日期非法: %q", i, e.Day)}
		}
		if day.Before(from) || day.After(to) {
			return nil, &ContractError{Stage: stage, Raw: raw,
				Err: fmt.Errorf("第 %d 行日期 %s 超出窗口 [%s, %s]", i, e.Day, firstDay, lastDay)}
		}

		start, err := normalizeClock(e.StartTime)
		if err != nil {
			return nil, &ContractError{Stage: stage, Raw: raw, Err: fmt.Errorf("第 %d 行: %w", i, err)}
		}
		finish, err := normalizeClock(e.FinishTime)
		if err != nil {
			return nil, &ContractError{Stage: stage, Raw: raw, Err: fmt.Errorf("第 %d 行: %w", i, err)}
		}

		entry := DraftEntry{
			UserID:     e.UserID,
			CompanyID:  companyID,
			Day:        e.Day,
			StartTime:  start,
			FinishTime: finish,
			Unfilled:   e.UserID == UnfilledUserID,
		}
		if !entry.Unfilled {
			key := fmt.Sprintf("%d/%s", e.UserID, e.Day)
			if _, dup := seen[key]; dup {
				return nil, &ContractError{Stage: stage, Raw: raw,
					Err: fmt.Errorf("员工 %d 在 %s 被安排了多条班次", e.UserID, e.Day)}
			}
			seen[key] = struct{}{}
		}
		out = append(out, entry)
	}
	return out, nil
}

// parseEvaluation 解析打分结果并把分数钳制到 [0, 100]
func parseEvaluation(raw string) (*Evaluation, error) {
	cleaned := stripFence(raw)

	var ev Evaluation
	if err := json.Unmarshal([]byte(cleaned), &ev); err != nil {
		return nil, &ContractError{Stage: "evaluate", Raw: raw, Err: err}
	}
	if strings.TrimSpace(ev.Feedback) == "" {
		return nil, &ContractError{Stage: "evaluate", Raw: raw, Err: fmt.Errorf("feedback_japanese 为空")}
	}
	if ev.Score < 0 {
		ev.Score = 0
	}
	if ev.Score > 100 {
		ev.Score = 100
	}
	return &ev, nil
}
