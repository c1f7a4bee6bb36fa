package oracle

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// stubClient 返回固定文本的测试客户端
type stubClient struct {
	reply string
	err   error
	// 记录最近一次调用的入参，便于断言
	lastSystem string
	lastUser   string
}

func (s *stubClient) Complete(_ context.Context, system, user string) (string, error) {
	s.lastSystem = system
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testContext() *ScheduleContext {
	return &ScheduleContext{
		CompanyInfo: CompanyInfo{
			CompanyID: 1, CompanyName: "テスト店舗",
			OpenTime: "09:00:00", CloseTime: "22:00:00",
			LaborCost: 300000,
		},
		Positions: []string{"kitchen", "hall"},
		Workers: []WorkerInfo{
			{UserID: 2, Name: "佐藤", Position: "hall", HourPay: 1100, Experience: "veteran"},
		},
		SubmittedShifts: []ShiftEntry{
			{UserID: 2, CompanyID: 1, Day: "2025-07-25", StartTime: "10:00:00", FinishTime: "18:00:00"},
		},
		FirstDay: "2025-07-21",
		LastDay:  "2025-07-27",
	}
}

// ── 解析工具 ──

func TestStripFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, c := range cases {
		if got := stripFence(c.in); got != c.want {
			t.Errorf("stripFence(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeClock(t *testing.T) {
	got, err := normalizeClock("10:00")
	if err != nil || got != "10:00:00" {
		t.Fatalf("normalizeClock(10:00) = %q, %v", got, err)
	}
	got, err = normalizeClock("18:30:00")
	if err != nil || got != "18:30:00" {
		t.Fatalf("normalizeClock(18:30:00) = %q, %v", got, err)
	}
	if _, err := normalizeClock("25時"); err == nil {
		t.Fatal("非法时间应当报错")
	}
}

func TestParseDraftSchedule(t *testing.T) {
	raw := `{"edit_shift":[
		{"user_id":2,"company_id":1,"day":"2025-07-25","start_time":"10:00","finish_time":"18:00"},
		{"user_id":0,"company_id":1,"day":"2025-07-26","start_time":"09:00:00","finish_time":"13:00:00"},
		{"user_id":0,"company_id":1,"day":"2025-07-26","start_time":"13:00:00","finish_time":"17:00:00"}
	]}`
	entries, err := parseDraftSchedule("generate", raw, 1, "2025-07-21", "2025-07-27")
	if err != nil {
		t.Fatalf("parseDraftSchedule: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].StartTime != "10:00:00" {
		t.Errorf("时间未规范化: %q", entries[0].StartTime)
	}
	if entries[0].Unfilled {
		t.Error("真实员工行不应标记为占位")
	}
	// 同一天允许多条占位行
	if !entries[1].Unfilled || !entries[2].Unfilled {
		t.Error("user_id=0 的行应标记为占位")
	}
}

func TestParseDraftScheduleDuplicateWorkerDay(t *testing.T) {
	raw := `{"edit_shift":[
		{"user_id":2,"company_id":1,"day":"2025-07-25","start_time":"10:00:00","finish_time":"14:00:00"},
		{"user_id":2,"company_id":1,"day":"2025-07-25","start_time":"16:00:00","finish_time":"20:00:00"}
	]}`
	_, err := parseDraftSchedule("generate", raw, 1, "2025-07-21", "2025-07-27")
	if err == nil {
		t.Fatal("同一员工同一天两条班次应当被拒绝")
	}
	var ce *ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("期望 ContractError，得到 %T", err)
	}
	if ce.Raw == "" {
		t.Error("ContractError 应携带原始输出")
	}
}

func TestParseDraftScheduleOutOfWindow(t *testing.T) {
	raw := `{"edit_shift":[
		{"user_id":2,"company_id":1,"day":"2025-08-01","start_time":"10:00:00","finish_time":"18:00:00"}
	]}`
	if _, err := parseDraftSchedule("generate", raw, 1, "2025-07-21", "2025-07-27"); err == nil {
		t.Fatal("窗口外的日期应当被拒绝")
	}
}

func TestParseEvaluationClamp(t *testing.T) {
	ev, err := parseEvaluation(`{"quantitative_score":130,"feedback_japanese":"よくできています"}`)
	if err != nil {
		t.Fatalf("parseEvaluation: %v", err)
	}
	if ev.Score != 100 {
		t.Errorf("score = %d, want 100", ev.Score)
	}
	ev, err = parseEvaluation(`{"quantitative_score":-7,"feedback_japanese":"要改善"}`)
	if err != nil {
		t.Fatalf("parseEvaluation: %v", err)
	}
	if ev.Score != 0 {
		t.Errorf("score = %d, want 0", ev.Score)
	}
}

func TestParseEvaluationMissingFeedback(t *testing.T) {
	if _, err := parseEvaluation(`{"quantitative_score":80,"feedback_japanese":""}`); err == nil {
		t.Fatal("空反馈应当被拒绝")
	}
}

// ── 三个角色 ──

func TestGeneratorGenerate(t *testing.T) {
	client := &stubClient{reply: "```json\n" + `{"edit_shift":[
		{"user_id":2,"company_id":1,"day":"2025-07-25","start_time":"10:00:00","finish_time":"18:00:00"}
	]}` + "\n```"}
	gen := NewGenerator(client, zap.NewNop())

	entries, err := gen.Generate(context.Background(), testContext())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(entries) != 1 || entries[0].UserID != 2 {
		t.Fatalf("意外的解析结果: %+v", entries)
	}
	if client.lastSystem == "" || client.lastUser == "" {
		t.Error("应把系统指令与上下文都发给模型")
	}
}

func TestEvaluatorEvaluate(t *testing.T) {
	client := &stubClient{reply: `{"quantitative_score":85,"feedback_japanese":"概ね良好です"}`}
	ev := NewEvaluator(client, zap.NewNop())

	result, err := ev.Evaluate(context.Background(), testContext(), []DraftEntry{
		{UserID: 2, CompanyID: 1, Day: "2025-07-25", StartTime: "10:00:00", FinishTime: "18:00:00"},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if result.Score != 85 {
		t.Errorf("score = %d, want 85", result.Score)
	}
}

func TestEvaluatorOmitsEmptySubmittedShifts(t *testing.T) {
	client := &stubClient{reply: `{"quantitative_score":70,"feedback_japanese":"希望データなし"}`}
	ev := NewEvaluator(client, zap.NewNop())

	sc := testContext()
	sc.SubmittedShifts = nil

	if _, err := ev.Evaluate(context.Background(), sc, []DraftEntry{
		{UserID: 2, CompanyID: 1, Day: "2025-07-25", StartTime: "10:00:00", FinishTime: "18:00:00"},
	}); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	// 希望班次为空时字段整个省略，评分规则以字段缺席为准跳过希望匹配项
	if strings.Contains(client.lastUser, "submitted_shift") {
		t.Errorf("空的希望班次不应出现在载荷中: %s", client.lastUser)
	}
}

func TestReviserRevise(t *testing.T) {
	client := &stubClient{reply: `{"edit_shift":[
		{"user_id":2,"company_id":1,"day":"2025-07-25","start_time":"09:00:00","finish_time":"17:00:00"},
		{"user_id":0,"company_id":1,"day":"2025-07-26","start_time":"09:00:00","finish_time":"13:00:00"}
	]}`}
	rev := NewReviser(client, zap.NewNop())

	entries, err := rev.Revise(context.Background(), testContext(), nil, "人員不足の時間帯があります")
	if err != nil {
		t.Fatalf("Revise: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if !entries[1].Unfilled {
		t.Error("user_id=0 应标记为占位行")
	}
}

func TestClientErrorPropagates(t *testing.T) {
	client := &stubClient{err: ErrOracleUnavailable}
	gen := NewGenerator(client, zap.NewNop())
	if _, err := gen.Generate(context.Background(), testContext()); !errors.Is(err, ErrOracleUnavailable) {
		t.Fatalf("期望 ErrOracleUnavailable，得到 %v", err)
	}
}
