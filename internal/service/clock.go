package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ── 日期与时刻的规范化 ──
//
// 库内约定: 日期 YYYY-MM-DD，时刻 HH:MM:SS
// 入参里的 HH:MM 接受并补齐秒位，其余格式一律拒绝

var ErrBadClock = errors.New("时刻格式必须为 HH:MM 或 HH:MM:SS")

func normalizeClock(v string) (string, error) {
	v = strings.TrimSpace(v)
	if _, err := time.Parse("15:04:05", v); err == nil {
		return v, nil
	}
	if t, err := time.Parse("15:04", v); err == nil {
		return t.Format("15:04:05"), nil
	}
	return "", fmt.Errorf("%w: %q", ErrBadClock, v)
}

func parseDay(v string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(v))
}

func formatDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// today 返回当天零点，用于"未来行"判定
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
