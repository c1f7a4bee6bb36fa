package errors

import "errors"

var (
	// ErrInvalidWindow 日期窗口非法：first_day 晚于 last_day
	ErrInvalidWindow = errors.New("日期窗口非法：开始日不能晚于结束日")

	// ErrWindowLeaseHeld 同一店铺的排班生成正在进行中，窗口租约被占用
	ErrWindowLeaseHeld = errors.New("该店铺的排班生成正在进行中，请稍后重试")
)
